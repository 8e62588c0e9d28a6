package chunk

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Span is the planned [Start, Start+Length) window of one chunk, in seconds.
type Span struct {
	Index  int
	Start  decimal.Decimal
	Length decimal.Decimal
}

// End returns the exclusive end of the span.
func (s Span) End() decimal.Decimal {
	return s.Start.Add(s.Length)
}

// PlanSpans divides duration into consecutive spans of chunkSeconds. Every span
// but the last has exactly chunkSeconds; the last holds the remainder. The
// span count is ceil(duration/chunkSeconds) and the lengths sum to duration.
func PlanSpans(duration, chunkSeconds decimal.Decimal) ([]Span, error) {
	if !chunkSeconds.IsPositive() {
		return nil, fmt.Errorf("plan chunks: chunk duration must be positive, got %s", chunkSeconds)
	}
	if !duration.IsPositive() {
		return nil, errors.New("plan chunks: source duration must be positive")
	}

	count := int(duration.Div(chunkSeconds).Ceil().IntPart())
	spans := make([]Span, 0, count)
	for i := 0; ; i++ {
		start := chunkSeconds.Mul(decimal.NewFromInt(int64(i)))
		if !start.LessThan(duration) {
			break
		}
		length := decimal.Min(chunkSeconds, duration.Sub(start))
		spans = append(spans, Span{Index: i, Start: start, Length: length})
	}
	return spans, nil
}

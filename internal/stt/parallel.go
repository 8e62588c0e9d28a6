package stt

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"ytt/internal/logging"
	"ytt/internal/media/chunk"
	"ytt/internal/services"
	"ytt/internal/transcript"
)

// DefaultMaxWorkers bounds the chunk pool when the caller passes zero.
const DefaultMaxWorkers = 4

// Merged is the combined outcome of a chunked transcription.
type Merged struct {
	Transcript   transcript.Transcript
	TotalChunks  int
	FailedChunks int
}

type chunkOutcome struct {
	segments []transcript.Segment
	language string
	failed   bool
}

// TranscribeChunks transcribes chunks concurrently with at most maxWorkers in
// flight. Segments are shifted by each chunk's offset and the merged list is
// sorted by start time. A failing chunk is logged and excluded; the call
// fails only when no chunk succeeds. Every chunk is released before
// TranscribeChunks returns.
func TranscribeChunks(ctx context.Context, chunks []*chunk.Chunk, t Transcriber, maxWorkers int, logger *slog.Logger) (Merged, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "stt")
	if t == nil {
		_ = chunk.ReleaseAll(chunks)
		return Merged{}, services.Wrap(services.ErrConfiguration, "stt", "transcribe chunks", "No transcriber configured", nil)
	}
	if len(chunks) == 0 {
		return Merged{}, services.Wrap(services.ErrValidation, "stt", "transcribe chunks", "No audio chunks to transcribe", nil)
	}
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	}

	outcomes := make([]chunkOutcome, len(chunks))
	var group errgroup.Group
	group.SetLimit(maxWorkers)
	for i, c := range chunks {
		i, c := i, c
		group.Go(func() error {
			outcomes[i] = transcribeOne(ctx, c, t, logger)
			return nil
		})
	}
	_ = group.Wait()

	merged := Merged{TotalChunks: len(chunks)}
	var segments []transcript.Segment
	var lang string
	for _, outcome := range outcomes {
		if outcome.failed {
			merged.FailedChunks++
			continue
		}
		if lang == "" {
			lang = outcome.language
		}
		segments = append(segments, outcome.segments...)
	}
	if merged.FailedChunks == len(chunks) {
		return merged, services.Wrap(
			services.ErrTransient,
			"stt",
			"transcribe chunks",
			"Every audio chunk failed to transcribe",
			nil,
		)
	}

	sort.Slice(segments, func(a, b int) bool { return segments[a].Start < segments[b].Start })
	merged.Transcript = transcript.New(segments, lang)

	logger.Info("chunk transcription merged",
		logging.Int("chunks", merged.TotalChunks),
		logging.Int("failed_chunks", merged.FailedChunks),
		logging.Int("segments", len(segments)),
	)
	return merged, nil
}

func transcribeOne(ctx context.Context, c *chunk.Chunk, t Transcriber, logger *slog.Logger) (outcome chunkOutcome) {
	defer func() {
		if err := c.Release(); err != nil {
			logging.WarnWithContext(logger, "chunk release failed", "chunk_release_failed",
				logging.Int("chunk", c.Index),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "remove the leftover file from the temp directory"),
			)
		}
	}()

	result, err := t.Transcribe(ctx, c.Path)
	if err != nil {
		logging.WarnWithContext(logger, "chunk transcription failed", "chunk_transcription_failed",
			logging.Int("chunk", c.Index),
			logging.Float64("offset_seconds", c.Offset),
			logging.Error(err),
			logging.String(logging.FieldImpact, "chunk text omitted from transcript"),
		)
		return chunkOutcome{failed: true}
	}

	shifted := make([]transcript.Segment, 0, len(result.Segments))
	for _, seg := range result.Segments {
		shifted = append(shifted, seg.Shift(c.Offset))
	}
	logger.Debug("chunk transcribed",
		logging.Int("chunk", c.Index),
		logging.Int("segments", len(shifted)),
	)
	return chunkOutcome{segments: shifted, language: result.Language}
}

package chunk

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"ytt/internal/logging"
	"ytt/internal/media/ffprobe"
	"ytt/internal/services"
)

type commandRunner func(ctx context.Context, name string, args ...string) error

type durationProbe func(ctx context.Context, path string) (decimal.Decimal, error)

// Splitter cuts audio files into fixed-length chunks with ffmpeg.
type Splitter struct {
	ffmpegBinary  string
	ffprobeBinary string
	workDir       string
	logger        *slog.Logger
	run           commandRunner
	probe         durationProbe
}

// Option customizes a Splitter.
type Option func(*Splitter)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Splitter) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCommandRunner replaces ffmpeg execution (for testing).
func WithCommandRunner(run func(ctx context.Context, name string, args ...string) error) Option {
	return func(s *Splitter) {
		if run != nil {
			s.run = run
		}
	}
}

// WithDurationProbe replaces the ffprobe duration lookup (for testing).
func WithDurationProbe(probe func(ctx context.Context, path string) (decimal.Decimal, error)) Option {
	return func(s *Splitter) {
		if probe != nil {
			s.probe = probe
		}
	}
}

// NewSplitter constructs a splitter that writes chunk files beneath workDir.
// An empty workDir places chunks beside the source file.
func NewSplitter(ffmpegBinary, ffprobeBinary, workDir string, opts ...Option) *Splitter {
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = "ffmpeg"
	}
	if strings.TrimSpace(ffprobeBinary) == "" {
		ffprobeBinary = "ffprobe"
	}
	s := &Splitter{
		ffmpegBinary:  ffmpegBinary,
		ffprobeBinary: ffprobeBinary,
		workDir:       workDir,
		logger:        logging.NewNop(),
		run:           defaultCommandRunner,
	}
	s.probe = s.probeDuration
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "chunk")
	return s
}

// Split cuts source into consecutive chunks of chunkSeconds. The final chunk
// may be shorter. A source shorter than one chunk yields a single chunk. The
// caller owns the returned chunks and must Release each one. On error every
// chunk already written is released before returning.
func (s *Splitter) Split(ctx context.Context, source string, chunkSeconds int) ([]*Chunk, error) {
	if chunkSeconds <= 0 {
		return nil, services.Wrap(services.ErrValidation, "chunk", "split", fmt.Sprintf("Chunk duration must be positive, got %d", chunkSeconds), nil)
	}
	if _, err := os.Stat(source); err != nil {
		return nil, services.Wrap(services.ErrNotFound, "chunk", "split", "Audio file not found", err)
	}

	duration, err := s.probe(ctx, source)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "chunk", "probe duration", "Failed to read audio duration", err)
	}
	// ffmpeg is given millisecond timestamps, so plan on the same grid.
	duration = duration.Round(3)
	spans, err := PlanSpans(duration, decimal.NewFromInt(int64(chunkSeconds)))
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "chunk", "plan", "Cannot plan chunks", err)
	}

	parent := s.workDir
	if parent == "" {
		parent = filepath.Dir(source)
	}
	dir, err := os.MkdirTemp(parent, "chunks-")
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "chunk", "work dir", "Failed to create chunk directory", err)
	}

	s.logger.Info("splitting audio",
		logging.String("source", source),
		logging.String("duration", duration.String()),
		logging.Int("chunk_seconds", chunkSeconds),
		logging.Int("chunks", len(spans)),
	)

	chunks := make([]*Chunk, 0, len(spans))
	for _, span := range spans {
		dest := filepath.Join(dir, fmt.Sprintf("chunk_%04d.wav", span.Index))
		c := &Chunk{
			Index:    span.Index,
			Path:     dest,
			Offset:   span.Start.InexactFloat64(),
			Duration: span.Length.InexactFloat64(),
		}
		if err := s.run(ctx, s.ffmpegBinary, extractArgs(source, span, dest)...); err != nil {
			_ = c.Release()
			_ = ReleaseAll(chunks)
			return nil, services.Wrap(services.ErrExternalTool, "chunk", "extract", fmt.Sprintf("Failed to extract chunk %d", span.Index), err)
		}
		chunks = append(chunks, c)
		s.logger.Debug("chunk written",
			logging.Int("chunk_index", span.Index),
			logging.String("start", span.Start.String()),
			logging.String("length", span.Length.String()),
		)
	}
	return chunks, nil
}

func extractArgs(source string, span Span, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-ss", span.Start.StringFixed(3),
		"-t", span.Length.StringFixed(3),
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
}

func (s *Splitter) probeDuration(ctx context.Context, path string) (decimal.Decimal, error) {
	result, err := ffprobe.Inspect(ctx, s.ffprobeBinary, path)
	if err != nil {
		return decimal.Zero, err
	}
	if result.AudioStreamCount() == 0 {
		return decimal.Zero, fmt.Errorf("no audio stream in %s", filepath.Base(path))
	}
	return result.Duration()
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

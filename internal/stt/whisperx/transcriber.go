package whisperx

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"ytt/internal/language"
	"ytt/internal/logging"
	"ytt/internal/services"
	"ytt/internal/transcript"
)

type commandRunner func(ctx context.Context, name string, args ...string) error

// Transcriber provides WhisperX transcription.
type Transcriber struct {
	cfg    Config
	logger *slog.Logger
	run    commandRunner
}

// Option customizes a Transcriber.
type Option func(*Transcriber)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transcriber) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func WithCommandRunner(run func(ctx context.Context, name string, args ...string) error) Option {
	return func(t *Transcriber) {
		if run != nil {
			t.run = run
		}
	}
}

// New creates a WhisperX transcriber with the given configuration.
func New(cfg Config, opts ...Option) *Transcriber {
	if strings.TrimSpace(cfg.Binary) == "" {
		cfg.Binary = UVXCommand
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	if strings.TrimSpace(cfg.VADMethod) == "" {
		cfg.VADMethod = VADMethodSilero
	}
	t := &Transcriber{cfg: cfg, logger: logging.NewNop(), run: runCommand}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = logging.NewComponentLogger(t.logger, "whisperx")
	return t
}

// Transcribe runs WhisperX on audioPath and returns its segments.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath string) (transcript.Transcript, error) {
	if strings.TrimSpace(audioPath) == "" {
		return transcript.Transcript{}, services.Wrap(services.ErrValidation, "whisperx", "transcribe", "Audio path required", nil)
	}
	outputDir, err := os.MkdirTemp(filepath.Dir(audioPath), "whisperx-")
	if err != nil {
		return transcript.Transcript{}, services.Wrap(services.ErrTransient, "whisperx", "output dir", "Failed to create WhisperX output directory", err)
	}
	defer os.RemoveAll(outputDir)

	t.logger.Debug("whisperx starting",
		logging.String("audio", audioPath),
		logging.String("model", t.cfg.Model),
		logging.Bool("cuda", t.cfg.CUDAEnabled),
	)
	if err := t.run(ctx, t.cfg.Binary, t.buildArgs(audioPath, outputDir)...); err != nil {
		return transcript.Transcript{}, services.Wrap(services.ErrExternalTool, "whisperx", "run", "WhisperX transcription failed", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	jsonPath := filepath.Join(outputDir, baseName+".json")
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return transcript.Transcript{}, services.Wrap(services.ErrNotFound, "whisperx", "read output", "WhisperX produced no JSON output", err)
	}
	result, err := transcript.DecodeSegments(data)
	if err != nil {
		return transcript.Transcript{}, services.Wrap(services.ErrExternalTool, "whisperx", "parse output", "Unreadable WhisperX JSON", err)
	}
	if result.Language == "" {
		result.Language = language.ToISO2(t.cfg.Language)
	}
	return result, nil
}

// buildArgs constructs the uvx command arguments for WhisperX.
func (t *Transcriber) buildArgs(source, outputDir string) []string {
	args := make([]string, 0, 40)

	if t.cfg.CUDAEnabled {
		args = append(args,
			"--index-url", CUDAIndexURL,
			"--extra-index-url", PypiIndexURL,
		)
	} else {
		args = append(args, "--index-url", PypiIndexURL)
	}

	args = append(args,
		"whisperx",
		source,
		"--model", t.cfg.Model,
		"--batch_size", BatchSize,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--segment_resolution", SegmentResolution,
		"--chunk_size", ChunkSize,
		"--vad_onset", VADOnset,
		"--vad_offset", VADOffset,
		"--beam_size", BeamSize,
		"--best_of", BestOf,
		"--temperature", Temperature,
		"--patience", Patience,
		"--print_progress", "False",
	)

	args = append(args, "--vad_method", t.cfg.VADMethod)
	if t.cfg.VADMethod == VADMethodPyannote && t.cfg.HFToken != "" {
		args = append(args, "--hf_token", t.cfg.HFToken)
	}

	if lang := language.ToISO2(t.cfg.Language); lang != "" {
		args = append(args, "--language", lang)
	}

	if t.cfg.CUDAEnabled {
		args = append(args, "--device", CUDADevice)
	} else {
		args = append(args, "--device", CPUDevice, "--compute_type", CPUComputeType)
	}
	return args
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	// Torch 2.6 changed torch.load default to weights_only=true, breaking WhisperX/pyannote.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

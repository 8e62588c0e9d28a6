package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"ytt/internal/captions"
	"ytt/internal/config"
	"ytt/internal/deps"
	"ytt/internal/download"
	"ytt/internal/fileutil"
	"ytt/internal/language"
	"ytt/internal/logging"
	"ytt/internal/media/chunk"
	"ytt/internal/preflight"
	"ytt/internal/services"
	"ytt/internal/stt"
	"ytt/internal/transcript"
)

// Transcript sources reported in Result.Source.
const (
	SourceCaptions      = "captions"
	SourceTranscription = "transcription"
)

// CaptionSource looks up published captions for a URL.
type CaptionSource interface {
	Fetch(ctx context.Context, url string) captions.Result
}

// AudioFetcher downloads the audio track for a URL into workDir. Metadata
// reports the same fields without downloading.
type AudioFetcher interface {
	Fetch(ctx context.Context, url, workDir string) (download.Audio, error)
	Metadata(ctx context.Context, url string) (download.Audio, error)
}

// AudioSplitter cuts an audio file into fixed-length chunks.
type AudioSplitter interface {
	Split(ctx context.Context, source string, chunkSeconds int) ([]*chunk.Chunk, error)
}

// Request describes one transcription run. Output, when set, overrides the
// derived file name; an absolute Output is used as the full path.
type Request struct {
	URL             string
	Output          string
	ForceTranscribe bool
}

// Result summarizes a completed run.
type Result struct {
	OutputPath       string `json:"output_path"`
	AudioPath        string `json:"audio_path,omitempty"`
	Source           string `json:"source"`
	SegmentCount     int    `json:"segment_count"`
	CaptionsDecision string `json:"captions_decision"`
	CaptionsDetail   string `json:"captions_detail,omitempty"`
	FailedChunks     int    `json:"failed_chunks"`
}

// Runner sequences captions, download, transcription, and persistence.
type Runner struct {
	cfg         *config.Config
	logger      *slog.Logger
	captions    CaptionSource
	fetcher     AudioFetcher
	splitter    AudioSplitter
	transcriber stt.Transcriber
	checkDeps   func(*config.Config) []deps.Status
	newID       func() string
	tempRoot    string
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithCaptionSource replaces the captions client.
func WithCaptionSource(source CaptionSource) Option {
	return func(r *Runner) { r.captions = source }
}

// WithAudioFetcher replaces the yt-dlp fetcher.
func WithAudioFetcher(fetcher AudioFetcher) Option {
	return func(r *Runner) { r.fetcher = fetcher }
}

// WithSplitter replaces the ffmpeg chunk splitter.
func WithSplitter(splitter AudioSplitter) Option {
	return func(r *Runner) { r.splitter = splitter }
}

// WithTranscriber replaces the configured speech-to-text backend.
func WithTranscriber(t stt.Transcriber) Option {
	return func(r *Runner) { r.transcriber = t }
}

// WithDependencyCheck replaces the binary lookup run before downloading.
func WithDependencyCheck(check func(*config.Config) []deps.Status) Option {
	return func(r *Runner) {
		if check != nil {
			r.checkDeps = check
		}
	}
}

// WithTempRoot sets the parent directory for per-run scratch space.
func WithTempRoot(dir string) Option {
	return func(r *Runner) { r.tempRoot = dir }
}

// NewRunner builds a Runner from configuration. Collaborators not supplied
// through options are constructed from cfg; the speech-to-text backend is
// created lazily so caption-only runs never need its credentials.
func NewRunner(cfg *config.Config, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "init", "Configuration unavailable", nil)
	}
	r := &Runner{
		cfg:       cfg,
		logger:    logging.NewNop(),
		checkDeps: preflight.CheckSystemDeps,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.captions == nil && cfg.Captions.Enabled {
		client, err := captions.New(captions.Config{
			Languages: cfg.Captions.Languages,
			Timeout:   time.Duration(cfg.Captions.TimeoutSeconds) * time.Second,
			Proxy:     cfg.Captions.Proxy,
			Logger:    r.logger,
		})
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "pipeline", "init captions", "Invalid captions settings", err)
		}
		r.captions = client
	}
	if r.fetcher == nil {
		r.fetcher = download.NewFetcher(cfg.Download, download.WithLogger(r.logger))
	}
	if r.splitter == nil {
		r.splitter = chunk.NewSplitter(cfg.FFmpegBinary(), cfg.FFprobeBinary(), "", chunk.WithLogger(r.logger))
	}
	return r, nil
}

// Run executes the request and returns where the transcript was written.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	var result Result
	url := strings.TrimSpace(req.URL)
	if url == "" {
		return result, services.Wrap(services.ErrValidation, "pipeline", "run", "URL is required", nil)
	}

	ctx = services.WithRequestID(ctx, r.newID())
	logger := logging.NewComponentLogger(logging.WithContext(ctx, r.logger), "pipeline")
	started := time.Now()

	outputPath, err := r.resolveOutputPath(req.Output)
	if err != nil {
		return result, err
	}
	if check := preflight.CheckDirectoryAccess("Output directory", filepath.Dir(outputPath)); !check.Passed {
		return result, services.Wrap(services.ErrValidation, "pipeline", "output dir",
			fmt.Sprintf("Output directory unusable: %s", check.Detail), nil)
	}

	tr, decision := r.tryCaptions(ctx, logger, url, req.ForceTranscribe)
	result.CaptionsDecision = decision.Result
	result.CaptionsDetail = decision.Detail

	var audio download.Audio
	var workDir string
	if tr != nil {
		result.Source = SourceCaptions
		if strings.TrimSpace(req.Output) == "" {
			decision.Title = r.lookupTitle(ctx, logger, url)
		}
	} else {
		result.Source = SourceTranscription
		workDir, err = os.MkdirTemp(r.tempRoot, "ytt-")
		if err != nil {
			return result, services.Wrap(services.ErrTransient, "pipeline", "work dir", "Failed to create scratch directory", err)
		}
		defer os.RemoveAll(workDir)

		var failed int
		audio, tr, failed, err = r.transcribeAudio(ctx, logger, url, workDir)
		if err != nil {
			logging.ErrorWithContext(logger, "audio transcription failed", "transcription_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, services.Hint(err)),
			)
			return result, err
		}
		result.FailedChunks = failed
	}

	if strings.TrimSpace(req.Output) == "" {
		outputPath = filepath.Join(filepath.Dir(outputPath), deriveFileName(firstNonEmpty(audio.Title, decision.Title), firstNonEmpty(audio.VideoID, decision.VideoID)))
	}

	writeCtx := services.WithStep(ctx, "write")
	text := transcript.Format(tr.Segments, r.cfg.Output.WithTimestamps)
	if err := fileutil.WriteFileLocked(writeCtx, outputPath, []byte(text), 0o644); err != nil {
		return result, services.Wrap(services.ErrTransient, "pipeline", "write transcript", "Failed to write transcript", err)
	}
	result.OutputPath = outputPath
	result.SegmentCount = len(tr.Segments)

	switch {
	case r.cfg.Output.KeepAudio && audio.Path == "":
		logging.WithContext(writeCtx, logger).Info("keep audio decision",
			logging.Args(logging.DecisionAttrs("keep_audio", "skipped", "captions used, no audio downloaded")...)...)
	case r.cfg.Output.KeepAudio:
		kept := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + filepath.Ext(audio.Path)
		if err := fileutil.MoveFile(audio.Path, kept); err != nil {
			return result, services.Wrap(services.ErrTransient, "pipeline", "keep audio", "Failed to keep downloaded audio", err)
		}
		result.AudioPath = kept
	}

	logging.WithContext(writeCtx, logger).Info("transcript written",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.String("output", result.OutputPath),
		logging.String("source", result.Source),
		logging.Int("segments", result.SegmentCount),
		logging.String("language", language.DisplayName(tr.Language)),
		logging.String("audio", result.AudioPath),
		logging.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

type captionsDecision struct {
	Result  string
	Detail  string
	VideoID string
	Title   string
}

// tryCaptions returns a transcript when published captions can be used, or
// nil to signal the audio fallback.
func (r *Runner) tryCaptions(ctx context.Context, logger *slog.Logger, url string, force bool) (*transcript.Transcript, captionsDecision) {
	logger = logging.WithContext(services.WithStep(ctx, "captions"), logger)
	var decision captionsDecision
	switch {
	case force:
		decision = captionsDecision{Result: "skipped", Detail: "transcription forced"}
	case !r.cfg.Captions.Enabled || r.captions == nil:
		decision = captionsDecision{Result: "skipped", Detail: "captions disabled in config"}
	default:
		outcome := r.captions.Fetch(ctx, url)
		decision = captionsDecision{Detail: outcome.Detail(), VideoID: outcome.VideoID}
		if outcome.Available {
			decision.Result = "used"
			logger.Info("captions decision", logging.Args(logging.DecisionAttrs("captions", decision.Result, decision.Detail)...)...)
			tr := outcome.Transcript
			return &tr, decision
		}
		decision.Result = "unavailable"
	}
	logger.Info("captions decision", logging.Args(logging.DecisionAttrs("captions", decision.Result, decision.Detail)...)...)
	return nil, decision
}

// lookupTitle fetches the video title for naming a captions transcript. A
// failed lookup falls back to the video ID.
func (r *Runner) lookupTitle(ctx context.Context, logger *slog.Logger, url string) string {
	if r.fetcher == nil {
		return ""
	}
	metaCtx := services.WithStep(ctx, "metadata")
	meta, err := r.fetcher.Metadata(metaCtx, url)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(metaCtx, logger), "title lookup failed", "title_lookup_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, services.Hint(err)),
			logging.String(logging.FieldImpact, "transcript named after the video id"),
		)
		return ""
	}
	return meta.Title
}

func (r *Runner) transcribeAudio(ctx context.Context, logger *slog.Logger, url, workDir string) (download.Audio, *transcript.Transcript, int, error) {
	if missing := deps.MissingRequired(r.checkDeps(r.cfg)); len(missing) > 0 {
		return download.Audio{}, nil, 0, services.Wrap(services.ErrExternalTool, "pipeline", "dependencies",
			fmt.Sprintf("Missing required tools: %s", deps.Names(missing)), nil)
	}
	transcriber := r.transcriber
	if transcriber == nil {
		backend, err := stt.New(r.cfg, r.logger)
		if err != nil {
			return download.Audio{}, nil, 0, err
		}
		transcriber = backend
	}

	downloadCtx := services.WithStep(ctx, "download")
	audio, err := r.fetcher.Fetch(downloadCtx, url, workDir)
	if err != nil {
		return download.Audio{}, nil, 0, err
	}

	transcribeCtx := services.WithStep(ctx, "transcribe")
	stepLogger := logging.WithContext(transcribeCtx, logger)
	if !r.cfg.Transcription.Chunked {
		stepLogger.Info("transcribing audio in a single pass", logging.String("backend", r.cfg.Transcription.Backend))
		tr, err := transcriber.Transcribe(transcribeCtx, audio.Path)
		if err != nil {
			return audio, nil, 0, err
		}
		return audio, &tr, 0, nil
	}

	chunks, err := r.splitter.Split(transcribeCtx, audio.Path, r.cfg.Transcription.ChunkSeconds)
	if err != nil {
		return audio, nil, 0, err
	}
	stepLogger.Info("transcribing audio chunks",
		logging.String("backend", r.cfg.Transcription.Backend),
		logging.Int("chunks", len(chunks)),
		logging.Int("max_workers", r.cfg.Transcription.MaxWorkers),
	)
	merged, err := stt.TranscribeChunks(transcribeCtx, chunks, transcriber, r.cfg.Transcription.MaxWorkers, stepLogger)
	if err != nil {
		return audio, nil, merged.FailedChunks, err
	}
	return audio, &merged.Transcript, merged.FailedChunks, nil
}

// resolveOutputPath returns the transcript path. A bare file name lands in
// the output directory; anything with a directory component is resolved on
// its own. Without an explicit name the file name is a placeholder replaced
// once the title is known.
func (r *Runner) resolveOutputPath(explicit string) (string, error) {
	explicit = strings.TrimSpace(explicit)
	if explicit != "" && (filepath.Base(explicit) != explicit || strings.HasPrefix(explicit, "~")) {
		expanded, err := config.ExpandPath(explicit)
		if err != nil {
			return "", services.Wrap(services.ErrValidation, "pipeline", "output path", "Invalid output path", err)
		}
		return expanded, nil
	}
	dir, err := r.cfg.OutputDir()
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "pipeline", "output dir", "Cannot determine output directory", err)
	}
	name := explicit
	if name == "" {
		name = defaultFileName
	}
	return filepath.Join(dir, name), nil
}

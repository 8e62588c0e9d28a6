package download

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"ytt/internal/config"
	"ytt/internal/logging"
	"ytt/internal/services"
)

// Audio is a downloaded audio file plus the metadata yt-dlp reported for it.
type Audio struct {
	Path            string
	Title           string
	VideoID         string
	DurationSeconds float64
}

type outputRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Fetcher downloads the best available audio for a URL with yt-dlp.
type Fetcher struct {
	binary       string
	audioFormat  string
	audioQuality string
	logger       *slog.Logger
	run          outputRunner
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithCommandRunner replaces yt-dlp execution (for testing). The runner
// returns the command's stdout.
func WithCommandRunner(run func(ctx context.Context, name string, args ...string) ([]byte, error)) Option {
	return func(f *Fetcher) {
		if run != nil {
			f.run = run
		}
	}
}

// NewFetcher constructs a Fetcher from download settings.
func NewFetcher(cfg config.Download, opts ...Option) *Fetcher {
	f := &Fetcher{
		binary:       strings.TrimSpace(cfg.Binary),
		audioFormat:  strings.TrimSpace(cfg.AudioFormat),
		audioQuality: strings.TrimSpace(cfg.AudioQuality),
		logger:       logging.NewNop(),
		run:          defaultOutputRunner,
	}
	if f.binary == "" {
		f.binary = "yt-dlp"
	}
	if f.audioFormat == "" {
		f.audioFormat = "mp3"
	}
	if f.audioQuality == "" {
		f.audioQuality = "192"
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = logging.NewComponentLogger(f.logger, "download")
	return f
}

type infoPayload struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Duration           float64 `json:"duration"`
	Filename           string  `json:"_filename"`
	RequestedDownloads []struct {
		Filepath string `json:"filepath"`
	} `json:"requested_downloads"`
}

// Fetch downloads audio for url into workDir and returns the resulting file.
// It fails when yt-dlp fails or when no audio file exists afterwards.
func (f *Fetcher) Fetch(ctx context.Context, url, workDir string) (Audio, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Audio{}, services.Wrap(services.ErrValidation, "download", "fetch", "URL is required", nil)
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return Audio{}, services.Wrap(services.ErrTransient, "download", "work dir", "Failed to create download directory", err)
	}

	f.logger.Info("downloading audio", logging.String("url", url), logging.String("format", f.audioFormat))

	output, err := f.run(ctx, f.binary, f.buildArgs(url, workDir)...)
	if err != nil {
		return Audio{}, services.Wrap(services.ErrExternalTool, "download", "yt-dlp", "Audio download failed", err)
	}

	var info infoPayload
	if err := json.Unmarshal(lastJSONLine(output), &info); err != nil {
		return Audio{}, services.Wrap(services.ErrExternalTool, "download", "parse info", "Unreadable yt-dlp metadata", err)
	}

	path := f.resolveAudioPath(info, workDir)
	if path == "" {
		return Audio{}, services.Wrap(services.ErrNotFound, "download", "locate audio", "Audio file missing after download", nil)
	}

	audio := Audio{
		Path:            path,
		Title:           strings.TrimSpace(info.Title),
		VideoID:         strings.TrimSpace(info.ID),
		DurationSeconds: info.Duration,
	}
	f.logger.Info("audio downloaded",
		logging.String("path", audio.Path),
		logging.String("title", audio.Title),
		logging.String("video_id", audio.VideoID),
	)
	return audio, nil
}

// Metadata asks yt-dlp for the video's title, ID and duration without
// downloading anything. Path is always empty.
func (f *Fetcher) Metadata(ctx context.Context, url string) (Audio, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Audio{}, services.Wrap(services.ErrValidation, "download", "metadata", "URL is required", nil)
	}
	output, err := f.run(ctx, f.binary, "--no-playlist", "--quiet", "--no-warnings", "--skip-download", "--dump-single-json", "--", url)
	if err != nil {
		return Audio{}, services.Wrap(services.ErrExternalTool, "download", "yt-dlp", "Metadata lookup failed", err)
	}
	var info infoPayload
	if err := json.Unmarshal(lastJSONLine(output), &info); err != nil {
		return Audio{}, services.Wrap(services.ErrExternalTool, "download", "parse info", "Unreadable yt-dlp metadata", err)
	}
	return Audio{
		Title:           strings.TrimSpace(info.Title),
		VideoID:         strings.TrimSpace(info.ID),
		DurationSeconds: info.Duration,
	}, nil
}

func (f *Fetcher) buildArgs(url, workDir string) []string {
	return []string{
		"--no-playlist",
		"--no-progress",
		"--quiet",
		"--no-simulate",
		"--dump-single-json",
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", f.audioFormat,
		"--audio-quality", f.audioQuality,
		"-o", filepath.Join(workDir, "%(id)s.%(ext)s"),
		"--",
		url,
	}
}

// resolveAudioPath prefers the post-processed path yt-dlp reports and falls
// back to <id>.<format> in the work dir.
func (f *Fetcher) resolveAudioPath(info infoPayload, workDir string) string {
	candidates := make([]string, 0, len(info.RequestedDownloads)+2)
	for _, req := range info.RequestedDownloads {
		candidates = append(candidates, req.Filepath)
	}
	if info.ID != "" {
		candidates = append(candidates, filepath.Join(workDir, info.ID+"."+f.audioFormat))
	}
	if info.Filename != "" {
		ext := filepath.Ext(info.Filename)
		candidates = append(candidates, strings.TrimSuffix(info.Filename, ext)+"."+f.audioFormat)
	}
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		if stat, err := os.Stat(candidate); err == nil && !stat.IsDir() && stat.Size() > 0 {
			return candidate
		}
	}
	return ""
}

// lastJSONLine returns the last non-empty stdout line, where yt-dlp writes the
// info dump even when warnings precede it.
func lastJSONLine(output []byte) []byte {
	lines := bytes.Split(bytes.TrimSpace(output), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		line := bytes.TrimSpace(lines[i])
		if len(line) > 0 && line[0] == '{' {
			return line
		}
	}
	return bytes.TrimSpace(output)
}

func defaultOutputRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return output, nil
}

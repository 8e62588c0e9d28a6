package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"ytt/internal/language"
	"ytt/internal/logging"
	"ytt/internal/services"
	"ytt/internal/transcript"
)

const (
	defaultModel   = goopenai.Whisper1
	defaultTimeout = 10 * time.Minute
)

// Config describes the OpenAI transcription settings.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Language   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Transcriber sends audio files to the transcription endpoint.
type Transcriber struct {
	client   *goopenai.Client
	model    string
	language string
	logger   *slog.Logger
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

// New creates a Transcriber from the supplied configuration.
func New(cfg Config, opts ...Option) (*Transcriber, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "openai", "init", "OpenAI API key is required", nil)
	}
	clientCfg := goopenai.DefaultConfig(apiKey)
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		clientCfg.BaseURL = strings.TrimRight(base, "/")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	clientCfg.HTTPClient = httpClient

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	t := &Transcriber{
		client:   goopenai.NewClientWithConfig(clientCfg),
		model:    model,
		language: language.ToISO2(cfg.Language),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = logging.NewComponentLogger(t.logger, "openai")
	return t, nil
}

// Transcribe uploads audioPath and converts the verbose response into a
// transcript.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath string) (transcript.Transcript, error) {
	if strings.TrimSpace(audioPath) == "" {
		return transcript.Transcript{}, services.Wrap(services.ErrValidation, "openai", "transcribe", "Audio path required", nil)
	}
	t.logger.Debug("openai transcription starting",
		logging.String("audio", audioPath),
		logging.String("model", t.model),
	)

	resp, err := t.client.CreateTranscription(ctx, goopenai.AudioRequest{
		Model:    t.model,
		FilePath: audioPath,
		Language: t.language,
		Format:   goopenai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return transcript.Transcript{}, services.Wrap(services.ErrExternalTool, "openai", "transcribe", describe(err), err)
	}

	segments := make([]transcript.Segment, 0, len(resp.Segments))
	for _, seg := range resp.Segments {
		segments = append(segments, transcript.Segment{Start: seg.Start, End: seg.End, Text: seg.Text})
	}
	lang := language.ToISO2(resp.Language)
	if lang == "" {
		lang = t.language
	}
	if len(segments) == 0 && strings.TrimSpace(resp.Text) != "" {
		segments = append(segments, transcript.Segment{Start: 0, End: resp.Duration, Text: resp.Text})
	}
	result := transcript.New(segments, lang)
	if text := strings.TrimSpace(resp.Text); text != "" {
		result.Text = text
	}
	return result, nil
}

func describe(err error) string {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("Transcription request rejected (HTTP %d)", apiErr.HTTPStatusCode)
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Sprintf("Transcription request failed (HTTP %d)", reqErr.HTTPStatusCode)
	}
	return "Transcription request failed"
}

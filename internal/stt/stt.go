package stt

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ytt/internal/config"
	"ytt/internal/services"
	"ytt/internal/stt/openai"
	"ytt/internal/stt/whisperx"
	"ytt/internal/transcript"
)

// Transcriber converts one audio file into a transcript with segment timings
// relative to the start of that file.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (transcript.Transcript, error)
}

// TranscriberFunc adapts a function to the Transcriber interface.
type TranscriberFunc func(ctx context.Context, audioPath string) (transcript.Transcript, error)

// Transcribe calls f.
func (f TranscriberFunc) Transcribe(ctx context.Context, audioPath string) (transcript.Transcript, error) {
	return f(ctx, audioPath)
}

// New returns the backend named by cfg.Transcription.Backend.
func New(cfg *config.Config, logger *slog.Logger) (Transcriber, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "stt", "select backend", "Configuration unavailable", nil)
	}
	switch cfg.Transcription.Backend {
	case config.BackendWhisperX:
		return whisperx.New(whisperx.Config{
			Binary:      cfg.UVXBinary(),
			Model:       cfg.WhisperX.Model,
			CUDAEnabled: cfg.WhisperX.CUDAEnabled,
			VADMethod:   cfg.WhisperX.VADMethod,
			HFToken:     cfg.WhisperX.HuggingFaceToken,
			Language:    cfg.Transcription.Language,
		}, whisperx.WithLogger(logger)), nil
	case config.BackendOpenAI:
		client, err := openai.New(openai.Config{
			APIKey:   cfg.OpenAI.APIKey,
			BaseURL:  cfg.OpenAI.BaseURL,
			Model:    cfg.OpenAI.Model,
			Language: cfg.Transcription.Language,
			Timeout:  time.Duration(cfg.OpenAI.TimeoutSeconds) * time.Second,
		}, openai.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, services.Wrap(
			services.ErrConfiguration,
			"stt",
			"select backend",
			fmt.Sprintf("Unknown transcription backend %q", cfg.Transcription.Backend),
			nil,
		)
	}
}

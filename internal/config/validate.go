package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDownload(); err != nil {
		return err
	}
	if err := c.validateCaptions(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateWhisperX(); err != nil {
		return err
	}
	if err := c.validateOpenAI(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDownload() error {
	if strings.TrimSpace(c.Download.Binary) == "" {
		return errors.New("download.binary must be set")
	}
	if strings.TrimSpace(c.Download.AudioFormat) == "" {
		return errors.New("download.audio_format must be set")
	}
	return nil
}

func (c *Config) validateCaptions() error {
	if c.Captions.TimeoutSeconds <= 0 {
		return errors.New("captions.timeout_seconds must be positive")
	}
	if c.Captions.Proxy != "" {
		parsed, err := url.Parse(c.Captions.Proxy)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("captions.proxy must be an absolute URL, got %q", c.Captions.Proxy)
		}
	}
	return nil
}

func (c *Config) validateTranscription() error {
	switch c.Transcription.Backend {
	case BackendWhisperX, BackendOpenAI:
	default:
		return fmt.Errorf("transcription.backend must be %q or %q, got %q", BackendWhisperX, BackendOpenAI, c.Transcription.Backend)
	}
	if c.Transcription.ChunkSeconds <= 0 {
		return errors.New("transcription.chunk_seconds must be positive")
	}
	if c.Transcription.MaxWorkers <= 0 {
		return errors.New("transcription.max_workers must be positive")
	}
	return nil
}

func (c *Config) validateWhisperX() error {
	switch c.WhisperX.VADMethod {
	case whisperXVADMethodSilero:
	case whisperXVADMethodPyannote:
		if c.Transcription.Backend == BackendWhisperX && c.WhisperX.HuggingFaceToken == "" {
			return fmt.Errorf("whisperx.hf_token is required when vad_method is pyannote. Set %s or edit the config file", huggingFaceTokenEnv)
		}
	default:
		return fmt.Errorf("whisperx.vad_method must be %q or %q, got %q", whisperXVADMethodSilero, whisperXVADMethodPyannote, c.WhisperX.VADMethod)
	}
	return nil
}

func (c *Config) validateOpenAI() error {
	if c.Transcription.Backend != BackendOpenAI {
		return nil
	}
	if c.OpenAI.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("openai.api_key is required for the openai backend. Set %s env var or edit %s (create with 'ytt config init')", openAIAPIKeyEnv, defaultPath)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
}

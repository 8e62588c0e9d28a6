package config

import (
	"fmt"
	"os"
	"strings"

	"ytt/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	c.normalizeDownload()
	c.normalizeCaptions()
	c.normalizeTranscription()
	c.normalizeWhisperX()
	c.normalizeOpenAI()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeOutput() error {
	c.Output.Dir = strings.TrimSpace(c.Output.Dir)
	if c.Output.Dir == "" {
		if value, ok := os.LookupEnv(outputDirEnv); ok {
			c.Output.Dir = strings.TrimSpace(value)
		}
	}
	var err error
	if c.Output.Dir, err = expandPath(c.Output.Dir); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDownload() {
	c.Download.Binary = strings.TrimSpace(c.Download.Binary)
	if c.Download.Binary == "" {
		c.Download.Binary = defaultDownloadBinary
	}
	c.Download.AudioFormat = strings.ToLower(strings.TrimSpace(c.Download.AudioFormat))
	if c.Download.AudioFormat == "" {
		c.Download.AudioFormat = defaultAudioFormat
	}
	c.Download.AudioQuality = strings.TrimSpace(c.Download.AudioQuality)
	if c.Download.AudioQuality == "" {
		c.Download.AudioQuality = defaultAudioQuality
	}
}

func (c *Config) normalizeCaptions() {
	c.Captions.Languages = normalizeLanguages(c.Captions.Languages)
	c.Captions.Proxy = strings.TrimSpace(c.Captions.Proxy)
}

func normalizeLanguages(values []string) []string {
	langs := language.NormalizeList(values)
	if len(langs) == 0 {
		langs = []string{defaultLanguage}
	}
	return langs
}

func (c *Config) normalizeTranscription() {
	c.Transcription.Backend = strings.ToLower(strings.TrimSpace(c.Transcription.Backend))
	if c.Transcription.Backend == "" {
		c.Transcription.Backend = defaultBackend
	}
	c.Transcription.Language = strings.ToLower(strings.TrimSpace(c.Transcription.Language))
	if iso := language.ToISO2(c.Transcription.Language); iso != "" {
		c.Transcription.Language = iso
	}
}

func (c *Config) normalizeWhisperX() {
	c.WhisperX.Model = strings.TrimSpace(c.WhisperX.Model)
	if c.WhisperX.Model == "" {
		c.WhisperX.Model = defaultWhisperXModel
	}
	c.WhisperX.VADMethod = strings.ToLower(strings.TrimSpace(c.WhisperX.VADMethod))
	if c.WhisperX.VADMethod == "" {
		c.WhisperX.VADMethod = defaultWhisperXVADMethod
	}
	c.WhisperX.HuggingFaceToken = strings.TrimSpace(c.WhisperX.HuggingFaceToken)
	if c.WhisperX.HuggingFaceToken == "" {
		if value, ok := os.LookupEnv(huggingFaceTokenEnv); ok {
			c.WhisperX.HuggingFaceToken = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv(huggingFaceTokenEnvShort); ok {
			c.WhisperX.HuggingFaceToken = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeOpenAI() {
	c.OpenAI.APIKey = strings.TrimSpace(c.OpenAI.APIKey)
	if c.OpenAI.APIKey == "" {
		if value, ok := os.LookupEnv(openAIAPIKeyEnv); ok {
			c.OpenAI.APIKey = strings.TrimSpace(value)
		}
	}
	c.OpenAI.BaseURL = strings.TrimSpace(c.OpenAI.BaseURL)
	if c.OpenAI.BaseURL == "" {
		if value, ok := os.LookupEnv(openAIBaseURLEnv); ok {
			c.OpenAI.BaseURL = strings.TrimSpace(value)
		}
	}
	c.OpenAI.Model = strings.TrimSpace(c.OpenAI.Model)
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = defaultOpenAIModel
	}
	if c.OpenAI.TimeoutSeconds <= 0 {
		c.OpenAI.TimeoutSeconds = defaultOpenAITimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = defaultLogFormat
	case "json":
	default:
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

package config

const (
	defaultConfigPath          = "~/.config/ytt/config.toml"
	projectConfigName          = "ytt.toml"
	defaultDownloadBinary      = "yt-dlp"
	defaultAudioFormat         = "mp3"
	defaultAudioQuality        = "192"
	defaultCaptionsTimeout     = 30
	defaultBackend             = BackendWhisperX
	defaultChunkSeconds        = 300
	defaultMaxWorkers          = 4
	defaultLanguage            = "en"
	defaultWhisperXModel       = "turbo"
	defaultWhisperXVADMethod   = "silero"
	defaultOpenAIModel         = "whisper-1"
	defaultOpenAITimeout       = 600
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	outputDirEnv               = "YTT_OUTPUT_DIR"
	openAIAPIKeyEnv            = "OPENAI_API_KEY"
	openAIBaseURLEnv           = "OPENAI_BASE_URL"
	huggingFaceTokenEnv        = "HUGGING_FACE_HUB_TOKEN"
	huggingFaceTokenEnvShort   = "HF_TOKEN"
	whisperXVADMethodPyannote  = "pyannote"
	whisperXVADMethodSilero    = "silero"
	defaultCaptionsEnabled     = true
	defaultTranscriptionChunks = true
)

// Speech-to-text backend names accepted by transcription.backend.
const (
	BackendWhisperX = "whisperx"
	BackendOpenAI   = "openai"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Download: Download{
			Binary:       defaultDownloadBinary,
			AudioFormat:  defaultAudioFormat,
			AudioQuality: defaultAudioQuality,
		},
		Captions: Captions{
			Enabled:        defaultCaptionsEnabled,
			Languages:      []string{defaultLanguage},
			TimeoutSeconds: defaultCaptionsTimeout,
		},
		Transcription: Transcription{
			Backend:      defaultBackend,
			ChunkSeconds: defaultChunkSeconds,
			MaxWorkers:   defaultMaxWorkers,
			Chunked:      defaultTranscriptionChunks,
			Language:     defaultLanguage,
		},
		WhisperX: WhisperX{
			Model:     defaultWhisperXModel,
			VADMethod: defaultWhisperXVADMethod,
		},
		OpenAI: OpenAI{
			Model:          defaultOpenAIModel,
			TimeoutSeconds: defaultOpenAITimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ytt/internal/config"
	"ytt/internal/pipeline"
)

type transcribeOptions struct {
	output          string
	outputDir       string
	forceTranscribe bool
	noChunk         bool
	chunkSeconds    int
	maxWorkers      int
	backend         string
	jsonOutput      bool
}

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var opts transcribeOptions

	cmd := &cobra.Command{
		Use:   "transcribe <url>",
		Short: "Transcribe a video URL to a text file",
		Long: "Fetch published captions for the video when available; otherwise download the\n" +
			"audio and transcribe it with the configured speech-to-text backend.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err := applyTranscribeFlags(cmd, base, opts)
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			runner, err := pipeline.NewRunner(cfg, pipeline.WithLogger(logger))
			if err != nil {
				return err
			}
			result, err := runner.Run(cmd.Context(), pipeline.Request{
				URL:             args[0],
				Output:          opts.output,
				ForceTranscribe: opts.forceTranscribe,
			})
			if err != nil {
				return err
			}

			if opts.jsonOutput {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Transcript written to %s\n", result.OutputPath)
			fmt.Fprintf(out, "Source: %s (%d segments)\n", result.Source, result.SegmentCount)
			if result.FailedChunks > 0 {
				fmt.Fprintf(out, "Warning: %d audio chunk(s) failed and were skipped\n", result.FailedChunks)
			}
			if result.AudioPath != "" {
				fmt.Fprintf(out, "Audio kept at %s\n", result.AudioPath)
			}
			return nil
		},
	}

	bindTranscribeFlags(cmd, &opts)
	return cmd
}

func bindTranscribeFlags(cmd *cobra.Command, opts *transcribeOptions) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "Transcript file name or path (default: derived from the video title)")
	flags.StringVar(&opts.outputDir, "output-dir", "", "Directory for transcripts (default: config output.dir or ~/Downloads)")
	flags.Bool("keep-audio", false, "Keep the downloaded audio next to the transcript")
	flags.Bool("no-keep-audio", false, "Discard the downloaded audio (overrides --keep-audio)")
	flags.Bool("with-timestamps", false, "Write one [HH:MM:SS -> HH:MM:SS] line per segment")
	flags.Bool("no-timestamps", false, "Write plain paragraph text (overrides --with-timestamps)")
	flags.BoolVar(&opts.forceTranscribe, "force-transcribe", false, "Skip published captions and always transcribe the audio")
	flags.BoolVar(&opts.noChunk, "no-chunk", false, "Transcribe the audio in a single pass instead of parallel chunks")
	flags.IntVar(&opts.chunkSeconds, "chunk-duration", 0, "Chunk length in seconds (default: config transcription.chunk_seconds)")
	flags.IntVar(&opts.maxWorkers, "max-workers", 0, "Parallel chunk transcriptions (default: config transcription.max_workers)")
	flags.StringVar(&opts.backend, "backend", "", "Speech-to-text backend: whisperx or openai")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Print the run summary as JSON")
}

// applyTranscribeFlags returns a copy of base with command-line overrides
// applied and validated. When a flag and its negation are both given, the
// negation wins.
func applyTranscribeFlags(cmd *cobra.Command, base *config.Config, opts transcribeOptions) (*config.Config, error) {
	cfg := *base
	flags := cmd.Flags()

	cfg.Output.KeepAudio = resolveToggle(cmd, "keep-audio", "no-keep-audio", cfg.Output.KeepAudio)
	cfg.Output.WithTimestamps = resolveToggle(cmd, "with-timestamps", "no-timestamps", cfg.Output.WithTimestamps)

	if dir := strings.TrimSpace(opts.outputDir); dir != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return nil, fmt.Errorf("resolve output dir: %w", err)
		}
		cfg.Output.Dir = expanded
	}
	if opts.noChunk {
		cfg.Transcription.Chunked = false
	}
	if flags.Changed("chunk-duration") {
		cfg.Transcription.ChunkSeconds = opts.chunkSeconds
	}
	if flags.Changed("max-workers") {
		cfg.Transcription.MaxWorkers = opts.maxWorkers
	}
	if backend := strings.ToLower(strings.TrimSpace(opts.backend)); backend != "" {
		cfg.Transcription.Backend = backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolveToggle(cmd *cobra.Command, on, off string, current bool) bool {
	flags := cmd.Flags()
	if flags.Changed(off) {
		if value, err := flags.GetBool(off); err == nil && value {
			return false
		}
	}
	if flags.Changed(on) {
		if value, err := flags.GetBool(on); err == nil {
			return value
		}
	}
	return current
}

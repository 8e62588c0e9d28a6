package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"ytt/internal/config"
)

func parseTranscribeFlags(t *testing.T, args ...string) (*cobra.Command, transcribeOptions) {
	t.Helper()
	cmd := &cobra.Command{Use: "transcribe"}
	var opts transcribeOptions
	bindTranscribeFlags(cmd, &opts)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd, opts
}

func TestApplyTranscribeFlagsOverrides(t *testing.T) {
	base := config.Default()
	dir := t.TempDir()
	cmd, opts := parseTranscribeFlags(t,
		"--keep-audio", "--with-timestamps", "--no-chunk",
		"--chunk-duration", "120", "--max-workers", "2",
		"--backend", "OpenAI", "--output-dir", dir,
	)
	base.OpenAI.APIKey = "sk-test"

	cfg, err := applyTranscribeFlags(cmd, &base, opts)
	if err != nil {
		t.Fatalf("apply flags: %v", err)
	}
	if !cfg.Output.KeepAudio || !cfg.Output.WithTimestamps {
		t.Fatalf("expected toggles enabled: %+v", cfg.Output)
	}
	if cfg.Transcription.Chunked || cfg.Transcription.ChunkSeconds != 120 || cfg.Transcription.MaxWorkers != 2 {
		t.Fatalf("unexpected transcription settings: %+v", cfg.Transcription)
	}
	if cfg.Transcription.Backend != config.BackendOpenAI {
		t.Fatalf("expected openai backend, got %q", cfg.Transcription.Backend)
	}
	if cfg.Output.Dir != dir {
		t.Fatalf("expected output dir %q, got %q", dir, cfg.Output.Dir)
	}
	if base.Output.KeepAudio || base.Transcription.Backend != config.BackendWhisperX {
		t.Fatal("base config must not be mutated")
	}
}

func TestApplyTranscribeFlagsNegationWins(t *testing.T) {
	base := config.Default()
	base.Output.KeepAudio = true
	base.Output.WithTimestamps = true
	cmd, opts := parseTranscribeFlags(t, "--keep-audio", "--no-keep-audio", "--no-timestamps", "--with-timestamps")

	cfg, err := applyTranscribeFlags(cmd, &base, opts)
	if err != nil {
		t.Fatalf("apply flags: %v", err)
	}
	if cfg.Output.KeepAudio || cfg.Output.WithTimestamps {
		t.Fatalf("expected negations to win: %+v", cfg.Output)
	}
}

func TestApplyTranscribeFlagsDefaultsKeepConfig(t *testing.T) {
	base := config.Default()
	base.Output.WithTimestamps = true
	cmd, opts := parseTranscribeFlags(t)

	cfg, err := applyTranscribeFlags(cmd, &base, opts)
	if err != nil {
		t.Fatalf("apply flags: %v", err)
	}
	if !cfg.Output.WithTimestamps || cfg.Output.KeepAudio {
		t.Fatalf("expected config values preserved: %+v", cfg.Output)
	}
	if cfg.Transcription.ChunkSeconds != base.Transcription.ChunkSeconds {
		t.Fatalf("chunk seconds changed without flag: %d", cfg.Transcription.ChunkSeconds)
	}
}

func TestApplyTranscribeFlagsRejectsInvalid(t *testing.T) {
	cases := [][]string{
		{"--chunk-duration", "0"},
		{"--max-workers", "-1"},
		{"--backend", "vosk"},
	}
	for _, args := range cases {
		base := config.Default()
		cmd, opts := parseTranscribeFlags(t, args...)
		if _, err := applyTranscribeFlags(cmd, &base, opts); err == nil {
			t.Fatalf("expected validation error for %v", args)
		}
	}
}

func TestTranscribeFailsFastWithoutTools(t *testing.T) {
	env := setupCLITestEnv(t)
	withFakeBinaries(t)

	_, _, err := runCLI(t, []string{"transcribe", "https://example.com/not-a-video"}, env.configPath)
	if err == nil {
		t.Fatal("expected missing tools error")
	}
	requireContains(t, err.Error(), "Missing required tools")
	matches, _ := filepath.Glob(filepath.Join(env.outputDir, "*"))
	if len(matches) != 0 {
		t.Fatalf("expected no output files, found %v", matches)
	}
}

func TestTranscribeRequiresURL(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"transcribe"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "arg") {
		t.Fatalf("expected argument error, got %v", err)
	}
}

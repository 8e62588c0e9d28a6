package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDepsCommandReady(t *testing.T) {
	env := setupCLITestEnv(t)
	withFakeBinaries(t, "yt-dlp", "ffmpeg", "ffprobe", "uvx")

	out, _, err := runCLI(t, []string{"deps"}, env.configPath)
	if err != nil {
		t.Fatalf("deps: %v\n%s", err, out)
	}
	for _, fragment := range []string{"Dependency", "yt-dlp", "ffprobe", "uvx", "ready", "Output directory:", "[OK]"} {
		requireContains(t, out, fragment)
	}
	if strings.Contains(out, "missing") {
		t.Fatalf("expected no missing dependencies:\n%s", out)
	}
}

func TestDepsCommandMissingBinaries(t *testing.T) {
	env := setupCLITestEnv(t)
	withFakeBinaries(t)

	out, _, err := runCLI(t, []string{"deps"}, env.configPath)
	if err == nil {
		t.Fatal("expected error when required binaries are missing")
	}
	requireContains(t, err.Error(), "missing required dependencies")
	requireContains(t, err.Error(), "yt-dlp")
	requireContains(t, out, "missing")
}

func TestDepsCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	withFakeBinaries(t, "yt-dlp", "ffmpeg", "ffprobe", "uvx")

	out, _, err := runCLI(t, []string{"deps", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("deps --json: %v", err)
	}
	var payload struct {
		Binaries []json.RawMessage `json:"binaries"`
		Checks   []json.RawMessage `json:"checks"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if len(payload.Binaries) != 4 || len(payload.Checks) != 1 {
		t.Fatalf("unexpected payload sizes: %d binaries, %d checks", len(payload.Binaries), len(payload.Checks))
	}
}

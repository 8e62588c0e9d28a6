package whisperx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ytt/internal/services"
	"ytt/internal/transcript"
)

func argValue(args []string, flag string) string {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chunk_0001.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTranscribeReadsJSONOutput(t *testing.T) {
	audio := writeAudio(t)
	var captured []string
	var outputDir string
	run := func(_ context.Context, name string, args ...string) error {
		captured = append([]string{name}, args...)
		outputDir = argValue(args, "--output_dir")
		payload := `{"segments":[{"start":0.0,"end":2.5,"text":" Hello there.","words":[]},{"start":2.5,"end":4.0,"text":" General Kenobi."}],"language":"en"}`
		return os.WriteFile(filepath.Join(outputDir, "chunk_0001.json"), []byte(payload), 0o644)
	}
	tr := New(Config{Language: "english"}, WithCommandRunner(run))

	result, err := tr.Transcribe(context.Background(), audio)
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	want := []transcript.Segment{{Start: 0, End: 2.5, Text: " Hello there."}, {Start: 2.5, End: 4, Text: " General Kenobi."}}
	if len(result.Segments) != len(want) {
		t.Fatalf("expected %d segments, got %d", len(want), len(result.Segments))
	}
	for i := range want {
		if result.Segments[i] != want[i] {
			t.Fatalf("segment %d = %+v, want %+v", i, result.Segments[i], want[i])
		}
	}
	if result.Text != "Hello there. General Kenobi." || result.Language != "en" {
		t.Fatalf("unexpected transcript: %+v", result)
	}

	if captured[0] != UVXCommand {
		t.Fatalf("expected uvx, got %q", captured[0])
	}
	if argValue(captured, "--language") != "en" || argValue(captured, "--model") != DefaultModel {
		t.Fatalf("unexpected args: %v", captured)
	}
	if argValue(captured, "--device") != CPUDevice || argValue(captured, "--output_format") != OutputFormat {
		t.Fatalf("expected cpu json run: %v", captured)
	}
	if _, err := os.Stat(outputDir); !os.IsNotExist(err) {
		t.Fatalf("expected scratch dir removed, stat err = %v", err)
	}
}

func TestBuildArgsCUDAAndPyannote(t *testing.T) {
	tr := New(Config{Model: "large-v3", CUDAEnabled: true, VADMethod: VADMethodPyannote, HFToken: "hf_abc"})
	args := tr.buildArgs("/tmp/a.wav", "/tmp/out")
	joined := strings.Join(args, " ")
	for _, fragment := range []string{
		"--index-url " + CUDAIndexURL,
		"--extra-index-url " + PypiIndexURL,
		"whisperx /tmp/a.wav",
		"--model large-v3",
		"--vad_method pyannote",
		"--hf_token hf_abc",
		"--device cuda",
	} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("expected %q in %q", fragment, joined)
		}
	}
	if strings.Contains(joined, "--language") || strings.Contains(joined, "--compute_type") {
		t.Fatalf("unexpected language or compute type: %q", joined)
	}
}

func TestTranscribeFailures(t *testing.T) {
	audio := writeAudio(t)

	failing := New(Config{}, WithCommandRunner(func(context.Context, string, ...string) error {
		return errors.New("exit status 1: CUDA out of memory")
	}))
	if _, err := failing.Transcribe(context.Background(), audio); !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}

	silent := New(Config{}, WithCommandRunner(func(context.Context, string, ...string) error { return nil }))
	if _, err := silent.Transcribe(context.Background(), audio); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}

	malformed := New(Config{}, WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		return os.WriteFile(filepath.Join(argValue(args, "--output_dir"), "chunk_0001.json"), []byte(`{"segments":[{"start":1}]}`), 0o644)
	}))
	_, err := malformed.Transcribe(context.Background(), audio)
	if !errors.Is(err, services.ErrExternalTool) || !errors.Is(err, transcript.ErrMalformedSegment) {
		t.Fatalf("expected malformed segment error, got %v", err)
	}

	if _, err := silent.Transcribe(context.Background(), " "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

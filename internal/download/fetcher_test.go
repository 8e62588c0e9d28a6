package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ytt/internal/config"
	"ytt/internal/services"
)

type fakeYTDLP struct {
	args     []string
	write    bool
	info     string
	err      error
	warnings string
}

func (f *fakeYTDLP) run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.args = append([]string{name}, args...)
	if f.err != nil {
		return nil, f.err
	}
	var template string
	for i, arg := range args {
		if arg == "-o" && i+1 < len(args) {
			template = args[i+1]
		}
	}
	path := strings.ReplaceAll(template, "%(id)s", "abc123")
	path = strings.ReplaceAll(path, "%(ext)s", "mp3")
	if f.write {
		if err := os.WriteFile(path, []byte("ID3"), 0o644); err != nil {
			return nil, err
		}
	}
	info := f.info
	if info == "" {
		info = fmt.Sprintf(`{"id":"abc123","title":" A Talk: About Go ","duration":612.5,"requested_downloads":[{"filepath":%q}]}`, path)
	}
	return []byte(f.warnings + info + "\n"), nil
}

func TestFetchDownloadsAudio(t *testing.T) {
	workDir := filepath.Join(t.TempDir(), "run")
	fake := &fakeYTDLP{write: true, warnings: "WARNING: something noisy\n"}
	fetcher := NewFetcher(config.Default().Download, WithCommandRunner(fake.run))

	audio, err := fetcher.Fetch(context.Background(), "https://www.youtube.com/watch?v=abc123", workDir)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if audio.Path != filepath.Join(workDir, "abc123.mp3") {
		t.Fatalf("unexpected path: %q", audio.Path)
	}
	if audio.Title != "A Talk: About Go" || audio.VideoID != "abc123" || audio.DurationSeconds != 612.5 {
		t.Fatalf("unexpected audio metadata: %+v", audio)
	}

	joined := strings.Join(fake.args, " ")
	for _, fragment := range []string{"yt-dlp ", "-f bestaudio/best", "-x", "--audio-format mp3", "--audio-quality 192", "--dump-single-json", "--no-simulate", "-- https://www.youtube.com/watch?v=abc123"} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("expected %q in args %q", fragment, joined)
		}
	}
}

func TestFetchFallsBackToIDPath(t *testing.T) {
	workDir := t.TempDir()
	fake := &fakeYTDLP{write: true, info: `{"id":"abc123","title":"t"}`}
	fetcher := NewFetcher(config.Download{}, WithCommandRunner(fake.run))

	audio, err := fetcher.Fetch(context.Background(), "https://youtu.be/abc123", workDir)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if audio.Path != filepath.Join(workDir, "abc123.mp3") {
		t.Fatalf("unexpected path: %q", audio.Path)
	}
}

func TestFetchMissingAudioIsFatal(t *testing.T) {
	fake := &fakeYTDLP{write: false}
	fetcher := NewFetcher(config.Default().Download, WithCommandRunner(fake.run))

	_, err := fetcher.Fetch(context.Background(), "https://www.youtube.com/watch?v=abc123", t.TempDir())
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestFetchToolFailure(t *testing.T) {
	fake := &fakeYTDLP{err: errors.New("exit status 1: ERROR: video unavailable")}
	fetcher := NewFetcher(config.Default().Download, WithCommandRunner(fake.run))

	_, err := fetcher.Fetch(context.Background(), "https://www.youtube.com/watch?v=gone", t.TempDir())
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if !strings.Contains(err.Error(), "video unavailable") {
		t.Fatalf("expected tool output in error, got %v", err)
	}
}

func TestFetchUnparsableInfo(t *testing.T) {
	fake := &fakeYTDLP{write: true, info: "not json"}
	fetcher := NewFetcher(config.Default().Download, WithCommandRunner(fake.run))

	_, err := fetcher.Fetch(context.Background(), "https://www.youtube.com/watch?v=abc123", t.TempDir())
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestFetchRequiresURL(t *testing.T) {
	fetcher := NewFetcher(config.Default().Download)
	if _, err := fetcher.Fetch(context.Background(), "  ", t.TempDir()); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMetadataSkipsDownload(t *testing.T) {
	fake := &fakeYTDLP{warnings: "WARNING: something noisy\n"}
	fetcher := NewFetcher(config.Default().Download, WithCommandRunner(fake.run))

	meta, err := fetcher.Metadata(context.Background(), " https://youtu.be/abc123 ")
	if err != nil {
		t.Fatalf("Metadata returned error: %v", err)
	}
	if meta.Title != "A Talk: About Go" || meta.VideoID != "abc123" || meta.Path != "" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	joined := strings.Join(fake.args, " ")
	for _, fragment := range []string{"--skip-download", "--dump-single-json", "-- https://youtu.be/abc123"} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("expected %q in args %q", fragment, joined)
		}
	}
	if strings.Contains(joined, "-x") || strings.Contains(joined, "--no-simulate") {
		t.Fatalf("metadata lookup must not extract audio: %q", joined)
	}
}

func TestMetadataToolFailure(t *testing.T) {
	fake := &fakeYTDLP{err: errors.New("exit status 1: ERROR: private video")}
	fetcher := NewFetcher(config.Default().Download, WithCommandRunner(fake.run))

	if _, err := fetcher.Metadata(context.Background(), "https://youtu.be/abc123"); !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestDownloadsDirFor(t *testing.T) {
	env := map[string]string{
		"HOME":        "/home/alice",
		"USERPROFILE": `C:\Users\alice`,
	}
	getenv := func(key string) string { return env[key] }

	for _, goos := range []string{"linux", "darwin", "freebsd", "openbsd", "netbsd", "dragonfly"} {
		got, err := downloadsDirFor(goos, getenv)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", goos, err)
		}
		if want := filepath.Join("/home/alice", "Downloads"); got != want {
			t.Fatalf("%s: got %q want %q", goos, got, want)
		}
	}

	got, err := downloadsDirFor("windows", getenv)
	if err != nil {
		t.Fatalf("windows: unexpected error %v", err)
	}
	if got != `C:\Users\alice\Downloads` {
		t.Fatalf("windows: got %q", got)
	}

	if _, err := downloadsDirFor("plan9", getenv); !errors.Is(err, ErrUnsupportedPlatform) {
		t.Fatalf("plan9: expected ErrUnsupportedPlatform, got %v", err)
	}
	if _, err := downloadsDirFor("js", getenv); !errors.Is(err, ErrUnsupportedPlatform) {
		t.Fatalf("js: expected ErrUnsupportedPlatform, got %v", err)
	}
}

func TestDownloadsDirForMissingHome(t *testing.T) {
	getenv := func(string) string { return "" }
	if _, err := downloadsDirFor("linux", getenv); err == nil {
		t.Fatal("expected error when HOME is unset")
	}
	if _, err := downloadsDirFor("windows", getenv); err == nil {
		t.Fatal("expected error when USERPROFILE is unset")
	}
}

func TestDownloadsDirEvaluatedPerCall(t *testing.T) {
	t.Setenv("HOME", "/tmp/first")
	t.Setenv("USERPROFILE", `C:\first`)
	first, err := DownloadsDir()
	if err != nil {
		t.Skipf("platform without default downloads dir: %v", err)
	}
	t.Setenv("HOME", "/tmp/second")
	t.Setenv("USERPROFILE", `C:\second`)
	second, err := DownloadsDir()
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first == second {
		t.Fatalf("expected environment change to be observed, both %q", first)
	}
}

package main

import (
	"io"
	"strings"
	"testing"

	"ytt/internal/deps"
)

func TestRenderStatusLine(t *testing.T) {
	plain := renderStatusLine("Output directory", statusOK, "writable", false)
	if plain != "  Output directory:    [OK] writable" {
		t.Fatalf("unexpected plain line %q", plain)
	}
	colored := renderStatusLine("uvx", statusError, "", true)
	if !strings.HasPrefix(colored, ansiRed) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected red line, got %q", colored)
	}
	if !strings.Contains(colored, "[ERROR]") {
		t.Fatalf("expected bare status, got %q", colored)
	}
}

func TestShouldColorizeNonTerminal(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatal("expected no color for non-file writer")
	}
}

func TestDependencyRows(t *testing.T) {
	rows := dependencyRows([]deps.Status{
		{Name: "yt-dlp", Command: "yt-dlp", Available: true, Path: "/usr/bin/yt-dlp"},
		{Name: "uvx", Command: "uvx", Optional: true, Detail: "not found", Description: "Required for WhisperX transcription"},
		{Name: "FFmpeg", Command: "ffmpeg", Detail: "not found"},
	}, false)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][2] != "yes" || rows[0][3] != "ready" || rows[0][4] != "/usr/bin/yt-dlp" {
		t.Fatalf("unexpected ready row %v", rows[0])
	}
	if rows[1][2] != "no" || rows[1][3] != "missing" || !strings.Contains(rows[1][4], "whisperx") {
		t.Fatalf("unexpected optional row %v", rows[1])
	}
	if rows[2][3] != "missing" || rows[2][4] != "not found" {
		t.Fatalf("unexpected missing row %v", rows[2])
	}
}

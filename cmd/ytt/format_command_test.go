package main

import (
	"os"
	"path/filepath"
	"testing"
)

const timestampedInput = "[00:00:00 -> 00:00:02] Hello   there.\n" +
	"some stray line\n" +
	"[00:00:02 -> 00:01:05] General Kenobi.\n"

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestFormatCommandPlainByDefault(t *testing.T) {
	env := setupCLITestEnv(t)
	input := writeInput(t, env.baseDir, "talk.txt", timestampedInput)

	out, _, err := runCLI(t, []string{"format", input}, env.configPath)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	target := filepath.Join(env.baseDir, "talk.formatted.txt")
	requireContains(t, out, target)
	requireContains(t, out, "(2 segments)")
	if got := readOutput(t, target); got != "Hello there. General Kenobi.\n" {
		t.Fatalf("unexpected plain output %q", got)
	}
}

func TestFormatCommandTimestamps(t *testing.T) {
	env := setupCLITestEnv(t)
	input := writeInput(t, env.baseDir, "talk.txt", timestampedInput)
	target := filepath.Join(env.baseDir, "out.txt")

	if _, _, err := runCLI(t, []string{"format", input, "--with-timestamps", "-o", target}, env.configPath); err != nil {
		t.Fatalf("format: %v", err)
	}
	want := "[00:00:00 -> 00:00:02] Hello   there.\n[00:00:02 -> 00:01:05] General Kenobi.\n"
	if got := readOutput(t, target); got != want {
		t.Fatalf("unexpected timestamped output %q", got)
	}

	if _, _, err := runCLI(t, []string{"format", input, "--with-timestamps", "--no-timestamps", "-o", target}, env.configPath); err != nil {
		t.Fatalf("format: %v", err)
	}
	if got := readOutput(t, target); got != "Hello there. General Kenobi.\n" {
		t.Fatalf("negation should win, got %q", got)
	}
}

func TestFormatCommandJSONInput(t *testing.T) {
	env := setupCLITestEnv(t)
	input := writeInput(t, env.baseDir, "segments.json",
		`{"segments":[{"start":3661,"end":3662.9,"text":" late "},{"start":0,"end":1,"text":"early"}],"language":"en"}`)

	if _, _, err := runCLI(t, []string{"format", input, "--with-timestamps"}, env.configPath); err != nil {
		t.Fatalf("format: %v", err)
	}
	want := "[01:01:01 -> 01:01:02] late\n[00:00:00 -> 00:00:01] early\n"
	if got := readOutput(t, filepath.Join(env.baseDir, "segments.formatted.txt")); got != want {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestFormatCommandRejectsBadInput(t *testing.T) {
	env := setupCLITestEnv(t)
	cases := map[string]string{
		"notes.txt":   "no timestamps here\n",
		"broken.json": `[{"start":0,"text":"missing end"}]`,
	}
	for name, content := range cases {
		input := writeInput(t, env.baseDir, name, content)
		if _, _, err := runCLI(t, []string{"format", input}, env.configPath); err == nil {
			t.Fatalf("expected error for %s", name)
		}
	}
	if _, _, err := runCLI(t, []string{"format", filepath.Join(env.baseDir, "missing.txt")}, env.configPath); err == nil {
		t.Fatal("expected error for missing input")
	}
}

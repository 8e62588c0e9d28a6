package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"ytt/internal/fileutil"
	"ytt/internal/services"
	"ytt/internal/transcript"
)

func newFormatCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "format <input>",
		Short: "Re-render an existing transcript with or without timestamps",
		Long: "Read a timestamped transcript (lines of \"[HH:MM:SS -> HH:MM:SS] text\") or a JSON\n" +
			"segment list and write it again in the requested layout.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			input := args[0]
			segments, err := readSegments(input)
			if err != nil {
				return err
			}

			timestamps := resolveToggle(cmd, "with-timestamps", "no-timestamps", cfg.Output.WithTimestamps)
			target := strings.TrimSpace(output)
			if target == "" {
				target = formattedPath(input)
			}
			text := transcript.Format(segments, timestamps)
			if err := fileutil.WriteFileLocked(cmd.Context(), target, []byte(text), 0o644); err != nil {
				return services.Wrap(services.ErrTransient, "format", "write", "Failed to write formatted transcript", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Formatted transcript written to %s (%d segments)\n", target, len(segments))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (default: <input>.formatted.txt)")
	cmd.Flags().Bool("with-timestamps", false, "Write one [HH:MM:SS -> HH:MM:SS] line per segment")
	cmd.Flags().Bool("no-timestamps", false, "Write plain paragraph text (overrides --with-timestamps)")
	return cmd
}

// readSegments loads segments from a JSON segment list or, when the input is
// not JSON, a timestamped text transcript.
func readSegments(path string) ([]transcript.Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "format", "read input", "Cannot read transcript", err)
	}
	trimmed := bytes.TrimSpace(data)
	if json.Valid(trimmed) {
		decoded, err := transcript.DecodeSegments(trimmed)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "format", "decode json", "Malformed segment list", err)
		}
		return decoded.Segments, nil
	}
	segments, err := transcript.ParseTimestamped(bytes.NewReader(data))
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "format", "parse", "Unreadable timestamped transcript", err)
	}
	if len(segments) == 0 {
		return nil, services.Wrap(services.ErrValidation, "format", "parse", "No timestamped lines found in "+filepath.Base(path), nil)
	}
	return segments, nil
}

func formattedPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".formatted.txt"
}

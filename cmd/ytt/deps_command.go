package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ytt/internal/deps"
	"ytt/internal/preflight"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Check external tools and services ytt relies on",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := preflight.CheckSystemDeps(cfg)

			var checks []preflight.Result
			if dir, err := cfg.OutputDir(); err != nil {
				checks = append(checks, preflight.Result{Name: "Output directory", Detail: err.Error()})
			} else {
				checks = preflight.RunAll(cmd.Context(), cfg, dir)
			}

			missing := deps.MissingRequired(statuses)
			if jsonOutput {
				if err := writeJSON(cmd, map[string]any{"binaries": statuses, "checks": checks}); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintln(out, renderTable(
					[]string{"Dependency", "Command", "Required", "Status", "Detail"},
					dependencyRows(statuses, colorize),
				))
				for _, check := range checks {
					kind, message := statusOK, check.Detail
					if !check.Passed {
						kind = statusError
					}
					fmt.Fprintln(out, renderStatusLine(check.Name, kind, message, colorize))
				}
			}

			if len(missing) > 0 {
				return fmt.Errorf("missing required dependencies: %s", deps.Names(missing))
			}
			for _, check := range checks {
				if !check.Passed {
					return fmt.Errorf("%s check failed: %s", strings.ToLower(check.Name), check.Detail)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	return cmd
}

func dependencyRows(statuses []deps.Status, colorize bool) [][]string {
	rows := make([][]string, 0, len(statuses))
	for _, status := range statuses {
		kind := statusOK
		label := "ready"
		detail := status.Path
		switch {
		case !status.Available && status.Optional:
			kind, label, detail = statusWarn, "missing", status.Detail
		case !status.Available:
			kind, label, detail = statusError, "missing", status.Detail
		}
		if status.Description != "" && !status.Available {
			detail = strings.TrimSpace(detail + " (" + strings.ToLower(status.Description) + ")")
		}
		rows = append(rows, []string{
			status.Name,
			status.Command,
			yesNo(!status.Optional),
			colorLabel(label, kind, colorize),
			detail,
		})
	}
	return rows
}

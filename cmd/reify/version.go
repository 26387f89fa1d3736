package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"reify/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show reify build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			full, err := cmd.Flags().GetBool("full")
			if err != nil {
				return fmt.Errorf("failed to get full flag: %w", err)
			}
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), versionInfo(full))
			}
			renderVersionPretty(cmd.OutOrStdout(), versionInfo(full))
			return nil
		},
	}
	cmd.Flags().Bool("full", false, "include commit and build date")
	return cmd
}

func versionInfo(full bool) versionPayload {
	p := versionPayload{Tool: "reify", Version: strings.TrimSpace(version.Version)}
	if p.Version == "" {
		p.Version = "dev"
	}
	if full {
		p.GitCommit = valueOrUnknown(version.GitCommit)
		p.BuildDate = valueOrUnknown(version.BuildDate)
	}
	return p
}

func renderVersionPretty(out io.Writer, p versionPayload) {
	fmt.Fprintf(out, "reify %s\n", version.Colored())
	if p.GitCommit != "" {
		fmt.Fprintf(out, "commit: %s\n", p.GitCommit)
	}
	if p.BuildDate != "" {
		fmt.Fprintf(out, "built:  %s\n", p.BuildDate)
	}
}

func valueOrUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"reify/internal/version"
	"reify/native"
)

type universeKey struct{}

// newRootCmd assembles the command tree. The tracing and profiling cleanup
// installed by the pre-run hook is stored in *cleanup.
func newRootCmd(cleanup *func()) *cobra.Command {
	root := &cobra.Command{
		Use:           "reify",
		Short:         "Inspect and compose reified generic types",
		Long:          `reify resolves type signatures against a class universe and shows their canonical form`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupColor(cmd); err != nil {
				return err
			}
			stopTrace, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			stopProfile, err := setupProfiling(cmd)
			if err != nil {
				stopTrace()
				return err
			}
			*cleanup = func() {
				stopProfile()
				stopTrace()
			}
			return loadUniverse(cmd)
		},
	}

	root.PersistentFlags().String("universe", "", "TOML file declaring extra classes")
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().String("format", "pretty", "output format (pretty|json)")
	root.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|command|detail|debug)")
	root.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	root.PersistentFlags().Int("jobs", runtime.GOMAXPROCS(0), "signatures resolved in parallel")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	root.AddCommand(newInspectCmd())
	root.AddCommand(newWrapCmd())
	root.AddCommand(newUnwrapCmd())
	root.AddCommand(newClassesCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// main runs the CLI and exits with status 1 on error.
func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, errorColor.Sprint("error: ")+err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cleanup := func() {}
	root := newRootCmd(&cleanup)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	cleanup()
	return err
}

// loadUniverse stores the standard universe, or the one read from --universe, in
// the command context.
func loadUniverse(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("universe")
	if err != nil {
		return fmt.Errorf("failed to get universe flag: %w", err)
	}
	ctx := cmd.Context()
	u := native.Std()
	if path != "" {
		if u, err = native.LoadUniverse(ctx, path); err != nil {
			return err
		}
	}
	cmd.SetContext(context.WithValue(ctx, universeKey{}, u))
	return nil
}

func universeFrom(cmd *cobra.Command) *native.Universe {
	if u, ok := cmd.Context().Value(universeKey{}).(*native.Universe); ok {
		return u
	}
	return native.Std()
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

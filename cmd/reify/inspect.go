package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"reify/internal/trace"
	"reify/native"
	"reify/reified"
)

type typeReport struct {
	Signature string   `json:"signature"`
	Shape     string   `json:"shape"`
	Display   string   `json:"display,omitempty"`
	Raw       string   `json:"raw,omitempty"`
	Hash      string   `json:"hash,omitempty"`
	ID        uint32   `json:"id,omitempty"`
	Args      []string `json:"args,omitempty"`
	Error     string   `json:"error,omitempty"`
}

func (r *typeReport) failed() bool { return r.Error != "" }

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <signature>...",
		Short: "Classify signatures and show their canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runInspect,
	}
	cmd.Flags().StringSlice("vars", nil, "type variable names in scope")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	vars, err := cmd.Flags().GetStringSlice("vars")
	if err != nil {
		return fmt.Errorf("failed to get vars flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	reports, err := inspectAll(cmd.Context(), universeFrom(cmd), args, vars, jobs)
	if err != nil {
		return err
	}
	if format == "json" {
		if err := writeJSON(cmd.OutOrStdout(), reports); err != nil {
			return err
		}
	} else {
		renderReports(cmd.OutOrStdout(), reports)
	}
	return countFailures(reports)
}

// inspectAll resolves every signature, at most jobs at a time. Reports keep the
// order of sigs.
func inspectAll(ctx context.Context, u *native.Universe, sigs, vars []string, jobs int) ([]*typeReport, error) {
	if jobs <= 0 {
		jobs = 1
	}
	reports := make([]*typeReport, len(sigs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(sigs)))
	for i, sig := range sigs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			reports[i] = inspectOne(gctx, u, sig, vars)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func inspectOne(ctx context.Context, u *native.Universe, sig string, vars []string) *typeReport {
	ctx, span := trace.Start(ctx, trace.ScopeResolve, sig)
	rep := &typeReport{Signature: sig}
	defer func() {
		span.WithExtra("shape", rep.Shape).End(rep.Error)
	}()

	ref, err := u.Parse(sig, vars...)
	if err != nil {
		rep.Shape = reified.ShapeInvalid.String()
		rep.Error = err.Error()
		return rep
	}
	cl := reified.Classify(ref)
	rep.Shape = cl.Shape.String()
	if err := cl.Err(); err != nil {
		rep.Error = err.Error()
		return rep
	}
	t, err := reified.OfType(ref)
	if err != nil {
		rep.Error = err.Error()
		return rep
	}
	describe(ctx, rep, t)
	return rep
}

// describe fills the success fields of rep from t.
func describe(ctx context.Context, rep *typeReport, t reified.Type) {
	rep.Shape = reified.ShapeNominal.String()
	rep.Display = t.TypeName()
	rep.Raw = t.Raw().Name()
	rep.Hash = fmt.Sprintf("%#016x", t.Hash())
	if comp, ok := t.Composite(); ok {
		rep.Shape = reified.ShapeParameterized.String()
		rep.ID = uint32(comp.ID())
		for _, a := range comp.ActualTypeArguments() {
			rep.Args = append(rep.Args, a.TypeName())
			trace.Point(ctx, trace.ScopeType, "arg", a.TypeName())
		}
	}
}

func renderReports(out io.Writer, reports []*typeReport) {
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, styled(headingStyle, r.Signature))
		field := func(name, value string) {
			fmt.Fprintf(out, "  %s %s\n", dimColor.Sprint(padRight(name, 7)), value)
		}
		field("shape", shapeColor.Sprint(r.Shape))
		if r.failed() {
			field("error", errorColor.Sprint(r.Error))
			continue
		}
		field("display", okColor.Sprint(r.Display))
		field("raw", r.Raw)
		field("hash", r.Hash)
		if len(r.Args) > 0 {
			field("args", strings.Join(r.Args, ", "))
		}
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func countFailures(reports []*typeReport) error {
	n := 0
	for _, r := range reports {
		if r.failed() {
			n++
		}
	}
	if n > 0 {
		return fmt.Errorf("%d of %d signatures failed", n, len(reports))
	}
	return nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reify/internal/trace"
	"reify/native"
)

type classRow struct {
	Name      string   `json:"name"`
	Params    []string `json:"params,omitempty"`
	Supers    []string `json:"supers,omitempty"`
	Enclosing string   `json:"enclosing,omitempty"`
}

func newClassesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List the classes of the universe",
		Args:  cobra.NoArgs,
		RunE:  runClasses,
	}
	cmd.Flags().Bool("generic", false, "only list generic classes")
	cmd.Flags().Int("width", 48, "maximum column width in pretty output (0 for none)")
	return cmd
}

func runClasses(cmd *cobra.Command, _ []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	genericOnly, err := cmd.Flags().GetBool("generic")
	if err != nil {
		return fmt.Errorf("failed to get generic flag: %w", err)
	}
	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return fmt.Errorf("failed to get width flag: %w", err)
	}

	rows := classRows(universeFrom(cmd), genericOnly)
	trace.Point(cmd.Context(), trace.ScopeResolve, "classes", fmt.Sprintf("%d rows", len(rows)))

	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), rows)
	}
	t := &table{header: []string{"NAME", "PARAMS", "SUPERTYPES", "ENCLOSING"}, max: width}
	for _, r := range rows {
		t.add(r.Name, strings.Join(r.Params, ", "), strings.Join(r.Supers, ", "), r.Enclosing)
	}
	t.write(cmd.OutOrStdout())
	return nil
}

func classRows(u *native.Universe, genericOnly bool) []classRow {
	classes := u.Classes()
	rows := make([]classRow, 0, len(classes))
	for _, c := range classes {
		if genericOnly && c.Arity() == 0 {
			continue
		}
		r := classRow{Name: c.Name()}
		for _, p := range c.TypeParameters() {
			r.Params = append(r.Params, p.Name())
		}
		for _, s := range c.Supertypes() {
			r.Supers = append(r.Supers, s.Name())
		}
		if e := c.Enclosing(); e != nil {
			r.Enclosing = e.Name()
		}
		rows = append(rows, r)
	}
	return rows
}

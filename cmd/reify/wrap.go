package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reify/containers"
	"reify/internal/trace"
	"reify/native"
	"reify/reified"
)

func newWrapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wrap <shape> <signature>...",
		Short: "Compose a container type from element types",
		Long:  "Shapes: " + shapeNames(),
		Args:  cobra.MinimumNArgs(2),
		RunE:  runWrap,
	}
}

func newUnwrapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unwrap <shape> <signature>",
		Short: "Extract a type argument from a container type",
		Long:  "Shapes: " + shapeNames(),
		Args:  cobra.ExactArgs(2),
		RunE:  runUnwrap,
	}
	cmd.Flags().String("part", "", "key or value, for map and pair shapes")
	return cmd
}

func shapeNames() string {
	names := make([]string, 0, len(containers.Shapes()))
	for _, s := range containers.Shapes() {
		names = append(names, s.ClassName())
	}
	return strings.Join(names, ", ")
}

// resolve parses sig and reifies it.
func resolve(u *native.Universe, sig string) (reified.Type, error) {
	ref, err := u.Parse(sig)
	if err != nil {
		return reified.Type{}, err
	}
	return reified.OfType(ref)
}

func runWrap(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	shape, err := containers.ParseShape(args[0])
	if err != nil {
		return err
	}
	ctx, span := trace.Start(cmd.Context(), trace.ScopeResolve, "wrap "+shape.String())
	defer span.End("")

	u := universeFrom(cmd)
	elems := make([]reified.Type, 0, len(args)-1)
	for _, sig := range args[1:] {
		t, err := resolve(u, sig)
		if err != nil {
			return fmt.Errorf("%s: %w", sig, err)
		}
		elems = append(elems, t)
	}
	wrapped, err := containers.Wrap(shape, elems...)
	if err != nil {
		return err
	}
	rep := &typeReport{Signature: shape.String() + "(" + strings.Join(args[1:], ", ") + ")"}
	describe(ctx, rep, wrapped)
	return emit(cmd, format, rep)
}

func runUnwrap(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	part, err := cmd.Flags().GetString("part")
	if err != nil {
		return fmt.Errorf("failed to get part flag: %w", err)
	}
	shape, err := containers.ParseShape(args[0])
	if err != nil {
		return err
	}
	ctx, span := trace.Start(cmd.Context(), trace.ScopeResolve, "unwrap "+shape.String())
	defer span.End("")

	target, err := resolve(universeFrom(cmd), args[1])
	if err != nil {
		return fmt.Errorf("%s: %w", args[1], err)
	}
	unwrap, err := unwrapperFor(shape, part)
	if err != nil {
		return err
	}
	inner, err := unwrap(target)
	if err != nil {
		return err
	}
	rep := &typeReport{Signature: args[1]}
	describe(ctx, rep, inner)
	return emit(cmd, format, rep)
}

func unwrapperFor(shape containers.Shape, part string) (func(reified.Type) (reified.Type, error), error) {
	index := 0
	switch strings.ToLower(part) {
	case "":
	case "key", "value":
		if shape.Arity() != 2 {
			return nil, fmt.Errorf("%s has no %s part", shape, part)
		}
		if strings.EqualFold(part, "value") {
			index = 1
		}
	default:
		return nil, fmt.Errorf("invalid --part value %q (expected key|value)", part)
	}
	return func(t reified.Type) (reified.Type, error) {
		return containers.UnwrapAt(shape, t, index)
	}, nil
}

func emit(cmd *cobra.Command, format string, rep *typeReport) error {
	if format == "json" {
		return writeJSON(cmd.OutOrStdout(), rep)
	}
	renderReports(cmd.OutOrStdout(), []*typeReport{rep})
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqlock/internal/app"
)

type resolveOptions struct {
	Manifest   string
	Index      string
	Overrides  string
	OutputDir  string
	EmitPinned bool
	EmitDebs   bool
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a manifest against an index and produce lock outputs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts, false)
		},
	}

	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Requirements manifest path")
	cmd.Flags().StringVar(&opts.Index, "index", "", "Package index snapshot file")
	cmd.Flags().StringVar(&opts.Overrides, "overrides", "", "Overrides file path")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	cmd.Flags().BoolVar(&opts.EmitPinned, "emit-pinned", false, "Also write a fully pinned requirements file")
	cmd.Flags().BoolVar(&opts.EmitDebs, "emit-debs", false, "Also write an apt install list of python3-* pins")

	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("index", cmd.Flags().Lookup("index"))
	_ = viper.BindPFlag("overrides", cmd.Flags().Lookup("overrides"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("emit_pinned", cmd.Flags().Lookup("emit-pinned"))
	_ = viper.BindPFlag("emit_debs", cmd.Flags().Lookup("emit-debs"))

	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions, forcePinned bool) error {
	service := newAppService()
	result, err := service.Resolve(ctx, app.ResolveRequest{
		Manifest:   resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		Index:      resolveString(cmd, opts.Index, "index", "index"),
		Overrides:  resolveString(cmd, opts.Overrides, "overrides", "overrides"),
		OutputDir:  resolveString(cmd, opts.OutputDir, "output", "output"),
		EmitPinned: forcePinned || resolveBool(cmd, opts.EmitPinned, "emit_pinned", "emit-pinned"),
		EmitDebs:   resolveBool(cmd, opts.EmitDebs, "emit_debs", "emit-debs"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("resolved: %s (%d locked) -> %s\n", result.Manifest, result.Locked, result.OutputDir)
	return nil
}

package cli

import "github.com/spf13/cobra"

type lockOptions = resolveOptions

func newLockCommand() *cobra.Command {
	opts := lockOptions{}
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Resolve a manifest and emit a fully pinned requirements file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts, true)
		},
	}

	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Requirements manifest path")
	cmd.Flags().StringVar(&opts.Index, "index", "", "Package index snapshot file")
	cmd.Flags().StringVar(&opts.Overrides, "overrides", "", "Overrides file path")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	cmd.Flags().BoolVar(&opts.EmitDebs, "emit-debs", false, "Also write an apt install list of python3-* pins")

	return cmd
}

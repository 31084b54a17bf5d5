package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqlock/internal/app"
)

type inspectOptions struct {
	OutputDir string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a resolved output directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		OutputDir: resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("locked packages: %d\n", result.LockCount)
	for _, name := range result.Packages {
		fmt.Printf("  %s\n", name)
	}
	if len(result.ResolutionRecords) > 0 {
		fmt.Printf("override records: %d\n", len(result.ResolutionRecords))
		for _, record := range result.ResolutionRecords {
			fmt.Printf("  %s %s %s (%s)\n", record.Package, record.Action, record.Value, record.Owner)
		}
	}
	return nil
}

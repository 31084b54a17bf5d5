package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqlock/internal/app"
)

type exportDebOptions struct {
	OutputDir string
}

func newExportDebCommand() *cobra.Command {
	opts := exportDebOptions{}
	cmd := &cobra.Command{
		Use:   "export-deb",
		Short: "Convert an existing lock into an apt install list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExportDeb(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runExportDeb(cmd *cobra.Command, opts exportDebOptions) error {
	service := newAppService()
	result, err := service.ExportDeb(app.ExportDebRequest{
		OutputDir: resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("exported: %d apt pins\n", result.Exported)
	return nil
}

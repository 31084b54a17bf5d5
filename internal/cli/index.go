package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqlock/internal/app"
)

type indexOptions struct {
	SimpleIndex      string
	Output           string
	User             string
	APIKey           string
	Packages         []string
	MaxPackages      int
	Workers          int
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

func newIndexCommand() *cobra.Command {
	opts := indexOptions{}
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build a package index snapshot from a simple index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIndex(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.SimpleIndex, "simple-index", "", "Simple index base URL")
	cmd.Flags().StringVar(&opts.Output, "output", "index.yaml", "Snapshot output path")
	cmd.Flags().StringVar(&opts.User, "user", "", "Basic auth user")
	cmd.Flags().StringVar(&opts.APIKey, "api-key", "", "Basic auth API key")
	cmd.Flags().StringSliceVar(&opts.Packages, "package", nil, "Package(s) to crawl (default: all advertised)")
	cmd.Flags().IntVar(&opts.MaxPackages, "max-packages", 0, "Cap on crawled packages (0 = no cap)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Concurrent fetch workers")
	cmd.Flags().IntVar(&opts.HTTPTimeoutSec, "http-timeout", 0, "HTTP timeout in seconds")
	cmd.Flags().IntVar(&opts.HTTPRetries, "http-retries", 0, "HTTP retry attempts")
	cmd.Flags().IntVar(&opts.HTTPRetryDelayMs, "http-retry-delay", 0, "HTTP retry base delay in milliseconds")

	_ = viper.BindPFlag("simple_index", cmd.Flags().Lookup("simple-index"))
	_ = viper.BindPFlag("index_output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("index_user", cmd.Flags().Lookup("user"))
	_ = viper.BindPFlag("index_api_key", cmd.Flags().Lookup("api-key"))
	_ = viper.BindPFlag("index_packages", cmd.Flags().Lookup("package"))
	_ = viper.BindPFlag("index_max_packages", cmd.Flags().Lookup("max-packages"))
	_ = viper.BindPFlag("index_workers", cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("http_timeout", cmd.Flags().Lookup("http-timeout"))
	_ = viper.BindPFlag("http_retries", cmd.Flags().Lookup("http-retries"))
	_ = viper.BindPFlag("http_retry_delay", cmd.Flags().Lookup("http-retry-delay"))

	return cmd
}

func runIndex(ctx context.Context, cmd *cobra.Command, opts indexOptions) error {
	service := newAppService()
	result, err := service.BuildIndex(ctx, app.BuildIndexRequest{
		SimpleIndex:      resolveString(cmd, opts.SimpleIndex, "simple_index", "simple-index"),
		Output:           resolveString(cmd, opts.Output, "index_output", "output"),
		User:             resolveString(cmd, opts.User, "index_user", "user"),
		APIKey:           resolveString(cmd, opts.APIKey, "index_api_key", "api-key"),
		Packages:         resolveStrings(cmd, opts.Packages, "index_packages", "package"),
		MaxPackages:      resolveInt(cmd, opts.MaxPackages, "index_max_packages", "max-packages"),
		Workers:          resolveInt(cmd, opts.Workers, "index_workers", "workers"),
		HTTPTimeoutSec:   resolveInt(cmd, opts.HTTPTimeoutSec, "http_timeout", "http-timeout"),
		HTTPRetries:      resolveInt(cmd, opts.HTTPRetries, "http_retries", "http-retries"),
		HTTPRetryDelayMs: resolveInt(cmd, opts.HTTPRetryDelayMs, "http_retry_delay", "http-retry-delay"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("index written: %s (%d packages)\n", result.OutputPath, result.PackageCount)
	return nil
}

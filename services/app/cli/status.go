package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"taskboard/services/app/config"
)

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the backend is reachable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, cmd, func(ctx context.Context, a *app) error {
				out := cmd.OutOrStdout()
				if err := a.client.Ping(ctx); err != nil {
					_, _ = fmt.Fprintf(out, "backend %s: down\n", a.cfg.API.BaseURL)
					return fmt.Errorf("backend unreachable: %w", err)
				}
				_, err := fmt.Fprintf(out, "backend %s: ok\n", a.cfg.API.BaseURL)
				return err
			})
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if cfg.Session.Redis.Password != "" {
				cfg.Session.Redis.Password = "********"
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	return cmd
}

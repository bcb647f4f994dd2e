package app

import (
	"github.com/spf13/cobra"

	"github.com/poststats/poststats/internal/daemon"
	"github.com/poststats/poststats/internal/logger"
)

func newStartCmd(g *globals) *cobra.Command {
	var (
		devMode      bool
		browseStatic bool
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the poststats web service",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := g.readConfig()
			if err != nil {
				return err
			}

			if devMode {
				cfg.DevMode = true
			}

			if browseStatic {
				cfg.Webserver.BrowseStatic = true
			}

			if err = logger.Init(cfg.Log); err != nil {
				return err
			}

			d, err := daemon.New(&cfg)
			if err != nil {
				return err
			}

			return d.Start()
		},
	}

	cmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")
	cmd.Flags().BoolVar(&browseStatic, "browse", false,
		"Enable static file browsing (for development purposes only)")

	return cmd
}

package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poststats/poststats/internal/config"
)

func newConfigCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	var asJSON bool

	dump := &cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration, env overrides applied",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.readConfig()
			if err != nil {
				return err
			}

			dumpFn := config.DumpConfig
			if asJSON {
				dumpFn = config.DumpConfigJSON
			}

			out, err := dumpFn(&cfg)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)

			return err
		},
	}

	dump.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	cmd.AddCommand(dump)

	return cmd
}

// Package app implements the poststats commands.
package app

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/poststats/poststats/internal/config"
)

// globals are the flags shared by all commands.
type globals struct {
	configPath string // directory holding main.toml
}

func (g *globals) readConfig() (config.Config, error) {
	path := g.configPath
	if path != "" && !strings.HasSuffix(path, "/") {
		path += "/"
	}

	return config.ReadConfig(path)
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "poststats",
		Short: "poststats shows word count, character count and reading time on articles",
		Long: `poststats computes word count, character count and the estimated reading
time of an article and places a short stats block before or after it.

It runs as a web service with an admin settings screen, a JSON filter API
and an article view, and as a command line filter for single files.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", config.DefaultPath,
		"directory containing main.toml")

	cmd.AddCommand(
		newStartCmd(g),
		newRenderCmd(g),
		newArticleCmd(g),
		newConfigCmd(g),
	)

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

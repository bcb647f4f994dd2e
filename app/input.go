package app

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/poststats/poststats/internal/fetch"
)

// document is an article read from a file, stdin or a fetched page.
type document struct {
	Title   string
	Content string
}

// readDocument reads the article named by args, or fetches rawURL when set.
// No argument or "-" reads stdin.
func readDocument(ctx context.Context, cmd *cobra.Command, args []string, rawURL string) (document, error) {
	if rawURL != "" {
		a, err := fetch.New().Article(ctx, rawURL)
		if err != nil {
			return document{}, err
		}

		return document{Title: a.Title, Content: a.Content}, nil
	}

	var (
		data []byte
		err  error
	)

	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}

	if err != nil {
		return document{}, err
	}

	return document{Content: string(data)}, nil
}

package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poststats/poststats/internal/daemon"
	"github.com/poststats/poststats/internal/db/controller/article"
	"github.com/poststats/poststats/internal/db/models"
)

// errNoTitle is returned when an imported article has no title.
var errNoTitle = errors.New("no title: pass --title")

func newArticleCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "article",
		Short: "Manage articles",
	}

	cmd.AddCommand(newArticleImportCmd(g))

	return cmd
}

func newArticleImportCmd(g *globals) *cobra.Command {
	var slug, title, rawURL string

	cmd := &cobra.Command{
		Use:   "import [file|-]",
		Short: "Store an article, replacing the article with the same slug",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.readConfig()
			if err != nil {
				return err
			}

			doc, err := readDocument(cmd.Context(), cmd, args, rawURL)
			if err != nil {
				return err
			}

			if title == "" {
				title = doc.Title
			}

			if title == "" {
				return errNoTitle
			}

			if slug == "" {
				slug = article.Slugify(title)
			}

			db, err := daemon.OpenDB(&cfg)
			if err != nil {
				return err
			}

			if err = article.Save(db, &models.Article{Slug: slug, Title: title, Content: doc.Content}); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", slug)

			return err
		},
	}

	cmd.Flags().StringVar(&slug, "slug", "", "url slug, derived from the title when empty")
	cmd.Flags().StringVar(&title, "title", "", "article title, taken from the page with --url")
	cmd.Flags().StringVar(&rawURL, "url", "", "fetch the article from this url")

	return cmd
}

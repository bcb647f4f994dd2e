package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poststats/poststats/internal/daemon"
	"github.com/poststats/poststats/internal/db/controller/options"
	"github.com/poststats/poststats/internal/poststats"
)

type renderFlags struct {
	url         string
	location    string
	title       string
	lang        string
	words       bool
	chars       bool
	readingTime bool
	archive     bool
	noDB        bool
	asJSON      bool
}

func newRenderCmd(g *globals) *cobra.Command {
	f := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Print an article with its stats block",
		Long: `Print an article with its stats block.

The article is read from a file, from stdin, or fetched with --url, in which
case the main content of the page is extracted first. The display options
stored by the web service are used unless --no-db is given. Flags override
single options.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, g, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.url, "url", "", "fetch the article from this url")
	fl.StringVar(&f.location, "location", "", "block location: beginning or end")
	fl.StringVar(&f.title, "title", "", "block title")
	fl.StringVar(&f.lang, "lang", "", "language of the block (en, de, sr-Latn)")
	fl.BoolVar(&f.words, "words", true, "show the word count")
	fl.BoolVar(&f.chars, "chars", false, "show the character count")
	fl.BoolVar(&f.readingTime, "reading-time", true, "show the reading time")
	fl.BoolVar(&f.archive, "archive", false, "render as archive view, which never shows stats")
	fl.BoolVar(&f.noDB, "no-db", false, "ignore stored options, start from the defaults")
	fl.BoolVar(&f.asJSON, "json", false, "print content, stats and injected flag as JSON")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, g *globals, f *renderFlags) error {
	opts := poststats.DefaultOptions()
	lang := f.lang

	if !f.noDB {
		cfg, err := g.readConfig()
		if err != nil {
			return err
		}

		db, err := daemon.OpenDB(&cfg)
		if err != nil {
			return err
		}

		if opts, err = options.Load(db); err != nil {
			return err
		}

		if lang == "" {
			lang = cfg.Site.Language
		}
	}

	if err := applyRenderFlags(cmd, f, &opts); err != nil {
		return err
	}

	doc, err := readDocument(cmd.Context(), cmd, args, f.url)
	if err != nil {
		return err
	}

	result, err := poststats.NewRenderer(lang).Filter(doc.Content, opts, !f.archive)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if f.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		return enc.Encode(result)
	}

	_, err = fmt.Fprintln(out, result.Content)

	return err
}

// applyRenderFlags overrides the options named on the command line.
func applyRenderFlags(cmd *cobra.Command, f *renderFlags, opts *poststats.Options) error {
	fl := cmd.Flags()

	if fl.Changed("location") {
		loc, err := poststats.ParseLocation(f.location)
		if err != nil {
			return fmt.Errorf("--location: %w", err)
		}

		opts.Location = loc
	}

	if fl.Changed("title") {
		opts.Title = options.SanitizeText(f.title)
	}

	if fl.Changed("words") {
		opts.ShowWordCount = f.words
	}

	if fl.Changed("chars") {
		opts.ShowCharCount = f.chars
	}

	if fl.Changed("reading-time") {
		opts.ShowReadingTime = f.readingTime
	}

	return nil
}

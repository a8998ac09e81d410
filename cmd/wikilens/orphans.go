package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikilens/internal/analyzer"
	"github.com/nao1215/wikilens/internal/config"
	"github.com/nao1215/wikilens/internal/links"
	"github.com/nao1215/wikilens/internal/model"
	"github.com/nao1215/wikilens/internal/report"
	"github.com/nao1215/wikilens/internal/snapshot"
)

var (
	// ErrNoPagesFile is returned when --pages is missing.
	ErrNoPagesFile = errors.New("no page export specified (use --pages)")

	// ErrNoLinkSource is returned when neither --links nor --from-render is given.
	ErrNoLinkSource = errors.New("no link source specified (use --links or --from-render)")

	// ErrConflictingLinkSources is returned when both --links and --from-render are given.
	ErrConflictingLinkSources = errors.New("--links and --from-render cannot be used together")
)

// orphansOptions holds the flags of the orphans command that have no
// counterpart in config.Config.
type orphansOptions struct {
	linksFile  string
	fromRender bool
	saveLinks  string
}

// NewOrphansCmd creates the orphans command.
func NewOrphansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orphans",
		Short: "Find pages that no other page links to",
		Long: `Orphans builds the internal link graph of the wiki and lists pages
without incoming links.

The links come either from a page link export (--links) or are extracted
from the rendered HTML carried by the page export (--from-render). External
links, mail links and in-page anchors are ignored. The home page and pages
under news/, blog/ and archive/ are never reported.

Examples:
  # Use a link export
  wikilens orphans --pages pages.json --links links.json

  # Extract links from rendered pages and keep them for later runs
  wikilens orphans -p pages.json --from-render --site-url https://docs.example.com \
    --save-links links.json`,
		RunE: runOrphansCmd,
	}

	cmd.Flags().StringP("pages", "p", "",
		"Path to the page export (JSON)")
	cmd.Flags().StringP("links", "l", "",
		"Path to the page link export (JSON)")
	cmd.Flags().Bool("from-render", false,
		"Extract links from the rendered HTML of the page export")
	cmd.Flags().String("site-url", "",
		"Public URL of the wiki; absolute links to it count as internal")
	cmd.Flags().String("save-links", "",
		"Write the extracted links to this file as a link export")
	cmd.Flags().StringP("instance", "i", config.DefaultInstance,
		"Instance name used for configuration lookup")
	cmd.Flags().StringP("config", "c", "",
		"Path to config file (default: .wikilens in current or home directory)")
	addReportFlags(cmd)

	return cmd
}

// runOrphansCmd executes the orphans command.
func runOrphansCmd(cmd *cobra.Command, _ []string) error {
	cfg, opts, err := buildOrphansConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cmd, cfg.Verbose)

	pages, err := snapshot.LoadPages(cfg.PagesFile)
	if err != nil {
		return err
	}

	var items []model.PageLinkItem
	if opts.fromRender {
		extractor, err := links.NewExtractor(links.WithSiteURL(cfg.SiteURL))
		if err != nil {
			return err
		}
		items, err = extractor.BuildLinkItems(pages.Pages)
		if err != nil {
			return err
		}
		logger.Debug("links extracted from rendered pages", "pages", len(items))

		if opts.saveLinks != "" {
			if err := snapshot.Save(opts.saveLinks, items); err != nil {
				return err
			}
			logger.Info("link export written", "path", opts.saveLinks)
		}
	} else {
		items, err = snapshot.LoadLinks(opts.linksFile)
		if err != nil {
			return err
		}
	}

	result := analyzer.DetectOrphans(pages.Pages, items)
	logger.Info("orphan detection complete",
		"pages", result.TotalPages,
		"orphans", len(result.OrphanedPages),
	)

	return writeReport(cmd, cfg, func(w report.Writer) (int, error) {
		return w.WriteOrphans(result)
	})
}

// buildOrphansConfig creates a Config and the orphans options from flags.
func buildOrphansConfig(cmd *cobra.Command) (*config.Config, *orphansOptions, error) {
	cfg := config.NewConfig()
	opts := &orphansOptions{}
	var err error

	cfg.Verbose, err = getVerboseFlag(cmd)
	if err != nil {
		return nil, nil, err
	}

	cfg.PagesFile, err = cmd.Flags().GetString("pages")
	if err != nil {
		return nil, nil, err
	}

	opts.linksFile, err = cmd.Flags().GetString("links")
	if err != nil {
		return nil, nil, err
	}

	opts.fromRender, err = cmd.Flags().GetBool("from-render")
	if err != nil {
		return nil, nil, err
	}

	opts.saveLinks, err = cmd.Flags().GetString("save-links")
	if err != nil {
		return nil, nil, err
	}

	cfg.SiteURL, err = cmd.Flags().GetString("site-url")
	if err != nil {
		return nil, nil, err
	}

	cfg.Instance, err = cmd.Flags().GetString("instance")
	if err != nil {
		return nil, nil, err
	}

	if err := readReportFlags(cmd, cfg); err != nil {
		return nil, nil, err
	}

	if err := validateOrphansOptions(cfg, opts); err != nil {
		return nil, nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, err
	}
	if err := loadConfigFile(cfg); err != nil {
		return nil, nil, err
	}

	return cfg, opts, nil
}

// validateOrphansOptions checks the inputs of the orphans command.
func validateOrphansOptions(cfg *config.Config, opts *orphansOptions) error {
	if err := cfg.ValidateReportOptions(); err != nil {
		return err
	}
	if cfg.PagesFile == "" {
		return ErrNoPagesFile
	}
	switch {
	case opts.linksFile != "" && opts.fromRender:
		return ErrConflictingLinkSources
	case opts.linksFile == "" && !opts.fromRender:
		return ErrNoLinkSource
	case opts.saveLinks != "" && !opts.fromRender:
		return errors.New("--save-links requires --from-render")
	}
	return nil
}

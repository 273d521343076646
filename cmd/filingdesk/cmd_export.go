package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"filingdesk/internal/export"
	"filingdesk/internal/render"
	"filingdesk/internal/report"
	"filingdesk/internal/store"
)

var (
	exportLatest bool
	exportAll    bool
)

var exportCmd = &cobra.Command{
	Use:   "export [document.json | report-id]",
	Short: "Export a report as a PDF artifact",
	Long: `Export renders a filing readiness report into a paginated PDF artifact.

The argument is either a JSON document file or the id of a previously saved
report. With --latest the most recently saved report is exported, with --all
every saved report goes into a single combined artifact.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportLatest, "latest", false, "export the most recently saved report")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "export every saved report into one artifact")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportLatest && exportAll {
		return fmt.Errorf("--latest and --all are mutually exclusive")
	}
	if len(args) == 0 && !exportLatest && !exportAll {
		return fmt.Errorf("requires a document file, a report id, --latest or --all")
	}

	timeout, err := cfg.Export.IconTimeoutDuration()
	if err != nil {
		return err
	}
	loader := export.NewLoader(&http.Client{Timeout: timeout}, logger)
	exporter := export.NewExporter(cfg, loader, logger)
	ctx := cmd.Context()

	switch {
	case exportAll:
		s, err := store.Open(cfg.Store.DatabasePath, logger)
		if err != nil {
			return err
		}
		defer s.Close()
		summaries, err := s.List()
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			return fmt.Errorf("no saved reports to export")
		}
		items := make([]export.Item, 0, len(summaries))
		for _, sum := range summaries {
			rep, err := s.Load(sum.ID)
			if err != nil {
				return err
			}
			items = append(items, export.Item{
				Doc:      rep.Document,
				Rendered: report.Rendered{ID: rep.ID, Markup: rep.Markup, Checksum: rep.Checksum, CreatedAt: rep.CreatedAt},
			})
		}
		path, err := exporter.ExportAll(ctx, items, export.SuffixAllResults)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil

	case exportLatest:
		s, err := store.Open(cfg.Store.DatabasePath, logger)
		if err != nil {
			return err
		}
		defer s.Close()
		rep, err := s.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no saved reports to export")
			}
			return err
		}
		rendered := report.Rendered{ID: rep.ID, Markup: rep.Markup, Checksum: rep.Checksum, CreatedAt: rep.CreatedAt}
		path, err := exporter.Export(ctx, rep.Document, rendered, export.SuffixLatestResult)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil

	default:
		doc, rendered, err := resolveReport(args[0])
		if err != nil {
			return err
		}
		path, err := exporter.Export(ctx, doc, rendered, export.SuffixReport)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	}
}

// resolveReport treats the argument as a document file when one exists at
// that path, otherwise as the id of a saved report.
func resolveReport(arg string) (*report.Document, report.Rendered, error) {
	if _, err := os.Stat(arg); err == nil || strings.HasSuffix(arg, ".json") {
		doc, err := report.LoadDocument(arg)
		if err != nil {
			return nil, report.Rendered{}, err
		}
		return doc, render.Render(doc), nil
	}

	s, err := store.Open(cfg.Store.DatabasePath, logger)
	if err != nil {
		return nil, report.Rendered{}, err
	}
	defer s.Close()
	rep, err := s.Load(arg)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, report.Rendered{}, fmt.Errorf("no document file or saved report %q", arg)
		}
		return nil, report.Rendered{}, err
	}
	rendered := report.Rendered{ID: rep.ID, Markup: rep.Markup, Checksum: rep.Checksum, CreatedAt: rep.CreatedAt}
	return rep.Document, rendered, nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"filingdesk/internal/render"
	"filingdesk/internal/report"
	"filingdesk/internal/store"
)

var (
	renderSave   bool
	renderMarkup bool
)

// renderCmd renders a report document to canonical markup
var renderCmd = &cobra.Command{
	Use:   "render [document.json]",
	Short: "Render a report document to canonical markup",
	Long: `Reads a payload+content JSON document, renders the canonical HTML
markup and prints its content fingerprint. With --save the rendered
report is persisted; the printed id can be passed to export, view and
verify.

Rendering is deterministic: the same document always produces the same
markup and the same fingerprint.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&renderSave, "save", false, "persist the rendered report")
	renderCmd.Flags().BoolVar(&renderMarkup, "markup", false, "print the full markup instead of a summary line")
}

func runRender(cmd *cobra.Command, args []string) error {
	doc, err := report.LoadDocument(args[0])
	if err != nil {
		return err
	}

	rendered := render.Render(doc)
	logger.Debug("report rendered",
		zap.String("checksum", rendered.Checksum),
		zap.Int("markup_bytes", len(rendered.Markup)))

	if renderMarkup {
		fmt.Println(rendered.Markup)
	}
	fmt.Printf("Checksum: %s\n", rendered.Checksum)

	if renderSave {
		s, err := store.Open(cfg.Store.DatabasePath, logger)
		if err != nil {
			return err
		}
		defer s.Close()
		id, err := s.Save(doc, rendered)
		if err != nil {
			return err
		}
		fmt.Printf("Saved: %s\n", id)
	}
	return nil
}

package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"filingdesk/cmd/filingdesk/ui"
	"filingdesk/internal/render"
	"filingdesk/internal/report"
)

var viewPlain bool

var viewCmd = &cobra.Command{
	Use:   "view [document.json | report-id]",
	Short: "Browse a report page by page in the terminal",
	Long: `View opens a paginated terminal panel for a filing readiness report.
Pages follow the same break rules as the PDF export. With --plain the report
is printed once as a formatted digest instead of opening the panel.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().BoolVar(&viewPlain, "plain", false, "print a one-shot digest instead of the interactive panel")
}

func runView(cmd *cobra.Command, args []string) error {
	doc, rendered, err := resolveReport(args[0])
	if err != nil {
		return err
	}

	if viewPlain {
		out, err := renderDigest(doc)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}

	model := ui.NewPanelModel(doc, rendered)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("panel failed: %w", err)
	}
	return nil
}

// renderDigest formats the report as markdown and styles it for the terminal.
func renderDigest(doc *report.Document) (string, error) {
	var sb strings.Builder
	var tableOpen bool

	closeTable := func() { tableOpen = false }

	for _, b := range render.ToBlocks(doc.Payload, doc.Content) {
		switch b.Kind {
		case render.BlockHeading:
			closeTable()
			sb.WriteString(strings.Repeat("#", b.Level) + " " + b.Text + "\n\n")
		case render.BlockParagraph:
			closeTable()
			sb.WriteString(b.Text + "\n\n")
		case render.BlockListItem:
			closeTable()
			if b.Ordinal > 0 {
				fmt.Fprintf(&sb, "%d. %s\n", b.Ordinal, b.Text)
			} else {
				fmt.Fprintf(&sb, "- %s\n", b.Text)
			}
		case render.BlockTableRow:
			sb.WriteString("| " + strings.Join(b.Cells, " | ") + " |\n")
			if b.Header && !tableOpen {
				sb.WriteString("|" + strings.Repeat(" --- |", len(b.Cells)) + "\n")
				tableOpen = true
			}
		case render.BlockSeparator:
			closeTable()
			sb.WriteString("\n---\n\n")
		}
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render(sb.String())
}

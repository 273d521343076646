package render

import (
	"fmt"
	"strings"

	"filingdesk/internal/report"
)

// BlockKind identifies the atomic renderable units consumed by the layout
// engine.
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockTableRow
	BlockListItem
	BlockSeparator
)

// Block is one immutable layout unit. Table rows are emitted one block per
// row rather than one per table so a table can break across pages without
// re-emitting its header. Blocks carry plain text; escaping is a markup
// concern and does not apply here.
type Block struct {
	Kind    BlockKind
	Level   int      // headings only: 1 = section title, 2 = sub-title
	Text    string   // headings, paragraphs, list items
	Cells   []string // table rows
	Header  bool     // table rows: true for the column-title row
	Ordinal int      // list items: 1-based for ordered lists, 0 for unordered
}

// PendingText is the plain-text counterpart of the Pending markup marker.
const PendingText = "— pending input —"

// safeText applies the placeholder rule for block output.
func safeText(s string) string {
	if strings.TrimSpace(s) == "" {
		return PendingText
	}
	return s
}

// ToBlocks decomposes a document into ordered layout blocks, in the same
// fixed section order as the canonical markup. Runs of blank content between
// sections collapse to a single separator block.
func ToBlocks(p report.Payload, c report.GeneratedContent) []Block {
	var blocks []Block

	heading := func(level int, text string) {
		blocks = append(blocks, Block{Kind: BlockHeading, Level: level, Text: text})
	}
	paragraph := func(text string) {
		blocks = append(blocks, Block{Kind: BlockParagraph, Text: text})
	}
	separator := func() {
		if len(blocks) > 0 && blocks[len(blocks)-1].Kind == BlockSeparator {
			return
		}
		blocks = append(blocks, Block{Kind: BlockSeparator})
	}

	heading(1, fmt.Sprintf("Filing Readiness Report: %s", safeText(p.EntityName)))
	paragraph(fmt.Sprintf("Entity Type: %s", safeText(p.EntityType)))
	paragraph(fmt.Sprintf("Jurisdiction: %s", safeText(p.Jurisdiction)))
	paragraph(fmt.Sprintf("Filing Type: %s", safeText(p.FilingType)))
	paragraph(fmt.Sprintf("Deadline: %s", safeText(p.Deadline)))
	separator()

	heading(2, "Summary")
	paragraph(safeText(c.Summary))
	separator()

	heading(2, "Checklist")
	blocks = append(blocks, listBlocks(c.Checklist, defaultChecklistItem, false)...)
	separator()

	heading(2, "Timeline")
	blocks = append(blocks, timelineBlocks(c.Timeline)...)
	separator()

	heading(2, "Risk Matrix")
	blocks = append(blocks, riskBlocks(c.RiskMatrix)...)
	separator()

	heading(2, "Recommendations")
	blocks = append(blocks, listBlocks(c.Recommendations,
		"Review the completed checklist before submission", true)...)
	separator()

	heading(2, "References")
	blocks = append(blocks, listBlocks(c.References,
		"Registry filing handbook, current edition", true)...)

	return blocks
}

func listBlocks(items []string, defaultItem string, ordered bool) []Block {
	if items == nil {
		return []Block{{Kind: BlockParagraph, Text: PendingText}}
	}
	if len(items) == 0 {
		items = []string{defaultItem}
	}
	out := make([]Block, 0, len(items))
	for i, item := range items {
		b := Block{Kind: BlockListItem, Text: safeText(item)}
		if ordered {
			b.Ordinal = i + 1
		}
		out = append(out, b)
	}
	return out
}

func timelineBlocks(rows []report.TimelineEntry) []Block {
	if rows == nil {
		return []Block{{Kind: BlockParagraph, Text: PendingText}}
	}
	if len(rows) == 0 {
		rows = []report.TimelineEntry{defaultTimelineRow}
	}
	out := []Block{{
		Kind:   BlockTableRow,
		Header: true,
		Cells:  []string{"Milestone", "Owner", "Due Date", "Notes"},
	}}
	for _, r := range rows {
		out = append(out, Block{
			Kind:  BlockTableRow,
			Cells: []string{safeText(r.Milestone), safeText(r.Owner), safeText(r.DueDate), safeText(r.Notes)},
		})
	}
	return out
}

func riskBlocks(rows []report.RiskEntry) []Block {
	if rows == nil {
		return []Block{{Kind: BlockParagraph, Text: PendingText}}
	}
	if len(rows) == 0 {
		rows = []report.RiskEntry{defaultRiskRow}
	}
	out := []Block{{
		Kind:   BlockTableRow,
		Header: true,
		Cells:  []string{"Risk", "Severity", "Likelihood", "Mitigation"},
	}}
	for _, r := range rows {
		out = append(out, Block{
			Kind:  BlockTableRow,
			Cells: []string{safeText(r.Risk), safeText(r.Severity), safeText(r.Likelihood), safeText(r.Mitigation)},
		})
	}
	return out
}

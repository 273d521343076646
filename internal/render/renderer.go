// Package render turns a structured filing report into its canonical HTML
// markup and computes the content fingerprint used to verify that any two
// renderings of the same report are byte-identical. Everything in this
// package is pure: no I/O, no clocks, no shared state.
package render

import (
	"fmt"
	"html"
	"strings"
	"time"

	"filingdesk/internal/report"
)

// Pending is the visually distinct marker substituted for absent fields.
const Pending = `<em class="pending">— pending input —</em>`

// Default rows emitted when a section is present but empty. An empty section
// still renders one canonical item so downstream consumers never see a table
// or list with a header and no body.
var (
	defaultChecklistItem = "Confirm filing requirements with the registry"

	defaultTimelineRow = report.TimelineEntry{
		Milestone: "Prepare filing package",
		Owner:     "Compliance lead",
		DueDate:   "Before deadline",
		Notes:     "Auto-generated milestone",
	}

	defaultRiskRow = report.RiskEntry{
		Risk:       "Late filing",
		Severity:   "High",
		Likelihood: "Medium",
		Mitigation: "File ahead of the statutory deadline",
	}
)

// safe applies the safe-placeholder rule: absent or blank values become the
// pending marker, everything else is escaped before insertion so content can
// never alter the structure of the rendered document.
func safe(s string) string {
	if strings.TrimSpace(s) == "" {
		return Pending
	}
	return html.EscapeString(s)
}

// Render produces the immutable rendered form of a document. The markup and
// checksum are fully determined by the inputs; only CreatedAt varies.
func Render(doc *report.Document) report.Rendered {
	markup := RenderMarkup(doc.Payload, doc.Content)
	return report.Rendered{
		Markup:    markup,
		Checksum:  Fingerprint(markup),
		CreatedAt: time.Now().UTC(),
	}
}

// RenderMarkup builds the canonical semantic markup for a report. Section
// order is fixed: header metadata, summary, checklist, timeline, risk matrix,
// recommendations, references. Calling it twice with identical inputs yields
// byte-identical output.
func RenderMarkup(p report.Payload, c report.GeneratedContent) string {
	var b strings.Builder

	b.WriteString("<article class=\"filing-report\">\n")
	writeHeader(&b, p)
	writeSummary(&b, c.Summary)
	writeChecklist(&b, c.Checklist)
	writeTimeline(&b, c.Timeline)
	writeRiskMatrix(&b, c.RiskMatrix)
	writeStringList(&b, "Recommendations", "recommendations", c.Recommendations,
		"Review the completed checklist before submission")
	writeStringList(&b, "References", "references", c.References,
		"Registry filing handbook, current edition")
	b.WriteString("</article>\n")

	return b.String()
}

func writeHeader(b *strings.Builder, p report.Payload) {
	b.WriteString("<header>\n")
	fmt.Fprintf(b, "  <h1>Filing Readiness Report: %s</h1>\n", safe(p.EntityName))
	b.WriteString("  <dl class=\"meta\">\n")
	writeMetaRow(b, "Entity Type", p.EntityType)
	writeMetaRow(b, "Jurisdiction", p.Jurisdiction)
	writeMetaRow(b, "Filing Type", p.FilingType)
	writeMetaRow(b, "Deadline", p.Deadline)
	b.WriteString("  </dl>\n")
	b.WriteString("</header>\n")
}

func writeMetaRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "    <dt>%s</dt><dd>%s</dd>\n", label, safe(value))
}

func writeSummary(b *strings.Builder, summary string) {
	b.WriteString("<section class=\"summary\">\n")
	b.WriteString("  <h2>Summary</h2>\n")
	fmt.Fprintf(b, "  <p>%s</p>\n", safe(summary))
	b.WriteString("</section>\n")
}

func writeChecklist(b *strings.Builder, items []string) {
	b.WriteString("<section class=\"checklist\">\n")
	b.WriteString("  <h2>Checklist</h2>\n")
	switch {
	case items == nil:
		fmt.Fprintf(b, "  <p>%s</p>\n", Pending)
	default:
		if len(items) == 0 {
			items = []string{defaultChecklistItem}
		}
		b.WriteString("  <ul>\n")
		for _, item := range items {
			fmt.Fprintf(b, "    <li>%s</li>\n", safe(item))
		}
		b.WriteString("  </ul>\n")
	}
	b.WriteString("</section>\n")
}

func writeTimeline(b *strings.Builder, rows []report.TimelineEntry) {
	b.WriteString("<section class=\"timeline\">\n")
	b.WriteString("  <h2>Timeline</h2>\n")
	if rows == nil {
		fmt.Fprintf(b, "  <p>%s</p>\n", Pending)
		b.WriteString("</section>\n")
		return
	}
	if len(rows) == 0 {
		rows = []report.TimelineEntry{defaultTimelineRow}
	}
	b.WriteString("  <table>\n")
	b.WriteString("    <tr><th>Milestone</th><th>Owner</th><th>Due Date</th><th>Notes</th></tr>\n")
	for _, r := range rows {
		fmt.Fprintf(b, "    <tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			safe(r.Milestone), safe(r.Owner), safe(r.DueDate), safe(r.Notes))
	}
	b.WriteString("  </table>\n")
	b.WriteString("</section>\n")
}

func writeRiskMatrix(b *strings.Builder, rows []report.RiskEntry) {
	b.WriteString("<section class=\"risk-matrix\">\n")
	b.WriteString("  <h2>Risk Matrix</h2>\n")
	if rows == nil {
		fmt.Fprintf(b, "  <p>%s</p>\n", Pending)
		b.WriteString("</section>\n")
		return
	}
	if len(rows) == 0 {
		rows = []report.RiskEntry{defaultRiskRow}
	}
	b.WriteString("  <table>\n")
	b.WriteString("    <tr><th>Risk</th><th>Severity</th><th>Likelihood</th><th>Mitigation</th></tr>\n")
	for _, r := range rows {
		fmt.Fprintf(b, "    <tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			safe(r.Risk), safe(r.Severity), safe(r.Likelihood), safe(r.Mitigation))
	}
	b.WriteString("  </table>\n")
	b.WriteString("</section>\n")
}

func writeStringList(b *strings.Builder, title, class string, items []string, defaultItem string) {
	fmt.Fprintf(b, "<section class=\"%s\">\n", class)
	fmt.Fprintf(b, "  <h2>%s</h2>\n", title)
	if items == nil {
		fmt.Fprintf(b, "  <p>%s</p>\n", Pending)
		b.WriteString("</section>\n")
		return
	}
	if len(items) == 0 {
		items = []string{defaultItem}
	}
	b.WriteString("  <ol>\n")
	for _, item := range items {
		fmt.Fprintf(b, "    <li>%s</li>\n", safe(item))
	}
	b.WriteString("  </ol>\n")
	b.WriteString("</section>\n")
}

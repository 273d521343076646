package render

import (
	"strings"
	"testing"

	"filingdesk/internal/report"
)

func fullPayload() report.Payload {
	return report.Payload{
		EntityName:   "Acme Holdings Ltd",
		EntityType:   "Private limited company",
		Jurisdiction: "Delaware",
		FilingType:   "Annual report",
		Deadline:     "2026-03-01",
	}
}

func fullContent() report.GeneratedContent {
	return report.GeneratedContent{
		Summary:   "The entity is broadly ready to file.",
		Checklist: []string{"Confirm registered agent", "Collect officer signatures"},
		Timeline: []report.TimelineEntry{
			{Milestone: "Draft complete", Owner: "Legal", DueDate: "2026-02-01", Notes: "internal review"},
		},
		RiskMatrix: []report.RiskEntry{
			{Risk: "Missing signature", Severity: "High", Likelihood: "Low", Mitigation: "Chase early"},
		},
		Recommendations: []string{"File two weeks early"},
		References:      []string{"DGCL §502"},
	}
}

// TestRenderMarkup_Deterministic verifies the core identity guarantee: the
// same inputs always produce byte-identical markup and the same checksum.
func TestRenderMarkup_Deterministic(t *testing.T) {
	t.Parallel()

	p, c := fullPayload(), fullContent()
	first := RenderMarkup(p, c)
	for i := 0; i < 10; i++ {
		if got := RenderMarkup(p, c); got != first {
			t.Fatalf("render %d differs from first render", i)
		}
	}
	if Fingerprint(first) != Fingerprint(RenderMarkup(p, c)) {
		t.Fatal("checksum differs between identical renders")
	}
}

// TestRenderMarkup_Sensitivity verifies that any single field change changes
// the markup, and therefore the checksum.
func TestRenderMarkup_Sensitivity(t *testing.T) {
	t.Parallel()

	base := Fingerprint(RenderMarkup(fullPayload(), fullContent()))

	cases := []struct {
		name   string
		mutate func(*report.Payload, *report.GeneratedContent)
	}{
		{"entity_name", func(p *report.Payload, c *report.GeneratedContent) { p.EntityName += "." }},
		{"deadline", func(p *report.Payload, c *report.GeneratedContent) { p.Deadline = "2026-03-02" }},
		{"summary", func(p *report.Payload, c *report.GeneratedContent) { c.Summary += " Mostly." }},
		{"checklist_item", func(p *report.Payload, c *report.GeneratedContent) { c.Checklist[0] += "!" }},
		{"timeline_owner", func(p *report.Payload, c *report.GeneratedContent) { c.Timeline[0].Owner = "Ops" }},
		{"risk_severity", func(p *report.Payload, c *report.GeneratedContent) { c.RiskMatrix[0].Severity = "Low" }},
		{"drop_reference", func(p *report.Payload, c *report.GeneratedContent) { c.References = c.References[:0] }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p, c := fullPayload(), fullContent()
			tc.mutate(&p, &c)
			if got := Fingerprint(RenderMarkup(p, c)); got == base {
				t.Errorf("checksum unchanged after mutating %s", tc.name)
			}
		})
	}
}

// TestRenderMarkup_Placeholders verifies that every absent field produces the
// pending marker rather than an empty element, for every section.
func TestRenderMarkup_Placeholders(t *testing.T) {
	t.Parallel()

	markup := RenderMarkup(report.Payload{}, report.GeneratedContent{})

	// Five metadata fields plus six empty sections.
	want := 1 + 4 + 6
	if got := strings.Count(markup, Pending); got != want {
		t.Errorf("pending marker count = %d, want %d\n%s", got, want, markup)
	}
	for _, section := range []string{"summary", "checklist", "timeline", "risk-matrix", "recommendations", "references"} {
		if !strings.Contains(markup, `<section class="`+section+`">`) {
			t.Errorf("section %q missing from markup of empty document", section)
		}
	}
	if strings.Contains(markup, "<td></td>") || strings.Contains(markup, "<li></li>") {
		t.Error("empty document produced empty cells instead of placeholders")
	}
}

// TestRenderMarkup_Escaping verifies report content cannot inject markup.
func TestRenderMarkup_Escaping(t *testing.T) {
	t.Parallel()

	p := fullPayload()
	p.EntityName = `<script>alert("x")</script> & Co`
	c := fullContent()
	c.Checklist = []string{`check <b>this</b>`}

	markup := RenderMarkup(p, c)
	if strings.Contains(markup, "<script>") || strings.Contains(markup, "<b>") {
		t.Fatal("content markup leaked through unescaped")
	}
	if !strings.Contains(markup, "&lt;script&gt;") {
		t.Error("script tag not entity-escaped")
	}
	if !strings.Contains(markup, "&amp; Co") {
		t.Error("ampersand not entity-escaped")
	}
}

// TestRenderMarkup_EmptyVsNil verifies the absence rule: nil sections render
// the pending paragraph, present-but-empty sections render one default entry.
func TestRenderMarkup_EmptyVsNil(t *testing.T) {
	t.Parallel()

	p := fullPayload()

	nilMarkup := RenderMarkup(p, report.GeneratedContent{})
	if strings.Contains(nilMarkup, "<ul>") || strings.Contains(nilMarkup, "<table>") {
		t.Error("nil sections should render placeholders, not structures")
	}

	empty := report.GeneratedContent{
		Checklist:       []string{},
		Timeline:        []report.TimelineEntry{},
		RiskMatrix:      []report.RiskEntry{},
		Recommendations: []string{},
		References:      []string{},
	}
	emptyMarkup := RenderMarkup(p, empty)

	if got := strings.Count(emptyMarkup, "<li>"+defaultChecklistItem+"</li>"); got != 1 {
		t.Errorf("empty checklist default item count = %d, want 1", got)
	}
	if !strings.Contains(emptyMarkup, "<td>"+defaultRiskRow.Risk+"</td>") {
		t.Error("empty risk matrix missing default row")
	}
	if !strings.Contains(emptyMarkup, "<td>"+defaultTimelineRow.Milestone+"</td>") {
		t.Error("empty timeline missing default row")
	}
}

func TestRender_ChecksumMatchesMarkup(t *testing.T) {
	t.Parallel()

	doc := &report.Document{Payload: fullPayload(), Content: fullContent()}
	rendered := Render(doc)
	if !Verify(rendered.Markup, rendered.Checksum) {
		t.Fatal("freshly rendered report fails its own verification")
	}
}

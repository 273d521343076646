// Package report defines the structured report produced by the generation
// collaborator and consumed by the rendering and export pipeline.
// The types here carry no logic beyond loading and basic shape checks;
// everything observable about a report is derived from them downstream.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Payload holds the user-supplied identifying fields for a filing.
// All fields are free-form and any of them may be empty; the renderer
// substitutes placeholders for whatever is missing.
type Payload struct {
	EntityName   string `json:"entityName"`
	EntityType   string `json:"entityType"`
	Jurisdiction string `json:"jurisdiction"`
	FilingType   string `json:"filingType"`
	Deadline     string `json:"deadline"`
}

// TimelineEntry is one milestone row in the filing timeline table.
type TimelineEntry struct {
	Milestone string `json:"milestone"`
	Owner     string `json:"owner"`
	DueDate   string `json:"dueDate"`
	Notes     string `json:"notes"`
}

// RiskEntry is one row of the risk matrix.
type RiskEntry struct {
	Risk       string `json:"risk"`
	Severity   string `json:"severity"`
	Likelihood string `json:"likelihood"`
	Mitigation string `json:"mitigation"`
}

// GeneratedContent is the structured body returned by the generation
// collaborator. Every field is optional. A nil slice means the section
// was absent from the generation output and renders as a pending-input
// placeholder; an empty non-nil slice means the section was present but
// empty and renders as a single default row or item. The two cases are
// deliberately distinct.
type GeneratedContent struct {
	Summary         string          `json:"summary"`
	Checklist       []string        `json:"checklist"`
	Timeline        []TimelineEntry `json:"timeline"`
	RiskMatrix      []RiskEntry     `json:"riskMatrix"`
	Recommendations []string        `json:"recommendations"`
	References      []string        `json:"references"`
}

// Rendered is the immutable result of rendering a report: the canonical
// markup plus its content fingerprint. Checksum == render.Fingerprint(Markup)
// holds at construction and must hold again on every reload; a disagreement
// means the persisted markup was altered out-of-band.
type Rendered struct {
	ID        string    `json:"id"`
	Markup    string    `json:"markup"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"createdAt"`
}

// Document bundles a payload with its generated content. This is the unit
// the render, view and export commands operate on.
type Document struct {
	Payload Payload          `json:"payload"`
	Content GeneratedContent `json:"content"`
}

// LoadDocument reads a payload+content pair from a JSON file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report document: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse report document %s: %w", path, err)
	}
	return &doc, nil
}

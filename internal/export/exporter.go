package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"filingdesk/internal/config"
	"filingdesk/internal/export/pdf"
	"filingdesk/internal/layout"
	"filingdesk/internal/report"
)

// Exporter ties the resource loader, assembler and PDF backend together for
// a complete export run: prepare resources (the one asynchronous step), lay
// out pages, stamp footers, serialize, write the artifact.
type Exporter struct {
	cfg    *config.Config
	loader *Loader
	logger *zap.Logger
}

// NewExporter creates an exporter sharing one resource loader across runs,
// which preserves the load-once behavior for the branding icon.
func NewExporter(cfg *config.Config, loader *Loader, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{cfg: cfg, loader: loader, logger: logger}
}

// Export produces the document artifact for one report and returns its path.
func (e *Exporter) Export(ctx context.Context, doc *report.Document, rendered report.Rendered, suffix Suffix) (string, error) {
	return e.ExportAll(ctx, []Item{{Doc: doc, Rendered: rendered}}, suffix)
}

// ExportAll produces one artifact containing every given report in order.
// Each call owns its own PageState and canvas; concurrent exports of
// different reports do not share layout state.
func (e *Exporter) ExportAll(ctx context.Context, items []Item, suffix Suffix) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("no reports to export")
	}
	runID := uuid.NewString()
	typo := layout.DefaultTypography(e.cfg.Export.TypographyVersion)

	log := e.logger.With(zap.String("run_id", runID))
	log.Info("export started",
		zap.String("entity", items[0].Doc.Payload.EntityName),
		zap.Int("reports", len(items)),
		zap.Int("typography_version", typo.Version))

	dc, err := e.loader.Prepare(ctx, e.cfg.Branding, typo)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExportUnavailable, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	canvas := pdf.New(typo.PageWidth, typo.PageHeight)
	canvas.SetTitle(e.cfg.Branding.ToolkitName + " - " + items[0].Doc.Payload.EntityName)

	asm := NewAssembler(typo, e.cfg.Branding)
	if err := asm.AssembleAll(canvas, dc, items); err != nil {
		return "", fmt.Errorf("page assembly failed: %w", err)
	}

	data, err := canvas.Output()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExportUnavailable, err)
	}

	if err := os.MkdirAll(e.cfg.Export.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	name := Filename(time.Now(), "filingdesk", e.cfg.Branding.ToolkitName, suffix)
	path := filepath.Join(e.cfg.Export.OutputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}

	log.Info("export finished",
		zap.String("path", path),
		zap.Int("pages", canvas.PageCount()),
		zap.Int("bytes", len(data)))
	return path, nil
}

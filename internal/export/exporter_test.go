package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"filingdesk/internal/config"
	"filingdesk/internal/render"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Export.OutputDir = t.TempDir()
	return cfg
}

func TestExporter_WritesArtifact(t *testing.T) {
	cfg := testConfig(t)
	exporter := NewExporter(cfg, NewLoader(nil, nil), nil)

	doc := smallDocument()
	path, err := exporter.Export(context.Background(), doc, render.Render(doc), SuffixReport)
	if err != nil {
		t.Fatal(err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, time.Now().Format("2006-01-02")+"_filingdesk_") {
		t.Errorf("artifact name %q missing date and brand prefix", name)
	}
	if !strings.HasSuffix(name, "_Report.pdf") {
		t.Errorf("artifact name %q missing suffix", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("artifact is not a PDF")
	}
}

func TestExporter_CancelledContext(t *testing.T) {
	cfg := testConfig(t)
	exporter := NewExporter(cfg, NewLoader(nil, nil), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := smallDocument()
	if _, err := exporter.Export(ctx, doc, render.Render(doc), SuffixReport); err == nil {
		t.Fatal("cancelled export must not produce an artifact")
	}
	entries, err := os.ReadDir(cfg.Export.OutputDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cancelled export left %d file(s) behind", len(entries))
	}
}

func TestExporter_RejectsEmptyBatch(t *testing.T) {
	cfg := testConfig(t)
	exporter := NewExporter(cfg, NewLoader(nil, nil), nil)

	if _, err := exporter.ExportAll(context.Background(), nil, SuffixAllResults); err == nil {
		t.Fatal("empty batch must be rejected")
	}
}

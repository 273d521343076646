package export

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/goleak"

	"filingdesk/internal/config"
	"filingdesk/internal/layout"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLoaderPrepare_FontsAlwaysResolved(t *testing.T) {
	l := NewLoader(nil, nil)
	dc, err := l.Prepare(context.Background(), config.BrandingConfig{}, layout.TypographyV3())
	if err != nil {
		t.Fatal(err)
	}
	if dc.BodyFont == nil || dc.HeadingFont == nil {
		t.Fatal("fonts must be resolved before any page can be drawn")
	}
	if dc.Icon != nil {
		t.Error("no icon URL configured, yet icon bytes present")
	}
}

func TestLoaderPrepare_FetchesIcon(t *testing.T) {
	icon := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(icon)
	}))
	defer srv.Close()

	l := NewLoader(srv.Client(), nil)
	branding := config.BrandingConfig{IconURL: srv.URL + "/icon.png"}
	dc, err := l.Prepare(context.Background(), branding, layout.TypographyV3())
	if err != nil {
		t.Fatal(err)
	}
	if string(dc.Icon) != string(icon) {
		t.Errorf("icon bytes = %v, want %v", dc.Icon, icon)
	}
}

// TestLoaderPrepare_IconFailureIsNonFatal verifies the degrade rule: a dead
// icon endpoint does not prevent the export.
func TestLoaderPrepare_IconFailureIsNonFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	l := NewLoader(srv.Client(), nil)
	branding := config.BrandingConfig{IconURL: srv.URL + "/icon.png"}
	dc, err := l.Prepare(context.Background(), branding, layout.TypographyV3())
	if err != nil {
		t.Fatalf("icon failure must degrade, got error: %v", err)
	}
	if dc.Icon != nil {
		t.Error("failed fetch left icon bytes behind")
	}
	if dc.BodyFont == nil {
		t.Error("fonts must still resolve when the icon fails")
	}
}

// TestLoaderPrepare_LoadsOnce verifies the cache: the second Prepare call
// returns the first context without refetching.
func TestLoaderPrepare_LoadsOnce(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("icon-bytes"))
	}))
	defer srv.Close()

	l := NewLoader(srv.Client(), nil)
	branding := config.BrandingConfig{IconURL: srv.URL}
	first, err := l.Prepare(context.Background(), branding, layout.TypographyV3())
	if err != nil {
		t.Fatal(err)
	}
	second, err := l.Prepare(context.Background(), branding, layout.TypographyV3())
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("second Prepare returned a different context")
	}
	if hits != 1 {
		t.Errorf("icon endpoint hit %d times, want 1", hits)
	}
}

// TestLoaderPrepare_RetriesIconAfterFailure verifies a degraded run does not
// poison the cache: once the endpoint recovers, the next Prepare gets the
// icon.
func TestLoaderPrepare_RetriesIconAfterFailure(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "flaky", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("icon-bytes"))
	}))
	defer srv.Close()

	l := NewLoader(srv.Client(), nil)
	branding := config.BrandingConfig{IconURL: srv.URL}

	first, err := l.Prepare(context.Background(), branding, layout.TypographyV3())
	if err != nil {
		t.Fatal(err)
	}
	if first.Icon != nil {
		t.Fatal("failed fetch produced icon bytes")
	}

	second, err := l.Prepare(context.Background(), branding, layout.TypographyV3())
	if err != nil {
		t.Fatal(err)
	}
	if string(second.Icon) != "icon-bytes" {
		t.Errorf("retry after failure got icon %q, want %q", second.Icon, "icon-bytes")
	}
	if calls != 2 {
		t.Errorf("icon endpoint hit %d times, want 2", calls)
	}

	// The successful context is now cached.
	third, err := l.Prepare(context.Background(), branding, layout.TypographyV3())
	if err != nil {
		t.Fatal(err)
	}
	if third != second {
		t.Error("successful Prepare was not cached")
	}
}

func TestLoaderPrepare_RespectsContext(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	l := NewLoader(srv.Client(), nil)
	branding := config.BrandingConfig{IconURL: srv.URL}
	dc, err := l.Prepare(ctx, branding, layout.TypographyV3())
	// The icon fetch is cut off by the context but that path degrades, so
	// Prepare still succeeds without icon bytes.
	if err != nil {
		t.Fatalf("cancelled icon fetch must degrade, got: %v", err)
	}
	if dc.Icon != nil {
		t.Error("cancelled fetch should not produce icon bytes")
	}
}

package export

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"filingdesk/internal/config"
	"filingdesk/internal/layout"
)

// DrawingContext holds the resources an export run needs before layout can
// begin. Icon is nil when the branding icon could not be fetched; layout
// proceeds with the icon area left blank.
type DrawingContext struct {
	Icon        []byte
	BodyFont    *layout.Font
	HeadingFont *layout.Font
}

// Loader prepares drawing resources ahead of an export run. A fully loaded
// context is cached for the Loader's lifetime; after a degraded run the next
// Prepare retries the icon fetch. Construct one per process and pass it by
// reference rather than caching in package state.
type Loader struct {
	client *http.Client
	logger *zap.Logger

	mu   sync.Mutex
	done bool
	ctx  *DrawingContext
}

// NewLoader creates a loader. A nil client gets a default with a sane
// timeout; a nil logger is replaced with a no-op.
func NewLoader(client *http.Client, logger *zap.Logger) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{client: client, logger: logger}
}

// Prepare fetches the branding icon and resolves font metrics concurrently,
// returning once everything required is ready. This is the single suspension
// point of an export run; everything after it is synchronous.
//
// Icon failure is non-fatal. A missing font table is fatal and surfaces as
// ErrExportUnavailable, since no page can be drawn without metrics.
func (l *Loader) Prepare(ctx context.Context, branding config.BrandingConfig, typo layout.Typography) (*DrawingContext, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done {
		return l.ctx, nil
	}

	dc := &DrawingContext{}

	var iconFailed bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		dc.BodyFont = layout.CoreFont(typo.BodyFont)
		dc.HeadingFont = layout.CoreFont(typo.HeadingFont)
		if dc.BodyFont == nil || dc.HeadingFont == nil {
			return ErrExportUnavailable
		}
		return nil
	})
	g.Go(func() error {
		if branding.IconURL == "" {
			return nil
		}
		icon, err := l.fetchIcon(gctx, branding.IconURL)
		if err != nil {
			// Degrade: the header renders without an icon.
			iconFailed = true
			l.logger.Warn("branding icon unavailable",
				zap.String("url", branding.IconURL),
				zap.Error(err))
			return nil
		}
		dc.Icon = icon
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Cache only complete contexts. A degraded run still exports, but the
	// next run retries the icon instead of inheriting the blank area.
	if !iconFailed {
		l.done = true
		l.ctx = dc
	}
	return dc, nil
}

func (l *Loader) fetchIcon(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build icon request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("icon fetch failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("icon fetch returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read icon body: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("icon fetch returned empty body")
	}
	return data, nil
}

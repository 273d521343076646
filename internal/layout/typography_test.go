package layout

import "testing"

func TestDefaultTypography(t *testing.T) {
	t.Parallel()

	for _, version := range []int{1, 2, 3} {
		typo := DefaultTypography(version)
		if typo.Version != version {
			t.Errorf("DefaultTypography(%d).Version = %d", version, typo.Version)
		}
		if typo.ContentWidth() <= 0 {
			t.Errorf("version %d: non-positive content width", version)
		}
		if typo.LinesPerPage() < 10 {
			t.Errorf("version %d: implausible lines per page %d", version, typo.LinesPerPage())
		}
	}

	// Unknown versions fall back to the current scheme.
	if got := DefaultTypography(99).Version; got != 3 {
		t.Errorf("unknown version resolved to %d, want 3", got)
	}
}

func TestTypographyBudgets(t *testing.T) {
	t.Parallel()

	typo := TypographyV3()
	wantWidth := typo.PageWidth - 2*typo.Margin
	if got := typo.ContentWidth(); got != wantWidth {
		t.Errorf("ContentWidth() = %v, want %v", got, wantWidth)
	}
	wantHeight := typo.PageHeight - 2*typo.Margin - typo.HeaderBand - typo.FooterBand
	if got := typo.UsableHeight(); got != wantHeight {
		t.Errorf("UsableHeight() = %v, want %v", got, wantHeight)
	}
}

func TestFontMetrics(t *testing.T) {
	t.Parallel()

	helv := CoreFont("helvetica")
	if helv == nil {
		t.Fatal("helvetica core font missing")
	}

	// A wide glyph measures wider than a narrow one at the same size.
	if helv.TextWidth("WWW", 10) <= helv.TextWidth("iii", 10) {
		t.Error("proportional font reports W no wider than i")
	}
	// Courier is fixed pitch.
	cour := CoreFont("courier")
	if cour.TextWidth("WWW", 10) != cour.TextWidth("iii", 10) {
		t.Error("courier should be fixed pitch")
	}
	// Width scales linearly with size.
	if got, want := helv.TextWidth("file", 20), 2*helv.TextWidth("file", 10); got != want {
		t.Errorf("width at 20pt = %v, want double the 10pt width %v", got, want)
	}

	measure := helv.Measure(10)
	if measure("deadline") != helv.TextWidth("deadline", 10) {
		t.Error("Measure closure disagrees with TextWidth")
	}

	// Unknown names resolve to the default face rather than nil.
	if CoreFont("comic sans") == nil {
		t.Error("unknown font name should fall back, not return nil")
	}
}

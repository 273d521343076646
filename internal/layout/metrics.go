// Package layout implements the text layout engine: font metrics, greedy
// word-wrap and the page-break policy. It is agnostic to the concrete
// drawing surface; width measurement is pluggable and every function here
// is pure.
package layout

import "strings"

// WidthFunc measures the rendered width of a string in points. The wrap
// algorithm depends only on this signature, never on a concrete font, so
// tests can drive it with fixed-width measurers.
type WidthFunc func(text string) float64

// Font holds per-character advance widths in thousandths of an em, the unit
// used by the standard PDF core font metrics. Widths outside the table fall
// back to the '?' width.
type Font struct {
	Name   string
	widths [256]int
}

// CharWidth returns the advance width of byte c in thousandths of an em.
func (f *Font) CharWidth(c byte) int {
	if w := f.widths[c]; w > 0 {
		return w
	}
	return f.widths['?']
}

// TextWidth returns the width of s in points at the given font size.
func (f *Font) TextWidth(s string, size float64) float64 {
	w := 0
	for i := 0; i < len(s); i++ {
		w += f.CharWidth(s[i])
	}
	return float64(w) * size / 1000
}

// Measure returns a WidthFunc bound to this font at a fixed size.
func (f *Font) Measure(size float64) WidthFunc {
	return func(text string) float64 {
		return f.TextWidth(text, size)
	}
}

// Core font width tables for the Latin range, taken from the standard
// Type1 AFM metrics. Bytes above 0x7E use the lowercase fallback width.
var (
	helvetica     = newCoreFont("Helvetica", helveticaWidths, 556)
	helveticaBold = newCoreFont("Helvetica-Bold", helveticaBoldWidths, 556)
	courier       = newCoreFont("Courier", nil, 600)
)

// CoreFont returns the metrics for one of the built-in fonts. Unknown names
// resolve to Helvetica so layout never fails on a misspelled config value.
func CoreFont(name string) *Font {
	switch strings.ToLower(name) {
	case "helvetica", "arial", "":
		return helvetica
	case "helvetica-bold", "arial-bold":
		return helveticaBold
	case "courier":
		return courier
	default:
		return helvetica
	}
}

// newCoreFont builds a Font from an ASCII width table starting at 0x20.
// A nil table means a fixed-pitch font where every glyph has the same width.
func newCoreFont(name string, ascii []int, fallback int) *Font {
	f := &Font{Name: name}
	for i := range f.widths {
		f.widths[i] = fallback
	}
	for i, w := range ascii {
		f.widths[0x20+i] = w
	}
	return f
}

// helveticaWidths covers 0x20..0x7E.
var helveticaWidths = []int{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333,
	278, 278, 556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278,
	584, 584, 584, 556, 1015, 667, 667, 722, 722, 667, 611, 778, 722, 278,
	500, 667, 556, 833, 722, 778, 667, 778, 722, 667, 611, 722, 667, 944,
	667, 667, 611, 278, 278, 278, 469, 556, 333, 556, 556, 500, 556, 556,
	278, 556, 556, 222, 222, 500, 222, 833, 556, 556, 556, 556, 333, 500,
	278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584,
}

// helveticaBoldWidths covers 0x20..0x7E.
var helveticaBoldWidths = []int{
	278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333,
	278, 278, 556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 333, 333,
	584, 584, 584, 611, 975, 722, 722, 722, 722, 667, 611, 778, 722, 278,
	556, 722, 611, 833, 722, 778, 667, 778, 722, 667, 611, 722, 667, 944,
	667, 667, 611, 333, 278, 333, 584, 556, 333, 556, 611, 556, 611, 556,
	333, 611, 611, 278, 278, 556, 278, 889, 611, 611, 611, 611, 389, 556,
	333, 611, 556, 778, 556, 556, 500, 389, 280, 389, 584,
}

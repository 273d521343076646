// Package export drives the two-pass page assembly that turns layout blocks
// into a finished multi-page document: pass 1 places content and draws header
// furniture as each page starts, pass 2 stamps footers once the total page
// count is known. Output is only surfaced after pass 2 completes, so an
// aborted export never shows a partial document.
package export

import "errors"

// ErrExportUnavailable is returned when the drawing backend cannot be
// prepared. Icon failures degrade gracefully and never produce this error.
var ErrExportUnavailable = errors.New("export unavailable: drawing backend failed to load")

// Canvas is the abstract vector drawing surface the assembler draws on.
// Coordinates use a top-left origin in points. SelectPage allows pass 2 to
// revisit pages created in pass 1.
type Canvas interface {
	AddPage()
	SelectPage(index int)
	PageCount() int
	SetFont(name string, size float64)
	SetGray(gray float64)
	Text(x, y float64, text string)
	Line(x1, y1, x2, y2 float64)
	FillRect(x, y, w, h, gray float64)
	CircleImage(raw []byte, x, y, dia float64) error
}

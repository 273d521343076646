package export

import (
	"fmt"
	"time"

	"filingdesk/internal/config"
	"filingdesk/internal/layout"
	"filingdesk/internal/render"
	"filingdesk/internal/report"
)

// footerFontSize is the point size of the footer band text.
const footerFontSize = 9

// iconDiameter is the circle-masked branding icon size in points.
const iconDiameter = 34

// PageState is the mutable layout cursor for one export run. It is owned by a
// single Assemble call and discarded when the run ends; nothing here is ever
// persisted.
type PageState struct {
	PageIndex    int
	Cursor       float64 // vertical position from the page top, in points
	BlocksOnPage int
}

// Assembler lays a block sequence onto pages in two passes. Pass 1 places
// content and draws header furniture the moment each page starts; pass 2
// stamps every footer once the final page count is known. "Page N of T"
// cannot be drawn during pass 1 because T does not exist yet.
type Assembler struct {
	typo     layout.Typography
	branding config.BrandingConfig
}

// NewAssembler builds an assembler for one typography revision and branding.
func NewAssembler(typo layout.Typography, branding config.BrandingConfig) *Assembler {
	return &Assembler{typo: typo, branding: branding}
}

// Item is one document scheduled for assembly.
type Item struct {
	Doc      *report.Document
	Rendered report.Rendered
}

// Assemble renders the document's blocks onto the canvas. The checksum is
// drawn into the header furniture so a reader can compare it against the
// on-screen panel.
func (a *Assembler) Assemble(canvas Canvas, dc *DrawingContext, doc *report.Document, rendered report.Rendered) error {
	return a.AssembleAll(canvas, dc, []Item{{Doc: doc, Rendered: rendered}})
}

// AssembleAll lays out several reports into one artifact, each starting on a
// fresh page. Footers are stamped once, after the combined layout, so the
// page totals cover the whole artifact.
func (a *Assembler) AssembleAll(canvas Canvas, dc *DrawingContext, items []Item) error {
	if len(items) == 0 {
		return fmt.Errorf("nothing to assemble")
	}
	for _, item := range items {
		blocks := render.ToBlocks(item.Doc.Payload, item.Doc.Content)

		run := &assemblyRun{
			a:        a,
			canvas:   canvas,
			dc:       dc,
			checksum: item.Rendered.Checksum,
			stamp:    item.Rendered.CreatedAt,
		}
		if run.stamp.IsZero() {
			run.stamp = time.Now().UTC()
		}

		// Pass 1: layout. Headers are drawn as pages start; footers are not.
		run.newPage()
		for _, b := range blocks {
			if err := run.place(b); err != nil {
				return err
			}
		}
	}

	// Pass 2: footer stamping across every page created above.
	a.stampFooters(canvas, dc)
	return nil
}

type assemblyRun struct {
	a        *Assembler
	canvas   Canvas
	dc       *DrawingContext
	checksum string
	stamp    time.Time

	page PageState
}

// bodyTop is where content starts below the header band.
func (r *assemblyRun) bodyTop() float64 {
	return r.a.typo.Margin + r.a.typo.HeaderBand
}

// bodyBottom is the last usable baseline before the reserved footer band.
func (r *assemblyRun) bodyBottom() float64 {
	return r.a.typo.PageHeight - r.a.typo.Margin - r.a.typo.FooterBand
}

// linesRemaining converts the vertical budget left on the page into whole
// body lines.
func (r *assemblyRun) linesRemaining() int {
	return int((r.bodyBottom() - r.page.Cursor) / r.a.typo.LineHeight)
}

// newPage starts a page and draws its header furniture immediately: the
// circle-masked icon (when available), the toolkit title, the generation
// timestamp and the content checksum.
func (r *assemblyRun) newPage() {
	t := r.a.typo
	r.canvas.AddPage()
	r.page = PageState{PageIndex: r.canvas.PageCount(), Cursor: r.bodyTop()}

	x := t.Margin
	if r.dc.Icon != nil {
		if err := r.canvas.CircleImage(r.dc.Icon, t.Margin, t.Margin-6, iconDiameter); err == nil {
			x += iconDiameter + 10
		}
		// A bad icon leaves the area blank, same as a failed fetch.
	}

	r.canvas.SetGray(0)
	r.canvas.SetFont(t.HeadingFont, t.H2Size)
	r.canvas.Text(x, t.Margin+10, r.a.branding.ToolkitName)

	r.canvas.SetGray(0.4)
	r.canvas.SetFont(t.BodyFont, footerFontSize)
	r.canvas.Text(x, t.Margin+22, "Generated "+r.stamp.Format("2006-01-02 15:04 MST"))

	checksumLabel := "Checksum " + r.checksum
	cw := r.dc.BodyFont.TextWidth(checksumLabel, footerFontSize)
	r.canvas.Text(t.PageWidth-t.Margin-cw, t.Margin+22, checksumLabel)

	r.canvas.SetGray(0)
	r.canvas.Line(t.Margin, t.Margin+t.HeaderBand-10, t.PageWidth-t.Margin, t.Margin+t.HeaderBand-10)
}

// place routes one block through the page-break policy and draws it.
func (r *assemblyRun) place(b render.Block) error {
	switch b.Kind {
	case render.BlockSeparator:
		r.page.Cursor += r.a.typo.SeparatorGap
		return nil
	case render.BlockHeading:
		return r.placeHeading(b)
	case render.BlockParagraph:
		return r.placeParagraph(b.Text)
	case render.BlockListItem:
		return r.placeListItem(b)
	case render.BlockTableRow:
		return r.placeTableRow(b)
	default:
		return fmt.Errorf("unknown block kind %d", b.Kind)
	}
}

// placeHeading treats the heading as an atomic unit: it either fits on the
// current page or starts a new one.
func (r *assemblyRun) placeHeading(b render.Block) error {
	t := r.a.typo
	size := t.HeadingSize(b.Level)
	lines := layout.Wrap(b.Text, t.ContentWidth(), r.dc.HeadingFont.Measure(size))
	if len(lines) == 0 {
		return nil
	}
	if len(lines) > r.linesRemaining() {
		r.newPage()
	}
	r.canvas.SetFont(t.HeadingFont, size)
	for _, line := range lines {
		r.page.Cursor += t.LineHeight
		r.canvas.Text(t.Margin, r.page.Cursor, line)
	}
	r.page.Cursor += t.ParagraphGap
	r.page.BlocksOnPage++
	return nil
}

// placeParagraph applies the widow/orphan rule: a paragraph splits across the
// page boundary only when at least two of its leading lines fit; otherwise
// the whole paragraph moves to the next page.
func (r *assemblyRun) placeParagraph(text string) error {
	t := r.a.typo
	lines := layout.Wrap(text, t.ContentWidth(), r.dc.BodyFont.Measure(t.BodySize))
	r.canvas.SetFont(t.BodyFont, t.BodySize)

	for len(lines) > 0 {
		now, next := layout.SplitLines(lines, r.linesRemaining())
		for _, line := range now {
			r.page.Cursor += t.LineHeight
			r.canvas.Text(t.Margin, r.page.Cursor, line)
		}
		if next == nil {
			break
		}
		r.newPage()
		r.canvas.SetFont(t.BodyFont, t.BodySize)
		lines = next
	}
	r.page.Cursor += t.ParagraphGap
	r.page.BlocksOnPage++
	return nil
}

// placeListItem draws one bullet or ordinal item as an atomic unit.
func (r *assemblyRun) placeListItem(b render.Block) error {
	t := r.a.typo
	marker := "• "
	if b.Ordinal > 0 {
		marker = fmt.Sprintf("%d. ", b.Ordinal)
	}
	indent := r.dc.BodyFont.TextWidth("99. ", t.BodySize)
	lines := layout.Wrap(b.Text, t.ContentWidth()-indent, r.dc.BodyFont.Measure(t.BodySize))
	if len(lines) == 0 {
		return nil
	}
	if len(lines) > r.linesRemaining() {
		r.newPage()
	}
	r.canvas.SetFont(t.BodyFont, t.BodySize)
	for i, line := range lines {
		r.page.Cursor += t.LineHeight
		if i == 0 {
			r.canvas.Text(t.Margin, r.page.Cursor, marker+line)
		} else {
			r.canvas.Text(t.Margin+indent, r.page.Cursor, line)
		}
	}
	r.page.BlocksOnPage++
	return nil
}

// placeTableRow draws one row as an atomic unit. Rows are independent blocks,
// so a table may continue on the next page without re-emitting its header
// row; the column-title row is set in the heading font over a filled band.
func (r *assemblyRun) placeTableRow(b render.Block) error {
	t := r.a.typo
	colWidth := t.ContentWidth() / float64(len(b.Cells))
	font := r.dc.BodyFont
	if b.Header {
		font = r.dc.HeadingFont
	}
	cells := layout.WrapCells(b.Cells, colWidth-6, font.Measure(t.BodySize))
	rowLines := len(cells[0])

	if rowLines > r.linesRemaining() {
		r.newPage()
	}
	top := r.page.Cursor
	height := float64(rowLines) * t.LineHeight
	if b.Header {
		r.canvas.FillRect(t.Margin, top, t.ContentWidth(), height, 0.92)
	}
	r.canvas.SetFont(font.Name, t.BodySize)
	for col, colLines := range cells {
		x := t.Margin + float64(col)*colWidth + 3
		y := top
		for _, line := range colLines {
			y += t.LineHeight
			r.canvas.Text(x, y, line)
		}
	}
	r.page.Cursor = top + height
	r.canvas.Line(t.Margin, r.page.Cursor, t.PageWidth-t.Margin, r.page.Cursor)
	r.page.BlocksOnPage++
	return nil
}

// stampFooters revisits every page from pass 1 and draws its footer: the
// brand attribution left-aligned and "Page N of T" right-aligned. No layout
// runs here; page cursors are untouched.
func (a *Assembler) stampFooters(canvas Canvas, dc *DrawingContext) {
	t := a.typo
	total := canvas.PageCount()
	y := t.PageHeight - t.Margin
	for n := 1; n <= total; n++ {
		canvas.SelectPage(n)
		canvas.SetGray(0.4)
		canvas.SetFont(t.BodyFont, footerFontSize)
		canvas.Line(t.Margin, y-14, t.PageWidth-t.Margin, y-14)
		canvas.Text(t.Margin, y, a.branding.BrandLine)

		label := fmt.Sprintf("Page %d of %d", n, total)
		w := dc.BodyFont.TextWidth(label, footerFontSize)
		canvas.Text(t.PageWidth-t.Margin-w, y, label)
	}
}

package layout

// Typography captures the type sizes and spacing used by one revision of the
// export engine. Successive stylistic revisions of the exporter are plain
// data here rather than parallel code paths; the layout and assembly code is
// shared across all of them.
type Typography struct {
	Version int

	BodyFont    string
	HeadingFont string

	BodySize float64 // points
	H1Size   float64
	H2Size   float64

	LineHeight   float64 // points per body line
	ParagraphGap float64 // space after a paragraph
	RowHeight    float64 // table row height
	SeparatorGap float64 // height of a separator block

	// Page geometry, in points (1/72 inch).
	PageWidth  float64
	PageHeight float64
	Margin     float64

	// Furniture bands reserved at the top and bottom of every page. The
	// footer band is excluded from the usable height during layout so the
	// deferred footer stamp never collides with body content.
	HeaderBand float64
	FooterBand float64
}

// ContentWidth is the horizontal budget for body text.
func (t Typography) ContentWidth() float64 {
	return t.PageWidth - 2*t.Margin
}

// UsableHeight is the vertical budget for body content on one page.
func (t Typography) UsableHeight() float64 {
	return t.PageHeight - 2*t.Margin - t.HeaderBand - t.FooterBand
}

// LinesPerPage is how many body lines fit in the usable height.
func (t Typography) LinesPerPage() int {
	return int(t.UsableHeight() / t.LineHeight)
}

// HeadingSize maps a heading level to its point size.
func (t Typography) HeadingSize(level int) float64 {
	if level <= 1 {
		return t.H1Size
	}
	return t.H2Size
}

// TypographyV1 is the original exporter style: dense, small margins.
func TypographyV1() Typography {
	return Typography{
		Version:      1,
		BodyFont:     "helvetica",
		HeadingFont:  "helvetica-bold",
		BodySize:     10,
		H1Size:       16,
		H2Size:       12,
		LineHeight:   14,
		ParagraphGap: 6,
		RowHeight:    16,
		SeparatorGap: 8,
		PageWidth:    595.28, // A4
		PageHeight:   841.89,
		Margin:       40,
		HeaderBand:   52,
		FooterBand:   30,
	}
}

// TypographyV2 widened the margins and header band after the icon was added.
func TypographyV2() Typography {
	t := TypographyV1()
	t.Version = 2
	t.Margin = 48
	t.HeaderBand = 60
	return t
}

// TypographyV3 is the current style: larger body type and looser leading.
func TypographyV3() Typography {
	t := TypographyV2()
	t.Version = 3
	t.BodySize = 11
	t.LineHeight = 16
	t.ParagraphGap = 8
	t.RowHeight = 18
	return t
}

// DefaultTypography returns the style for the given version, defaulting to
// the current one for unknown values.
func DefaultTypography(version int) Typography {
	switch version {
	case 1:
		return TypographyV1()
	case 2:
		return TypographyV2()
	default:
		return TypographyV3()
	}
}

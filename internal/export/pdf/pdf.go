// Package pdf is a minimal PDF writer for the export pipeline. It keeps each
// page as a list of content-stream fragments, so earlier pages can still be
// drawn on after later ones exist; the page assembler relies on that to stamp
// footers after the total page count is known.
//
// Only what the assembler needs is implemented: the three standard core
// fonts, text, lines, rectangles and a circle-masked image.
package pdf

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"image"
	stdjpeg "image/jpeg"
	_ "image/png"
	"sort"
	"strconv"
	"strings"
	"time"
)

// circleKappa is the Bézier control-point factor approximating a quarter arc.
const circleKappa = 0.5523

type coreFont struct {
	baseName string // PDF BaseFont name
	index    int    // /F<index> resource id
	objNum   int
}

type embeddedImage struct {
	w, h   int
	data   []byte // DCT-encoded
	index  int    // /I<index> resource id
	objNum int
}

// Document is an in-progress PDF. Coordinates on the public methods use a
// top-left origin in points; conversion to PDF's bottom-left space happens
// at emission time.
type Document struct {
	pageWidth  float64
	pageHeight float64

	pages   [][]string // content fragments, one slice per page
	current int        // 1-based index of the page being drawn on

	fonts    map[string]*coreFont
	fontSeq  int
	curFont  *coreFont
	curSize  float64
	images   []*embeddedImage
	imageIdx map[string]*embeddedImage // raw bytes -> registered XObject
	metadata map[string]string

	// object writer state
	buf     bytes.Buffer
	objNum  int
	offsets map[int]int

	compress bool
}

// New creates a document with the given page size in points.
func New(pageWidth, pageHeight float64) *Document {
	return &Document{
		pageWidth:  pageWidth,
		pageHeight: pageHeight,
		fonts:      make(map[string]*coreFont),
		imageIdx:   make(map[string]*embeddedImage),
		metadata:   map[string]string{"Producer": "filingdesk"},
		offsets:    make(map[int]int),
		objNum:     2,
		compress:   true,
	}
}

// AddPage appends a new page and makes it current.
func (d *Document) AddPage() {
	d.pages = append(d.pages, nil)
	d.current = len(d.pages)
	if d.curFont != nil {
		// Re-assert the font state on the fresh content stream.
		d.out(fmt.Sprintf("BT /F%d %.2f Tf ET", d.curFont.index, d.curSize))
	}
}

// SelectPage switches drawing to an existing page (1-based). Used by the
// footer pass.
func (d *Document) SelectPage(index int) {
	if index >= 1 && index <= len(d.pages) {
		d.current = index
		if d.curFont != nil {
			d.out(fmt.Sprintf("BT /F%d %.2f Tf ET", d.curFont.index, d.curSize))
		}
	}
}

// PageCount returns the number of pages added so far.
func (d *Document) PageCount() int { return len(d.pages) }

// SetTitle records the document title in the info dictionary.
func (d *Document) SetTitle(title string) { d.metadata["Title"] = title }

// SetFont selects one of the standard core fonts by family name.
func (d *Document) SetFont(name string, size float64) {
	base := resolveBaseFont(name)
	f, ok := d.fonts[base]
	if !ok {
		d.fontSeq++
		f = &coreFont{baseName: base, index: d.fontSeq}
		d.fonts[base] = f
	}
	d.curFont = f
	d.curSize = size
	if d.current > 0 {
		d.out(fmt.Sprintf("BT /F%d %.2f Tf ET", f.index, size))
	}
}

func resolveBaseFont(name string) string {
	switch strings.ToLower(name) {
	case "helvetica-bold", "arial-bold":
		return "Helvetica-Bold"
	case "courier":
		return "Courier"
	default:
		return "Helvetica"
	}
}

// Text draws a string with its baseline at (x, y), top-left origin.
func (d *Document) Text(x, y float64, text string) {
	d.out(fmt.Sprintf("BT %.2f %.2f Td (%s) Tj ET", x, d.pageHeight-y, escape(text)))
}

// Line draws a stroked line between two points, top-left origin.
func (d *Document) Line(x1, y1, x2, y2 float64) {
	d.out(fmt.Sprintf("%.2f %.2f m %.2f %.2f l S", x1, d.pageHeight-y1, x2, d.pageHeight-y2))
}

// FillRect fills a rectangle with a gray level in [0,1].
func (d *Document) FillRect(x, y, w, h float64, gray float64) {
	d.out(fmt.Sprintf("q %.3f g %.2f %.2f %.2f %.2f re f Q", gray, x, d.pageHeight-y, w, -h))
}

// SetGray sets the text/stroke gray level for subsequent operations.
func (d *Document) SetGray(gray float64) {
	d.out(fmt.Sprintf("%.3f g %.3f G", gray, gray))
}

// CircleImage draws raw image bytes clipped to a circle of diameter dia whose
// top-left bounding corner is (x, y), then strokes a thin ring on top.
func (d *Document) CircleImage(raw []byte, x, y, dia float64) error {
	img, err := d.registerImage(raw)
	if err != nil {
		return err
	}
	cx := x + dia/2
	cy := d.pageHeight - y - dia/2
	r := dia / 2

	d.out("q")
	d.circlePath(cx, cy, r)
	d.out("W n")
	d.out(fmt.Sprintf("%.2f 0 0 %.2f %.2f %.2f cm /I%d Do", dia, dia, x, d.pageHeight-y-dia, img.index))
	d.out("Q")

	// Thin ring over the mask edge.
	d.out("q 0.75 w 0.60 G")
	d.circlePath(cx, cy, r)
	d.out("S Q")
	return nil
}

// circlePath emits a four-arc Bézier approximation of a circle in PDF space.
func (d *Document) circlePath(cx, cy, r float64) {
	k := circleKappa * r
	d.out(fmt.Sprintf("%.2f %.2f m", cx+r, cy))
	d.out(fmt.Sprintf("%.2f %.2f %.2f %.2f %.2f %.2f c", cx+r, cy+k, cx+k, cy+r, cx, cy+r))
	d.out(fmt.Sprintf("%.2f %.2f %.2f %.2f %.2f %.2f c", cx-k, cy+r, cx-r, cy+k, cx-r, cy))
	d.out(fmt.Sprintf("%.2f %.2f %.2f %.2f %.2f %.2f c", cx-r, cy-k, cx-k, cy-r, cx, cy-r))
	d.out(fmt.Sprintf("%.2f %.2f %.2f %.2f %.2f %.2f c", cx+k, cy-r, cx+r, cy-k, cx+r, cy))
}

// registerImage decodes raw PNG/JPEG bytes and stores them DCT-encoded.
// Identical bytes register once; repeated draws reuse the same XObject.
func (d *Document) registerImage(raw []byte) (*embeddedImage, error) {
	if img, ok := d.imageIdx[string(raw)]; ok {
		return img, nil
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("unsupported image: %w", err)
	}
	data := raw
	if format != "jpeg" {
		decoded, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s image: %w", format, err)
		}
		var enc bytes.Buffer
		if err := stdjpeg.Encode(&enc, decoded, &stdjpeg.Options{Quality: 90}); err != nil {
			return nil, fmt.Errorf("failed to re-encode image: %w", err)
		}
		data = enc.Bytes()
	}
	img := &embeddedImage{w: cfg.Width, h: cfg.Height, data: data, index: len(d.images) + 1}
	d.images = append(d.images, img)
	d.imageIdx[string(raw)] = img
	return img, nil
}

func (d *Document) out(s string) {
	if d.current == 0 {
		return
	}
	d.pages[d.current-1] = append(d.pages[d.current-1], s)
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "(", "\\(")
	s = strings.ReplaceAll(s, ")", "\\)")
	// Transcode the few non-ASCII glyphs the layout emits to their
	// WinAnsi code points.
	s = strings.ReplaceAll(s, "—", "\x97") // em dash
	s = strings.ReplaceAll(s, "–", "\x96") // en dash
	s = strings.ReplaceAll(s, "•", "\x95") // bullet
	return s
}

// Output serializes the document. The writer layout follows the classic FPDF
// structure: header, page tree, content streams, resources, info, catalog,
// xref, trailer.
func (d *Document) Output() ([]byte, error) {
	if len(d.pages) == 0 {
		return nil, fmt.Errorf("document has no pages")
	}
	d.buf.Reset()
	d.offsets = make(map[int]int)
	d.objNum = 2

	d.put("%PDF-1.4")

	pageObjs := make([]int, len(d.pages))
	for i, frags := range d.pages {
		content := strings.Join(frags, "\n") + "\n"

		d.newObj()
		pageObjs[i] = d.objNum
		d.put("<</Type /Page")
		d.put("/Parent 1 0 R")
		d.put(fmt.Sprintf("/MediaBox [0 0 %.2f %.2f]", d.pageWidth, d.pageHeight))
		d.put("/Resources 2 0 R")
		d.put(fmt.Sprintf("/Contents %d 0 R>>", d.objNum+1))
		d.put("endobj")

		d.putStreamObject([]byte(content))
	}

	d.putFonts()
	d.putImages()

	// Object 1: page tree root.
	d.writeObjAt(1, func() {
		d.put("<</Type /Pages")
		kids := "/Kids ["
		for _, n := range pageObjs {
			kids += strconv.Itoa(n) + " 0 R "
		}
		d.put(kids + "]")
		d.put("/Count " + strconv.Itoa(len(d.pages)))
		d.put(fmt.Sprintf("/MediaBox [0 0 %.2f %.2f]", d.pageWidth, d.pageHeight))
		d.put(">>")
	})

	// Object 2: shared resource dictionary.
	d.writeObjAt(2, func() {
		d.put("<</ProcSet [/PDF /Text /ImageB /ImageC /ImageI]")
		d.put("/Font <<")
		for _, f := range d.sortedFonts() {
			d.put(fmt.Sprintf("/F%d %d 0 R", f.index, f.objNum))
		}
		d.put(">>")
		d.put("/XObject <<")
		for _, img := range d.images {
			d.put(fmt.Sprintf("/I%d %d 0 R", img.index, img.objNum))
		}
		d.put(">>")
		d.put(">>")
	})

	// Info dictionary.
	d.newObj()
	infoObj := d.objNum
	d.put("<<")
	d.put("/CreationDate (D:" + time.Now().Format("20060102150405") + ")")
	for _, k := range sortedKeys(d.metadata) {
		d.put("/" + k + " (" + escape(d.metadata[k]) + ")")
	}
	d.put(">>")
	d.put("endobj")

	// Catalog.
	d.newObj()
	catalogObj := d.objNum
	d.put("<</Type /Catalog /Pages 1 0 R>>")
	d.put("endobj")

	// Cross-reference table and trailer.
	xrefOffset := d.buf.Len()
	d.put("xref")
	d.put("0 " + strconv.Itoa(d.objNum+1))
	d.put("0000000000 65535 f ")
	for i := 1; i <= d.objNum; i++ {
		d.put(fmt.Sprintf("%010d 00000 n ", d.offsets[i]))
	}
	d.put("trailer")
	d.put("<<")
	d.put("/Size " + strconv.Itoa(d.objNum+1))
	d.put("/Root " + strconv.Itoa(catalogObj) + " 0 R")
	d.put("/Info " + strconv.Itoa(infoObj) + " 0 R")
	d.put(">>")
	d.put("startxref")
	d.put(strconv.Itoa(xrefOffset))
	d.put("%%EOF")

	return d.buf.Bytes(), nil
}

func (d *Document) putFonts() {
	for _, f := range d.sortedFonts() {
		d.newObj()
		f.objNum = d.objNum
		d.put("<</Type /Font")
		d.put("/BaseFont /" + f.baseName)
		d.put("/Subtype /Type1")
		d.put("/Encoding /WinAnsiEncoding")
		d.put(">>")
		d.put("endobj")
	}
}

func (d *Document) putImages() {
	for _, img := range d.images {
		d.newObj()
		img.objNum = d.objNum
		d.put("<</Type /XObject")
		d.put("/Subtype /Image")
		d.put("/Width " + strconv.Itoa(img.w))
		d.put("/Height " + strconv.Itoa(img.h))
		d.put("/ColorSpace /DeviceRGB")
		d.put("/BitsPerComponent 8")
		d.put("/Filter /DCTDecode")
		d.put("/Length " + strconv.Itoa(len(img.data)) + ">>")
		d.putStream(img.data)
		d.put("endobj")
	}
}

func (d *Document) sortedFonts() []*coreFont {
	out := make([]*coreFont, 0, len(d.fonts))
	for _, f := range d.fonts {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].index < out[j].index })
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (d *Document) newObj() {
	d.objNum++
	d.offsets[d.objNum] = d.buf.Len()
	d.put(strconv.Itoa(d.objNum) + " 0 obj")
}

// writeObjAt emits an object with a fixed, pre-reserved number.
func (d *Document) writeObjAt(n int, body func()) {
	d.offsets[n] = d.buf.Len()
	d.put(strconv.Itoa(n) + " 0 obj")
	body()
	d.put("endobj")
}

func (d *Document) putStreamObject(data []byte) {
	entries := ""
	if d.compress {
		entries = "/Filter /FlateDecode "
		data = flateCompress(data)
	}
	d.newObj()
	d.put("<<" + entries + "/Length " + strconv.Itoa(len(data)) + ">>")
	d.putStream(data)
	d.put("endobj")
}

func (d *Document) putStream(data []byte) {
	d.put("stream")
	d.buf.Write(data)
	d.buf.WriteByte('\n')
	d.put("endstream")
}

func (d *Document) put(s string) {
	d.buf.WriteString(s)
	d.buf.WriteByte('\n')
}

func flateCompress(data []byte) []byte {
	var b bytes.Buffer
	w := zlib.NewWriter(&b)
	_, _ = w.Write(data)
	_ = w.Close()
	return b.Bytes()
}

package layout

// minSplitLines is the smallest fragment of a paragraph that may be left on
// either side of a page boundary. Splitting below this leaves a stranded
// one-line widow or orphan.
const minSplitLines = 2

// Placement is the page-break decision for one block.
type Placement struct {
	// TakeNow is how many of the block's lines go on the current page.
	// Zero means the whole block moves to a new page.
	TakeNow int
	// NewPage reports whether a page break is required before the
	// remainder (or, when TakeNow is zero, before the whole block).
	NewPage bool
}

// PlanBreak decides where a block breaks given its wrapped line count and the
// lines remaining before the footer band on the current page.
//
// A block that fits is placed in full. A single-line block that does not fit
// starts a new page. A multi-line paragraph splits only when at least
// minSplitLines of its leading lines fit on the current page; otherwise the
// whole paragraph moves, so neither page is left with a meaningless one-line
// fragment.
func PlanBreak(lineCount, linesRemaining int) Placement {
	if lineCount <= linesRemaining {
		return Placement{TakeNow: lineCount}
	}
	if lineCount == 1 {
		return Placement{NewPage: true}
	}
	if linesRemaining >= minSplitLines {
		return Placement{TakeNow: linesRemaining, NewPage: true}
	}
	return Placement{NewPage: true}
}

// SplitLines applies PlanBreak to concrete lines, returning the lines for the
// current page and the carry-over for the next page.
func SplitLines(lines []string, linesRemaining int) (now, next []string) {
	p := PlanBreak(len(lines), linesRemaining)
	if !p.NewPage {
		return lines, nil
	}
	return lines[:p.TakeNow], lines[p.TakeNow:]
}

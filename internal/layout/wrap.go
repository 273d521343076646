package layout

import "strings"

// Wrap splits text into lines no wider than maxWidth according to measure.
// The algorithm is greedy: words accumulate into a candidate line and the
// line is committed without the word that overflowed it. A single word wider
// than maxWidth is placed alone on its own line; words are never split.
func Wrap(text string, maxWidth float64, measure WidthFunc) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	return append(lines, current)
}

// WrapCells wraps each table cell into its column width and pads the cells
// to a common line count so a row renders as a rectangle.
func WrapCells(cells []string, colWidth float64, measure WidthFunc) [][]string {
	wrapped := make([][]string, len(cells))
	height := 1
	for i, cell := range cells {
		lines := Wrap(cell, colWidth, measure)
		if len(lines) == 0 {
			lines = []string{""}
		}
		wrapped[i] = lines
		if len(lines) > height {
			height = len(lines)
		}
	}
	for i := range wrapped {
		for len(wrapped[i]) < height {
			wrapped[i] = append(wrapped[i], "")
		}
	}
	return wrapped
}

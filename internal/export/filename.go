package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Suffix distinguishes what an exported artifact contains.
type Suffix string

const (
	SuffixReport       Suffix = "Report"
	SuffixLatestResult Suffix = "Latest_Result"
	SuffixAllResults   Suffix = "All_Results"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Filename builds the suggested artifact name:
// {date}_{brand}_{ToolkitName}_{Suffix}.pdf
func Filename(date time.Time, brand, toolkitName string, suffix Suffix) string {
	return fmt.Sprintf("%s_%s_%s_%s.pdf",
		date.Format("2006-01-02"),
		sanitizeFilenamePart(brand),
		sanitizeFilenamePart(toolkitName),
		suffix)
}

func sanitizeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	s = unsafeFilenameChars.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"filingdesk/internal/layout"
	"filingdesk/internal/render"
	"filingdesk/internal/report"
)

const (
	panelChrome   = 4 // header line, header rule, footer rule, footer line
	minPanelWidth = 40
)

// PanelModel displays one report as a sequence of fixed-height pages. The
// page composition follows the same break rules as the exported artifact, so
// a block that moves to a new page on paper moves on screen too.
type PanelModel struct {
	width  int
	height int

	viewport viewport.Model
	styles   Styles

	title    string
	checksum string
	blocks   []render.Block

	pages []string
	page  int
}

// NewPanelModel creates a panel for the given report.
func NewPanelModel(doc *report.Document, rendered report.Rendered) PanelModel {
	return PanelModel{
		viewport: viewport.New(0, 0),
		styles:   DefaultStyles(),
		title:    doc.Payload.EntityName + " — " + doc.Payload.FilingType,
		checksum: rendered.Checksum,
		blocks:   render.ToBlocks(doc.Payload, doc.Content),
	}
}

// Init initializes the model.
func (m PanelModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PanelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - panelChrome
		m.paginate()
		m.setPage(m.page)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "right", "l", "pgdown", " ", "enter":
			m.setPage(m.page + 1)
		case "left", "h", "pgup":
			m.setPage(m.page - 1)
		case "g", "home":
			m.setPage(0)
		case "G", "end":
			m.setPage(len(m.pages) - 1)
		}
	}
	return m, nil
}

func (m *PanelModel) setPage(n int) {
	if len(m.pages) == 0 {
		m.page = 0
		m.viewport.SetContent("")
		return
	}
	if n < 0 {
		n = 0
	}
	if n > len(m.pages)-1 {
		n = len(m.pages) - 1
	}
	m.page = n
	m.viewport.SetContent(m.pages[n])
	m.viewport.GotoTop()
}

// paginate lays the blocks out into pages of the current viewport height.
func (m *PanelModel) paginate() {
	contentWidth := m.width - 2
	if contentWidth < minPanelWidth {
		contentWidth = minPanelWidth
	}
	linesPerPage := m.height - panelChrome
	if linesPerPage < 4 {
		linesPerPage = 4
	}

	measure := func(s string) float64 { return float64(lipgloss.Width(s)) }

	var pages []string
	var current []string
	remaining := linesPerPage

	flush := func() {
		pages = append(pages, strings.Join(current, "\n"))
		current = nil
		remaining = linesPerPage
	}

	for _, b := range m.blocks {
		lines := m.blockLines(b, contentWidth, measure)
		if len(lines) == 0 {
			continue
		}
		if b.Kind != render.BlockParagraph {
			// Headings, list items and table rows never split.
			if len(lines) > remaining && len(current) > 0 {
				flush()
			}
			current = append(current, lines...)
			remaining -= len(lines)
			if remaining < 0 {
				remaining = 0
			}
			continue
		}
		for len(lines) > 0 {
			now, next := layout.SplitLines(lines, remaining)
			if len(now) == 0 {
				if len(current) == 0 {
					// Paragraph taller than a full page: fill it anyway.
					now, next = lines[:remaining], lines[remaining:]
				} else {
					flush()
					continue
				}
			}
			current = append(current, now...)
			remaining -= len(now)
			lines = next
			if len(lines) > 0 {
				flush()
			}
		}
	}
	if len(current) > 0 {
		pages = append(pages, strings.Join(current, "\n"))
	}
	if len(pages) == 0 {
		pages = []string{""}
	}
	m.pages = pages
}

// blockLines renders one block as styled terminal lines.
func (m *PanelModel) blockLines(b render.Block, width int, measure layout.WidthFunc) []string {
	s := m.styles
	switch b.Kind {
	case render.BlockHeading:
		style := s.Heading2
		if b.Level == 1 {
			style = s.Heading1
		}
		return []string{style.Render(b.Text)}

	case render.BlockParagraph:
		wrapped := layout.Wrap(b.Text, float64(width), measure)
		out := make([]string, 0, len(wrapped))
		for _, ln := range wrapped {
			if ln == render.PendingText {
				out = append(out, s.Pending.Render(ln))
				continue
			}
			out = append(out, s.Body.Render(ln))
		}
		return out

	case render.BlockListItem:
		marker := "• "
		if b.Ordinal > 0 {
			marker = fmt.Sprintf("%d. ", b.Ordinal)
		}
		indent := strings.Repeat(" ", lipgloss.Width(marker))
		wrapped := layout.Wrap(b.Text, float64(width-len(indent)), measure)
		out := make([]string, 0, len(wrapped))
		for i, ln := range wrapped {
			if i == 0 {
				out = append(out, s.Body.Render(marker+ln))
				continue
			}
			out = append(out, s.Body.Render(indent+ln))
		}
		return out

	case render.BlockTableRow:
		cols := len(b.Cells)
		if cols == 0 {
			return nil
		}
		colWidth := width/cols - 2
		if colWidth < 8 {
			colWidth = 8
		}
		cells := layout.WrapCells(b.Cells, float64(colWidth), measure)
		style := s.Body
		if b.Header {
			style = s.TableHead
		}
		height := 0
		for _, c := range cells {
			if len(c) > height {
				height = len(c)
			}
		}
		out := make([]string, 0, height)
		for row := 0; row < height; row++ {
			var sb strings.Builder
			for _, c := range cells {
				text := ""
				if row < len(c) {
					text = c[row]
				}
				sb.WriteString(style.Render(fmt.Sprintf("%-*s", colWidth, text)))
				sb.WriteString("  ")
			}
			out = append(out, strings.TrimRight(sb.String(), " "))
		}
		return out

	case render.BlockSeparator:
		return []string{s.RenderRule(width)}
	}
	return nil
}

// View renders the panel.
func (m PanelModel) View() string {
	if m.width == 0 {
		return "loading…"
	}
	s := m.styles
	header := s.Header.Render(m.title)
	footer := s.Footer.Render(fmt.Sprintf("Page %d of %d · checksum %s · ←/→ turn · q quit",
		m.page+1, len(m.pages), m.checksum))

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n")
	sb.WriteString(s.RenderRule(m.width))
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(s.RenderRule(m.width))
	sb.WriteString("\n")
	sb.WriteString(footer)
	return sb.String()
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/chatstat/internal/search"
)

// linesPerItem is the number of terminal lines each search result occupies.
const linesPerItem = 2

// renderUsers renders the left panel: the user selector.
func (m model) renderUsers(width, height int) string {
	var lines []string
	for i, u := range m.users {
		if i < m.userOffset {
			continue
		}
		if len(lines) >= height {
			break
		}
		name := runewidth.Truncate(u, width-2, "…")
		switch {
		case i == m.userCursor:
			lines = append(lines, styleListSelected.Render("> "+name))
		case m.dash != nil && u == m.dash.User:
			lines = append(lines, styleListActive.Render("* "+name))
		default:
			lines = append(lines, styleListNormal.Render("  "+name))
		}
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// adjustUserScroll keeps the user cursor visible.
func (m *model) adjustUserScroll(height int) {
	if height < 1 {
		height = 1
	}
	if m.userCursor < m.userOffset {
		m.userOffset = m.userCursor
	}
	if m.userCursor >= m.userOffset+height {
		m.userOffset = m.userCursor - height + 1
	}
}

// renderResults renders the search result list with scrolling.
func (m model) renderResults(width, height int) string {
	if len(m.results) == 0 {
		msg := "No results"
		if m.query == "" {
			msg = "Type to search messages"
		}
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(msg)
	}

	var lines []string
	for i, r := range m.results {
		if i < m.resultOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatResultLine(r, width, i == m.resultCursor)...)
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// formatResultLine formats a single search result as two lines:
//
//	line 1: [>] #idx  date  user
//	line 2:    snippet (dimmed)
func formatResultLine(r search.Result, width int, selected bool) []string {
	// "2024-01-27T10:00:00" -> "2024-01-27 10:00"
	date := r.Ts
	if len(date) >= 16 {
		date = date[:10] + " " + date[11:16]
	}

	user := r.User
	userMax := width - 2 - 7 - 17
	if userMax < 0 {
		userMax = 0
	}
	user = runewidth.Truncate(user, userMax, "")

	line1 := fmt.Sprintf("#%-5d %s %s", r.Idx, date, styleUser.Render(user))
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	snippet := strings.ReplaceAll(r.Snippet, "\n", " ")
	snippet = strings.ReplaceAll(snippet, "\t", " ")
	snippet = strings.ReplaceAll(snippet, ">>>", "")
	snippet = strings.ReplaceAll(snippet, "<<<", "")
	snippetMax := width - 4
	if snippetMax < 0 {
		snippetMax = 0
	}
	if runewidth.StringWidth(snippet) > snippetMax {
		snippet = runewidth.Truncate(snippet, snippetMax, "")
	}
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(snippet)

	return []string{line1, line2}
}

// adjustResultScroll keeps the result cursor visible within the list viewport.
func (m *model) adjustResultScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.resultCursor < m.resultOffset {
		m.resultOffset = m.resultCursor
	}
	if m.resultCursor >= m.resultOffset+visibleItems {
		m.resultOffset = m.resultCursor - visibleItems + 1
	}
}

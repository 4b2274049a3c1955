package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/chatstat/internal/render"
	"github.com/Zuo-Peng/chatstat/internal/stats"
)

type tab int

const (
	tabStats tab = iota
	tabTimeline
	tabActivity
	tabHeatmap
	tabUsers
	tabWords
	tabEmoji
	tabCloud
	tabSearch
	tabCount
)

var tabNames = [tabCount]string{
	"Stats", "Timeline", "Activity", "Heatmap", "Users", "Words", "Emoji", "Cloud", "Search",
}

func (t tab) String() string {
	return tabNames[t]
}

// renderTabBar renders the tab strip with the current tab highlighted.
func renderTabBar(current tab) string {
	parts := make([]string, 0, tabCount)
	for t := tab(0); t < tabCount; t++ {
		if t == current {
			parts = append(parts, styleTabActive.Render(t.String()))
		} else {
			parts = append(parts, styleTab.Render(t.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func title(s string) string {
	return styleTitle.Render(s)
}

// styledBars colors the bar runes of render.Bars output.
func styledBars(lines []string) string {
	for i, l := range lines {
		lines[i] = strings.ReplaceAll(l, "█", styleBar.Render("█"))
	}
	return strings.Join(lines, "\n")
}

// renderContent renders the chart tab t of d for a panel width columns wide.
func renderContent(t tab, d *stats.Dashboard, width int) string {
	if d == nil {
		return lipgloss.NewStyle().Foreground(colorDim).Render("Computing...")
	}
	if d.Empty() && t != tabSearch {
		return lipgloss.NewStyle().Foreground(colorDim).Render("No messages for " + d.User + ".")
	}

	switch t {
	case tabStats:
		return renderStats(d.Stats)

	case tabTimeline:
		return strings.Join([]string{
			title("Monthly Timeline"),
			styledBars(render.MonthlyBars(d.Monthly, width)),
			"",
			title("Daily Timeline"),
			styleBar.Render(strings.Join(render.DailyLines(d.Daily, width), "\n")),
		}, "\n")

	case tabActivity:
		return strings.Join([]string{
			title("Most Busy Day"),
			styledBars(render.Bars(d.Week, width)),
			"",
			title("Most Busy Month"),
			styledBars(render.Bars(d.Months, width)),
		}, "\n")

	case tabHeatmap:
		return title("Weekly Activity Heatmap") + "\n" + renderHeatmap(d.Heatmap)

	case tabUsers:
		if d.BusyUsers == nil {
			return lipgloss.NewStyle().Foreground(colorDim).Render("Busy users are shown for Overall only.")
		}
		return strings.Join([]string{
			title("Top Active Users"),
			styledBars(render.Bars(d.BusyUsers.Top, width)),
			"",
			title("Share of Messages"),
			strings.Join(render.ShareLines(d.BusyUsers.Shares), "\n"),
		}, "\n")

	case tabWords:
		return title("Most Common Words") + "\n" + styledBars(render.Bars(d.CommonWords, width))

	case tabEmoji:
		if len(d.Emojis) == 0 {
			return styleWarn.Render("No emojis found for this user.")
		}
		return title("Top Emojis Used") + "\n" + styledBars(render.Bars(d.Emojis, width))

	case tabCloud:
		words := render.CloudTiers(d.WordCloud, len(heatColors)-1, 120)
		lines := render.Cloud(words, width, func(cw render.CloudWord) string {
			c := heatColors[len(heatColors)-1-cw.Tier]
			s := lipgloss.NewStyle().Foreground(c)
			if cw.Tier == 0 {
				s = s.Bold(true)
			}
			return s.Render(cw.Word)
		})
		return title("WordCloud") + "\n" + strings.Join(lines, "\n")
	}
	return ""
}

func renderStats(s stats.Stats) string {
	metric := func(label string, n int) string {
		return styleMetric.Render(label + "\n" + styleMetricValue.Render(strconv.Itoa(n)))
	}
	return title("Top Statistics") + "\n" + lipgloss.JoinHorizontal(lipgloss.Top,
		metric("Total Messages", s.Messages),
		metric("Total Words", s.Words),
		metric("Media Shared", s.Media),
		metric("Links Shared", s.Links),
	)
}

// renderHeatmap draws the heatmap with every cell shaded by its count.
func renderHeatmap(h stats.Heatmap) string {
	if len(h.Rows) == 0 {
		return ""
	}
	rowW := 0
	for _, r := range h.Rows {
		if w := runewidth.StringWidth(r); w > rowW {
			rowW = w
		}
	}
	const cellW = 6
	max := h.Max()

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", rowW+1))
	for _, c := range h.Cols {
		b.WriteString(fmt.Sprintf("%-*s", cellW, c))
	}
	b.WriteString("\n")
	for i, r := range h.Rows {
		b.WriteString(runewidth.FillRight(r, rowW) + " ")
		for _, n := range h.Cells[i] {
			b.WriteString(heatStyle(n, max).Render(fmt.Sprintf("%*d ", cellW-1, n)))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// summary is the plain text copied to the clipboard.
func summary(d *stats.Dashboard) string {
	if d == nil {
		return ""
	}
	s := d.Stats
	return fmt.Sprintf("%s: %d messages, %d words, %d media, %d links",
		d.User, s.Messages, s.Words, s.Media, s.Links)
}

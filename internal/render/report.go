package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/Zuo-Peng/chatstat/internal/stats"
)

type ReportOptions struct {
	Width     int // columns; 0 means 80
	CloudSize int // words shown in the word cloud; 0 means 60
}

// Report writes d as plain text, one section per chart of the dashboard.
func Report(w io.Writer, d *stats.Dashboard, opts ReportOptions) error {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.CloudSize <= 0 {
		opts.CloudSize = 60
	}

	var b strings.Builder
	section := func(title string, lines ...string) {
		fmt.Fprintf(&b, "## %s\n", title)
		for _, l := range lines {
			b.WriteString(l)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Chat analysis: %s\n\n", d.User)
	if d.Empty() {
		b.WriteString("No messages for this selection.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	section("Top Statistics", StatsLines(d.Stats)...)
	section("Monthly Timeline", Bars(monthlyItems(d.Monthly), opts.Width)...)
	section("Daily Timeline", DailyLines(d.Daily, opts.Width)...)
	section("Most Busy Day", Bars(d.Week, opts.Width)...)
	section("Most Busy Month", Bars(d.Months, opts.Width)...)
	section("Weekly Activity Heatmap", HeatmapGrid(d.Heatmap)...)

	if d.BusyUsers != nil {
		section("Most Busy Users", Bars(d.BusyUsers.Top, opts.Width)...)
		section("Share of Messages", ShareLines(d.BusyUsers.Shares)...)
	}

	cloud := Cloud(CloudTiers(d.WordCloud, 3, opts.CloudSize), opts.Width, func(cw CloudWord) string {
		if cw.Tier == 0 {
			return strings.ToUpper(cw.Word)
		}
		return cw.Word
	})
	section("WordCloud", cloud...)
	section("Most Common Words", Bars(d.CommonWords, opts.Width)...)

	if len(d.Emojis) == 0 {
		section("Emoji Analysis", "No emojis found for this user.")
	} else {
		section("Emoji Analysis", Bars(d.Emojis, opts.Width)...)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func StatsLines(s stats.Stats) []string {
	return []string{
		fmt.Sprintf("Total Messages  %d", s.Messages),
		fmt.Sprintf("Total Words     %d", s.Words),
		fmt.Sprintf("Media Shared    %d", s.Media),
		fmt.Sprintf("Links Shared    %d", s.Links),
	}
}

func monthlyItems(points []stats.TimelinePoint) []stats.NamedCount {
	items := make([]stats.NamedCount, len(points))
	for i, p := range points {
		items[i] = stats.NamedCount{Name: p.Label, Count: p.Count}
	}
	return items
}

// MonthlyBars draws the monthly timeline as bars.
func MonthlyBars(points []stats.TimelinePoint, width int) []string {
	return Bars(monthlyItems(points), width)
}

// DailyLines summarizes the daily timeline as a sparkline between its
// first and last date, followed by the busiest day.
func DailyLines(points []stats.DatePoint, width int) []string {
	if len(points) == 0 {
		return nil
	}
	counts := make([]int, len(points))
	busiest := points[0]
	for i, p := range points {
		counts[i] = p.Count
		if p.Count > busiest.Count {
			busiest = p
		}
	}
	const layout = "2006-01-02"
	return []string{
		Sparkline(counts, width),
		fmt.Sprintf("%s .. %s  (%d active days)", points[0].Date.Format(layout), points[len(points)-1].Date.Format(layout), len(points)),
		fmt.Sprintf("busiest: %s with %d messages", busiest.Date.Format(layout), busiest.Count),
	}
}

func ShareLines(shares []stats.UserShare) []string {
	lines := make([]string, len(shares))
	for i, s := range shares {
		lines[i] = fmt.Sprintf("%6.2f%%  %s", s.Percent, s.User)
	}
	return lines
}

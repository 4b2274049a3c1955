package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"mvdan.cc/xurls/v2"
)

var linkPattern = xurls.Relaxed()

// Weekdays in the order charts show them.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Months in calendar order.
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

type Stats struct {
	Messages int `json:"messages" yaml:"messages"`
	Words    int `json:"words" yaml:"words"`
	Media    int `json:"media" yaml:"media"`
	Links    int `json:"links" yaml:"links"`
}

// FetchStats counts messages, whitespace separated words, omitted media and
// links for user. Overall leaves out notifications.
func FetchStats(t *Table, user string) Stats {
	var s Stats
	media := t.MediaPlaceholder()
	for _, r := range t.scope(user) {
		s.Messages++
		s.Words += len(strings.Fields(r.Body))
		if r.Body == media {
			s.Media++
		}
		s.Links += len(linkPattern.FindAllString(r.Body, -1))
	}
	return s
}

type TimelinePoint struct {
	Label    string `json:"label" yaml:"label"` // "January-2024"
	Year     int    `json:"year" yaml:"year"`
	MonthNum int    `json:"month_num" yaml:"month_num"`
	Month    string `json:"month" yaml:"month"`
	Count    int    `json:"count" yaml:"count"`
}

// MonthlyTimeline counts messages per calendar month, oldest first.
func MonthlyTimeline(t *Table, user string) []TimelinePoint {
	byMonth := make(map[[2]int]*TimelinePoint)
	for _, r := range t.messages(user) {
		key := [2]int{r.Year, r.MonthNum}
		p, ok := byMonth[key]
		if !ok {
			p = &TimelinePoint{
				Label:    fmt.Sprintf("%s-%d", r.Month, r.Year),
				Year:     r.Year,
				MonthNum: r.MonthNum,
				Month:    r.Month,
			}
			byMonth[key] = p
		}
		p.Count++
	}

	out := make([]TimelinePoint, 0, len(byMonth))
	for _, p := range byMonth {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].MonthNum < out[j].MonthNum
	})
	return out
}

type DatePoint struct {
	Date  time.Time `json:"date" yaml:"date"`
	Count int       `json:"count" yaml:"count"`
}

// DailyTimeline counts messages per calendar day, oldest first.
func DailyTimeline(t *Table, user string) []DatePoint {
	byDay := make(map[time.Time]int)
	for _, r := range t.messages(user) {
		byDay[r.OnlyDate]++
	}

	out := make([]DatePoint, 0, len(byDay))
	for d, n := range byDay {
		out = append(out, DatePoint{Date: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// WeekActivityMap counts messages per weekday name. Days without
// messages are absent.
func WeekActivityMap(t *Table, user string) map[string]int {
	out := make(map[string]int)
	for _, r := range t.messages(user) {
		out[r.DayName]++
	}
	return out
}

// OrderedWeekActivity lays a WeekActivityMap out Monday to Sunday,
// dropping days with no messages.
func OrderedWeekActivity(m map[string]int) []NamedCount {
	return inOrder(Weekdays, m)
}

// MonthActivityMap counts messages per month name across all years,
// January to December, dropping months with no messages.
func MonthActivityMap(t *Table, user string) []NamedCount {
	m := make(map[string]int)
	for _, r := range t.messages(user) {
		m[r.Month]++
	}
	return inOrder(Months, m)
}

func inOrder(keys []string, m map[string]int) []NamedCount {
	var out []NamedCount
	for _, k := range keys {
		if n, ok := m[k]; ok {
			out = append(out, NamedCount{Name: k, Count: n})
		}
	}
	return out
}

// Heatmap is a weekday by two-hour-bucket message count table.
type Heatmap struct {
	Rows  []string `json:"rows" yaml:"rows"`
	Cols  []string `json:"cols" yaml:"cols"`
	Cells [][]int  `json:"cells" yaml:"cells"` // Cells[row][col]
}

func (h Heatmap) Max() int {
	max := 0
	for _, row := range h.Cells {
		for _, n := range row {
			if n > max {
				max = n
			}
		}
	}
	return max
}

// ActivityHeatmap pivots messages by weekday and period. Only weekdays and
// periods that occur get a row or column; empty cells are zero.
func ActivityHeatmap(t *Table, user string) Heatmap {
	counts := make(map[string]map[string]int)
	periods := make(map[string]bool)
	for _, r := range t.messages(user) {
		row, ok := counts[r.DayName]
		if !ok {
			row = make(map[string]int)
			counts[r.DayName] = row
		}
		row[r.Period]++
		periods[r.Period] = true
	}

	var h Heatmap
	for _, day := range Weekdays {
		if _, ok := counts[day]; ok {
			h.Rows = append(h.Rows, day)
		}
	}
	for p := range periods {
		h.Cols = append(h.Cols, p)
	}
	sort.Strings(h.Cols)

	h.Cells = make([][]int, len(h.Rows))
	for i, day := range h.Rows {
		h.Cells[i] = make([]int, len(h.Cols))
		for j, p := range h.Cols {
			h.Cells[i][j] = counts[day][p]
		}
	}
	return h
}

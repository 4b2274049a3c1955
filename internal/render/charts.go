package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Zuo-Peng/chatstat/internal/stats"
)

const (
	barRune   = "█"
	maxLabelW = 24
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Bars draws one horizontal bar per item, scaled so the largest count
// fills the space left after labels and numbers.
func Bars(items []stats.NamedCount, width int) []string {
	if len(items) == 0 {
		return nil
	}
	labelW, max := 0, 0
	for _, it := range items {
		if w := runewidth.StringWidth(it.Name); w > labelW {
			labelW = w
		}
		if it.Count > max {
			max = it.Count
		}
	}
	if labelW > maxLabelW {
		labelW = maxLabelW
	}
	numW := len(strconv.Itoa(max))
	barW := width - labelW - numW - 2
	if barW < 1 {
		barW = 1
	}

	lines := make([]string, len(items))
	for i, it := range items {
		label := runewidth.FillRight(runewidth.Truncate(it.Name, labelW, "…"), labelW)
		n := 0
		if max > 0 {
			n = it.Count * barW / max
		}
		if n == 0 && it.Count > 0 {
			n = 1
		}
		lines[i] = fmt.Sprintf("%s %s %*d", label, runewidth.FillRight(strings.Repeat(barRune, n), barW), numW, it.Count)
	}
	return lines
}

// Sparkline squeezes counts into one line of at most width block runes.
// Counts are summed into buckets when there are more of them than columns.
func Sparkline(counts []int, width int) string {
	if len(counts) == 0 || width <= 0 {
		return ""
	}
	buckets := counts
	if len(counts) > width {
		buckets = make([]int, width)
		for i, c := range counts {
			buckets[i*width/len(counts)] += c
		}
	}
	max := 0
	for _, c := range buckets {
		if c > max {
			max = c
		}
	}
	var b strings.Builder
	for _, c := range buckets {
		idx := 0
		if max > 0 {
			idx = c * (len(sparkRunes) - 1) / max
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

// HeatmapGrid prints the weekday by period table with counts in each cell.
func HeatmapGrid(h stats.Heatmap) []string {
	if len(h.Rows) == 0 {
		return nil
	}
	rowW := 0
	for _, r := range h.Rows {
		if w := runewidth.StringWidth(r); w > rowW {
			rowW = w
		}
	}
	cellW := len(strconv.Itoa(h.Max()))
	for _, c := range h.Cols {
		if len(c) > cellW {
			cellW = len(c)
		}
	}

	var lines []string
	var head strings.Builder
	head.WriteString(strings.Repeat(" ", rowW))
	for _, c := range h.Cols {
		fmt.Fprintf(&head, " %*s", cellW, c)
	}
	lines = append(lines, head.String())

	for i, r := range h.Rows {
		var row strings.Builder
		row.WriteString(runewidth.FillRight(r, rowW))
		for _, n := range h.Cells[i] {
			fmt.Fprintf(&row, " %*d", cellW, n)
		}
		lines = append(lines, row.String())
	}
	return lines
}

// CloudWord is a word with its weight tier, 0 being the heaviest.
type CloudWord struct {
	Word string
	Tier int
}

// CloudTiers assigns each of the first limit words a tier by count
// relative to the most frequent word.
func CloudTiers(words []stats.NamedCount, tiers, limit int) []CloudWord {
	if len(words) == 0 || tiers <= 0 {
		return nil
	}
	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}
	max := words[0].Count
	out := make([]CloudWord, len(words))
	for i, w := range words {
		tier := tiers - 1
		if max > 0 {
			tier = (max - w.Count) * tiers / (max + 1)
		}
		out[i] = CloudWord{Word: w.Name, Tier: tier}
	}
	return out
}

// Cloud flows styled words into lines no wider than width.
func Cloud(words []CloudWord, width int, style func(CloudWord) string) []string {
	var lines []string
	var cur strings.Builder
	curW := 0
	for _, w := range words {
		ww := runewidth.StringWidth(w.Word)
		if curW > 0 && curW+1+ww > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curW = 0
		}
		if curW > 0 {
			cur.WriteString(" ")
			curW++
		}
		cur.WriteString(style(w))
		curW += ww
	}
	if curW > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

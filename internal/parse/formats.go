package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	OrderAuto = "auto"
	OrderDMY  = "dmy"
	OrderMDY  = "mdy"
)

// headerFormat is one known layout of the timestamp that opens every message.
// All patterns share the same capture groups:
// 1 first date field, 2 second date field, 3 year, 4 hour, 5 minute,
// 6 seconds (optional), 7 am/pm marker (optional).
type headerFormat struct {
	Name    string
	Pattern *regexp.Regexp
}

const (
	clockPart = `(\d{1,2}):(\d{2})(?::(\d{2}))?(?:[ \x{00A0}\x{202F}]?([AaPp]\.?[Mm]\.?))?`
	datePart  = `(\d{1,2})%s(\d{1,2})%s(\d{2,4}),?[ \x{00A0}]`
)

var headerFormats = []headerFormat{
	{
		Name:    "android",
		Pattern: regexp.MustCompile(`(?m)^` + fmt.Sprintf(datePart, "/", "/") + clockPart + ` - `),
	},
	{
		Name:    "ios",
		Pattern: regexp.MustCompile(`(?m)^\x{200E}?\[` + fmt.Sprintf(datePart, "[/.]", "[/.]") + clockPart + `\] `),
	},
	{
		Name:    "dotted",
		Pattern: regexp.MustCompile(`(?m)^` + fmt.Sprintf(datePart, `\.`, `\.`) + clockPart + ` - `),
	},
}

// FormatNames lists the header formats the parser recognizes.
func FormatNames() []string {
	names := make([]string, len(headerFormats))
	for i, f := range headerFormats {
		names[i] = f.Name
	}
	return names
}

// detectFormat picks the header format with the most matches in text.
// Ties go to the format listed first.
func detectFormat(text string) (headerFormat, [][]int, bool) {
	var best headerFormat
	var bestIdx [][]int
	for _, f := range headerFormats {
		idx := f.Pattern.FindAllStringSubmatchIndex(text, -1)
		if len(idx) > len(bestIdx) {
			best, bestIdx = f, idx
		}
	}
	return best, bestIdx, len(bestIdx) > 0
}

// headerFields holds the captured pieces of one header.
type headerFields struct {
	first, second, year string
	hour, minute, sec   string
	ampm                string
}

func fieldsAt(text string, loc []int) headerFields {
	group := func(n int) string {
		if loc[2*n] < 0 {
			return ""
		}
		return text[loc[2*n]:loc[2*n+1]]
	}
	return headerFields{
		first:  group(1),
		second: group(2),
		year:   group(3),
		hour:   group(4),
		minute: group(5),
		sec:    group(6),
		ampm:   group(7),
	}
}

// detectOrder decides whether dates are day-first or month-first. A field
// above 12 settles it; otherwise fallback is used.
func detectOrder(fields []headerFields, fallback string) string {
	for _, f := range fields {
		if n, _ := strconv.Atoi(f.first); n > 12 {
			return OrderDMY
		}
	}
	for _, f := range fields {
		if n, _ := strconv.Atoi(f.second); n > 12 {
			return OrderMDY
		}
	}
	if fallback == OrderMDY {
		return OrderMDY
	}
	return OrderDMY
}

// timestampLayouts are tried in order against the normalized header,
// which is always written day first with '/' separators.
var timestampLayouts = []string{
	"2/1/06, 15:04",
	"2/1/2006, 15:04",
	"2/1/06, 15:04:05",
	"2/1/2006, 15:04:05",
	"2/1/06, 3:04 PM",
	"2/1/2006, 3:04 PM",
	"2/1/06, 3:04:05 PM",
	"2/1/2006, 3:04:05 PM",
}

func (f headerFields) normalize(order string) string {
	day, month := f.first, f.second
	if order == OrderMDY {
		day, month = month, day
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s/%s/%s, %s:%s", day, month, f.year, f.hour, f.minute)
	if f.sec != "" {
		b.WriteString(":" + f.sec)
	}
	if f.ampm != "" {
		b.WriteString(" " + strings.ToUpper(strings.ReplaceAll(f.ampm, ".", "")))
	}
	return b.String()
}

func parseTimestamp(f headerFields, order string, loc *time.Location) (time.Time, error) {
	s := f.normalize(order)
	var firstErr error
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		if firstErr == nil || isRangeError(err) {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// isRangeError prefers "month out of range" style errors over layout
// mismatches when reporting why a header was rejected.
func isRangeError(err error) bool {
	return strings.Contains(err.Error(), "out of range")
}

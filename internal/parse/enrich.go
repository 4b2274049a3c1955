package parse

import (
	"fmt"
	"time"
)

// Enrich derives the calendar fields of m from its timestamp.
func Enrich(m Message) Record {
	t := m.Timestamp
	return Record{
		Message:  m,
		Year:     t.Year(),
		Month:    t.Month().String(),
		MonthNum: int(t.Month()),
		Day:      t.Day(),
		DayName:  t.Weekday().String(),
		Hour:     t.Hour(),
		Minute:   t.Minute(),
		OnlyDate: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()),
		Period:   PeriodLabel(t.Hour()),
	}
}

func EnrichAll(msgs []Message) []Record {
	records := make([]Record, len(msgs))
	for i, m := range msgs {
		records[i] = Enrich(m)
	}
	return records
}

// PeriodLabel names the two-hour bucket holding hour, e.g. 13 -> "12-14"
// and 23 -> "22-00".
func PeriodLabel(hour int) string {
	start := hour - hour%2
	return fmt.Sprintf("%02d-%02d", start, (start+2)%24)
}

// PeriodLabels returns every bucket label in order.
func PeriodLabels() []string {
	labels := make([]string, 0, 12)
	for h := 0; h < 24; h += 2 {
		labels = append(labels, PeriodLabel(h))
	}
	return labels
}

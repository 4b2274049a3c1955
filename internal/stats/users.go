package stats

import "math"

type UserShare struct {
	User    string  `json:"user" yaml:"user"`
	Percent float64 `json:"percent" yaml:"percent"`
}

type BusyUsers struct {
	Top    []NamedCount `json:"top" yaml:"top"`
	Shares []UserShare  `json:"shares" yaml:"shares"`
}

// MostBusyUsers ranks every author, notifications included, by message
// count. Top holds the first n; Shares gives each author's percentage of
// all records rounded to two decimals.
func MostBusyUsers(t *Table, n int) BusyUsers {
	c := newCounter()
	for _, r := range t.Records() {
		c.add(r.User, 1)
	}

	var out BusyUsers
	total := c.total()
	if total == 0 {
		return out
	}
	out.Top = c.ranked(n)
	for _, nc := range c.ranked(0) {
		out.Shares = append(out.Shares, UserShare{
			User:    nc.Name,
			Percent: round2(float64(nc.Count) / float64(total) * 100),
		})
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

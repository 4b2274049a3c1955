package stats

import "sort"

// NamedCount is one bar of a chart.
type NamedCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// counter tallies keys while remembering the order they were first seen,
// so equal counts rank by first appearance.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string, n int) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

func (c *counter) total() int {
	sum := 0
	for _, n := range c.counts {
		sum += n
	}
	return sum
}

// ranked returns the counts in descending order, ties by first appearance.
// n <= 0 returns all of them.
func (c *counter) ranked(n int) []NamedCount {
	out := make([]NamedCount, len(c.order))
	for i, k := range c.order {
		out[i] = NamedCount{Name: k, Count: c.counts[k]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

package stats

import "github.com/forPelevin/gomoji"

// EmojiHelper counts emoji across messages, most used first. Every rune
// of a body is checked on its own, so a skin-toned or joined sequence
// counts each of its emoji parts.
func EmojiHelper(t *Table, user string) []NamedCount {
	c := newCounter()
	for _, r := range t.messages(user) {
		for _, ch := range r.Body {
			if isEmoji(ch) {
				c.add(string(ch), 1)
			}
		}
	}
	return c.ranked(0)
}

func isEmoji(ch rune) bool {
	// ASCII never holds a standalone emoji; skip the lookup.
	if ch < 0x80 {
		return false
	}
	return gomoji.ContainsEmoji(string(ch))
}

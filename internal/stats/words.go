package stats

import (
	"strings"
	"unicode"

	"github.com/Zuo-Peng/chatstat/internal/parse"
	"github.com/Zuo-Peng/chatstat/internal/stopwords"
)

// boilerplate bodies carry no words of their author.
var boilerplate = map[string]bool{
	"this message was deleted":  true,
	"you deleted this message":  true,
	"<this message was edited>": true,
	"null":                      true,
}

// Tokenize lowercases body, splits it on whitespace and again on any
// punctuation or symbol. Apostrophes inside a word stay ("it's").
// Empty tokens are dropped.
func Tokenize(body string) []string {
	var out []string
	for _, f := range strings.Fields(strings.ToLower(body)) {
		for _, w := range strings.FieldsFunc(f, isSeparator) {
			if w = strings.Trim(w, "'\u2019"); w != "" {
				out = append(out, w)
			}
		}
	}
	return out
}

func isSeparator(r rune) bool {
	if r == '\'' || r == '\u2019' {
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.Is(unicode.Variation_Selector, r) || r == '\u200d'
}

// wordRecords is the text MostCommonWords and CreateWordcloud count over:
// no notifications and no omitted media.
func (t *Table) wordRecords(user string) []parse.Record {
	media := t.MediaPlaceholder()
	var out []parse.Record
	for _, r := range t.messages(user) {
		if r.Body != media {
			out = append(out, r)
		}
	}
	return out
}

// MostCommonWords returns the n most frequent words that are not stopwords.
func MostCommonWords(t *Table, user string, stop stopwords.Set, n int) []NamedCount {
	c := newCounter()
	for _, r := range t.wordRecords(user) {
		for _, w := range Tokenize(r.Body) {
			if !stop.Contains(w) {
				c.add(w, 1)
			}
		}
	}
	return c.ranked(n)
}

// CreateWordcloud returns the full word frequency table behind the word
// cloud. On top of MostCommonWords' filtering it drops links and deleted
// or edited message boilerplate.
func CreateWordcloud(t *Table, user string, stop stopwords.Set) []NamedCount {
	c := newCounter()
	for _, r := range t.wordRecords(user) {
		if boilerplate[strings.ToLower(r.Body)] {
			continue
		}
		body := linkPattern.ReplaceAllString(r.Body, " ")
		for _, w := range Tokenize(body) {
			if !stop.Contains(w) {
				c.add(w, 1)
			}
		}
	}
	return c.ranked(0)
}

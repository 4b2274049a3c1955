// Package stats holds the read-only queries behind the dashboard. Every
// query takes the immutable Table and a selected user; Overall selects
// everyone. Nothing here fails: an empty selection gives an empty result.
package stats

import (
	"sort"

	"github.com/Zuo-Peng/chatstat/internal/parse"
)

// Overall selects every author instead of a single one.
const Overall = "Overall"

// DefaultMediaPlaceholder is the body WhatsApp writes for media left out of an export.
const DefaultMediaPlaceholder = "<Media omitted>"

// Table is the parsed chat, fixed once built.
type Table struct {
	records []parse.Record
	users   []string
	media   string
}

// NewTable copies records into a Table. An empty media placeholder uses
// DefaultMediaPlaceholder.
func NewTable(records []parse.Record, media string) *Table {
	if media == "" {
		media = DefaultMediaPlaceholder
	}
	t := &Table{
		records: append([]parse.Record(nil), records...),
		media:   media,
	}
	seen := make(map[string]bool)
	for _, r := range t.records {
		if r.IsNotification() || seen[r.User] {
			continue
		}
		seen[r.User] = true
		t.users = append(t.users, r.User)
	}
	return t
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Records returns a copy of all records in source order.
func (t *Table) Records() []parse.Record {
	if t == nil {
		return nil
	}
	return append([]parse.Record(nil), t.records...)
}

// At returns the record at position i.
func (t *Table) At(i int) (parse.Record, bool) {
	if t == nil || i < 0 || i >= len(t.records) {
		return parse.Record{}, false
	}
	return t.records[i], true
}

// MediaPlaceholder is the body that marks an omitted attachment.
func (t *Table) MediaPlaceholder() string {
	if t == nil {
		return DefaultMediaPlaceholder
	}
	return t.media
}

// Users lists human authors in order of first appearance.
func (t *Table) Users() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.users...)
}

// UserOptions is the selector list: Overall, then authors sorted by name.
func (t *Table) UserOptions() []string {
	users := t.Users()
	sort.Strings(users)
	return append([]string{Overall}, users...)
}

func (t *Table) HasUser(user string) bool {
	if user == Overall {
		return true
	}
	for _, u := range t.Users() {
		if u == user {
			return true
		}
	}
	return false
}

// scope returns the records for user. Overall leaves out notifications;
// a named user keeps only that user's records. The slice must not be modified.
func (t *Table) scope(user string) []parse.Record {
	if t == nil {
		return nil
	}
	var out []parse.Record
	for _, r := range t.records {
		if user == Overall {
			if !r.IsNotification() {
				out = append(out, r)
			}
		} else if r.User == user {
			out = append(out, r)
		}
	}
	return out
}

// messages is scope without notifications for any selection.
func (t *Table) messages(user string) []parse.Record {
	var out []parse.Record
	for _, r := range t.scope(user) {
		if !r.IsNotification() {
			out = append(out, r)
		}
	}
	return out
}

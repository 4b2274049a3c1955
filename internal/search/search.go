package search

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/Zuo-Peng/chatstat/internal/index"
	"github.com/Zuo-Peng/chatstat/internal/stats"
)

type Result struct {
	Idx     int
	Line    int
	Ts      string
	User    string
	Snippet string
	Rank    float64
}

type Options struct {
	Query string
	User  string // "" or stats.Overall = everyone
	Since string // "" = no filter, e.g. "2024-01-01"
	Limit int
}

// containsCJK returns true if the string contains any CJK Unified Ideograph.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// makeSnippet extracts a snippet around the first occurrence of query in
// text. contextChars counts grapheme clusters so emoji sequences stay whole.
func makeSnippet(text, query string, contextChars int) string {
	lower := strings.ToLower(text)
	qLower := strings.ToLower(query)
	idx := strings.Index(lower, qLower)
	clusters, offsets := graphemes(text)
	if idx < 0 || qLower == "" || len(lower) != len(text) {
		// no match, or lowercasing moved byte offsets: return head
		if len(clusters) > contextChars*2 {
			return text[:offsets[contextChars*2]] + "..."
		}
		return text
	}

	qStart := sort.SearchInts(offsets, idx)
	if qStart == len(offsets) || offsets[qStart] != idx {
		qStart--
	}
	qEnd := sort.SearchInts(offsets, idx+len(qLower))

	start := qStart - contextChars
	if start < 0 {
		start = 0
	}
	end := qEnd + contextChars
	if end > len(clusters) {
		end = len(clusters)
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(clusters) {
		suffix = "..."
	}
	join := func(from, to int) string {
		return strings.Join(clusters[from:to], "")
	}
	return prefix + join(start, qStart) + ">>>" + join(qStart, qEnd) + "<<<" + join(qEnd, end) + suffix
}

// graphemes splits s into user-perceived characters and their byte offsets.
func graphemes(s string) ([]string, []int) {
	var clusters []string
	var offsets []int
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		from, _ := g.Positions()
		clusters = append(clusters, g.Str())
		offsets = append(offsets, from)
	}
	return clusters, offsets
}

// ftsQuery quotes every term so punctuation in chat text is matched
// literally instead of read as FTS5 syntax. Terms are ANDed.
func ftsQuery(q string) string {
	terms := strings.Fields(q)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}

func Search(db *index.DB, opts Options) ([]Result, error) {
	if strings.TrimSpace(opts.Query) == "" {
		return nil, nil
	}
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	if containsCJK(opts.Query) {
		return searchLike(db, opts)
	}
	return searchFTS(db, opts)
}

// filters returns the shared WHERE conditions for user and since.
func filters(opts Options) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}

	if opts.User != "" && opts.User != stats.Overall {
		conditions = append(conditions, "m.author = ?")
		args = append(args, opts.User)
	}

	if opts.Since != "" {
		conditions = append(conditions, "m.ts >= ?")
		args = append(args, opts.Since)
	}
	return conditions, args
}

func searchFTS(db *index.DB, opts Options) ([]Result, error) {
	conditions := []string{"messages_fts MATCH ?"}
	args := []interface{}{ftsQuery(opts.Query)}

	more, moreArgs := filters(opts)
	conditions = append(conditions, more...)
	args = append(args, moreArgs...)

	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT
			m.idx,
			m.line_number,
			m.ts,
			m.author,
			snippet(messages_fts, 0, '>>>','<<<', '...', 40) as snip,
			bm25(messages_fts, 1.0) as rank
		FROM messages_fts
		JOIN messages m ON messages_fts.rowid = m.idx
		WHERE %s
		ORDER BY rank, m.idx
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func searchLike(db *index.DB, opts Options) ([]Result, error) {
	conditions := []string{"m.body LIKE ?"}
	args := []interface{}{"%" + opts.Query + "%"}

	more, moreArgs := filters(opts)
	conditions = append(conditions, more...)
	args = append(args, moreArgs...)

	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT m.idx, m.line_number, m.ts, m.author, m.body
		FROM messages m
		WHERE %s
		ORDER BY m.idx
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var body string
		if err := rows.Scan(&r.Idx, &r.Line, &r.Ts, &r.User, &body); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(body, opts.Query, 30)
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.Idx, &r.Line, &r.Ts, &r.User, &r.Snippet, &r.Rank); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

package index

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// TimeLayout is how message timestamps are stored; it sorts as text.
const TimeLayout = "2006-01-02T15:04:05"

const schema = `
PRAGMA cache_size = -64000;

CREATE TABLE IF NOT EXISTS messages (
    idx         INTEGER PRIMARY KEY,
    ts          TEXT NOT NULL DEFAULT '',
    author      TEXT NOT NULL,
    body        TEXT NOT NULL,
    line_number INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS messages_author ON messages(author);

CREATE VIRTUAL TABLE IF NOT EXISTS messages_fts USING fts5(
    body,
    content=messages,
    content_rowid=idx,
    tokenize='unicode61'
);

CREATE TRIGGER IF NOT EXISTS messages_ai AFTER INSERT ON messages BEGIN
    INSERT INTO messages_fts(rowid, body) VALUES (new.idx, new.body);
END;
`

// DB is a session-only index of one chat export. It lives in memory and
// is gone when closed.
type DB struct {
	db *sql.DB
}

// Open creates an empty in-memory index.
func Open() (*DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

func (d *DB) MessageCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n)
	return n, err
}

// FTSCount counts rows in the full-text table; it matches MessageCount
// when the index is in sync.
func (d *DB) FTSCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages_fts").Scan(&n)
	return n, err
}

type MessageRow struct {
	Idx        int
	Ts         string
	Author     string
	Body       string
	LineNumber int
}

const messageColumns = "idx, ts, author, body, line_number"

func scanMessages(rows *sql.Rows) ([]MessageRow, error) {
	var out []MessageRow
	for rows.Next() {
		var m MessageRow
		if err := rows.Scan(&m.Idx, &m.Ts, &m.Author, &m.Body, &m.LineNumber); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (d *DB) GetMessage(idx int) (*MessageRow, error) {
	var m MessageRow
	err := d.db.QueryRow(
		"SELECT "+messageColumns+" FROM messages WHERE idx = ?", idx,
	).Scan(&m.Idx, &m.Ts, &m.Author, &m.Body, &m.LineNumber)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetWindow returns up to context messages either side of hitIdx.
// startPos is the number of messages before the window, totalCount the
// number of messages in the index. A negative hitIdx returns everything.
func (d *DB) GetWindow(hitIdx, context int) (msgs []MessageRow, hitPos int, startPos int, totalCount int, err error) {
	err = d.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&totalCount)
	if err != nil {
		return nil, -1, 0, 0, err
	}

	startPos = 0
	limit := totalCount
	if hitIdx >= 0 && hitIdx < totalCount {
		startPos = hitIdx - context
		if startPos < 0 {
			startPos = 0
		}
		endPos := hitIdx + context + 1
		if endPos > totalCount {
			endPos = totalCount
		}
		limit = endPos - startPos
	}

	rows, err := d.db.Query(
		"SELECT "+messageColumns+" FROM messages ORDER BY idx LIMIT ? OFFSET ?",
		limit, startPos,
	)
	if err != nil {
		return nil, -1, 0, 0, err
	}
	defer rows.Close()

	msgs, err = scanMessages(rows)
	if err != nil {
		return nil, -1, 0, 0, err
	}

	hitPos = -1
	for i, m := range msgs {
		if m.Idx == hitIdx {
			hitPos = i
			break
		}
	}
	return msgs, hitPos, startPos, totalCount, nil
}

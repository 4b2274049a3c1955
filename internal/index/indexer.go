package index

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Zuo-Peng/chatstat/internal/parse"
)

type Stats struct {
	Indexed       int
	Notifications int
}

func (s Stats) String() string {
	return fmt.Sprintf("indexed=%d notifications=%d", s.Indexed, s.Notifications)
}

// Build opens a fresh index holding records. A record's position in the
// slice becomes its idx.
func Build(records []parse.Record, log *zap.Logger) (*DB, Stats, error) {
	db, err := Open()
	if err != nil {
		return nil, Stats{}, err
	}
	stats, err := db.Load(records)
	if err != nil {
		db.Close()
		return nil, stats, err
	}
	if log != nil {
		log.Debug("built message index", zap.Int("indexed", stats.Indexed), zap.Int("notifications", stats.Notifications))
	}
	return db, stats, nil
}

// Load inserts records in a single transaction.
func (d *DB) Load(records []parse.Record) (Stats, error) {
	var stats Stats

	tx, err := d.db.Begin()
	if err != nil {
		return stats, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO messages (idx, ts, author, body, line_number)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return stats, err
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(i, r.Timestamp.Format(TimeLayout), r.User, r.Body, r.Line); err != nil {
			return stats, fmt.Errorf("insert message %d: %w", i, err)
		}
		stats.Indexed++
		if r.IsNotification() {
			stats.Notifications++
		}
	}

	if err := tx.Commit(); err != nil {
		return stats, err
	}
	return stats, nil
}

package index

import (
	"testing"

	"go.uber.org/zap"

	"github.com/Zuo-Peng/chatstat/internal/parse"
)

const chat = `01/01/24, 10:00 - Alice joined
01/01/24, 10:01 - Alice: first
01/01/24, 10:02 - Bob: second
01/01/24, 10:03 - Alice: third
01/01/24, 10:04 - Bob: fourth
01/01/24, 10:05 - Alice: fifth
`

func buildTestDB(t *testing.T) *DB {
	t.Helper()
	records := parse.NewParser(parse.Options{}, nil).Parse(chat).Records()
	db, stats, err := Build(records, zap.NewNop())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if stats.Indexed != 6 || stats.Notifications != 1 {
		t.Fatalf("stats = %s", stats)
	}
	return db
}

func TestBuildCounts(t *testing.T) {
	db := buildTestDB(t)

	n, err := db.MessageCount()
	if err != nil || n != 6 {
		t.Fatalf("MessageCount = %d, %v", n, err)
	}
	fts, err := db.FTSCount()
	if err != nil || fts != n {
		t.Errorf("FTSCount = %d, %v; want %d", fts, err, n)
	}
}

func TestGetMessage(t *testing.T) {
	db := buildTestDB(t)

	m, err := db.GetMessage(2)
	if err != nil {
		t.Fatal(err)
	}
	if m == nil || m.Author != "Bob" || m.Body != "second" || m.LineNumber != 3 {
		t.Errorf("GetMessage(2) = %+v", m)
	}
	if m.Ts != "2024-01-01T10:02:00" {
		t.Errorf("ts = %q", m.Ts)
	}

	missing, err := db.GetMessage(99)
	if err != nil || missing != nil {
		t.Errorf("GetMessage(99) = %+v, %v", missing, err)
	}
}

func TestGetWindow(t *testing.T) {
	db := buildTestDB(t)

	tests := []struct {
		name                        string
		hit, context                int
		wantLen, wantHit, wantStart int
	}{
		{"middle", 3, 1, 3, 1, 2},
		{"clamped start", 0, 2, 3, 0, 0},
		{"clamped end", 5, 2, 3, 2, 3},
		{"no hit", -1, 2, 6, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, hit, start, total, err := db.GetWindow(tt.hit, tt.context)
			if err != nil {
				t.Fatal(err)
			}
			if len(msgs) != tt.wantLen || hit != tt.wantHit || start != tt.wantStart || total != 6 {
				t.Errorf("GetWindow(%d, %d) = len %d hit %d start %d total %d",
					tt.hit, tt.context, len(msgs), hit, start, total)
			}
		})
	}
}

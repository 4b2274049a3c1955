package stats

import (
	"context"
	"math"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Zuo-Peng/chatstat/internal/parse"
	"github.com/Zuo-Peng/chatstat/internal/stopwords"
)

// 1 Jan 2024 is a Monday.
const fixture = `01/01/24, 10:00 - Messages and calls are end-to-end encrypted.
01/01/24, 10:05 - Alice: hello world 😀
01/01/24, 10:06 - Bob: hi Alice 😀
see https://example.com/a
01/01/24, 23:30 - Alice: <Media omitted>
02/01/24, 09:00 - Bob: The weather, the WEATHER!
15/02/24, 14:10 - Carol joined using this group's invite link
15/02/24, 14:12 - Carol: This message was deleted
03/03/25, 08:00 - Alice: hello again 👍
`

func fixtureTable(t *testing.T) *Table {
	t.Helper()
	r := parse.NewParser(parse.Options{}, zap.NewNop()).Parse(fixture)
	if len(r.Errors) != 0 {
		t.Fatalf("fixture errors: %v", r.Errors)
	}
	return NewTable(r.Records(), "")
}

func TestTableUsers(t *testing.T) {
	tbl := fixtureTable(t)
	if got, want := tbl.Users(), []string{"Alice", "Bob", "Carol"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Users() = %v, want %v", got, want)
	}
	if got, want := tbl.UserOptions(), []string{Overall, "Alice", "Bob", "Carol"}; !reflect.DeepEqual(got, want) {
		t.Errorf("UserOptions() = %v, want %v", got, want)
	}
	if tbl.HasUser(parse.GroupNotification) {
		t.Error("notification sentinel listed as a user")
	}
	if tbl.Len() != 8 {
		t.Errorf("Len() = %d, want 8", tbl.Len())
	}
}

func TestFetchStats(t *testing.T) {
	tbl := fixtureTable(t)

	tests := []struct {
		user string
		want Stats
	}{
		{Overall, Stats{Messages: 6, Words: 21, Media: 1, Links: 1}},
		{"Alice", Stats{Messages: 3, Words: 8, Media: 1, Links: 0}},
		{"Bob", Stats{Messages: 2, Words: 9, Media: 0, Links: 1}},
		{"Nobody", Stats{}},
	}
	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			if got := FetchStats(tbl, tt.user); got != tt.want {
				t.Errorf("FetchStats(%q) = %+v, want %+v", tt.user, got, tt.want)
			}
		})
	}
}

func TestSingleMessageExample(t *testing.T) {
	r := parse.NewParser(parse.Options{}, nil).Parse("1/1/24, 10:00 - Alice: hello world")
	tbl := NewTable(r.Records(), "")
	if got, want := FetchStats(tbl, Overall), (Stats{Messages: 1, Words: 2}); got != want {
		t.Errorf("FetchStats = %+v, want %+v", got, want)
	}

	r = parse.NewParser(parse.Options{}, nil).Parse("1/1/24, 10:00 - Bob joined")
	tbl = NewTable(r.Records(), "")
	if got := FetchStats(tbl, Overall); got.Messages != 0 {
		t.Errorf("notification counted: %+v", got)
	}
}

func TestMonthlyTimeline(t *testing.T) {
	tbl := fixtureTable(t)
	got := MonthlyTimeline(tbl, Overall)

	var labels []string
	sum := 0
	for _, p := range got {
		labels = append(labels, p.Label)
		sum += p.Count
	}
	if want := []string{"January-2024", "February-2024", "March-2025"}; !reflect.DeepEqual(labels, want) {
		t.Errorf("labels = %v, want %v", labels, want)
	}
	if sum != FetchStats(tbl, Overall).Messages {
		t.Errorf("timeline sum %d != message count", sum)
	}
	if got[0].Count != 4 {
		t.Errorf("January count = %d, want 4", got[0].Count)
	}
}

func TestDailyAndWeekAgree(t *testing.T) {
	tbl := fixtureTable(t)
	for _, user := range tbl.UserOptions() {
		daily, week := 0, 0
		prev := DailyTimeline(tbl, user)
		for i, p := range prev {
			daily += p.Count
			if i > 0 && !prev[i-1].Date.Before(p.Date) {
				t.Errorf("%s: daily timeline not ascending at %d", user, i)
			}
		}
		for _, n := range WeekActivityMap(tbl, user) {
			week += n
		}
		if daily != week {
			t.Errorf("%s: daily sum %d != week sum %d", user, daily, week)
		}
	}
}

func TestWeekAndMonthActivity(t *testing.T) {
	tbl := fixtureTable(t)

	week := OrderedWeekActivity(WeekActivityMap(tbl, Overall))
	want := []NamedCount{{"Monday", 4}, {"Tuesday", 1}, {"Thursday", 1}}
	if !reflect.DeepEqual(week, want) {
		t.Errorf("week = %v, want %v", week, want)
	}

	months := MonthActivityMap(tbl, Overall)
	wantMonths := []NamedCount{{"January", 4}, {"February", 1}, {"March", 1}}
	if !reflect.DeepEqual(months, wantMonths) {
		t.Errorf("months = %v, want %v", months, wantMonths)
	}
}

func TestActivityHeatmap(t *testing.T) {
	tbl := fixtureTable(t)
	h := ActivityHeatmap(tbl, Overall)

	if want := []string{"Monday", "Tuesday", "Thursday"}; !reflect.DeepEqual(h.Rows, want) {
		t.Errorf("rows = %v, want %v", h.Rows, want)
	}
	if want := []string{"08-10", "10-12", "14-16", "22-00"}; !reflect.DeepEqual(h.Cols, want) {
		t.Errorf("cols = %v, want %v", h.Cols, want)
	}
	// Monday: 10:05, 10:06, 23:30 and 08:00 (3 Mar 2025 is a Monday).
	if want := []int{1, 2, 0, 1}; !reflect.DeepEqual(h.Cells[0], want) {
		t.Errorf("monday row = %v, want %v", h.Cells[0], want)
	}
	if h.Max() != 2 {
		t.Errorf("Max() = %d, want 2", h.Max())
	}

	empty := ActivityHeatmap(tbl, "Nobody")
	if len(empty.Rows) != 0 || len(empty.Cols) != 0 {
		t.Errorf("unknown user heatmap = %+v, want empty", empty)
	}
}

func TestMostBusyUsers(t *testing.T) {
	tbl := fixtureTable(t)
	b := MostBusyUsers(tbl, 2)

	want := []NamedCount{{"Alice", 3}, {parse.GroupNotification, 2}}
	if !reflect.DeepEqual(b.Top, want) {
		t.Errorf("top = %v, want %v", b.Top, want)
	}
	if len(b.Shares) != 4 {
		t.Fatalf("shares = %v, want 4 entries", b.Shares)
	}
	sum := 0.0
	for _, s := range b.Shares {
		sum += s.Percent
	}
	if math.Abs(sum-100) > 0.05 {
		t.Errorf("shares sum to %.2f", sum)
	}
	if b.Shares[0].Percent != 37.5 {
		t.Errorf("Alice share = %v, want 37.5", b.Shares[0].Percent)
	}
	// Bob and the notifications tie at 2; notifications came first.
	if b.Shares[1].User != parse.GroupNotification || b.Shares[2].User != "Bob" {
		t.Errorf("tie order = %v", b.Shares)
	}

	if got := MostBusyUsers(NewTable(nil, ""), 5); got.Top != nil || got.Shares != nil {
		t.Errorf("empty table = %+v", got)
	}
}

func TestMostCommonWords(t *testing.T) {
	tbl := fixtureTable(t)
	stop := stopwords.Set{"the": {}, "hi": {}}

	got := MostCommonWords(tbl, Overall, stop, 3)
	want := []NamedCount{{"hello", 2}, {"weather", 2}, {"world", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MostCommonWords = %v, want %v", got, want)
	}

	for _, w := range MostCommonWords(tbl, Overall, stop, 0) {
		if strings.Contains(w.Name, "media") || w.Name == "omitted" {
			t.Errorf("media placeholder counted: %v", w)
		}
		if w.Name == "encrypted" {
			t.Errorf("notification counted: %v", w)
		}
	}
}

func TestCreateWordcloud(t *testing.T) {
	tbl := fixtureTable(t)
	words := CreateWordcloud(tbl, Overall, stopwords.Set{"the": {}})

	seen := make(map[string]int)
	for _, w := range words {
		seen[w.Name] = w.Count
	}
	for _, banned := range []string{"https://example.com/a", "example.com/a", "deleted", "message"} {
		if _, ok := seen[banned]; ok {
			t.Errorf("wordcloud kept %q", banned)
		}
	}
	if seen["see"] != 1 || seen["weather"] != 2 {
		t.Errorf("wordcloud counts = %v", seen)
	}
	if len(CreateWordcloud(tbl, "Nobody", nil)) != 0 {
		t.Error("unknown user produced words")
	}
}

func TestEmojiHelper(t *testing.T) {
	tbl := fixtureTable(t)
	got := EmojiHelper(tbl, Overall)
	if len(got) != 2 {
		t.Fatalf("EmojiHelper = %v, want 2 entries", got)
	}
	if got[0] != (NamedCount{"😀", 2}) {
		t.Errorf("top emoji = %v", got[0])
	}

	r := parse.NewParser(parse.Options{}, nil).Parse("1/1/24, 10:00 - A: yay 🎉\n1/1/24, 10:01 - B: 🎉 too")
	got = EmojiHelper(NewTable(r.Records(), ""), Overall)
	if want := []NamedCount{{"🎉", 2}}; !reflect.DeepEqual(got, want) {
		t.Errorf("EmojiHelper = %v, want %v", got, want)
	}
}

func TestEmojiHelperCountsEachCharacter(t *testing.T) {
	const (
		thumbs   = "\U0001F44D"
		tone     = "\U0001F3FD"
		man      = "\U0001F468"
		woman    = "\U0001F469"
		girl     = "\U0001F467"
		zwj      = "\u200d"
		grinning = "\U0001F600"
	)
	family := man + zwj + woman + zwj + girl
	chat := "1/1/24, 10:00 - A: " + thumbs + tone + " ok\n" +
		"1/1/24, 10:01 - B: " + family + " #1 123\n" +
		"1/1/24, 10:02 - A: " + grinning + "\n" +
		"1/1/24, 10:03 - B: " + grinning + thumbs + "\n"
	r := parse.NewParser(parse.Options{}, nil).Parse(chat)
	got := EmojiHelper(NewTable(r.Records(), ""), Overall)

	counts := make(map[string]int)
	for _, nc := range got {
		counts[nc.Name] = nc.Count
	}
	for _, want := range []NamedCount{{thumbs, 2}, {grinning, 2}, {man, 1}, {woman, 1}, {girl, 1}} {
		if counts[want.Name] != want.Count {
			t.Errorf("count[%q] = %d, want %d (all: %v)", want.Name, counts[want.Name], want.Count, got)
		}
	}
	for _, banned := range []string{thumbs + tone, family, zwj, "#", "1"} {
		if _, ok := counts[banned]; ok {
			t.Errorf("%q counted as one emoji: %v", banned, got)
		}
	}
	// ties rank by first appearance
	if got[0].Name != thumbs || got[1].Name != grinning {
		t.Errorf("ranking = %v", got)
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("  Hello, WORLD!! it's (fine) -- ok 😀 ")
	want := []string{"hello", "world", "it's", "fine", "ok"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}

	got = Tokenize("hello,world wait...what 'quoted' don\u2019t yay\U0001F389done")
	want = []string{"hello", "world", "wait", "what", "quoted", "don\u2019t", "yay", "done"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestEmptyTable(t *testing.T) {
	for _, tbl := range []*Table{nil, NewTable(nil, "")} {
		if got := FetchStats(tbl, Overall); got != (Stats{}) {
			t.Errorf("FetchStats = %+v", got)
		}
		if len(MonthlyTimeline(tbl, Overall)) != 0 || len(DailyTimeline(tbl, Overall)) != 0 {
			t.Error("timelines not empty")
		}
		if len(WeekActivityMap(tbl, Overall)) != 0 || len(EmojiHelper(tbl, Overall)) != 0 {
			t.Error("maps not empty")
		}
		if len(MostCommonWords(tbl, Overall, nil, 10)) != 0 {
			t.Error("words not empty")
		}
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	tbl := fixtureTable(t)
	opts := Options{TopUsers: 3, TopWords: 5, TopEmojis: 5, Stopwords: stopwords.Default()}

	a, err := Compute(context.Background(), tbl, Overall, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compute(context.Background(), tbl, Overall, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs over the same table differ")
	}
	if a.BusyUsers == nil {
		t.Error("Overall dashboard lacks busy users")
	}
	if a.Stats != FetchStats(tbl, Overall) {
		t.Errorf("dashboard stats = %+v", a.Stats)
	}

	u, err := Compute(context.Background(), tbl, "Bob", opts)
	if err != nil {
		t.Fatal(err)
	}
	if u.BusyUsers != nil {
		t.Error("per-user dashboard has busy users")
	}
}

func TestComputeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Compute(ctx, fixtureTable(t), Overall, Options{}); err == nil {
		t.Error("Compute on cancelled context succeeded")
	}
}

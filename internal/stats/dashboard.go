package stats

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Zuo-Peng/chatstat/internal/stopwords"
)

type Options struct {
	TopUsers  int
	TopWords  int
	TopEmojis int
	Stopwords stopwords.Set
	Logger    *zap.Logger
}

// Dashboard is every query's answer for one selected user.
type Dashboard struct {
	User        string          `json:"user" yaml:"user"`
	Stats       Stats           `json:"stats" yaml:"stats"`
	Monthly     []TimelinePoint `json:"monthly_timeline" yaml:"monthly_timeline"`
	Daily       []DatePoint     `json:"daily_timeline" yaml:"daily_timeline"`
	Week        []NamedCount    `json:"week_activity" yaml:"week_activity"`
	Months      []NamedCount    `json:"month_activity" yaml:"month_activity"`
	Heatmap     Heatmap         `json:"heatmap" yaml:"heatmap"`
	BusyUsers   *BusyUsers      `json:"busy_users,omitempty" yaml:"busy_users,omitempty"` // Overall only
	CommonWords []NamedCount    `json:"common_words" yaml:"common_words"`
	Emojis      []NamedCount    `json:"emojis" yaml:"emojis"`
	WordCloud   []NamedCount    `json:"wordcloud" yaml:"wordcloud"`
}

// Empty reports whether the selection had no messages at all.
func (d *Dashboard) Empty() bool {
	return d.Stats.Messages == 0 && len(d.Daily) == 0
}

// Compute runs every query for user. The queries only read t, so they run
// side by side; ctx cancellation stops the ones not yet started.
func Compute(ctx context.Context, t *Table, user string, opts Options) (*Dashboard, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.TopUsers <= 0 {
		opts.TopUsers = 5
	}
	if opts.TopWords <= 0 {
		opts.TopWords = 20
	}

	d := &Dashboard{User: user}
	g, gctx := errgroup.WithContext(ctx)
	run := func(name string, fn func()) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			fn()
			log.Debug("query done", zap.String("query", name), zap.String("user", user), zap.Duration("took", time.Since(start)))
			return nil
		})
	}

	run("fetch_stats", func() { d.Stats = FetchStats(t, user) })
	run("monthly_timeline", func() { d.Monthly = MonthlyTimeline(t, user) })
	run("daily_timeline", func() { d.Daily = DailyTimeline(t, user) })
	run("week_activity_map", func() { d.Week = OrderedWeekActivity(WeekActivityMap(t, user)) })
	run("month_activity_map", func() { d.Months = MonthActivityMap(t, user) })
	run("activity_heatmap", func() { d.Heatmap = ActivityHeatmap(t, user) })
	run("most_common_words", func() { d.CommonWords = MostCommonWords(t, user, opts.Stopwords, opts.TopWords) })
	run("emoji_helper", func() {
		d.Emojis = EmojiHelper(t, user)
		if opts.TopEmojis > 0 && len(d.Emojis) > opts.TopEmojis {
			d.Emojis = d.Emojis[:opts.TopEmojis]
		}
	})
	run("create_wordcloud", func() { d.WordCloud = CreateWordcloud(t, user, opts.Stopwords) })
	if user == Overall {
		run("most_busy_users", func() {
			b := MostBusyUsers(t, opts.TopUsers)
			d.BusyUsers = &b
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

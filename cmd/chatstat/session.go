package main

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Zuo-Peng/chatstat/internal/config"
	"github.com/Zuo-Peng/chatstat/internal/index"
	"github.com/Zuo-Peng/chatstat/internal/input"
	"github.com/Zuo-Peng/chatstat/internal/logging"
	"github.com/Zuo-Peng/chatstat/internal/parse"
	"github.com/Zuo-Peng/chatstat/internal/stats"
	"github.com/Zuo-Peng/chatstat/internal/stopwords"
)

// session is one loaded and parsed chat export.
type session struct {
	cfg    *config.Config
	log    *zap.Logger
	stop   stopwords.Set
	export *input.Export
	result *parse.Result
	table  *stats.Table
}

// loadEnv reads the config and builds the logger from it.
func loadEnv() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// openSession loads path and parses it. A chat with no messages yields
// parse.ErrEmptyInput together with a usable session.
func openSession(path string) (*session, error) {
	cfg, log, err := loadEnv()
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, log: log}

	s.stop, err = stopwords.Load(cfg.StopwordsPath)
	if err != nil {
		return nil, err
	}

	s.export, err = input.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	log.Debug("loaded export", zap.String("name", s.export.Name), zap.Int("bytes", len(s.export.Text)))

	p := parse.NewParser(parse.Options{DateOrder: cfg.DateOrder}, log)
	result, perr := p.ParseChecked(s.export.Text)
	s.result = result
	s.table = stats.NewTable(result.Records(), cfg.MediaPlaceholder)
	if perr != nil {
		return s, perr
	}
	return s, nil
}

// resolveUser maps a --user value to a selector option.
func (s *session) resolveUser(user string) (string, error) {
	if user == "" || user == stats.Overall {
		return stats.Overall, nil
	}
	if !s.table.HasUser(user) {
		return "", fmt.Errorf("unknown user %q (see 'chatstat users')", user)
	}
	return user, nil
}

// index builds the in-memory search index over the session's records.
func (s *session) index() (*index.DB, error) {
	db, st, err := index.Build(s.table.Records(), s.log)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	s.log.Debug("index ready", zap.Stringer("stats", st))
	return db, nil
}

func (s *session) statsOptions() stats.Options {
	return stats.Options{
		TopUsers:  s.cfg.TopUsers,
		TopWords:  s.cfg.TopWords,
		TopEmojis: s.cfg.TopEmojis,
		Stopwords: s.stop,
		Logger:    s.log,
	}
}

func (s *session) close() {
	_ = s.log.Sync()
}

// requireMessages turns an empty chat into an error for commands that
// need at least one message.
func requireMessages(s *session, err error) (*session, error) {
	if errors.Is(err, parse.ErrEmptyInput) {
		s.close()
		return nil, err
	}
	return s, err
}

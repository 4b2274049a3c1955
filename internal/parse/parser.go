package parse

import (
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// userPrefix matches "Name: " on the first line of a message fragment.
var userPrefix = regexp.MustCompile(`^([^\n]+?):\s`)

type Options struct {
	DateOrder string         // OrderAuto, OrderDMY or OrderMDY
	Location  *time.Location // nil means UTC
}

type Parser struct {
	opts Options
	log  *zap.Logger
}

func NewParser(opts Options, log *zap.Logger) *Parser {
	if opts.DateOrder == "" {
		opts.DateOrder = OrderAuto
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{opts: opts, log: log}
}

// Parse splits an exported chat into messages in source order. Headers
// whose timestamp cannot be read are reported in Result.Errors and the
// message is skipped. Text before the first header is discarded.
func (p *Parser) Parse(text string) *Result {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	result := &Result{}
	format, matches, ok := detectFormat(text)
	if !ok {
		return result
	}
	result.Format = format.Name
	result.Headers = len(matches)

	fields := make([]headerFields, len(matches))
	for i, m := range matches {
		fields[i] = fieldsAt(text, m)
	}

	order := p.opts.DateOrder
	if order != OrderDMY && order != OrderMDY {
		order = detectOrder(fields, OrderDMY)
	}
	result.Order = order

	line := 1
	prev := 0
	for i, m := range matches {
		line += strings.Count(text[prev:m[0]], "\n")
		prev = m[0]

		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		fragment := text[m[1]:end]

		ts, err := parseTimestamp(fields[i], order, p.opts.Location)
		if err != nil {
			perr := &ParseError{
				Line:   line,
				Header: strings.TrimSpace(text[m[0]:m[1]]),
				Err:    err,
			}
			p.log.Warn("skipping message with unreadable timestamp",
				zap.Int("line", perr.Line),
				zap.String("header", perr.Header),
				zap.Error(err))
			result.Errors = append(result.Errors, perr)
			continue
		}

		user, body := splitUser(fragment)
		result.Messages = append(result.Messages, Message{
			Timestamp: ts,
			User:      user,
			Body:      body,
			Line:      line,
		})
	}

	p.log.Debug("parsed chat export",
		zap.String("format", result.Format),
		zap.String("order", result.Order),
		zap.Int("headers", result.Headers),
		zap.Int("messages", len(result.Messages)),
		zap.Int("errors", len(result.Errors)))

	return result
}

// ParseChecked is Parse that reports ErrEmptyInput when nothing was parsed.
func (p *Parser) ParseChecked(text string) (*Result, error) {
	r := p.Parse(text)
	if len(r.Messages) == 0 {
		return r, ErrEmptyInput
	}
	return r, nil
}

// splitUser separates "Name: body" fragments. Fragments without a name on
// their first line are notifications written by the export itself.
func splitUser(fragment string) (string, string) {
	if m := userPrefix.FindStringSubmatchIndex(fragment); m != nil {
		user := strings.TrimSpace(fragment[m[2]:m[3]])
		if user != "" {
			return user, strings.TrimSpace(fragment[m[1]:])
		}
	}
	return GroupNotification, strings.TrimSpace(fragment)
}

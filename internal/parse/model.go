package parse

import "time"

// GroupNotification is the author of lines the export writes on its own
// (joins, leaves, encryption notices).
const GroupNotification = "group_notification"

type Message struct {
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Body      string    `json:"body"`
	Line      int       `json:"line"` // 1-based line of the message header in the export
}

// IsNotification reports whether the message was written by the export itself.
func (m Message) IsNotification() bool {
	return m.User == GroupNotification
}

// Record is a Message with its calendar fields filled in by Enrich.
type Record struct {
	Message

	Year     int       `json:"year"`
	Month    string    `json:"month"`
	MonthNum int       `json:"month_num"`
	Day      int       `json:"day"`
	DayName  string    `json:"day_name"`
	Hour     int       `json:"hour"`
	Minute   int       `json:"minute"`
	OnlyDate time.Time `json:"only_date"`
	Period   string    `json:"period"`
}

type Result struct {
	Format   string // name of the detected header format, "" if none matched
	Order    string // "dmy" or "mdy"
	Headers  int    // header lines found
	Messages []Message
	Errors   []error
}

// Records enriches every parsed message, keeping source order.
func (r *Result) Records() []Record {
	return EnrichAll(r.Messages)
}

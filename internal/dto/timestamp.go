package dto

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jinzhu/now"
)

// Timestamp accepts the datetime layouts the API emits, with or without a
// zone offset, and date-only values for due dates.
type Timestamp struct {
	time.Time
}

// Zoneless values are read as UTC.
var timestampParser = &now.Config{
	TimeLocation: time.UTC,
	TimeFormats: []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02",
	},
}

func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("timestamp must be a string, got %s", data)
	}
	raw := string(data[1 : len(data)-1])
	if raw == "" {
		return nil
	}
	t, err := timestampParser.Parse(raw)
	if err != nil {
		return fmt.Errorf("unrecognized timestamp %q", raw)
	}
	ts.Time = t
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + ts.Format(time.RFC3339Nano) + `"`), nil
}

// timeOf returns the zero time for a nil timestamp.
func timeOf(ts *Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.Time
}

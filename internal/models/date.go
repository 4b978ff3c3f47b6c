// internal/models/date.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time of day. It marshals as YYYY-MM-DD and
// accepts either YYYY-MM-DD or RFC3339 on input.
type Date struct {
	time.Time
}

// NewDate truncates t to midnight in its own location.
func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())}
}

// ParseDate parses YYYY-MM-DD or RFC3339 into a Date.
func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Date{}, fmt.Errorf("date is required")
	}
	if parsed, err := time.Parse(DateLayout, raw); err == nil {
		return Date{Time: parsed}, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return Date{}, fmt.Errorf("date must be in YYYY-MM-DD format")
	}
	return NewDate(parsed.UTC()), nil
}

// AddWeeks returns the date n weeks later.
func (d Date) AddWeeks(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, 7*n)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

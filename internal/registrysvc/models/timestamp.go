package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// Timestamp is a time.Time rendered as "YYYY-MM-DD HH:MM:SS" in the server's
// local time zone.
type Timestamp time.Time

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t)
}

func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

func (t Timestamp) String() string {
	return time.Time(t).In(time.Local).Format(TimestampLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.ParseInLocation(TimestampLayout, s, time.Local)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// ParseBound parses a date filter value. It accepts YYYY-MM-DD,
// YYYY-MM-DD HH:MM:SS and RFC 3339. A date-only upper bound is moved to the
// last instant of that day so the range stays inclusive.
func ParseBound(value string, upper bool) (time.Time, error) {
	value = strings.TrimSpace(value)

	if t, err := time.ParseInLocation(DateLayout, value, time.Local); err == nil {
		if upper {
			return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
		}
		return t, nil
	}
	if t, err := time.ParseInLocation(TimestampLayout, value, time.Local); err == nil {
		if upper {
			// whole second inclusive
			return t.Add(time.Second - time.Nanosecond), nil
		}
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD or YYYY-MM-DD HH:MM:SS", ErrBadRequest, value)
}

// OptionalString distinguishes an absent JSON key (Set false) from an explicit
// null (Set true, Value nil).
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

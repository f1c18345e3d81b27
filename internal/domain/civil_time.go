package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// CivilLayout is how dateTime travels on the wire: activity-local civil time, no zone suffix
const CivilLayout = "2006-01-02T15:04:05"

// Taipei is the operating timezone of every activity (UTC+8, no DST)
var Taipei = time.FixedZone("Asia/Taipei", 8*60*60)

// CivilTime is an instant that marshals as UTC+8 civil time.
// The zero value means "not selected" and marshals as null.
type CivilTime struct {
	time.Time
}

// NewCivilTime wraps t
func NewCivilTime(t time.Time) CivilTime {
	return CivilTime{Time: t}
}

// ParseCivilTime accepts the civil layout (read as UTC+8), the same layout with a trailing
// fractional part, or a full RFC 3339 timestamp
func ParseCivilTime(s string) (CivilTime, error) {
	if s == "" {
		return CivilTime{}, nil
	}
	if t, err := time.ParseInLocation(CivilLayout, s, Taipei); err == nil {
		return CivilTime{Time: t}, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05.999999999", s, Taipei); err == nil {
		return CivilTime{Time: t}, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", s, Taipei); err == nil {
		return CivilTime{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return CivilTime{}, fmt.Errorf("invalid dateTime %q", s)
	}
	return CivilTime{Time: t}, nil
}

// String formats the instant in the civil layout
func (c CivilTime) String() string {
	if c.IsZero() {
		return ""
	}
	return c.In(Taipei).Format(CivilLayout)
}

// CivilDate returns the UTC+8 calendar day at midnight
func (c CivilTime) CivilDate() time.Time {
	return CivilDateOf(c.Time)
}

// CivilDateOf returns midnight of t's UTC+8 calendar day
func CivilDateOf(t time.Time) time.Time {
	y, m, d := t.In(Taipei).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, Taipei)
}

// MarshalJSON implements json.Marshaler
func (c CivilTime) MarshalJSON() ([]byte, error) {
	if c.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(c.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (c *CivilTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*c = CivilTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCivilTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

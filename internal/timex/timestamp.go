package timex

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timestamp is a time.Time that tolerates the timestamp shapes the note API
// and legacy cached records have used over time: RFC3339 strings (with or
// without fractional seconds) and epoch milliseconds, either as a JSON number
// or a quoted number. It marshals back as RFC3339 with millisecond precision.
type Timestamp struct {
	time.Time
}

// Now returns the current moment as a Timestamp.
func Now() Timestamp {
	return Timestamp{time.Now().UTC()}
}

// FromTime wraps a time.Time.
func FromTime(t time.Time) Timestamp {
	return Timestamp{t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return json.Marshal(t.UTC().Format("2006-01-02T15:04:05.000Z07:00"))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		t.Time = time.Time{}
		return nil
	}

	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		return t.parseString(str)
	}

	// bare JSON number: epoch milliseconds
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}

func (t *Timestamp) parseString(s string) error {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	// quoted epoch milliseconds
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		t.Time = time.UnixMilli(ms).UTC()
		return nil
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

// Before reports whether t is strictly earlier than other.
func (t Timestamp) Before(other Timestamp) bool {
	return t.Time.Before(other.Time)
}

// After reports whether t is strictly later than other.
func (t Timestamp) After(other Timestamp) bool {
	return t.Time.After(other.Time)
}

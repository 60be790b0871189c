package models

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var leadingNum = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// FlexNumber is a numeric value the backend may send as a JSON number, a
// numeric string (Postgres NUMERIC columns), free text such as "12.5%" or
// null. The text is kept as received.
type FlexNumber string

// UnmarshalJSON accepts numbers, strings and null
func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = FlexNumber(strings.TrimSpace(s))
		return nil
	}
	*n = FlexNumber(data)
	return nil
}

// MarshalJSON emits the received text unchanged: as a JSON number when it is
// one, otherwise as a string. Empty is 0.
func (n FlexNumber) MarshalJSON() ([]byte, error) {
	if n == "" {
		return []byte("0"), nil
	}
	raw := []byte(n)
	if _, err := strconv.ParseFloat(string(n), 64); err == nil && json.Valid(raw) {
		return raw, nil
	}
	return json.Marshal(string(n))
}

// Float reads the numeric prefix of the value ("12.5%" is 12.5), treating
// anything without one as 0
func (n FlexNumber) Float() float64 {
	return LeadingFloat(string(n))
}

// Int truncates the parsed value
func (n FlexNumber) Int() int {
	return int(n.Float())
}

// LeadingFloat parses the numeric prefix of s and returns 0 when there is none
func LeadingFloat(s string) float64 {
	m := leadingNum.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}

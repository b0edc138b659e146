package internal

import (
	"strconv"
	"strings"
	"time"
)

// Session represents a finalized imaging session record
type Session struct {
	SessionID  string `json:"session_id" yaml:"session_id"`
	Name       string `json:"name" yaml:"name"`
	Age        int    `json:"age" yaml:"age"`
	Timestamp  int64  `json:"timestamp" yaml:"timestamp"` // epoch millis, set at finalize
	ImageCount int    `json:"image_count" yaml:"image_count"`
}

// EndedAt returns the finalize time of the session
func (s *Session) EndedAt() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// ValidatePatient checks the name/age pair entered at session end.
// A blank name or non-positive age rejects the finalize before any
// record is built.
func ValidatePatient(name string, age int) error {
	if strings.TrimSpace(name) == "" {
		return &InvalidInputError{Field: "name", Value: name, Reason: "must not be blank"}
	}
	if age <= 0 {
		return &InvalidInputError{Field: "age", Value: strconv.Itoa(age), Reason: "must be a positive integer"}
	}
	return nil
}

// ParseAge parses a user-entered age string
func ParseAge(raw string) (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &InvalidInputError{Field: "age", Value: raw, Reason: "not a number"}
	}
	return age, nil
}

package app

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrMissingIdentifier = errors.New("username, email or phone number required")
	ErrUserExists        = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrPostNotFound      = errors.New("post not found")
)

const birthDateLayout = "2006-01-02"

// parseBirthDate normalizes a YYYY-MM-DD claim to local midnight so stored
// and queried dates compare equal and the DATE column keeps the calendar day
// the caller typed.
func parseBirthDate(raw string) (time.Time, error) {
	parsed, err := time.ParseInLocation(birthDateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidInput
	}
	return parsed, nil
}

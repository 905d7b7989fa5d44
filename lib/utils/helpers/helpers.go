package helpers

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04:05"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// ParseDate дата ГГГГ-ММ-ДД как полночь UTC
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, errors.Errorf("некорректная дата %q, ожидается формат ГГГГ-ММ-ДД", value)
	}
	return t, nil
}

func ParseOptionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateFormat)
}

// Today календарная дата now в часовом поясе loc
func Today(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func StrValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

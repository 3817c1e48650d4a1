package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Date renders as YYYY-MM-DD in views.
type Date struct {
	time.Time
}

var ErrInvalidDate = errors.New("invalid ISO-8601 date")

var isoLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"20060102",
	"2006-01",
	"2006",
	"2006-002",
	"2006002",
}

// weekDate matches 2024-W01, 2024-W01-1 and their basic forms 2024W01, 2024W011.
var weekDate = regexp.MustCompile(`^(\d{4})(-?)W(\d{2})(?:(-?)([1-7]))?$`)

// ParseISODate accepts the calendar, ordinal and week date forms of
// ISO-8601, alone or followed by a time of day.
func ParseISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if t, ok := parseWeekDate(s); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// parseWeekDate resolves a week date to its calendar day. Week 1 is the
// week holding January 4th; a missing weekday means Monday.
func parseWeekDate(s string) (time.Time, bool) {
	m := weekDate.FindStringSubmatch(s)
	if m == nil || (m[5] != "" && m[2] != m[4]) {
		return time.Time{}, false
	}

	year, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[3])
	day := 1
	if m[5] != "" {
		day, _ = strconv.Atoi(m[5])
	}

	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	monday := jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
	t := monday.AddDate(0, 0, (week-1)*7+day-1)

	if y, w := t.ISOWeek(); week < 1 || y != year || w != week {
		return time.Time{}, false
	}
	return t, true
}

// DateOf returns nil for a nil or zero time so optional dates are omitted.
func DateOf(t *time.Time) *Date {
	if t == nil || t.IsZero() {
		return nil
	}
	return &Date{Time: *t}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte(`null`), nil
	}

	s := d.Time.Format("2006-01-02")
	return json.Marshal(s)
}

// longDate formats as "January 2nd, 2006".
func longDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %s, %d", t.Month(), humanize.Ordinal(t.Day()), t.Year())
}

// shortDate formats as "Jan 2nd, 2006".
func shortDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %s, %d", t.Format("Jan"), humanize.Ordinal(t.Day()), t.Year())
}

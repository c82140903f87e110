package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrEmptyTimespec   = errors.New("given timespec matches no dates")
	ErrInvalidTimespec = errors.New("invalid timespec")
)

var weekdays = map[string]time.Weekday{ //nolint:gochecknoglobals
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseTimespec resolves the arguments of the defer command to the instant
// the menu should reappear. Accepted forms:
//
//	2h30m               a duration from now
//	2024-05-01T18:00:00Z an absolute RFC 3339 timestamp
//	18:00               the next time the clock shows 18:00
//	tomorrow [18:00]    midnight (or the given time) tomorrow
//	friday [18:00]      the next friday, strictly after today
func ParseTimespec(args []string, now time.Time) (time.Time, error) {
	if len(args) == 0 {
		return time.Time{}, ErrEmptyTimespec
	}

	spec := strings.ToLower(strings.Join(args, " "))

	result, errParse := parseTimespec(strings.Fields(spec), now)
	if errParse != nil {
		return time.Time{}, errParse
	}

	if !result.After(now) {
		return time.Time{}, errors.Wrapf(ErrEmptyTimespec, "%q is in the past", spec)
	}

	return result, nil
}

func parseTimespec(fields []string, now time.Time) (time.Time, error) {
	if len(fields) == 1 {
		if duration, errDuration := time.ParseDuration(fields[0]); errDuration == nil {
			return now.Add(duration), nil
		}

		if absolute, errAbsolute := time.Parse(time.RFC3339, strings.ToUpper(fields[0])); errAbsolute == nil {
			return absolute, nil
		}

		if hour, minute, ok := parseClock(fields[0]); ok {
			next := atClock(now, hour, minute)
			if !next.After(now) {
				next = next.AddDate(0, 0, 1)
			}

			return next, nil
		}
	}

	if len(fields) == 0 || len(fields) > 2 {
		return time.Time{}, errors.Wrapf(ErrInvalidTimespec, "%q", strings.Join(fields, " "))
	}

	hour, minute := 0, 0

	if len(fields) == 2 {
		var ok bool
		if hour, minute, ok = parseClock(fields[1]); !ok {
			return time.Time{}, errors.Wrapf(ErrInvalidTimespec, "Invalid time of day %q", fields[1])
		}
	}

	if fields[0] == "tomorrow" {
		return atClock(now, hour, minute).AddDate(0, 0, 1), nil
	}

	weekday, found := weekdays[fields[0]]
	if !found {
		return time.Time{}, errors.Wrapf(ErrInvalidTimespec, "%q", strings.Join(fields, " "))
	}

	days := (int(weekday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}

	return atClock(now, hour, minute).AddDate(0, 0, days), nil
}

func parseClock(value string) (int, int, bool) {
	clock, errClock := time.Parse("15:04", value)
	if errClock != nil {
		return 0, 0, false
	}

	return clock.Hour(), clock.Minute(), true
}

func atClock(now time.Time, hour int, minute int) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
}

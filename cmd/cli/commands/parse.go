package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/dcbc/crewboard/pkg/core/model"
)

var dateTimeLayouts = []string{"2006-01-02 15:04", "2006-01-02T15:04"}

// parseDate reads a calendar date (YYYY-MM-DD) as midnight UTC
func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(model.DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

// parseDates reads every argument as a calendar date
func parseDates(args []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(args))
	for _, arg := range args {
		d, err := parseDate(arg)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// parseDateTime reads "YYYY-MM-DD HH:MM" in the club's timezone
func parseDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q, expected \"YYYY-MM-DD HH:MM\"", s)
}

// dayRange converts inclusive calendar dates into a window covering both whole days in loc.
// An empty from defaults to today; an empty to defaults to days after from.
func dayRange(from, to string, days int, loc *time.Location, now time.Time) (time.Time, time.Time, error) {
	start := model.DateOnly(now.In(loc))
	if from != "" {
		d, err := parseDate(from)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	}

	end := start.AddDate(0, 0, days)
	if to != "" {
		d, err := parseDate(to)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	}

	return start, end.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
}

// parseSeats reads seat=member pairs, e.g. "stroke=ab123"
func parseSeats(args []string) (model.SeatMap, error) {
	seats := model.SeatMap{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid seat assignment %q, expected seat=member", arg)
		}
		seat, err := model.ParseSeat(key)
		if err != nil {
			return nil, err
		}
		if _, taken := seats[seat]; taken {
			return nil, fmt.Errorf("%w: seat %s assigned twice", model.ErrInvalidSeatMap, seat)
		}
		seats[seat] = strings.TrimSpace(value)
	}
	return seats, nil
}

// parseOverrides reads original=substitute pairs
func parseOverrides(args []string) (model.Overrides, error) {
	if len(args) == 0 {
		return nil, nil
	}
	overrides := model.Overrides{}
	for _, arg := range args {
		original, substitute, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid substitution %q, expected original=substitute", arg)
		}
		overrides[strings.TrimSpace(original)] = strings.TrimSpace(substitute)
	}
	return overrides, nil
}

// splitList reads a comma separated flag value
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

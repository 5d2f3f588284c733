package timeparse

import (
	"errors"
	"time"
)

const DefaultTimezone = "UTC"

var ErrInvalidDateTime = errors.New("invalid date or time")

// Layouts accepted for the booking time field. The mobile client sends
// 12-hour strings ("10:00 AM"); older records sometimes carry 24-hour ones.
var timeLayouts = []string{
	"3:04 PM",
	"03:04 PM",
	"15:04",
}

func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

// DateTime combines a "2006-01-02" date and a clock string into a single
// instant in the given location.
func DateTime(date, clock string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateTime
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, clock); err == nil {
			return time.Date(
				d.Year(), d.Month(), d.Day(),
				t.Hour(), t.Minute(), 0, 0,
				loc,
			), nil
		}
	}

	return time.Time{}, ErrInvalidDateTime
}

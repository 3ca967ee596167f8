package output

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var relativePattern = regexp.MustCompile(`^(\d+)\s*(d|day|days|w|week|weeks|h|hour|hours)(\s+ago)?$`)

// ParseSince turns "today", "yesterday", "3 days", "2w ago", "this week",
// "last month" or a YYYY-MM-DD date into the start of a listing window.
func ParseSince(input string, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	input = strings.ToLower(strings.TrimSpace(input))
	midnight := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}

	switch input {
	case "":
		return time.Time{}, fmt.Errorf("empty date")
	case "today":
		return midnight(now), nil
	case "yesterday":
		return midnight(now.AddDate(0, 0, -1)), nil
	case "this week":
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return midnight(now.AddDate(0, 0, -(weekday - 1))), nil
	case "this month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), nil
	case "last week":
		return now.AddDate(0, 0, -7), nil
	case "last month":
		return now.AddDate(0, -1, 0), nil
	}

	if m := relativePattern.FindStringSubmatch(input); m != nil {
		n, _ := strconv.Atoi(m[1])
		switch m[2][0] {
		case 'd':
			return now.AddDate(0, 0, -n), nil
		case 'w':
			return now.AddDate(0, 0, -7*n), nil
		case 'h':
			return now.Add(-time.Duration(n) * time.Hour), nil
		}
	}

	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04", "2006/01/02", "01/02/2006"} {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date %q (try today, yesterday, 3 days, this week or YYYY-MM-DD)", input)
}

// Presets are named windows accepted by list --preset.
var Presets = []string{"today", "yesterday", "week", "month"}

// Preset returns the [from, to) window of a named preset. to is zero when
// the window is open-ended.
func Preset(name string, now time.Time, loc *time.Location) (from, to time.Time, err error) {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	switch strings.ToLower(name) {
	case "today":
		return today, time.Time{}, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), today, nil
	case "week":
		return today.AddDate(0, 0, -6), time.Time{}, nil
	case "month":
		return today.AddDate(0, 0, -29), time.Time{}, nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("unknown preset %q (%s)", name, strings.Join(Presets, ", "))
}

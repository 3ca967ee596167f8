// Package schedule fires the daily mood check-in reminder.
package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/ramanasai/moodmate/internal/config"
)

// Plan is a parsed reminder configuration.
type Plan struct {
	hour, min int
	loc       *time.Location
	workdays  map[time.Weekday]bool
	holidays  map[string]bool
}

var weekdays = map[string]time.Weekday{
	"Sun": time.Sunday, "Mon": time.Monday, "Tue": time.Tuesday, "Wed": time.Wednesday,
	"Thu": time.Thursday, "Fri": time.Friday, "Sat": time.Saturday,
}

// NewPlan builds a Plan from cfg. An unparsable time falls back to 20:00 and
// an empty workday list means every day.
func NewPlan(cfg config.Config) Plan {
	p := Plan{
		hour:     20,
		loc:      cfg.Location(),
		workdays: map[time.Weekday]bool{},
		holidays: map[string]bool{},
	}
	if t, err := time.Parse("15:04", strings.TrimSpace(cfg.Reminder.Time)); err == nil {
		p.hour, p.min = t.Hour(), t.Minute()
	}
	for _, d := range cfg.Reminder.Workdays {
		d = strings.TrimSpace(d)
		if len(d) < 3 {
			continue
		}
		if wd, ok := weekdays[strings.ToUpper(d[:1])+strings.ToLower(d[1:3])]; ok {
			p.workdays[wd] = true
		}
	}
	if len(p.workdays) == 0 {
		for _, wd := range weekdays {
			p.workdays[wd] = true
		}
	}
	for _, h := range cfg.Reminder.Holidays {
		p.holidays[strings.TrimSpace(h)] = true
	}
	return p
}

// Next returns the first reminder time strictly after now that falls on a
// workday and not on a holiday.
func (p Plan) Next(now time.Time) time.Time {
	now = now.In(p.loc)
	cand := time.Date(now.Year(), now.Month(), now.Day(), p.hour, p.min, 0, 0, p.loc)
	if !now.Before(cand) {
		cand = cand.AddDate(0, 0, 1)
	}
	for i := 0; i < 366; i++ {
		if p.workdays[cand.Weekday()] && !p.holidays[cand.Format("2006-01-02")] {
			return cand
		}
		cand = cand.AddDate(0, 0, 1)
	}
	return cand
}

// NextAt is shorthand for NewPlan(cfg).Next(now).
func NextAt(now time.Time, cfg config.Config) time.Time {
	return NewPlan(cfg).Next(now)
}

// RunConfigured calls f at every reminder time until ctx is canceled.
func RunConfigured(ctx context.Context, cfg config.Config, f func()) {
	plan := NewPlan(cfg)
	t := time.NewTimer(time.Until(plan.Next(time.Now())))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			f()
			t.Reset(time.Until(plan.Next(time.Now())))
		}
	}
}

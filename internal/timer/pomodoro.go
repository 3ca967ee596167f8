// Package timer runs focus/break countdown cycles.
package timer

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Phase string

const (
	PhaseFocus Phase = "FOCUS"
	PhaseBreak Phase = "BREAK"
)

var ErrInvalidSettings = errors.New("timer values must be positive")

type Pomodoro struct {
	Work   time.Duration
	Break  time.Duration
	Cycles int
	// Tick is the countdown resolution; zero means one second.
	Tick time.Duration
}

// New builds a timer from whole minutes.
func New(workMin, breakMin, cycles int) Pomodoro {
	return Pomodoro{
		Work:   time.Duration(workMin) * time.Minute,
		Break:  time.Duration(breakMin) * time.Minute,
		Cycles: cycles,
	}
}

func (p Pomodoro) Validate() error {
	if p.Work <= 0 || p.Break <= 0 || p.Cycles <= 0 {
		return fmt.Errorf("%w (work=%s break=%s cycles=%d)", ErrInvalidSettings, p.Work, p.Break, p.Cycles)
	}
	return nil
}

// Hooks are optional callbacks; nil hooks are skipped.
type Hooks struct {
	OnCycle      func(cycle, total int)
	OnPhaseStart func(phase Phase, d time.Duration)
	OnTick       func(phase Phase, remaining time.Duration)
	OnPhaseEnd   func(phase Phase)
	// OnTip fires after the break that follows every second focus session.
	OnTip func(sessions int)
}

type Result struct {
	Cycles       int
	WorkSessions int
	Focused      time.Duration
}

// Run counts down each cycle: a focus phase, then a break unless it is the
// last cycle. It returns ctx.Err() when interrupted, along with the progress
// made so far.
func (p Pomodoro) Run(ctx context.Context, h Hooks) (Result, error) {
	var res Result
	if err := p.Validate(); err != nil {
		return res, err
	}
	tick := p.Tick
	if tick <= 0 {
		tick = time.Second
	}

	for cycle := 1; cycle <= p.Cycles; cycle++ {
		if h.OnCycle != nil {
			h.OnCycle(cycle, p.Cycles)
		}
		if err := p.phase(ctx, PhaseFocus, p.Work, tick, h); err != nil {
			return res, err
		}
		res.WorkSessions++
		res.Focused += p.Work

		if cycle < p.Cycles {
			if err := p.phase(ctx, PhaseBreak, p.Break, tick, h); err != nil {
				return res, err
			}
			if res.WorkSessions%2 == 0 && h.OnTip != nil {
				h.OnTip(res.WorkSessions)
			}
		}
		res.Cycles = cycle
	}
	return res, nil
}

func (p Pomodoro) phase(ctx context.Context, phase Phase, d, tick time.Duration, h Hooks) error {
	if h.OnPhaseStart != nil {
		h.OnPhaseStart(phase, d)
	}
	if err := countdown(ctx, d, tick, func(rem time.Duration) {
		if h.OnTick != nil {
			h.OnTick(phase, rem)
		}
	}); err != nil {
		return err
	}
	if h.OnPhaseEnd != nil {
		h.OnPhaseEnd(phase)
	}
	return nil
}

func countdown(ctx context.Context, d, tick time.Duration, onTick func(time.Duration)) error {
	t := time.NewTicker(tick)
	defer t.Stop()

	remaining := d
	onTick(remaining)
	for remaining > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			remaining -= tick
			if remaining < 0 {
				remaining = 0
			}
			onTick(remaining)
		}
	}
	return nil
}

// Clock formats a remaining duration as MM:SS.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

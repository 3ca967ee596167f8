package timer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fast(cycles int) Pomodoro {
	return Pomodoro{
		Work:   4 * time.Millisecond,
		Break:  2 * time.Millisecond,
		Cycles: cycles,
		Tick:   time.Millisecond,
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, New(25, 5, 4).Validate())
	for _, p := range []Pomodoro{New(0, 5, 1), New(25, -1, 1), New(25, 5, 0)} {
		assert.ErrorIs(t, p.Validate(), ErrInvalidSettings)
	}
}

func TestRunPhasesAndTips(t *testing.T) {
	var events []string
	var ticks int
	hooks := Hooks{
		OnCycle:      func(c, total int) { events = append(events, "cycle") },
		OnPhaseStart: func(p Phase, _ time.Duration) { events = append(events, "start:"+string(p)) },
		OnPhaseEnd:   func(p Phase) { events = append(events, "end:"+string(p)) },
		OnTick:       func(Phase, time.Duration) { ticks++ },
		OnTip:        func(int) { events = append(events, "tip") },
	}

	res, err := fast(3).Run(context.Background(), hooks)
	require.NoError(t, err)
	assert.Equal(t, Result{Cycles: 3, WorkSessions: 3, Focused: 12 * time.Millisecond}, res)
	assert.Equal(t, []string{
		"cycle", "start:FOCUS", "end:FOCUS", "start:BREAK", "end:BREAK",
		"cycle", "start:FOCUS", "end:FOCUS", "start:BREAK", "end:BREAK", "tip",
		"cycle", "start:FOCUS", "end:FOCUS",
	}, events, "no break after the last cycle")
	// 3 focus phases of 5 ticks (4ms..0) and 2 breaks of 3 ticks.
	assert.Equal(t, 21, ticks)
}

func TestRunCountsDownToZero(t *testing.T) {
	var last time.Duration = -1
	_, err := fast(1).Run(context.Background(), Hooks{
		OnTick: func(_ Phase, rem time.Duration) {
			if last >= 0 {
				assert.Less(t, rem, last)
			}
			last = rem
		},
	})
	require.NoError(t, err)
	assert.Zero(t, last)
}

func TestRunInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Pomodoro{Work: time.Hour, Break: time.Minute, Cycles: 2, Tick: time.Millisecond}

	res, err := p.Run(ctx, Hooks{
		OnTick: func(_ Phase, rem time.Duration) {
			if rem < time.Hour-5*time.Millisecond {
				cancel()
			}
		},
	})
	require.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, res.WorkSessions)
}

func TestRunRejectsInvalid(t *testing.T) {
	_, err := New(0, 0, 0).Run(context.Background(), Hooks{})
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestClock(t *testing.T) {
	assert.Equal(t, "25:00", Clock(25*time.Minute))
	assert.Equal(t, "01:05", Clock(65*time.Second))
	assert.Equal(t, "00:00", Clock(-time.Second))
}

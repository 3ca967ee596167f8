package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/ramanasai/moodmate/internal/config"
)

func reminderConfig(at string, workdays, holidays []string) config.Config {
	cfg := config.Default()
	cfg.Reminder.Time = at
	cfg.Reminder.Workdays = workdays
	cfg.Reminder.Holidays = holidays
	cfg.Reminder.Timezone = "UTC"
	return cfg
}

func TestNextAt(t *testing.T) {
	// 2025-03-12 is a Wednesday.
	wed := func(h, m int) time.Time { return time.Date(2025, 3, 12, h, m, 0, 0, time.UTC) }
	weekdaysOnly := []string{"Mon", "Tue", "Wed", "Thu", "Fri"}

	tests := []struct {
		name string
		cfg  config.Config
		now  time.Time
		want time.Time
	}{
		{"later today", reminderConfig("20:00", weekdaysOnly, nil), wed(9, 0), wed(20, 0)},
		{"exactly now moves to tomorrow", reminderConfig("20:00", weekdaysOnly, nil), wed(20, 0), time.Date(2025, 3, 13, 20, 0, 0, 0, time.UTC)},
		{"skips weekend", reminderConfig("08:15", weekdaysOnly, nil), time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC), time.Date(2025, 3, 17, 8, 15, 0, 0, time.UTC)},
		{"skips holiday", reminderConfig("20:00", weekdaysOnly, []string{"2025-03-12"}), wed(9, 0), time.Date(2025, 3, 13, 20, 0, 0, 0, time.UTC)},
		{"bad time falls back to 20:00", reminderConfig("soon", weekdaysOnly, nil), wed(9, 0), wed(20, 0)},
		{"no workdays means every day", reminderConfig("07:00", nil, nil), time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC), time.Date(2025, 3, 16, 7, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextAt(tt.now, tt.cfg)
			assert.True(t, got.Equal(tt.want), "got %s want %s", got, tt.want)
		})
	}
}

func TestRunConfiguredStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunConfigured(ctx, reminderConfig("20:00", nil, nil), func() {})
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("RunConfigured did not stop")
	}
}

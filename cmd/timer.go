package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/spf13/cobra"

	"github.com/ramanasai/moodmate/internal/notify"
	"github.com/ramanasai/moodmate/internal/timer"
)

var (
	workMinutes  int
	breakMinutes int
	cycles       int
	quietTimer   bool
)

const timerTip = "💡 Quick tip: take a moment to stretch and rest your eyes before the next cycle!"

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Focus/break countdown (defaults from config)",
	Long: `Examples:
	moodmate timer                          # 25/5 minutes, 4 cycles
	moodmate timer --work 50 --break 10 --cycles 2
	moodmate timer --quiet                  # no desktop notifications`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		flags := cmd.Flags()
		if !flags.Changed("work") {
			workMinutes = cfg.Timer.WorkMinutes
		}
		if !flags.Changed("break") {
			breakMinutes = cfg.Timer.BreakMinutes
		}
		if !flags.Changed("cycles") {
			cycles = cfg.Timer.Cycles
		}
		p := timer.New(workMinutes, breakMinutes, cycles)
		if err := p.Validate(); err != nil {
			return err
		}

		s := styles()
		w := out(cmd)
		bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage())
		if colorDisabled() {
			bar = progress.New(progress.WithSolidFill(""), progress.WithWidth(30), progress.WithoutPercentage())
		}
		notifyOn := cfg.Timer.Notify && !quietTimer

		var phaseLen time.Duration
		hooks := timer.Hooks{
			OnCycle: func(c, total int) {
				fmt.Fprintln(w, s.Title.Render(fmt.Sprintf("Cycle %d/%d", c, total)))
			},
			OnPhaseStart: func(ph timer.Phase, d time.Duration) {
				phaseLen = d
			},
			OnTick: func(ph timer.Phase, rem time.Duration) {
				done := 1 - float64(rem)/float64(phaseLen)
				fmt.Fprintf(w, "\r%-6s %s %s", ph, bar.ViewAs(done), s.Highlight.Render(timer.Clock(rem)))
			},
			OnPhaseEnd: func(ph timer.Phase) {
				fmt.Fprintln(w)
				fmt.Fprintln(w, s.Success.Render(fmt.Sprintf("⏰ %s time over!", ph)))
				if notifyOn {
					if err := notify.PhaseOver(string(ph)); err != nil {
						logger.Debug("notification failed", "err", err)
					}
				}
			},
			OnTip: func(int) {
				fmt.Fprintln(w, s.Note.Render(timerTip))
			},
		}

		logger.Debug("timer started", "work", p.Work, "break", p.Break, "cycles", p.Cycles)
		res, err := p.Run(cmd.Context(), hooks)
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(w)
			fmt.Fprintln(w, s.Warning.Render(fmt.Sprintf("Timer stopped after %d work session(s).", res.WorkSessions)))
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(w, s.Success.Render(fmt.Sprintf("🎉 Done: %d work session(s), %s of focus.", res.WorkSessions, res.Focused)))
		if notifyOn {
			_ = notify.Done("All cycles complete. Time to log how you feel!")
		}
		return nil
	},
}

func init() {
	timerCmd.Flags().IntVar(&workMinutes, "work", 25, "Work minutes")
	timerCmd.Flags().IntVar(&breakMinutes, "break", 5, "Break minutes")
	timerCmd.Flags().IntVar(&cycles, "cycles", 4, "Number of cycles")
	timerCmd.Flags().BoolVarP(&quietTimer, "quiet", "q", false, "No desktop notifications")
}

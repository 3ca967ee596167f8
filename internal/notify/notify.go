package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

const appName = "MoodMate"

func Info(title, message string) error {
	return beeep.Notify(title, message, "")
}

func Done(message string) error {
	return beeep.Alert(appName, message, "")
}

// PhaseOver announces the end of a timer phase such as "FOCUS" or "BREAK".
func PhaseOver(phase string) error {
	title, msg := FormatPhaseOver(phase)
	return Info(title, msg)
}

func FormatPhaseOver(phase string) (string, string) {
	return fmt.Sprintf("%s time over!", phase), fmt.Sprintf("%s: %s is done!", appName, phase)
}

func FormatCheckIn(pending int) (string, string) {
	title := "How are you feeling?"
	msg := "Take a moment to log your mood."
	if pending > 0 {
		msg = fmt.Sprintf("Take a moment to log your mood. %d suggested task(s) still pending.", pending)
	}
	return title, msg
}

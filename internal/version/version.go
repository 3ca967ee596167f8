package version

import (
	"fmt"
	"runtime"
)

// Build metadata injected by goreleaser or makefile
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns the detailed version line printed by `moodmate version`.
func Info() string {
	if Version == "dev" {
		return fmt.Sprintf("MoodMate dev (%s/%s)", runtime.GOOS, runtime.GOARCH)
	}
	return fmt.Sprintf("MoodMate %s (commit: %s, built: %s, %s/%s)",
		Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}

// Short is used as cobra's --version output.
func Short() string {
	return "MoodMate " + Version
}

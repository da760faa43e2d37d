package registry

import (
	"regexp"
	"strings"
	"time"
)

// Activity describes what a pane's child process currently appears to be
// doing, inferred from recent screen content rather than tracked directly.
type Activity int

const (
	ActivityIdle       Activity = iota // no recent output
	ActivityActive                     // currently producing output
	ActivityDone                       // just finished (prompt line visible)
	ActivityNeedsInput                 // waiting on a confirmation prompt
)

func (a Activity) String() string {
	switch a {
	case ActivityActive:
		return "active"
	case ActivityDone:
		return "done"
	case ActivityNeedsInput:
		return "needs-input"
	default:
		return "idle"
	}
}

// quietPeriod is how long output must stop flowing before a pane's activity
// is reclassified from Active to whatever the screen content suggests.
const quietPeriod = 1500 * time.Millisecond

var (
	needsInputPattern = regexp.MustCompile(`(?i)` +
		`\[Y/n\]|\[y/N\]|\(y/n\)|` +
		`(?:proceed|continue|confirm|approve|allow)\s*\?|` +
		`permission|do you want to|would you like to|` +
		`press enter to|waiting for`)

	promptPattern = regexp.MustCompile(
		`[❯›»]\s*$|` +
			`[>$%#]\s*$|` +
			`^[A-Za-z]:\\[^>]*>\s*$`)
)

// ClassifyActivity inspects the most recent lines of on-screen text (ordered
// bottom-to-top, as produced by a terminal's tail) and derives the Activity
// state they suggest. lastOutput is the time output was last written;
// a zero value means no output has ever been seen.
func ClassifyActivity(lastOutput time.Time, recentLines []string) Activity {
	if lastOutput.IsZero() {
		return ActivityIdle
	}
	if time.Since(lastOutput) < quietPeriod {
		return ActivityActive
	}

	for _, line := range recentLines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if needsInputPattern.MatchString(trimmed) {
			return ActivityNeedsInput
		}
		if promptPattern.MatchString(trimmed) {
			return ActivityDone
		}
	}
	return ActivityIdle
}

// Package progress shows the coach's attempts while a turn runs on the
// command line.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/ziadkadry99/scenecoach/internal/coach"
)

// Reporter receives attempt events for one coaching turn.
type Reporter interface {
	Start(maxAttempts int)
	Attempt(a coach.AttemptResult)
	Finish()
}

// NewReporter returns a TerminalReporter writing to w, or a LineReporter
// when the CI environment variable is set.
func NewReporter(w io.Writer) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LineReporter{w: w}
	}
	return &TerminalReporter{w: w}
}

// describe is the one-line summary of an attempt.
func describe(a coach.AttemptResult) string {
	switch {
	case a.Violation != nil:
		return fmt.Sprintf("attempt %d rejected: %s", a.Index+1, a.Violation.Kind)
	case a.Structural != "" && a.Corrective != "":
		return fmt.Sprintf("attempt %d reshaped: %s", a.Index+1, a.Structural)
	default:
		return fmt.Sprintf("attempt %d accepted", a.Index+1)
	}
}

// TerminalReporter displays a bar that fills one step per attempt.
type TerminalReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(maxAttempts int) {
	r.bar = progressbar.NewOptions(maxAttempts,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription("Asking the coach"),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Attempt(a coach.AttemptResult) {
	if r.bar != nil {
		r.bar.Describe(describe(a))
		_ = r.bar.Set(a.Index + 1)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LineReporter prints one line per attempt, suitable for logs.
type LineReporter struct {
	w     io.Writer
	total int
}

func (r *LineReporter) Start(maxAttempts int) {
	r.total = maxAttempts
	fmt.Fprintf(r.w, "Asking the coach (up to %d attempts)\n", maxAttempts)
}

func (r *LineReporter) Attempt(a coach.AttemptResult) {
	fmt.Fprintf(r.w, "[%d/%d] %s\n", a.Index+1, r.total, describe(a))
}

func (r *LineReporter) Finish() {}

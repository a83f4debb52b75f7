// Package audit keeps a trail of coaching runs: which contract was in force,
// how many attempts it took and which rules the rejected drafts broke.
package audit

import (
	"errors"
	"time"

	"github.com/ziadkadry99/scenecoach/internal/coach"
)

// Outcome is how a coaching run ended.
type Outcome string

const (
	OutcomeAccepted      Outcome = "accepted"
	OutcomeExhausted     Outcome = "exhausted"
	OutcomeUpstreamError Outcome = "upstream_error"
)

// Entry is a single audit trail record.
type Entry struct {
	ID           string      `json:"id"`
	Timestamp    time.Time   `json:"timestamp"`
	UserID       string      `json:"user_id"`
	ThreadID     string      `json:"thread_id,omitempty"`
	Style        coach.Style `json:"style"`
	ContractKind coach.Kind  `json:"contract_kind"`
	Outcome      Outcome     `json:"outcome"`
	Attempts     int         `json:"attempts"`
	Violations   []string    `json:"violations"`
	InputTokens  int         `json:"input_tokens"`
	OutputTokens int         `json:"output_tokens"`
	Summary      string      `json:"summary,omitempty"`
}

// FromRun builds an entry from what coach.Run returned. Exactly one of res
// and err is expected to be non-nil.
func FromRun(userID, threadID string, contract coach.Contract, res *coach.Result, err error) Entry {
	e := Entry{
		UserID:       userID,
		ThreadID:     threadID,
		Style:        contract.Style,
		ContractKind: contract.Kind(),
		Violations:   []string{},
	}

	var attempts []coach.AttemptResult
	var exhausted *coach.ContractExhaustedError
	var upstream *coach.UpstreamError
	switch {
	case res != nil:
		e.Outcome = OutcomeAccepted
		attempts = res.Attempts
		e.InputTokens = res.InputTokens
		e.OutputTokens = res.OutputTokens
	case errors.As(err, &exhausted):
		e.Outcome = OutcomeExhausted
		attempts = exhausted.Attempts
		e.Summary = exhausted.Error()
	case errors.As(err, &upstream):
		e.Outcome = OutcomeUpstreamError
		e.Attempts = upstream.Attempt + 1
		e.Summary = upstream.Error()
	default:
		e.Outcome = OutcomeUpstreamError
		if err != nil {
			e.Summary = err.Error()
		}
	}

	if attempts != nil {
		e.Attempts = len(attempts)
	}
	for _, a := range attempts {
		switch {
		case a.Violation != nil:
			e.Violations = append(e.Violations, string(a.Violation.Kind))
		case a.Structural != "":
			e.Violations = append(e.Violations, a.Structural)
		}
	}
	return e
}

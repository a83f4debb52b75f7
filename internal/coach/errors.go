package coach

import "fmt"

// UpstreamError reports a failed model call. The controller never retries
// it.
type UpstreamError struct {
	Attempt int
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream call failed on attempt %d: %v", e.Attempt+1, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ContractExhaustedError is returned when every attempt produced text that
// failed validation. The rejected text is never handed back as a reply.
type ContractExhaustedError struct {
	Style    Style
	Attempts []AttemptResult
	Last     *Violation
}

// Message is the caller-facing summary for the style.
func (e *ContractExhaustedError) Message() string {
	if e.Style == StyleSocratic {
		return "Failed to generate questions-only response"
	}
	return "Failed to generate a Director Mode response"
}

func (e *ContractExhaustedError) Error() string {
	if e.Last == nil {
		return e.Message()
	}
	return fmt.Sprintf("%s after %d attempts: %s", e.Message(), len(e.Attempts), e.Last.Detail)
}

func (e *ContractExhaustedError) Unwrap() error {
	if e.Last == nil {
		return nil
	}
	return e.Last
}

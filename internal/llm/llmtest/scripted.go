// Package llmtest provides a scripted llm.Provider for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/ziadkadry99/scenecoach/internal/llm"
)

// Scripted replays a fixed list of replies, one per Complete call, and
// records every request it receives.
type Scripted struct {
	mu      sync.Mutex
	replies []string
	errs    map[int]error
	calls   []llm.CompletionRequest
}

// NewScripted returns a provider that answers call i with replies[i].
func NewScripted(replies ...string) *Scripted {
	return &Scripted{replies: replies, errs: map[int]error{}}
}

// FailOn makes call i return err instead of a reply.
func (s *Scripted) FailOn(i int, err error) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[i] = err
	return s
}

func (s *Scripted) Name() string { return "scripted" }

func (s *Scripted) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := len(s.calls)
	req.Messages = llm.CloneMessages(req.Messages)
	s.calls = append(s.calls, req)

	if err, ok := s.errs[i]; ok {
		return nil, err
	}
	if i >= len(s.replies) {
		return nil, fmt.Errorf("scripted provider: no reply for call %d", i)
	}
	return &llm.CompletionResponse{
		Content:      s.replies[i],
		InputTokens:  llm.EstimateMessageTokens(req.Messages),
		OutputTokens: llm.EstimateTokens(s.replies[i]),
		Model:        "scripted-model",
		FinishReason: "stop",
	}, nil
}

// Calls returns the requests received so far.
func (s *Scripted) Calls() []llm.CompletionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]llm.CompletionRequest, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns how many times Complete was called.
func (s *Scripted) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

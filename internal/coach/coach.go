package coach

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/scenecoach/internal/llm"
)

// Corrective instructions sent after a rejected attempt.
const (
	socraticReformat = "Rewrite your previous response into ONLY neutral questions. No advice. Every line must end with a '?'"

	directorReformat = "Your previous response broke the Director Mode rules. Please rewrite following Director Mode structure: observations, interpretations, questions. " +
		"No screenplay lines, no quoted example lines, no prescriptions or imperatives."

	reflectionFirstCorrective = "Your previous response opened with a question. Respond with reflection FIRST: " +
		"one or two tentative sentences under \"What I'm seeing:\" grounded in the text, then your questions."

	discussCorrective = "Reformat your previous response. Begin with \"Quick read:\" and 2-4 tentative sentences grounded only in the provided text. " +
		"Optionally add one \"What might be at play:\" sentence, then \"Questions:\". Do not open with a question."
)

// Probe names reported in AttemptResult.Structural.
const (
	ProbeReflectionFirst = "reflection_first"
	ProbeQuickRead       = "quick_read"
)

// AttemptResult records one model call.
type AttemptResult struct {
	Index      int        `json:"index"`
	Text       string     `json:"text"`
	Passed     bool       `json:"passed"`
	Violation  *Violation `json:"violation,omitempty"`
	Structural string     `json:"structural,omitempty"`
	Corrective string     `json:"corrective,omitempty"`
}

// Result is an accepted reply.
type Result struct {
	Text         string          `json:"text"`
	Contract     Contract        `json:"contract"`
	Attempts     []AttemptResult `json:"attempts"`
	InputTokens  int             `json:"input_tokens"`
	OutputTokens int             `json:"output_tokens"`
}

// Options tune the model calls the controller makes.
type Options struct {
	Model          string
	Temperature    float64
	MaxTokens      int
	AttemptTimeout time.Duration
}

// DefaultOptions returns the stock sampling settings.
func DefaultOptions() Options {
	return Options{Temperature: 0.7}
}

// Coach runs coaching turns against a provider. It holds no per-request
// state and is safe for concurrent use.
type Coach struct {
	provider llm.Provider
	logger   *zap.Logger
	opts     Options
}

// New creates a Coach. A nil logger discards output.
func New(provider llm.Provider, logger *zap.Logger, opts Options) *Coach {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coach{provider: provider, logger: logger, opts: opts}
}

// Run classifies req, composes the prompt and calls the model until a reply
// passes its contract. It makes at most Contract.MaxAttempts calls. A failed
// call returns *UpstreamError at once; running out of attempts returns
// *ContractExhaustedError.
func (c *Coach) Run(ctx context.Context, req Request) (*Result, error) {
	contract := Resolve(req.Style, req.Intent, req.UserMessage)
	messages := Compose(Input{
		Mode:          req.Mode,
		Contract:      contract,
		SelectionText: req.SelectionText,
		SceneText:     req.SceneText,
		SceneSlugline: req.SceneSlugline,
		ScriptTitle:   req.ScriptTitle,
		UserMessage:   req.UserMessage,
		Cursor:        req.Cursor,
		Profile:       req.Profile,
		History:       req.History,
	})

	log := c.logger.With(zap.String("contract", string(contract.Kind())))
	res := &Result{Contract: contract}
	record := func(a AttemptResult) {
		if req.OnAttempt != nil {
			req.OnAttempt(a)
		}
		res.Attempts = append(res.Attempts, a)
	}
	maxAttempts := contract.MaxAttempts()

	for i := 0; i < maxAttempts; i++ {
		resp, err := c.call(ctx, messages)
		if err != nil {
			log.Warn("model call failed", zap.Int("attempt", i), zap.Error(err))
			return nil, &UpstreamError{Attempt: i, Err: err}
		}
		res.InputTokens += resp.InputTokens
		res.OutputTokens += resp.OutputTokens

		text := resp.Content
		attempt := AttemptResult{
			Index:      i,
			Text:       text,
			Violation:  Validate(contract.Style, text),
			Structural: structuralFailure(contract, text),
		}
		attempt.Passed = attempt.Violation == nil
		last := i == maxAttempts-1

		if attempt.Passed && (attempt.Structural == "" || last) {
			record(attempt)
			res.Text = text
			log.Debug("reply accepted", zap.Int("attempts", i+1), zap.String("structural", attempt.Structural))
			return res, nil
		}

		if last {
			record(attempt)
			log.Warn("contract exhausted",
				zap.Int("attempts", maxAttempts),
				zap.String("violation", string(attempt.Violation.Kind)))
			return nil, &ContractExhaustedError{Style: contract.Style, Attempts: res.Attempts, Last: attempt.Violation}
		}

		corrective, ok := nextCorrective(contract, i+1, attempt)
		if ok {
			attempt.Corrective = corrective
			messages = extend(messages, text, corrective)
		}
		record(attempt)

		fields := []zap.Field{zap.Int("attempt", i), zap.Bool("corrective", ok)}
		if attempt.Violation != nil {
			fields = append(fields, zap.String("violation", string(attempt.Violation.Kind)), zap.String("detail", attempt.Violation.Detail))
		} else {
			fields = append(fields, zap.String("structural", attempt.Structural))
		}
		log.Debug("retrying reply", fields...)
	}

	// Unreachable: the last iteration always returns.
	return nil, &ContractExhaustedError{Style: contract.Style, Attempts: res.Attempts}
}

func (c *Coach) call(ctx context.Context, messages []llm.Message) (*llm.CompletionResponse, error) {
	if c.opts.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.AttemptTimeout)
		defer cancel()
	}
	return c.provider.Complete(ctx, llm.CompletionRequest{
		Model:       c.opts.Model,
		Messages:    messages,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: c.opts.Temperature,
	})
}

// structuralFailure names the shape probe a validator-clean reply fails for
// its contract, or "" when the shape is acceptable.
func structuralFailure(c Contract, text string) string {
	if c.DiscussIntent && (!HasQuickReadSection(text) || StartsWithQuestion(text)) {
		return ProbeQuickRead
	}
	if c.ReflectionFirst && StartsWithQuestion(text) {
		return ProbeReflectionFirst
	}
	return ""
}

// nextCorrective picks the instruction for attempt index next. ok is false
// when the previous list should be resent unchanged.
func nextCorrective(c Contract, next int, prev AttemptResult) (string, bool) {
	reformat := directorReformat
	if c.Style == StyleSocratic {
		reformat = socraticReformat
	}

	switch {
	case prev.Violation != nil && next == 1:
		return reformat, true
	case c.DiscussIntent && (!HasQuickReadSection(prev.Text) || StartsWithQuestion(prev.Text)):
		return discussCorrective, true
	case c.ReflectionFirst && StartsWithQuestion(prev.Text) && next == 2:
		return reflectionFirstCorrective, true
	case next == 1:
		return reformat, true
	default:
		return "", false
	}
}

// extend returns a new list with the rejected reply and the corrective
// appended. base is left untouched.
func extend(base []llm.Message, reply, corrective string) []llm.Message {
	out := make([]llm.Message, 0, len(base)+2)
	out = append(out, base...)
	return append(out,
		llm.Message{Role: llm.RoleAssistant, Content: reply},
		llm.Message{Role: llm.RoleUser, Content: corrective},
	)
}

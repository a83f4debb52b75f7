package agent

import (
	"errors"

	"github.com/ziadkadry99/scenecoach/internal/coach"
	"github.com/ziadkadry99/scenecoach/internal/screenplay"
	"github.com/ziadkadry99/scenecoach/internal/thread"
)

// AnonymousUser is the identity used when a request carries none.
const AnonymousUser = "anonymous"

// ErrInvalidInput marks errors caused by the caller's request.
var ErrInvalidInput = errors.New("invalid input")

// ErrNotFound is returned when a requested thread does not exist.
var ErrNotFound = errors.New("not found")

// CursorPosition is a 1-based editor position.
type CursorPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// AskRequest is one writer turn as received from the editor.
type AskRequest struct {
	ScriptID      string `json:"script_id"`
	ScriptTitle   string `json:"script_title,omitempty"`
	UserID        string `json:"-"`
	Style         string `json:"style,omitempty"`
	Intent        string `json:"intent,omitempty"`
	Mode          string `json:"mode,omitempty"`
	SelectionText string `json:"selection_text,omitempty"`
	SceneText     string `json:"scene_text,omitempty"`
	SceneSlugline string `json:"scene_slugline,omitempty"`
	UserMessage   string `json:"user_message,omitempty"`

	// Fountain is the whole document. With Cursor set the service derives
	// the cursor context and, when SceneText is empty, the scene around it.
	Fountain      string                    `json:"fountain,omitempty"`
	Cursor        *CursorPosition           `json:"cursor,omitempty"`
	CursorContext *screenplay.CursorContext `json:"cursor_context,omitempty"`

	OnAttempt func(coach.AttemptResult) `json:"-"`
}

// AskResponse is an accepted coach reply.
type AskResponse struct {
	ThreadID      string              `json:"thread_id"`
	Text          string              `json:"text"`
	Contract      coach.Contract      `json:"contract"`
	ContractKind  coach.Kind          `json:"contract_kind"`
	Attempts      int                 `json:"attempts"`
	InputTokens   int                 `json:"input_tokens"`
	OutputTokens  int                 `json:"output_tokens"`
	WriterProfile coach.WriterProfile `json:"writer_profile"`
}

// ThreadView is a thread transcript with the writer's current preferences.
type ThreadView struct {
	ThreadID      string              `json:"thread_id"`
	ScriptID      string              `json:"script_id"`
	Messages      []thread.Message    `json:"messages"`
	WriterProfile coach.WriterProfile `json:"writer_profile"`
}

// ValidateRequest asks for a reply to be checked against a style's rules.
type ValidateRequest struct {
	Style string `json:"style"`
	Text  string `json:"text"`
}

// ValidateResponse reports the validator verdict and the structural probes.
type ValidateResponse struct {
	Valid              bool             `json:"valid"`
	Violation          *coach.Violation `json:"violation,omitempty"`
	StartsWithQuestion bool             `json:"starts_with_question"`
	HasQuickRead       bool             `json:"has_quick_read"`
}

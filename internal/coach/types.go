// Package coach turns a writer's request into a model reply that honours the
// active response contract. It classifies the request, composes the prompt,
// calls the model, validates the text and retries with corrective
// instructions until the reply passes or the attempt budget runs out.
package coach

import (
	"strings"

	"github.com/ziadkadry99/scenecoach/internal/screenplay"
)

// Style is the caller's chosen coaching style.
type Style string

const (
	StyleSocratic Style = "socratic"
	StyleDirector Style = "director"
)

// ParseStyle maps a wire value onto a Style. Anything but "socratic" is
// director.
func ParseStyle(s string) Style {
	if strings.EqualFold(strings.TrimSpace(s), string(StyleSocratic)) {
		return StyleSocratic
	}
	return StyleDirector
}

// Intent is an explicit discussion request from the editor.
type Intent string

const (
	IntentNone             Intent = ""
	IntentDiscussScene     Intent = "discuss_scene"
	IntentDiscussSelection Intent = "discuss_selection"
)

// ParseIntent maps a wire value onto an Intent; unknown values are IntentNone.
func ParseIntent(s string) Intent {
	switch Intent(strings.TrimSpace(s)) {
	case IntentDiscussScene:
		return IntentDiscussScene
	case IntentDiscussSelection:
		return IntentDiscussSelection
	default:
		return IntentNone
	}
}

// Mode selects the user-prompt framing.
type Mode string

const (
	ModeSelection Mode = "selection"
	ModeScene     Mode = "scene"
	ModeProfile   Mode = "profile"
	ModeStuck     Mode = "stuck"
)

// ParseMode maps a wire value onto a Mode, defaulting to scene.
func ParseMode(s string) Mode {
	switch Mode(strings.TrimSpace(s)) {
	case ModeSelection:
		return ModeSelection
	case ModeProfile:
		return ModeProfile
	case ModeStuck:
		return ModeStuck
	default:
		return ModeScene
	}
}

// Tone is the writer's preferred register.
type Tone string

const (
	ToneNeutral  Tone = "neutral"
	ToneGentle   Tone = "gentle"
	ToneRigorous Tone = "rigorous"
)

// Focus is the craft lens the writer wants prioritised.
type Focus string

const (
	FocusBalanced  Focus = "balanced"
	FocusCharacter Focus = "character"
	FocusPacing    Focus = "pacing"
	FocusDialogue  Focus = "dialogue"
	FocusTheme     Focus = "theme"
)

// WriterProfile is a read-only snapshot of a writer's coaching preferences.
type WriterProfile struct {
	Tone           Tone   `json:"tone"`
	Focus          Focus  `json:"focus"`
	AvoidTheme     bool   `json:"avoid_theme"`
	AvoidSymbolism bool   `json:"avoid_symbolism"`
	Notes          string `json:"notes,omitempty"`
}

// Turn is one prior message of the conversation, oldest first.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request carries everything one coaching turn needs.
type Request struct {
	Style         Style
	Intent        Intent
	Mode          Mode
	SelectionText string
	SceneText     string
	SceneSlugline string
	ScriptTitle   string
	UserMessage   string
	Cursor        *screenplay.CursorContext
	Profile       *WriterProfile
	History       []Turn

	// OnAttempt, when set, sees each judged attempt before the controller
	// decides what to do next. It runs on the caller's goroutine.
	OnAttempt func(AttemptResult)
}

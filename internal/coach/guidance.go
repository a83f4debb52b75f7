package coach

import (
	"github.com/ziadkadry99/scenecoach/internal/screenplay"
)

var elementGuidance = map[screenplay.ElementType]string{
	screenplay.ElementDialogue:      "Focus on: subtext, power shifts, what each character wants in this exchange, voice consistency, emotional escalation, what's being said vs what's meant.",
	screenplay.ElementCharacter:     "Focus on: motivation, character choice, contradictions, what the character wants entering this beat, why this character at this moment.",
	screenplay.ElementAction:        "Focus on: visual clarity, causality, pacing, escalation, reversals, what the audience sees and feels.",
	screenplay.ElementScene:         "Focus on: why this location/time, what changes in this scene, tone promise, setup/payoff, scene function.",
	screenplay.ElementTransition:    "Focus on: momentum, whether the cut is motivated, what the audience should feel next, pacing.",
	screenplay.ElementParenthetical: "Focus on: playable intent, whether it adds subtext or explains too much, if it's necessary.",
}

var positionGuidance = map[screenplay.Position]string{
	screenplay.PositionEarly:  "This is early in the scene. Ask about setup, intent, stakes, orientation, what's being established.",
	screenplay.PositionMiddle: "This is in the middle of the scene. Ask about escalation, tactic shifts, rising tension.",
	screenplay.PositionLate:   "This is late in the scene. Ask about the turn, consequences, hook into next scene, what changes.",
}

var toneGuidance = map[Tone]string{
	ToneGentle:   "Use warmer, more curious phrasing. Be less confrontational. Frame questions as invitations to explore, not challenges.",
	ToneRigorous: "Use more direct, diagnostic questions. Still be respectful, but cut to the core issues. Be precise and specific.",
}

var focusGuidance = map[Focus]string{
	FocusCharacter: "Prioritize character lenses: motivations, relationships, voice, wants/needs.",
	FocusPacing:    "Prioritize pacing lenses: rhythm, tension, flow, escalation.",
	FocusDialogue:  "Prioritize dialogue lenses: subtext, voice, power dynamics, what's unsaid.",
	FocusTheme:     "Prioritize theme lenses: deeper meaning, what the story is really about.",
}

const (
	avoidThemeLine     = "Do NOT ask about theme or deeper meaning. Focus on craft, character, and story mechanics.\n"
	avoidSymbolismLine = "Prefer 'meaning to the character' over 'symbolize' or symbolic interpretation. Focus on concrete story elements.\n"
)

// notesContextChars is how much of the profile notes tail reaches the prompt.
const notesContextChars = 500

// systemData is the value every system template renders against. Empty
// guidance fields are left out of the rendered prompt.
type systemData struct {
	QuestionBudget string
	HasHistory     bool
	DiscussTarget  string

	ElementType     screenplay.ElementType
	Element         string
	Position        string
	Tone            string
	Focus           string
	Avoid           string
	ActiveCharacter string
	Notes           string

	// PrioritizeFocus names the focus lens the socratic lens list defers to.
	PrioritizeFocus Focus
}

func buildGuidance(cursor *screenplay.CursorContext, profile *WriterProfile) systemData {
	var g systemData

	if cursor != nil {
		if text, ok := elementGuidance[cursor.ElementType]; ok {
			g.ElementType = cursor.ElementType
			g.Element = text
			if cursor.ElementType == screenplay.ElementDialogue && cursor.ActiveCharacter != "" {
				g.Element += " The active character is " + cursor.ActiveCharacter + "."
			}
		}
		g.Position = positionGuidance[cursor.ScenePosition]
		g.ActiveCharacter = cursor.ActiveCharacter
	}

	if profile != nil {
		g.Tone = toneGuidance[profile.Tone]
		if text, ok := focusGuidance[profile.Focus]; ok {
			g.Focus = text
			g.PrioritizeFocus = profile.Focus
		}
		if profile.AvoidTheme {
			g.Avoid += avoidThemeLine
		}
		if profile.AvoidSymbolism {
			g.Avoid += avoidSymbolismLine
		}
		if notes := tail(profile.Notes, notesContextChars); hasText(notes) {
			g.Notes = "\n\nWhat the writer has told you they care about:\n" + notes + "\n"
		}
	}

	return g
}

// tail returns the last n runes of s.
func tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

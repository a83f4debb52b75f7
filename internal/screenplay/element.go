// Package screenplay reads the indentation-based fountain layout the editor
// produces: line classification, scene boundaries, character cues and the
// cursor context the coach prompts are built from.
package screenplay

import (
	"strings"
	"unicode/utf8"
)

// ElementType is the screenplay element a line belongs to.
type ElementType string

const (
	ElementScene         ElementType = "scene"
	ElementAction        ElementType = "action"
	ElementCharacter     ElementType = "character"
	ElementDialogue      ElementType = "dialogue"
	ElementParenthetical ElementType = "parenthetical"
	ElementTransition    ElementType = "transition"
)

// Leading-space indents for each indented element.
const (
	IndentDialogue      = 8
	IndentParenthetical = 12
	IndentCharacter     = 18
	IndentTransition    = 55
)

var elementTypes = map[string]ElementType{
	"scene":         ElementScene,
	"action":        ElementAction,
	"character":     ElementCharacter,
	"dialogue":      ElementDialogue,
	"parenthetical": ElementParenthetical,
	"transition":    ElementTransition,
}

// ParseElementType maps a wire value onto an ElementType.
func ParseElementType(s string) (ElementType, bool) {
	t, ok := elementTypes[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// ClassifyLine returns the element type of a single raw (untrimmed) line.
// Blank lines and anything unrecognised are action.
func ClassifyLine(line string) ElementType {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ElementAction
	}
	upper := strings.ToUpper(trimmed)
	leading := len(line) - len(strings.TrimLeft(line, " \t"))

	if leading == 0 && IsSceneHeading(trimmed) {
		return ElementScene
	}

	if isTransition(upper) && leading >= IndentTransition {
		return ElementTransition
	}

	paren := strings.HasPrefix(trimmed, "(") && strings.HasSuffix(trimmed, ")")
	if paren && leading >= IndentParenthetical {
		return ElementParenthetical
	}

	if isShortUpper(trimmed) && !strings.Contains(trimmed, ":") && leading >= IndentCharacter {
		return ElementCharacter
	}

	if leading >= IndentDialogue && !paren && !isTransition(upper) {
		return ElementDialogue
	}

	return ElementAction
}

// IsSceneHeading reports whether a trimmed line opens a scene.
func IsSceneHeading(trimmed string) bool {
	upper := strings.ToUpper(trimmed)
	return strings.HasPrefix(upper, "INT.") ||
		strings.HasPrefix(upper, "EXT.") ||
		strings.HasPrefix(upper, "INT./EXT.") ||
		strings.HasPrefix(upper, "I/E.")
}

func isTransition(upper string) bool {
	return strings.HasSuffix(upper, " TO:") || upper == "FADE IN:" || upper == "FADE OUT:"
}

func isShortUpper(trimmed string) bool {
	n := utf8.RuneCountInString(trimmed)
	return trimmed == strings.ToUpper(trimmed) && n >= 2 && n <= 30
}

// looksLikeCue is the indentation-free character cue test used when the
// editor has lost the layout: short, upper case, no colon, and neither a
// heading nor a transition.
func looksLikeCue(trimmed string) bool {
	return isShortUpper(trimmed) &&
		!IsSceneHeading(trimmed) &&
		!isTransition(strings.ToUpper(trimmed)) &&
		!strings.Contains(trimmed, ":")
}

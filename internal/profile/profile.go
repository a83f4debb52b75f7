// Package profile keeps each writer's coaching preferences and learns them
// from what the writer types.
package profile

import (
	"strings"
	"time"

	"github.com/ziadkadry99/scenecoach/internal/coach"
)

// DefaultNotesWindow is the number of trailing characters of notes kept.
const DefaultNotesWindow = 1500

// Profile is a stored writer profile.
type Profile struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	Tone           coach.Tone  `json:"tone"`
	Focus          coach.Focus `json:"focus"`
	AvoidTheme     bool        `json:"avoid_theme"`
	AvoidSymbolism bool        `json:"avoid_symbolism"`
	Notes          string      `json:"notes"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// Snapshot returns the read-only view handed to the prompt composer.
func (p Profile) Snapshot() coach.WriterProfile {
	return coach.WriterProfile{
		Tone:           p.Tone,
		Focus:          p.Focus,
		AvoidTheme:     p.AvoidTheme,
		AvoidSymbolism: p.AvoidSymbolism,
		Notes:          p.Notes,
	}
}

// ApplyUserText returns p updated from keywords in a writer message. Tone,
// focus and the avoid flags only ever move when a keyword matches; the
// message is always appended to the notes as a dated line, and the notes are
// cut to their last window characters. p itself is not modified.
func ApplyUserText(p Profile, text string, now time.Time, window int) Profile {
	text = strings.TrimSpace(text)
	if text == "" {
		return p
	}
	if window <= 0 {
		window = DefaultNotesWindow
	}
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, "gentle", "kind", "soft"):
		p.Tone = coach.ToneGentle
	case containsAny(lower, "rigorous", "tough", "strict"):
		p.Tone = coach.ToneRigorous
	}

	switch {
	case strings.Contains(lower, "character"):
		p.Focus = coach.FocusCharacter
	case strings.Contains(lower, "pacing"):
		p.Focus = coach.FocusPacing
	case strings.Contains(lower, "dialogue"):
		p.Focus = coach.FocusDialogue
	case strings.Contains(lower, "theme"):
		p.Focus = coach.FocusTheme
	}

	if containsAny(lower, "don't ask about theme", "avoid theme") {
		p.AvoidTheme = true
	}
	if containsAny(lower, "avoid symbolism", "don't overanalyze symbols") {
		p.AvoidSymbolism = true
	}

	p.Notes = lastRunes(p.Notes+"["+now.UTC().Format("2006-01-02")+"] "+text+"\n", window)
	p.UpdatedAt = now.UTC()
	return p
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func lastRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

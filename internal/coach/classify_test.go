package coach

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsReflectionFirst(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"does this feel believable", true},
		{"Is the CHEMISTRY there", true},
		{"I worry the ending is flat", true},
		{"Is she lying?", true},
		{"Can you look at how the second act escalates from the kitchen fight onward?", false},
		{"Help me understand the pacing in this scene", false},
		{"one two three four five six seven eight nine ten?", true},
		{"one two three four five six seven eight nine ten eleven?", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsReflectionFirst(tt.msg), "message %q", tt.msg)
	}
}

func TestIsRewriteRequest(t *testing.T) {
	assert.True(t, IsRewriteRequest("Can you REWRITE this?"))
	assert.True(t, IsRewriteRequest("give me a line for John"))
	assert.True(t, IsRewriteRequest("show me what you mean"))
	assert.True(t, IsRewriteRequest("for example?"))
	assert.False(t, IsRewriteRequest("what is she hiding"))
	assert.False(t, IsRewriteRequest(""))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		style  Style
		intent Intent
		msg    string
		want   Kind
	}{
		{"socratic ignores reflection", StyleSocratic, IntentNone, "Is she lying?", KindSocratic},
		{"socratic ignores discuss", StyleSocratic, IntentDiscussScene, "", KindSocratic},
		{"director standard", StyleDirector, IntentNone, "help with pacing", KindDirectorStandard},
		{"director reflection", StyleDirector, IntentNone, "does this feel believable", KindDirectorReflectionFirst},
		{"director discuss scene", StyleDirector, IntentDiscussScene, "", KindDirectorDiscuss},
		{"director discuss selection", StyleDirector, IntentDiscussSelection, "walk me through it", KindDirectorDiscuss},
		{"reflection beats discuss", StyleDirector, IntentDiscussScene, "are they friends", KindDirectorReflectionFirst},
		{"unknown style is director", Style("poet"), IntentNone, "", KindDirectorStandard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.style, tt.intent, tt.msg).Kind())
		})
	}
}

func TestResolveSocraticCarriesNoFlags(t *testing.T) {
	c := Resolve(StyleSocratic, IntentDiscussSelection, "Is this working?")
	assert.False(t, c.ReflectionFirst)
	assert.False(t, c.DiscussIntent)
	assert.Equal(t, 2, c.MaxAttempts())
}

func TestResolveScenarioB(t *testing.T) {
	c := Resolve(StyleDirector, IntentNone, "does this feel believable")
	assert.True(t, c.ReflectionFirst)
	assert.False(t, c.DiscussIntent)
	assert.Equal(t, KindDirectorReflectionFirst, c.Kind())
	assert.Equal(t, "3-5", QuestionBudget(c.Style, c.ReflectionFirst, c.DiscussIntent, false))
	assert.Equal(t, 3, c.MaxAttempts())
}

func TestQuestionBudgetTable(t *testing.T) {
	for _, style := range []Style{StyleSocratic, StyleDirector} {
		for _, reflection := range []bool{false, true} {
			for _, discuss := range []bool{false, true} {
				for _, history := range []bool{false, true} {
					var want string
					switch {
					case style == StyleDirector && reflection:
						want = "3-5"
					case style == StyleDirector && discuss:
						want = "3-6"
					case history:
						want = "2-4"
					default:
						want = "5-7"
					}
					got := QuestionBudget(style, reflection, discuss, history)
					assert.Equal(t, want, got, "style=%s reflection=%v discuss=%v history=%v", style, reflection, discuss, history)
				}
			}
		}
	}
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, StyleSocratic, ParseStyle(" Socratic "))
	assert.Equal(t, StyleDirector, ParseStyle(""))
	assert.Equal(t, StyleDirector, ParseStyle("bogus"))

	assert.Equal(t, IntentDiscussScene, ParseIntent("discuss_scene"))
	assert.Equal(t, IntentNone, ParseIntent("chat"))

	assert.Equal(t, ModeScene, ParseMode(""))
	assert.Equal(t, ModeStuck, ParseMode("stuck"))
	assert.Equal(t, ModeSelection, ParseMode("selection"))
	assert.Equal(t, ModeProfile, ParseMode("profile"))
}

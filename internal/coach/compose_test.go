package coach

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/scenecoach/internal/llm"
	"github.com/ziadkadry99/scenecoach/internal/screenplay"
)

func dialogueCursor() *screenplay.CursorContext {
	return &screenplay.CursorContext{
		Line:            7,
		ElementType:     screenplay.ElementDialogue,
		ActiveCharacter: "MARIA",
		SceneSlugline:   "INT. KITCHEN - NIGHT",
		SceneIndex:      1,
		ScenePosition:   screenplay.PositionMiddle,
	}
}

func baseInput(style Style, intent Intent, msg string) Input {
	return Input{
		Mode:          ModeScene,
		Contract:      Resolve(style, intent, msg),
		SceneText:     "INT. KITCHEN - NIGHT\n\nMaria slams the fridge.",
		SceneSlugline: "INT. KITCHEN - NIGHT",
		ScriptTitle:   "Leftovers",
		UserMessage:   msg,
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	in := baseInput(StyleDirector, IntentDiscussScene, "what's going on here")
	in.Cursor = dialogueCursor()
	in.Profile = &WriterProfile{Tone: ToneGentle, Focus: FocusPacing, AvoidTheme: true, Notes: "[2026-01-02] keep it tight\n"}
	in.History = []Turn{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "What is she after?"}}

	first := Compose(in)
	second := Compose(in)
	assert.Equal(t, first, second)
}

func TestComposeShape(t *testing.T) {
	in := baseInput(StyleSocratic, IntentNone, "")
	in.History = []Turn{
		{Role: "user", Content: "one"},
		{Role: "user", Content: "two"},
		{Role: "narrator", Content: "three"},
	}
	original := append([]Turn(nil), in.History...)

	msgs := Compose(in)
	require.Len(t, msgs, 5)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	for _, m := range msgs[1:] {
		assert.NotEqual(t, llm.RoleSystem, m.Role)
	}
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "one"}, msgs[1])
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "two"}, msgs[2])
	assert.Equal(t, llm.Message{Role: llm.RoleAssistant, Content: "three"}, msgs[3])
	assert.Equal(t, llm.RoleUser, msgs[4].Role)
	assert.Equal(t, original, in.History)
}

func TestComposeSystemTemplates(t *testing.T) {
	tests := []struct {
		name   string
		in     Input
		marker string
		budget string
	}{
		{"socratic", baseInput(StyleSocratic, IntentNone, ""), "You are a Socratic writing coach.", "Ask 5-7 questions maximum."},
		{"standard", baseInput(StyleDirector, IntentNone, ""), "You provide grounded observations", "\"Questions:\" (5-7 questions)"},
		{"reflection", baseInput(StyleDirector, IntentNone, "does this feel believable"), "You MUST respond with reflection FIRST", "Exactly 3-5 questions, no more"},
		{"discuss scene", baseInput(StyleDirector, IntentDiscussScene, ""), "The writer wants to discuss this scene.", "\"Questions:\" (3-6 questions MAX)"},
		{"discuss selection", baseInput(StyleDirector, IntentDiscussSelection, ""), "The writer wants to discuss a selection.", "\"Quick read:\" (2-4 sentences MAX)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			system := Compose(tt.in)[0].Content
			assert.Contains(t, system, tt.marker)
			assert.Contains(t, system, tt.budget)
		})
	}
}

func TestComposeSocraticHistoryBudget(t *testing.T) {
	in := baseInput(StyleSocratic, IntentNone, "")
	in.History = []Turn{{Role: "assistant", Content: "What does she want?"}}
	system := Compose(in)[0].Content
	assert.Contains(t, system, "Ask 2-4 questions maximum. The writer just responded")
}

func TestComposeGuidanceFragments(t *testing.T) {
	in := baseInput(StyleDirector, IntentNone, "")
	in.Cursor = dialogueCursor()
	in.Profile = &WriterProfile{
		Tone:           ToneRigorous,
		Focus:          FocusDialogue,
		AvoidTheme:     true,
		AvoidSymbolism: true,
	}

	system := Compose(in)[0].Content
	assert.Contains(t, system, "- Current element type: dialogue. Focus on: subtext")
	assert.Contains(t, system, "The active character is MARIA.")
	assert.Contains(t, system, "- Scene position: This is in the middle of the scene.")
	assert.Contains(t, system, "- Tone: Use more direct, diagnostic questions.")
	assert.Contains(t, system, "- Focus: Prioritize dialogue lenses")
	assert.Contains(t, system, "- Avoid: Do NOT ask about theme")
	assert.Contains(t, system, "Prefer 'meaning to the character'")
	assert.Contains(t, system, "- Active character: MARIA\n")
}

func TestComposeOmitsEmptyGuidance(t *testing.T) {
	in := baseInput(StyleSocratic, IntentNone, "")
	in.Profile = &WriterProfile{Tone: ToneNeutral, Focus: FocusBalanced}

	system := Compose(in)[0].Content
	assert.NotContains(t, system, "- Current element type")
	assert.NotContains(t, system, "- Scene position")
	assert.NotContains(t, system, "- Tone:")
	assert.NotContains(t, system, "- Avoid:")
	assert.NotContains(t, system, "prioritize")
	assert.NotContains(t, system, "What the writer has told you")
	assert.Contains(t, system, "how this fits the larger narrative\n\nYour questions should be neutral")
}

func TestComposeSocraticActiveCharacter(t *testing.T) {
	in := baseInput(StyleSocratic, IntentNone, "")
	in.Cursor = dialogueCursor()
	in.Profile = &WriterProfile{Focus: FocusCharacter}

	system := Compose(in)[0].Content
	assert.Contains(t, system, "reference MARIA by name")
	assert.NotContains(t, system, "- Active character:")
	assert.Contains(t, system, "(but prioritize character as noted above)")
}

func TestComposeNotesTail(t *testing.T) {
	in := baseInput(StyleDirector, IntentNone, "")
	notes := "OLDEST" + strings.Repeat("x", 600) + "NEWEST"
	in.Profile = &WriterProfile{Notes: notes}

	system := Compose(in)[0].Content
	assert.Contains(t, system, "\n\nWhat the writer has told you they care about:\n")
	assert.Contains(t, system, "NEWEST\n")
	assert.NotContains(t, system, "OLDEST")

	in.Profile.Notes = "   \n "
	assert.NotContains(t, Compose(in)[0].Content, "What the writer has told you")
}

func TestComposeUserPromptModes(t *testing.T) {
	t.Run("scene", func(t *testing.T) {
		in := baseInput(StyleDirector, IntentNone, "")
		in.Cursor = &screenplay.CursorContext{ElementType: screenplay.ElementAction}
		user := Compose(in)[1].Content
		assert.True(t, strings.HasPrefix(user, "The writer is working on this scene from \"Leftovers\":\n\nScene: INT. KITCHEN - NIGHT\n\n"))
		assert.Contains(t, user, "Maria slams the fridge.")
		assert.NotContains(t, user, "The cursor is currently")
		assert.True(t, strings.HasSuffix(user, "Ask questions about this scene to help them explore it deeper."))

		in.Cursor = dialogueCursor()
		user = Compose(in)[1].Content
		assert.Contains(t, user, "The cursor is currently in a dialogue element.")
		assert.Contains(t, user, "The active character in this context is MARIA.")
	})

	t.Run("selection", func(t *testing.T) {
		in := baseInput(StyleSocratic, IntentNone, "")
		in.Mode = ModeSelection
		in.ScriptTitle = ""
		in.SelectionText = "You ate it."
		in.Cursor = dialogueCursor()
		user := Compose(in)[1].Content
		assert.True(t, strings.HasPrefix(user, "The writer has selected this text from their screenplay \"Untitled\":\n\nYou ate it.\n\n"))
		assert.Contains(t, user, "The selection is from a dialogue element.")
		assert.Contains(t, user, "Context from the current scene:\n\nINT. KITCHEN")
		assert.True(t, strings.HasSuffix(user, "Ask questions about this selection to help them explore it deeper."))
	})

	t.Run("profile", func(t *testing.T) {
		in := baseInput(StyleSocratic, IntentNone, "be gentle with me")
		in.Mode = ModeProfile
		user := Compose(in)[1].Content
		assert.Contains(t, user, "They said: \"be gentle with me\"")
		assert.Contains(t, user, "Still output ONLY questions.")
		assert.True(t, strings.HasSuffix(user, "Writer's additional question or note: be gentle with me"))
	})

	t.Run("stuck", func(t *testing.T) {
		in := baseInput(StyleDirector, IntentNone, "")
		in.Mode = ModeStuck
		in.Cursor = &screenplay.CursorContext{ElementType: screenplay.ElementTransition}
		user := Compose(in)[1].Content
		assert.True(t, strings.HasPrefix(user, "The writer is feeling stuck."))
		assert.Contains(t, user, "They're currently working on a transition element.")
		assert.True(t, strings.HasSuffix(user, "Ask questions to help them discover what they need to move forward."))
	})
}

func TestComposeRewriteRequest(t *testing.T) {
	director := Compose(baseInput(StyleDirector, IntentNone, "can you rewrite John's line"))
	user := director[len(director)-1].Content
	assert.Contains(t, user, "IMPORTANT: The writer asked for a rewrite or example line.")
	assert.NotContains(t, user, "Writer's additional question or note")
	assert.NotContains(t, user, "can you rewrite John's line")

	socratic := Compose(baseInput(StyleSocratic, IntentNone, "can you rewrite John's line"))
	user = socratic[len(socratic)-1].Content
	assert.Contains(t, user, "Writer's additional question or note: can you rewrite John's line")
	assert.NotContains(t, user, "IMPORTANT:")
}

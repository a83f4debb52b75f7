package coach

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanDirectorReply = `What I'm seeing: It reads like there's distance between them.
What it might be doing: It could be a test of loyalty.
Questions:
What does Maria want from John here?
Why does she wait to speak?`

func kindOf(v *Violation) ViolationKind {
	if v == nil {
		return ""
	}
	return v.Kind
}

func TestValidateQuestionsOnly(t *testing.T) {
	tests := []struct {
		name string
		text string
		want ViolationKind
	}{
		{"passes", "What does she want here?\nWhy does he believe her?", ""},
		{"blank lines ignored", "\n  What now?  \n\n", ""},
		{"empty", "", EmptyResponse},
		{"whitespace", " \n\t\n", EmptyResponse},
		{"statement before phrase scan", "You should clarify her motive.", NotAQuestion},
		{"prescriptive question", "You should clarify her motive?", PrescriptiveLanguage},
		{"case insensitive phrase", "Could you REWRITE the opening?", PrescriptiveLanguage},
		{"here is", "Here is a thought?", PrescriptiveLanguage},
		{"mixed lines", "What does she want?\nShe wants the keys.", NotAQuestion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kindOf(ValidateQuestionsOnly(tt.text)))
		})
	}
}

func TestValidateQuestionsOnlyTruncatesDetail(t *testing.T) {
	long := strings.Repeat("a", 80) + "."
	v := ValidateQuestionsOnly(long)
	require.NotNil(t, v)
	assert.Contains(t, v.Detail, strings.Repeat("a", 50)+"...")
	assert.NotContains(t, v.Detail, strings.Repeat("a", 51))
}

func TestValidateDirector(t *testing.T) {
	tests := []struct {
		name string
		text string
		want ViolationKind
	}{
		{"passes", cleanDirectorReply, ""},
		{"empty", "\n\n", EmptyResponse},
		{"you should", "You should clarify her motive.", PrescriptiveLanguage},
		{"consider", "It might be worth thinking. Consider the silence.", PrescriptiveLanguage},
		{"have her", "What happens if you have her leave?", PrescriptiveLanguage},
		{"imperative capitalised", "CHANGE THE ENDING.", ImperativeSentence},
		{"imperative lower", "It reads quietly.\nlet the silence sit longer", ImperativeSentence},
		{"character cue", "JOHN\nI can't believe you did that.", GeneratedDialogue},
		{"cue with extension", "MARIA (V.O.)\nNot tonight.", GeneratedDialogue},
		{"cue across blank line", "JOHN\n\nI can't believe you did that.", GeneratedDialogue},
		{"scene heading not a cue", "INT. KITCHEN - NIGHT\nThe fridge hums.", ""},
		{"transition not a cue", "SMASH TO:\nThe street is empty.", ""},
		{"trailing cue alone", "It reads like a standoff.\nJOHN", ""},
		{"indentation", "It reads like a pause.\n          She waits here quietly.", DialogueIndentation},
		{"seven spaces ok", "It reads like a pause.\n       She waits here quietly.", ""},
		{"straight quotes", `It reads like the line "I'm fine" carries weight.`, QuotedExampleLine},
		{"smart quotes", "It reads like “I'm fine” carries weight.", QuotedExampleLine},
		{"single quote char", `The word "fine never closes.`, ""},
		{"triple equals", "It reads like a pause.\n===\nWhat does she want?", FormattingMarkers},
		{"fence", "```\nWhat now?\n```", FormattingMarkers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateDirector(tt.text)
			assert.Equal(t, tt.want, kindOf(v), "violation: %v", v)
		})
	}
}

func TestValidateDispatchesOnStyle(t *testing.T) {
	text := "It reads like a standoff."
	assert.Equal(t, NotAQuestion, kindOf(Validate(StyleSocratic, text)))
	assert.Nil(t, Validate(StyleDirector, text))
}

func TestViolationIsError(t *testing.T) {
	var err error = &Violation{Kind: NotAQuestion, Detail: "found \"x\""}
	assert.Equal(t, `not_a_question: found "x"`, err.Error())
}

func TestValidatorsDoNotMutateInput(t *testing.T) {
	text := "  JOHN  \nsomething"
	before := strings.Clone(text)
	ValidateDirector(text)
	ValidateQuestionsOnly(text)
	assert.Equal(t, before, text)
}

var linePool = []string{
	"What does she want?",
	"Why now?",
	"You should cut this.",
	"It reads like a standoff.",
	"JOHN",
	"I can't believe you did that.",
	"Add a beat here.",
	"Is the silence doing work?",
	"Could you rewrite it?",
	`Does "fine" land?`,
	"          Indented line?",
	"Here is an idea?",
	"Consider the pause?",
	"",
}

func randomReply(r *rand.Rand) string {
	n := 1 + r.Intn(5)
	lines := make([]string, n)
	for i := range lines {
		lines[i] = linePool[r.Intn(len(linePool))]
	}
	return strings.Join(lines, "\n")
}

func TestAcceptedSocraticRepliesAreQuestionsOnly(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		text := randomReply(r)
		if ValidateQuestionsOnly(text) != nil {
			continue
		}
		lower := strings.ToLower(text)
		for _, line := range nonEmptyLines(text) {
			require.True(t, strings.HasSuffix(line, "?"), "accepted %q", text)
		}
		for _, phrase := range questionsOnlyBanned {
			require.NotContains(t, lower, phrase, "accepted %q", text)
		}
	}
}

func TestAcceptedDirectorRepliesAreNonPrescriptive(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 2000; i++ {
		text := randomReply(r)
		if ValidateDirector(text) != nil {
			continue
		}
		lower := strings.ToLower(text)
		for _, phrase := range directorBanned {
			require.NotContains(t, lower, phrase, "accepted %q", text)
		}
		lines := nonEmptyLines(text)
		for i, line := range lines {
			for _, prefix := range imperativePrefixes {
				require.False(t, strings.HasPrefix(strings.ToLower(line), prefix), "accepted %q", text)
			}
			if i+1 < len(lines) {
				require.False(t, isCharacterCue(line), "accepted %q", text)
			}
		}
	}
}

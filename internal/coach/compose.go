package coach

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/scenecoach/internal/llm"
	"github.com/ziadkadry99/scenecoach/internal/screenplay"
)

const rewriteRefusal = "\n\nIMPORTANT: The writer asked for a rewrite or example line. Do NOT write any screenplay lines. Instead, acknowledge you won't write lines, then provide only reflective observations and questions."

// Input is everything the composer reads. It is never modified.
type Input struct {
	Mode          Mode
	Contract      Contract
	SelectionText string
	SceneText     string
	SceneSlugline string
	ScriptTitle   string
	UserMessage   string
	Cursor        *screenplay.CursorContext
	Profile       *WriterProfile
	History       []Turn
}

// Compose builds the message list for one model call: exactly one system
// message, then the history in order, then the current user turn. It is
// deterministic in its input.
func Compose(in Input) []llm.Message {
	msgs := make([]llm.Message, 0, len(in.History)+2)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: systemPrompt(in)})
	for _, turn := range in.History {
		role := llm.RoleAssistant
		if turn.Role == string(llm.RoleUser) {
			role = llm.RoleUser
		}
		msgs = append(msgs, llm.Message{Role: role, Content: turn.Content})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: userPrompt(in)})
	return msgs
}

func systemPrompt(in Input) string {
	c := in.Contract
	data := buildGuidance(in.Cursor, in.Profile)
	data.HasHistory = len(in.History) > 0
	data.QuestionBudget = QuestionBudget(c.Style, c.ReflectionFirst, c.DiscussIntent, data.HasHistory)
	data.DiscussTarget = "this scene"
	if c.Intent == IntentDiscussSelection {
		data.DiscussTarget = "a selection"
	}
	return renderSystem(c.Kind(), data)
}

func userPrompt(in Input) string {
	var b strings.Builder

	var element screenplay.ElementType
	var active string
	if in.Cursor != nil {
		element = in.Cursor.ElementType
		active = in.Cursor.ActiveCharacter
	}
	title := in.ScriptTitle
	if title == "" {
		title = "Untitled"
	}

	switch in.Mode {
	case ModeSelection:
		fmt.Fprintf(&b, "The writer has selected this text from their screenplay \"%s\":\n\n%s\n\n", title, in.SelectionText)
		if element != "" {
			fmt.Fprintf(&b, "The selection is from a %s element.\n\n", element)
		}
		if in.SceneText != "" {
			fmt.Fprintf(&b, "Context from the current scene:\n\n%s\n\n", in.SceneText)
		}
		writeActive(&b, active)
		b.WriteString("Ask questions about this selection to help them explore it deeper.")

	case ModeProfile:
		b.WriteString("The writer wants to personalize their coaching experience. ")
		if in.UserMessage != "" {
			fmt.Fprintf(&b, "They said: \"%s\"\n\n", in.UserMessage)
		}
		b.WriteString("Ask them questions about their writing style, what kind of feedback helps them, and how they prefer to be coached. ")
		b.WriteString("These are meta-questions about the coaching relationship itself. ")
		b.WriteString("Still output ONLY questions. Help them discover what kind of questions and tone work best for them.")

	case ModeStuck:
		b.WriteString("The writer is feeling stuck. They're working on this scene:\n\n")
		writeSlugline(&b, in.SceneSlugline)
		b.WriteString(in.SceneText + "\n\n")
		if element != "" {
			fmt.Fprintf(&b, "They're currently working on a %s element.\n\n", element)
		}
		b.WriteString("Ask questions to help them discover what they need to move forward.")

	default:
		fmt.Fprintf(&b, "The writer is working on this scene from \"%s\":\n\n", title)
		writeSlugline(&b, in.SceneSlugline)
		b.WriteString(in.SceneText + "\n\n")
		if element != "" && element != screenplay.ElementScene && element != screenplay.ElementAction {
			fmt.Fprintf(&b, "The cursor is currently in a %s element.\n\n", element)
		}
		writeActive(&b, active)
		b.WriteString("Ask questions about this scene to help them explore it deeper.")
	}

	if in.UserMessage != "" {
		if in.Contract.Style == StyleDirector && IsRewriteRequest(in.UserMessage) {
			b.WriteString(rewriteRefusal)
		} else {
			b.WriteString("\n\nWriter's additional question or note: " + in.UserMessage)
		}
	}

	return b.String()
}

func writeSlugline(b *strings.Builder, slugline string) {
	if slugline != "" {
		fmt.Fprintf(b, "Scene: %s\n\n", slugline)
	}
}

func writeActive(b *strings.Builder, name string) {
	if name != "" {
		fmt.Fprintf(b, "The active character in this context is %s.\n\n", name)
	}
}

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}

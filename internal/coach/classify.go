package coach

import "strings"

// Kind names one of the four response contracts.
type Kind string

const (
	KindSocratic                Kind = "socratic"
	KindDirectorStandard        Kind = "director-standard"
	KindDirectorReflectionFirst Kind = "director-reflection-first"
	KindDirectorDiscuss         Kind = "director-discuss"
)

var reflectionTriggers = []string{
	"do you think",
	"does this feel",
	"is this working",
	"are they",
	"do they",
	"friends",
	"relationship",
	"dynamic",
	"chemistry",
	"too much",
	"not enough",
	"confusing",
	"flat",
	"believable",
	"realistic",
	"in character",
}

var rewriteTriggers = []string{
	"rewrite",
	"give me a line",
	"write a line",
	"show me",
	"example",
}

// shortQuestionWords is the longest message that still counts as a quick
// evaluative question.
const shortQuestionWords = 10

// IsReflectionFirst reports whether msg asks a subjective, relational or
// evaluative question that should be answered with reflection before any
// question.
func IsReflectionFirst(msg string) bool {
	trimmed := strings.TrimSpace(msg)
	if trimmed == "" {
		return false
	}
	if containsAny(strings.ToLower(msg), reflectionTriggers) {
		return true
	}
	return strings.HasSuffix(trimmed, "?") && len(strings.Fields(trimmed)) <= shortQuestionWords
}

// IsRewriteRequest reports whether msg asks for screenplay lines to be
// written or rewritten.
func IsRewriteRequest(msg string) bool {
	return containsAny(strings.ToLower(msg), rewriteTriggers)
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// Contract is the resolved response contract for one request.
type Contract struct {
	Style           Style  `json:"style"`
	Intent          Intent `json:"intent,omitempty"`
	ReflectionFirst bool   `json:"reflection_first"`
	DiscussIntent   bool   `json:"discuss_intent"`
}

// Resolve classifies a request. Style is taken as given; the reflection and
// discuss flags only apply to director requests.
func Resolve(style Style, intent Intent, userMessage string) Contract {
	if style != StyleSocratic {
		style = StyleDirector
	}
	c := Contract{Style: style, Intent: intent}
	if style == StyleDirector {
		c.ReflectionFirst = IsReflectionFirst(userMessage)
		c.DiscussIntent = intent == IntentDiscussScene || intent == IntentDiscussSelection
	}
	return c
}

// Kind returns the contract's template kind. Reflection-first wins over
// discuss intent.
func (c Contract) Kind() Kind {
	switch {
	case c.Style == StyleSocratic:
		return KindSocratic
	case c.ReflectionFirst:
		return KindDirectorReflectionFirst
	case c.DiscussIntent:
		return KindDirectorDiscuss
	default:
		return KindDirectorStandard
	}
}

// MaxAttempts is the model-call budget for the contract.
func (c Contract) MaxAttempts() int {
	if c.Style == StyleSocratic {
		return 2
	}
	return 3
}

// QuestionBudget returns the question-count range the system prompt asks for.
func QuestionBudget(style Style, reflectionFirst, discussIntent, hasHistory bool) string {
	switch {
	case style == StyleDirector && reflectionFirst:
		return "3-5"
	case style == StyleDirector && discussIntent:
		return "3-6"
	case hasHistory:
		return "2-4"
	default:
		return "5-7"
	}
}

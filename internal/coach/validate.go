package coach

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ViolationKind names the rule a reply broke.
type ViolationKind string

const (
	EmptyResponse        ViolationKind = "empty_response"
	NotAQuestion         ViolationKind = "not_a_question"
	PrescriptiveLanguage ViolationKind = "prescriptive_language"
	ImperativeSentence   ViolationKind = "imperative_sentence"
	GeneratedDialogue    ViolationKind = "generated_dialogue"
	DialogueIndentation  ViolationKind = "dialogue_indentation"
	QuotedExampleLine    ViolationKind = "quoted_example_line"
	FormattingMarkers    ViolationKind = "formatting_markers"
)

// Violation is a failed validation. It is an error so callers can wrap it.
type Violation struct {
	Kind   ViolationKind `json:"kind"`
	Detail string        `json:"detail"`
}

func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Kind, v.Detail)
}

func violation(kind ViolationKind, format string, args ...any) *Violation {
	return &Violation{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

var questionsOnlyBanned = []string{
	"you should",
	"i suggest",
	"try to",
	"consider doing",
	"do this",
	"here is",
	"rewrite",
	"change it to",
}

var directorBanned = []string{
	"you should",
	"i suggest",
	"try to",
	"consider",
	"recommend",
	"the best way",
	"rewrite",
	"change this",
	"add a",
	"remove",
	"cut",
	"fix",
	"make it",
	"have him",
	"have her",
	"let him",
	"let her",
}

var imperativePrefixes = []string{
	"add ",
	"remove ",
	"cut ",
	"rewrite ",
	"change ",
	"make ",
	"let ",
	"have ",
	"insert ",
	"delete ",
	"replace ",
	"try ",
	"consider ",
}

var formattingMarkers = []string{"```", "---", "==="}

var (
	cueShape     = regexp.MustCompile(`^[A-Z0-9 ()'.-]{2,30}$`)
	indentedLine = regexp.MustCompile(`^\s{8,}\S`)
	quotedSpan   = regexp.MustCompile(`["“”].+["“”]`)
)

// detailMaxRunes caps how much of an offending line a violation quotes.
const detailMaxRunes = 50

// Validate applies the validator for style.
func Validate(style Style, text string) *Violation {
	if style == StyleSocratic {
		return ValidateQuestionsOnly(text)
	}
	return ValidateDirector(text)
}

// ValidateQuestionsOnly checks a socratic reply: every non-empty line is a
// question and no advice phrase appears.
func ValidateQuestionsOnly(text string) *Violation {
	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return violation(EmptyResponse, "response must contain at least one question")
	}

	for _, line := range lines {
		if !strings.HasSuffix(line, "?") {
			return violation(NotAQuestion, "every line must be a question ending with '?', found %q", truncate(line))
		}
	}

	lower := strings.ToLower(text)
	for _, phrase := range questionsOnlyBanned {
		if strings.Contains(lower, phrase) {
			return violation(PrescriptiveLanguage, "response must only contain questions, found %q", phrase)
		}
	}
	return nil
}

// ValidateDirector checks a director reply for prescriptive language and for
// anything that looks like generated screenplay text.
func ValidateDirector(text string) *Violation {
	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return violation(EmptyResponse, "response is empty")
	}

	lower := strings.ToLower(text)
	for _, phrase := range directorBanned {
		if strings.Contains(lower, phrase) {
			return violation(PrescriptiveLanguage, "found prescriptive language %q", phrase)
		}
	}

	for _, line := range lines {
		lowerLine := strings.ToLower(line)
		for _, prefix := range imperativePrefixes {
			if strings.HasPrefix(lowerLine, prefix) {
				return violation(ImperativeSentence, "found imperative start %q in line %q", prefix, truncate(line))
			}
		}
	}

	for i := 0; i+1 < len(lines); i++ {
		if isCharacterCue(lines[i]) {
			return violation(GeneratedDialogue, "character cue %q followed by %q", lines[i], truncate(lines[i+1]))
		}
	}

	// Indentation is only visible before trimming.
	for _, raw := range strings.Split(text, "\n") {
		if indentedLine.MatchString(raw) {
			return violation(DialogueIndentation, "found dialogue indentation in %q", truncate(strings.TrimSpace(raw)))
		}
	}

	for _, line := range lines {
		if quotedSpan.MatchString(line) {
			return violation(QuotedExampleLine, "found quoted line %q", truncate(line))
		}
	}

	for _, marker := range formattingMarkers {
		if strings.Contains(text, marker) {
			return violation(FormattingMarkers, "found formatting marker %q", marker)
		}
	}
	return nil
}

// isCharacterCue matches a trimmed line shaped like a screenplay character
// cue: short, upper case, and neither a scene heading nor a transition.
func isCharacterCue(line string) bool {
	if !cueShape.MatchString(line) {
		return false
	}
	upper := strings.ToUpper(line)
	return !strings.HasPrefix(upper, "INT") &&
		!strings.HasPrefix(upper, "EXT") &&
		!strings.HasPrefix(upper, "I/E") &&
		!strings.HasSuffix(upper, "TO:")
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= detailMaxRunes {
		return s
	}
	return string([]rune(s)[:detailMaxRunes]) + "..."
}

package coach

import (
	"strings"
	"unicode"
)

var interrogatives = map[string]bool{
	"what": true, "why": true, "how": true, "who": true, "where": true,
	"when": true, "which": true, "is": true, "are": true, "do": true,
	"does": true, "did": true, "can": true, "could": true, "would": true,
	"should": true, "will": true, "if": true, "have": true, "has": true,
}

// sectionLabelMax is the longest leading "Label:" the probes step over.
const sectionLabelMax = 40

// proseLabels open the reflective sections of a director reply. A reply
// led by one of them opens with prose, whatever word follows the colon.
var proseLabels = []string{
	"quick read:",
	"what i'm seeing:",
	"what it might be doing:",
	"what might be at play:",
}

// StartsWithQuestion reports whether text opens with a question: it begins
// with "?" or its first word is an interrogative opener. A reply led by a
// reflective section label counts as prose; any other leading label such
// as "Questions:" is skipped first.
func StartsWithQuestion(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	if strings.HasPrefix(t, "?") {
		return true
	}
	if hasProseLabel(t) {
		return false
	}
	return interrogatives[firstWord(stripLabel(t))]
}

func hasProseLabel(t string) bool {
	lower := strings.ToLower(strings.TrimLeft(t, "*#_>\"' \t"))
	lower = strings.ReplaceAll(lower, "’", "'")
	lower = strings.ReplaceAll(lower, "*", "")
	for _, label := range proseLabels {
		if strings.HasPrefix(lower, label) {
			return true
		}
	}
	return false
}

// HasQuickReadSection reports whether text carries a short non-question
// read before its questions: an explicit "Quick read:" label, or at least
// two sentences of which the first is not a question.
func HasQuickReadSection(text string) bool {
	if strings.Contains(strings.ToLower(text), "quick read:") {
		return true
	}
	sentences := splitSentences(stripLabel(strings.TrimSpace(text)))
	if len(sentences) < 2 {
		return false
	}
	return !interrogatives[firstWord(sentences[0])]
}

// stripLabel drops a leading "Label:" from the first line.
func stripLabel(t string) string {
	t = strings.TrimLeft(t, "*#_>\"' \t")
	line, rest, _ := strings.Cut(t, "\n")
	idx := strings.Index(line, ":")
	if idx <= 0 || idx > sectionLabelMax || strings.Contains(line[:idx], "?") {
		return t
	}
	after := strings.TrimSpace(strings.TrimLeft(line[idx+1:], "*_\"' \t"))
	if after == "" {
		return strings.TrimSpace(rest)
	}
	if rest != "" {
		return after + "\n" + rest
	}
	return after
}

func firstWord(t string) string {
	fields := strings.Fields(t)
	if len(fields) == 0 {
		return ""
	}
	w := strings.ToLower(fields[0])
	if i := strings.IndexAny(w, "'’"); i > 0 {
		w = w[:i]
	}
	return strings.TrimFunc(w, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// splitSentences breaks text at terminal punctuation and line ends, keeping
// the punctuation.
func splitSentences(t string) []string {
	var out []string
	var cur strings.Builder
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			out = append(out, s)
		}
		cur.Reset()
	}
	for _, r := range t {
		if r == '\n' {
			flush()
			continue
		}
		cur.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			flush()
		}
	}
	flush()
	return out
}

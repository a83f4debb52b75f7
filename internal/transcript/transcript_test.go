package transcript

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/scenecoach/internal/thread"
)

var at = time.Date(2025, 3, 14, 21, 5, 0, 0, time.UTC)

func sample() []thread.Message {
	return []thread.Message{
		{Role: thread.RoleUser, Content: "Is the ending earned?\nBe strict.", CreatedAt: at},
		{Role: thread.RoleAssistant, Content: "What does Maria lose by staying?", CreatedAt: at.Add(time.Minute)},
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("Leftovers", sample())

	assert.True(t, strings.HasPrefix(out, "# Coaching notes: Leftovers\n"))
	assert.Contains(t, out, "### Writer · 2025-03-14 21:05")
	assert.Contains(t, out, "> Is the ending earned?\n> Be strict.\n")
	assert.Contains(t, out, "### Coach · 2025-03-14 21:06")
	assert.Contains(t, out, "What does Maria lose by staying?")
	assert.Less(t, strings.Index(out, "### Writer"), strings.Index(out, "### Coach"))
}

func TestRenderMarkdownEmpty(t *testing.T) {
	out := RenderMarkdown("", nil)
	assert.Contains(t, out, "# Coaching notes: Untitled")
	assert.Contains(t, out, "No messages yet")
}

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML("Leftovers", sample())
	require.NoError(t, err)

	assert.Contains(t, out, "<title>Leftovers · coaching notes</title>")
	assert.Contains(t, out, "<blockquote>")
	assert.Contains(t, out, "What does Maria lose by staying?")
}

func TestRenderHTMLEscapesRawHTML(t *testing.T) {
	msgs := []thread.Message{{Role: thread.RoleAssistant, Content: "<script>alert(1)</script>", CreatedAt: at}}
	out, err := RenderHTML("<b>x</b>", msgs)
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;b&gt;x&lt;/b&gt;")
}

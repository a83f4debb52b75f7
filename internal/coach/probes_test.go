package coach

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartsWithQuestion(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", false},
		{"? anything", true},
		{"What does she want?", true},
		{"  why now", true},
		{"Is she lying?", true},
		{"What's the cost here?", true},
		{"If he stays, what breaks?", true},
		{"It reads like a standoff.", false},
		{"Maria wants the keys. What does John want?", false},
		{"What I'm seeing: It reads like distance.", false},
		{"**Quick read:** The scene turns on a lie.", false},
		{"Quick read:\nWhy does she lie?", false},
		{"Quick read: What stands out is the silence.\nWhy now?", false},
		{"What I’m seeing: Why she stays is unclear.", false},
		{"Questions:\nWhy does she lie?", true},
		{"What if she stays: does it matter?", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StartsWithQuestion(tt.text), "text %q", tt.text)
	}
}

func TestHasQuickReadSection(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Quick read: short.", true},
		{"QUICK READ: it reads tense", true},
		{"It reads like a standoff. The fridge is the battleground.\nWhat does she want?", true},
		{"What does she want?\nWhy now?", false},
		{"It reads like a standoff.", false},
		{"", false},
		{"What I'm seeing: It reads like distance. What does she want?", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HasQuickReadSection(tt.text), "text %q", tt.text)
	}
}

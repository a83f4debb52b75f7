package screenplay

import "strings"

// Position is where in its scene a line sits.
type Position string

const (
	PositionEarly  Position = "early"
	PositionMiddle Position = "middle"
	PositionLate   Position = "late"
)

// CursorContext is the editor state around the cursor, computed per request.
type CursorContext struct {
	Line            int         `json:"line_number"`
	Column          int         `json:"column"`
	ElementType     ElementType `json:"element_type"`
	ActiveCharacter string      `json:"active_character,omitempty"`
	SceneSlugline   string      `json:"scene_slugline,omitempty"`
	SceneIndex      int         `json:"scene_index,omitempty"`
	ScenePosition   Position    `json:"scene_position,omitempty"`
}

// ComputeCursorContext derives the cursor context for a 1-based line and
// column. scenes must come from ParseScenes on the same document.
func ComputeCursorContext(fountain string, line, column int, scenes []Scene) CursorContext {
	lines := strings.Split(fountain, "\n")
	current := ""
	if line >= 1 && line <= len(lines) {
		current = lines[line-1]
	}

	cc := CursorContext{
		Line:        line,
		Column:      column,
		ElementType: ClassifyLine(current),
	}

	scene, inScene := SceneAt(scenes, line)
	if inScene {
		cc.SceneSlugline = scene.Slugline
		cc.SceneIndex = scene.Index
		cc.ScenePosition = position(scene, sceneEnd(scenes, scene, len(lines)), line)
	}

	if cc.ElementType == ElementDialogue || cc.ElementType == ElementParenthetical {
		floor := 0
		if inScene {
			floor = max(0, scene.StartLine-1)
		}
		cc.ActiveCharacter = speakerAbove(lines, line-1, floor)
	}

	return cc
}

func position(scene Scene, end, line int) Position {
	length := max(1, end-scene.StartLine+1)
	ratio := float64(line-scene.StartLine) / float64(length)
	switch {
	case ratio < 0.33:
		return PositionEarly
	case ratio < 0.66:
		return PositionMiddle
	default:
		return PositionLate
	}
}

// speakerAbove scans upward from index from to floor (both 0-based,
// inclusive) for the nearest character cue.
func speakerAbove(lines []string, from, floor int) string {
	if from >= len(lines) {
		from = len(lines) - 1
	}
	for i := max(0, from); i >= floor; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if ClassifyLine(lines[i]) == ElementCharacter || looksLikeCue(trimmed) {
			return strings.ToUpper(trimmed)
		}
	}
	return ""
}

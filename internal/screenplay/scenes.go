package screenplay

import (
	"sort"
	"strings"
)

// Scene is one scene of a script, located by its heading line.
type Scene struct {
	Index     int    `json:"index"`      // 1-based
	Slugline  string `json:"slugline"`   // trimmed heading text
	StartLine int    `json:"start_line"` // 1-based
}

// ParseScenes returns the scenes of a fountain document in order.
func ParseScenes(fountain string) []Scene {
	var scenes []Scene
	for i, line := range strings.Split(fountain, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !IsSceneHeading(trimmed) {
			continue
		}
		scenes = append(scenes, Scene{
			Index:     len(scenes) + 1,
			Slugline:  trimmed,
			StartLine: i + 1,
		})
	}
	return scenes
}

// SceneAt returns the scene containing the given 1-based line.
func SceneAt(scenes []Scene, line int) (Scene, bool) {
	for i := len(scenes) - 1; i >= 0; i-- {
		if scenes[i].StartLine <= line {
			return scenes[i], true
		}
	}
	return Scene{}, false
}

// sceneEnd is the last 1-based line of s given the total line count.
func sceneEnd(scenes []Scene, s Scene, total int) int {
	for _, next := range scenes {
		if next.StartLine > s.StartLine {
			return next.StartLine - 1
		}
	}
	return total
}

// SceneText returns the text of the scene with the given 1-based index,
// heading included.
func SceneText(fountain string, scenes []Scene, index int) (string, bool) {
	var scene Scene
	found := false
	for _, s := range scenes {
		if s.Index == index {
			scene, found = s, true
			break
		}
	}
	if !found {
		return "", false
	}

	lines := strings.Split(fountain, "\n")
	end := sceneEnd(scenes, scene, len(lines))
	if scene.StartLine > len(lines) {
		return "", false
	}
	return strings.TrimRight(strings.Join(lines[scene.StartLine-1:end], "\n"), " \t\n"), true
}

// CharacterNames lists the character cues of a document, most frequent first
// and alphabetical among equals.
func CharacterNames(fountain string) []string {
	counts := make(map[string]int)
	for _, line := range strings.Split(fountain, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !looksLikeCue(trimmed) {
			continue
		}
		counts[trimmed]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

package filter

import (
	"github.com/felipesere/everdiff/internal/differ"
	"github.com/felipesere/everdiff/internal/value"
)

// Filter drops changes whose path matches any pattern (in full, or as a
// matching prefix), and optionally drops Moved changes. Move filtering
// happens after array alignment has already used Moved pairings to decide
// which descendant changes to recurse into; descendants still appear.
func Filter(changes []differ.Change, patterns []Pattern, ignoreMoved bool) []differ.Change {
	out := make([]differ.Change, 0, len(changes))

	for _, c := range changes {
		if ignoreMoved && c.Kind == differ.Moved {
			continue
		}

		if matchesAny(patterns, c.Path) {
			continue
		}

		out = append(out, c)
	}

	return out
}

func matchesAny(patterns []Pattern, path value.Path) bool {
	for _, p := range patterns {
		if p.Matches(path) {
			return true
		}
	}

	return false
}

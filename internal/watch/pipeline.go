// Package watch runs the core diff pipeline against a pair of files,
// re-running it whenever either file changes, and renders the result in a
// terminal UI. Runs never overlap: a file change arriving mid-run is
// coalesced into the next one.
package watch

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/felipesere/everdiff/internal/differ"
	"github.com/felipesere/everdiff/internal/filter"
	"github.com/felipesere/everdiff/internal/identity"
	"github.com/felipesere/everdiff/internal/pairing"
	"github.com/felipesere/everdiff/internal/prepatch"
	"github.com/felipesere/everdiff/internal/render"
	"github.com/felipesere/everdiff/internal/yamldoc"
)

// Pipeline bundles everything needed to run the core pipeline once over a
// pair of files: parse, pre-patch, identify, pair, diff, filter.
type Pipeline struct {
	LeftPath    string
	RightPath   string
	Mode        identity.Mode
	Rules       []prepatch.Rule
	Patterns    []filter.Pattern
	IgnoreMoved bool
	MaxDepth    int
}

// Result is one completed pipeline run, ready to render or inspect for exit
// code purposes.
type Result struct {
	Rendered   string
	HasChanges bool
	Err        error
}

// Run reads both files fresh, drives the pipeline end to end, and renders
// every matched document pair plus the missing/extra document sets. Run is
// a value method with no shared state, so callers may safely call it
// repeatedly without synchronizing anything beyond not overlapping calls.
func (p Pipeline) Run(width int) Result {
	leftDocs, err := readAndPatch(p.LeftPath, p.Rules)
	if err != nil {
		return Result{Err: err}
	}

	rightDocs, err := readAndPatch(p.RightPath, p.Rules)
	if err != nil {
		return Result{Err: err}
	}

	slog.Info("parsed documents", "left", len(leftDocs), "right", len(rightDocs))

	for _, w := range identity.Identify(leftDocs, p.Mode) {
		slog.Warn(w.Detail, "source", p.LeftPath)
	}

	for _, w := range identity.Identify(rightDocs, p.Mode) {
		slog.Warn(w.Detail, "source", p.RightPath)
	}

	paired, err := pairing.Pair(leftDocs, rightDocs)
	if err != nil {
		return Result{Err: err}
	}

	slog.Info("paired documents", "matched", len(paired.Matched), "missing", len(paired.Missing), "extra", len(paired.Extra))

	var out strings.Builder

	hasChanges := false

	for _, pr := range paired.Matched {
		changes, err := differ.Diff(pr.Left, pr.Right, differ.Options{MaxDepth: p.MaxDepth})
		if err != nil {
			return Result{Err: err}
		}

		changes = filter.Filter(changes, p.Patterns, p.IgnoreMoved)
		slog.Info("changes after filtering", "document", strings.Join(pr.Left.Identity.Render(), " / "), "changes", len(changes))

		if len(changes) > 0 {
			hasChanges = true
		}

		out.WriteString(render.Pair(pr.Left.Identity.Render(), pr.Left, pr.Right, changes, width))
		out.WriteByte('\n')
	}

	for _, d := range paired.Missing {
		hasChanges = true
		fmt.Fprintf(&out, "missing on right: %s\n", strings.Join(d.Identity.Render(), " / "))
	}

	for _, d := range paired.Extra {
		hasChanges = true
		fmt.Fprintf(&out, "extra on right: %s\n", strings.Join(d.Identity.Render(), " / "))
	}

	return Result{Rendered: out.String(), HasChanges: hasChanges}
}

func readAndPatch(path string, rules []prepatch.Rule) ([]*yamldoc.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	docs, err := yamldoc.Parse(data, path)
	if err != nil {
		return nil, err
	}

	for i, d := range docs {
		patched, err := prepatch.Apply(d, rules)
		if err != nil {
			return nil, err
		}

		docs[i] = patched
	}

	return docs, nil
}

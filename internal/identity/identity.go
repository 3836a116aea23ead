// Package identity computes the pairing key for each document in a stream:
// either its plain position, or its Kubernetes Group/Version/Kind plus name.
package identity

import (
	"fmt"

	"github.com/felipesere/everdiff/internal/value"
	"github.com/felipesere/everdiff/internal/yamldoc"
)

// Mode selects how documents are keyed for pairing.
type Mode int

const (
	// Positional keys documents by their 0-based index in the stream.
	Positional Mode = iota
	// Kubernetes keys documents by (apiVersion, kind, metadata.name).
	Kubernetes
)

// Warning reports a document that fell back to a positional key because it
// was missing one of the Kubernetes identity fields.
type Warning struct {
	DocumentIndex int
	Detail        string
}

// Identify assigns an Identity to every document in docs, in place, and
// returns any fallback warnings. In Kubernetes mode, documents missing
// apiVersion, kind, or metadata.name fall back to a position counted only
// among the documents that also fell back, keeping that subset internally
// consistent without failing the whole run.
func Identify(docs []*yamldoc.Document, mode Mode) []Warning {
	if mode == Positional {
		for i, d := range docs {
			d.Identity = yamldoc.PositionalKey(i)
		}

		return nil
	}

	var warnings []Warning

	fallbackIndex := 0

	for i, d := range docs {
		apiVersion, kind, name, ok := kubernetesFields(d.Root)
		if ok {
			d.Identity = yamldoc.KubernetesKey(apiVersion, kind, name)
			continue
		}

		d.Identity = yamldoc.PositionalKey(fallbackIndex)
		fallbackIndex++

		warnings = append(warnings, Warning{
			DocumentIndex: i,
			Detail:        fmt.Sprintf("document %d is missing apiVersion, kind, or metadata.name; falling back to positional identity", i),
		})
	}

	return warnings
}

func kubernetesFields(root value.Value) (apiVersion, kind, name string, ok bool) {
	apiVersion, ok1 := stringField(root, "apiVersion")
	kind, ok2 := stringField(root, "kind")

	metadata, ok3 := root.Lookup("metadata")
	if !ok3 {
		return "", "", "", false
	}

	name, ok4 := stringField(metadata, "name")

	if !ok1 || !ok2 || !ok4 {
		return "", "", "", false
	}

	return apiVersion, kind, name, true
}

func stringField(v value.Value, key string) (string, bool) {
	field, ok := v.Lookup(key)
	if !ok || field.Kind != value.KindScalar {
		return "", false
	}

	return field.Scalar, true
}

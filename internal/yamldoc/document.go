// Package yamldoc parses byte streams of one or more YAML documents into
// [Document] values whose tree is the recursive model in package value,
// annotated with source spans, ready for pre-patching, identification,
// pairing, and diffing.
package yamldoc

import (
	"strconv"

	"github.com/felipesere/everdiff/internal/value"
)

// Key is the identity a [Document] is paired by. The zero Key is a
// positional key for document index 0; use [PositionalKey] or
// [KubernetesKey] to construct one explicitly.
type Key struct {
	kubernetes bool
	positional int
	apiVersion string
	kind       string
	name       string
}

// PositionalKey returns the identity key for the document at 0-based index i
// within its stream.
func PositionalKey(i int) Key {
	return Key{positional: i}
}

// KubernetesKey returns the identity key for a document identified by its
// Group/Version/Kind and metadata.name.
func KubernetesKey(apiVersion, kind, name string) Key {
	return Key{kubernetes: true, apiVersion: apiVersion, kind: kind, name: name}
}

// IsKubernetes reports whether k was built by [KubernetesKey].
func (k Key) IsKubernetes() bool {
	return k.kubernetes
}

// Positional returns the positional index k was built with. Only meaningful
// when !k.IsKubernetes().
func (k Key) Positional() int {
	return k.positional
}

// APIVersion, Kind, and Name return the Kubernetes identity fields k was
// built with. Only meaningful when k.IsKubernetes().
func (k Key) APIVersion() string { return k.apiVersion }
func (k Key) Kind() string       { return k.kind }
func (k Key) Name() string       { return k.name }

// Render formats k the way the CLI captions a matched document pair.
func (k Key) Render() []string {
	if !k.kubernetes {
		return []string{"idx → " + strconv.Itoa(k.positional)}
	}

	return []string{
		"api_version → " + k.apiVersion,
		"kind → " + k.kind,
		"metadata.name → " + k.name,
	}
}

// Document is one YAML document from a stream, together with the original
// source text it was parsed from, its position in the stream, and (once
// computed) its pairing identity.
type Document struct {
	Root       value.Value
	Source     []byte
	SourceName string
	Index      int
	Identity   Key
}

// Package config loads the everdiff pre-patch configuration file: a YAML
// document listing the document shapes to match and the replace/add
// operations to apply to matching documents before diffing.
package config

import (
	"fmt"

	goyamlast "github.com/goccy/go-yaml/ast"
	goyamlparser "github.com/goccy/go-yaml/parser"

	"github.com/felipesere/everdiff/internal/prepatch"
	"github.com/felipesere/everdiff/internal/value"
	"github.com/felipesere/everdiff/internal/yamldoc"
)

// Load parses a pre-patch configuration file into the rules the prepatch
// package consumes. A config with no `prepatches` key yields no rules.
func Load(data []byte, sourceName string) ([]prepatch.Rule, error) {
	file, err := goyamlparser.ParseBytes(data, goyamlparser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", sourceName, err)
	}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, nil
	}

	mvns, err := mappingValues(file.Docs[0].Body, sourceName)
	if err != nil {
		return nil, err
	}

	prepatchesNode := findField(mvns, "prepatches")
	if prepatchesNode == nil {
		return nil, nil
	}

	seq, ok := prepatchesNode.(*goyamlast.SequenceNode)
	if !ok {
		return nil, fmt.Errorf("config %s: prepatches must be a sequence", sourceName)
	}

	rules := make([]prepatch.Rule, 0, len(seq.Values))

	for _, ruleNode := range seq.Values {
		rule, err := parseRule(ruleNode, sourceName)
		if err != nil {
			return nil, err
		}

		rules = append(rules, rule)
	}

	return rules, nil
}

func parseRule(node goyamlast.Node, sourceName string) (prepatch.Rule, error) {
	mvns, err := mappingValues(node, sourceName)
	if err != nil {
		return prepatch.Rule{}, err
	}

	name := ""

	if n := findField(mvns, "name"); n != nil {
		v, err := nodeToValue(n, sourceName)
		if err != nil {
			return prepatch.Rule{}, err
		}

		name = v.Scalar
	}

	docLikeNode := findField(mvns, "documentLike")
	if docLikeNode == nil {
		return prepatch.Rule{}, fmt.Errorf("config %s: prepatch %q missing documentLike", sourceName, name)
	}

	docLike, err := nodeToValue(docLikeNode, sourceName)
	if err != nil {
		return prepatch.Rule{}, err
	}

	patchesNode := findField(mvns, "patches")

	seq, ok := patchesNode.(*goyamlast.SequenceNode)
	if !ok {
		return prepatch.Rule{}, fmt.Errorf("config %s: prepatch %q: patches must be a sequence", sourceName, name)
	}

	patches := make([]prepatch.PatchOp, 0, len(seq.Values))

	for _, pn := range seq.Values {
		op, err := parsePatchOp(pn, sourceName, name)
		if err != nil {
			return prepatch.Rule{}, err
		}

		patches = append(patches, op)
	}

	return prepatch.Rule{Name: name, DocumentLike: docLike, Patches: patches}, nil
}

func parsePatchOp(node goyamlast.Node, sourceName, ruleName string) (prepatch.PatchOp, error) {
	mvns, err := mappingValues(node, sourceName)
	if err != nil {
		return prepatch.PatchOp{}, err
	}

	opNode := findField(mvns, "op")
	pathNode := findField(mvns, "path")
	valueNode := findField(mvns, "value")

	if opNode == nil || pathNode == nil || valueNode == nil {
		return prepatch.PatchOp{}, fmt.Errorf("config %s: prepatch %q: patch missing op, path, or value", sourceName, ruleName)
	}

	opVal, err := nodeToValue(opNode, sourceName)
	if err != nil {
		return prepatch.PatchOp{}, err
	}

	pathVal, err := nodeToValue(pathNode, sourceName)
	if err != nil {
		return prepatch.PatchOp{}, err
	}

	valVal, err := nodeToValue(valueNode, sourceName)
	if err != nil {
		return prepatch.PatchOp{}, err
	}

	var op prepatch.Op

	switch opVal.Scalar {
	case string(prepatch.OpReplace):
		op = prepatch.OpReplace
	case string(prepatch.OpAdd):
		op = prepatch.OpAdd
	default:
		return prepatch.PatchOp{}, fmt.Errorf("config %s: prepatch %q: unsupported op %q", sourceName, ruleName, opVal.Scalar)
	}

	return prepatch.PatchOp{Op: op, Path: pathVal.Scalar, Value: valVal}, nil
}

// nodeToValue renders node back to YAML text and reparses it through
// yamldoc, reusing the same scalar-typing and span logic the core parser
// uses rather than duplicating it for config-embedded subtrees.
func nodeToValue(node goyamlast.Node, sourceName string) (value.Value, error) {
	docs, err := yamldoc.Parse([]byte(node.String()), sourceName)
	if err != nil {
		return value.Value{}, fmt.Errorf("config %s: %w", sourceName, err)
	}

	if len(docs) == 0 {
		return value.NewEmpty(value.Span{}), nil
	}

	return docs[0].Root, nil
}

func mappingValues(node goyamlast.Node, sourceName string) ([]*goyamlast.MappingValueNode, error) {
	switch n := node.(type) {
	case *goyamlast.MappingNode:
		return n.Values, nil
	case *goyamlast.MappingValueNode:
		return []*goyamlast.MappingValueNode{n}, nil
	default:
		return nil, fmt.Errorf("config %s: expected a mapping, got %T", sourceName, node)
	}
}

func findField(mvns []*goyamlast.MappingValueNode, key string) goyamlast.Node {
	for _, mvn := range mvns {
		if mvn.Key.String() == key {
			return mvn.Value
		}
	}

	return nil
}

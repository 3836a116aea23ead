package yamldoc

import (
	"fmt"

	goyamlast "github.com/goccy/go-yaml/ast"
	goyamlparser "github.com/goccy/go-yaml/parser"

	"github.com/felipesere/everdiff/internal/value"
)

// Parse splits data into YAML documents at `---` markers and parses each
// into a [Document], in stream order. sourceName is used only to annotate
// errors.
func Parse(data []byte, sourceName string) ([]*Document, error) {
	file, err := goyamlparser.ParseBytes(data, goyamlparser.ParseComments)
	if err != nil {
		return nil, &ParseError{SourceName: sourceName, Detail: err.Error()}
	}

	docs := make([]*Document, 0, len(file.Docs))

	for i, d := range file.Docs {
		if d.Body == nil {
			docs = append(docs, &Document{
				Root:       value.NewEmpty(value.Span{}),
				Source:     data,
				SourceName: sourceName,
				Index:      i,
				Identity:   PositionalKey(i),
			})

			continue
		}

		p := &docParser{sourceName: sourceName, anchors: buildAnchors(d.Body)}

		root, perr := p.walk(d.Body)
		if perr != nil {
			return nil, perr
		}

		docs = append(docs, &Document{
			Root:       root,
			Source:     data,
			SourceName: sourceName,
			Index:      i,
			Identity:   PositionalKey(i),
		})
	}

	return docs, nil
}

type docParser struct {
	sourceName string
	anchors    map[string]goyamlast.Node
}

func buildAnchors(root goyamlast.Node) map[string]goyamlast.Node {
	anchors := make(map[string]goyamlast.Node)

	goyamlast.Walk(anchorVisitorFunc(func(n goyamlast.Node) {
		if a, ok := n.(*goyamlast.AnchorNode); ok && a.Value != nil {
			if name := anchorName(a); name != "" {
				anchors[name] = a.Value
			}
		}
	}), root)

	return anchors
}

// anchorVisitorFunc adapts a plain func into a goyamlast.Visitor.
type anchorVisitorFunc func(goyamlast.Node)

func (f anchorVisitorFunc) Visit(node goyamlast.Node) goyamlast.Visitor {
	f(node)
	return f
}

func anchorName(a *goyamlast.AnchorNode) string {
	if a.Name == nil {
		return ""
	}

	return a.Name.String()
}

func (p *docParser) resolveAlias(node goyamlast.Node) (goyamlast.Node, *ParseError) {
	alias, ok := node.(*goyamlast.AliasNode)
	if !ok {
		return node, nil
	}

	name := ""
	if alias.Value != nil {
		name = alias.Value.String()
	}

	target, ok := p.anchors[name]
	if !ok {
		return nil, p.errorAt(node, fmt.Sprintf("unresolvable alias *%s", name))
	}

	return target, nil
}

func (p *docParser) errorAt(node goyamlast.Node, detail string) *ParseError {
	line, col := tokenPos(node)

	return &ParseError{SourceName: p.sourceName, Line: line, Column: col, Detail: detail}
}

func tokenPos(node goyamlast.Node) (line, col int) {
	tok := node.GetToken()
	if tok == nil || tok.Position == nil {
		return 0, 0
	}

	return tok.Position.Line, tok.Position.Column
}

// walk translates a goccy/go-yaml AST node into a value.Value, resolving
// anchors/aliases and rejecting duplicate mapping keys.
func (p *docParser) walk(node goyamlast.Node) (value.Value, *ParseError) {
	resolved, err := p.resolveAlias(node)
	if err != nil {
		return value.Value{}, err
	}

	node = unwrapTag(resolved)

	if anchor, ok := node.(*goyamlast.AnchorNode); ok {
		return p.walk(anchor.Value)
	}

	switch n := node.(type) {
	case *goyamlast.MappingNode:
		return p.walkMapping(n.Values, node)
	case *goyamlast.MappingValueNode:
		return p.walkMapping([]*goyamlast.MappingValueNode{n}, node)
	case *goyamlast.SequenceNode:
		return p.walkSequence(n)
	case *goyamlast.NullNode:
		line, _ := tokenPos(node)
		return value.NewScalar("null", value.TagNull, value.Span{StartLine: line, EndLine: line}), nil
	default:
		return p.walkScalar(node)
	}
}

func unwrapTag(node goyamlast.Node) goyamlast.Node {
	for {
		tn, ok := node.(*goyamlast.TagNode)
		if !ok {
			return node
		}

		node = tn.Value
	}
}

func (p *docParser) walkMapping(values []*goyamlast.MappingValueNode, self goyamlast.Node) (value.Value, *ParseError) {
	entries := make([]value.MappingEntry, 0, len(values))
	seen := make(map[string]bool, len(values))

	startLine, _ := tokenPos(self)
	endLine := startLine

	for _, mvn := range values {
		if _, ok := mvn.Key.(*goyamlast.MergeKeyNode); ok {
			// Merge keys (<<) are a YAML 1.1 extension. They are skipped:
			// the merged mapping's entries are not added to this one, and
			// the << entry itself does not appear in the result.
			continue
		}

		key, kerr := p.walk(mvn.Key)
		if kerr != nil {
			return value.Value{}, kerr
		}

		val, verr := p.walk(mvn.Value)
		if verr != nil {
			return value.Value{}, verr
		}

		keyStr := renderKeyForDup(key)
		if seen[keyStr] {
			return value.Value{}, p.errorAt(mvn.Key, fmt.Sprintf("duplicate key %q", keyStr))
		}

		seen[keyStr] = true

		entries = append(entries, value.MappingEntry{Key: key, Value: val})

		if val.Span.EndLine > endLine {
			endLine = val.Span.EndLine
		}

		if key.Span.EndLine > endLine {
			endLine = key.Span.EndLine
		}
	}

	return value.NewMapping(entries, value.Span{StartLine: startLine, EndLine: endLine}), nil
}

func renderKeyForDup(v value.Value) string {
	return fmt.Sprintf("%d:%s", v.Tag, v.Scalar)
}

func (p *docParser) walkSequence(seq *goyamlast.SequenceNode) (value.Value, *ParseError) {
	startLine, _ := tokenPos(seq)
	endLine := startLine

	elements := make([]value.Value, 0, len(seq.Values))

	for _, elemNode := range seq.Values {
		elem, err := p.walk(elemNode)
		if err != nil {
			return value.Value{}, err
		}

		if elem.Span.EndLine > endLine {
			endLine = elem.Span.EndLine
		}

		elements = append(elements, elem)
	}

	return value.NewSequence(elements, value.Span{StartLine: startLine, EndLine: endLine}), nil
}

func (p *docParser) walkScalar(node goyamlast.Node) (value.Value, *ParseError) {
	line, _ := tokenPos(node)
	span := value.Span{StartLine: line, EndLine: line}

	switch n := node.(type) {
	case *goyamlast.BoolNode:
		text := "false"
		if n.Value {
			text = "true"
		}

		return value.NewScalar(text, value.TagBool, span), nil
	case *goyamlast.IntegerNode:
		return value.NewScalar(fmt.Sprint(n.Value), value.TagInt, span), nil
	case *goyamlast.FloatNode:
		return value.NewScalar(fmt.Sprint(n.Value), value.TagFloat, span), nil
	case *goyamlast.InfinityNode:
		return value.NewScalar(n.String(), value.TagFloat, span), nil
	case *goyamlast.NanNode:
		return value.NewScalar(n.String(), value.TagFloat, span), nil
	case *goyamlast.StringNode:
		return value.NewScalar(n.Value, value.TagString, span), nil
	case *goyamlast.LiteralNode:
		text := ""
		if n.Value != nil {
			text = n.Value.Value
		}

		return value.NewScalar(text, value.TagString, span), nil
	case *goyamlast.NullNode:
		return value.NewScalar("null", value.TagNull, span), nil
	default:
		return value.NewScalar(node.String(), value.TagString, span), nil
	}
}

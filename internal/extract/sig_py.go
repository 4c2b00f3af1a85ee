package extract

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// pySignatures extracts top-level declarations from Python source files.
type pySignatures struct{}

func (e *pySignatures) Extract(root *tree_sitter.Node, source []byte) []SignatureEntry {
	var sigs []SignatureEntry

	eachNamedChild(root, func(node *tree_sitter.Node) {
		// Decorated definitions wrap the real def/class node.
		if node.Kind() == "decorated_definition" {
			if def := node.ChildByFieldName("definition"); def != nil {
				node = def
			}
		}

		switch node.Kind() {
		case "function_definition":
			if sig := e.function(node, source); sig != nil {
				sigs = append(sigs, *sig)
			}
		case "class_definition":
			if sig := e.class(node, source); sig != nil {
				sigs = append(sigs, *sig)
			}
		case "expression_statement":
			if sig := e.assignment(node, source); sig != nil {
				sigs = append(sigs, *sig)
			}
		}
	})

	return sigs
}

func (e *pySignatures) function(node *tree_sitter.Node, source []byte) *SignatureEntry {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nameNode.Utf8Text(source)

	// Header text up to the body, trailing colon dropped.
	signature := oneLine(node.Utf8Text(source))
	if body := node.ChildByFieldName("body"); body != nil {
		signature = oneLine(string(source[node.StartByte():body.StartByte()]))
		signature = strings.TrimSuffix(signature, ":")
	}

	return &SignatureEntry{
		Kind:      KindFunction,
		Name:      name,
		Signature: signature,
		Exported:  isPyExported(name),
		Line:      lineOf(node),
		Async:     hasKeywordChild(node, "async"),
	}
}

func (e *pySignatures) class(node *tree_sitter.Node, source []byte) *SignatureEntry {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nameNode.Utf8Text(source)

	signature := "class " + name
	if super := node.ChildByFieldName("superclasses"); super != nil {
		signature += oneLine(super.Utf8Text(source))
	}

	return &SignatureEntry{
		Kind:      KindClass,
		Name:      name,
		Signature: signature,
		Exported:  isPyExported(name),
		Line:      lineOf(node),
	}
}

// assignment extracts module-level UPPER_SNAKE assignments as constants.
func (e *pySignatures) assignment(node *tree_sitter.Node, source []byte) *SignatureEntry {
	assign := node.NamedChild(0)
	if assign == nil || assign.Kind() != "assignment" {
		return nil
	}
	left := assign.ChildByFieldName("left")
	if left == nil || left.Kind() != "identifier" {
		return nil
	}
	name := left.Utf8Text(source)
	if !isPyConstName(name) {
		return nil
	}

	return &SignatureEntry{
		Kind:      KindConst,
		Name:      name,
		Signature: name + " = ...",
		Exported:  isPyExported(name),
		Line:      lineOf(node),
	}
}

// isPyExported reports whether name is public by convention (no leading
// underscore).
func isPyExported(name string) bool {
	return !strings.HasPrefix(name, "_")
}

// isPyConstName reports whether name looks like a module constant
// (UPPER_SNAKE, at least one letter).
func isPyConstName(name string) bool {
	hasLetter := false
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		case r == '_' || (r >= '0' && r <= '9'):
		default:
			return false
		}
	}
	return hasLetter
}

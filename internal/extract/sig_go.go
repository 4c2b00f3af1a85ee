package extract

import (
	"unicode"
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// goSignatures extracts top-level declarations from Go source files.
type goSignatures struct{}

func (e *goSignatures) Extract(root *tree_sitter.Node, source []byte) []SignatureEntry {
	var sigs []SignatureEntry

	eachNamedChild(root, func(node *tree_sitter.Node) {
		switch node.Kind() {
		case "function_declaration", "method_declaration":
			if sig := e.function(node, source); sig != nil {
				sigs = append(sigs, *sig)
			}
		case "type_declaration":
			sigs = append(sigs, e.typeDecl(node, source)...)
		case "const_declaration", "var_declaration":
			sigs = append(sigs, e.valueDecl(node, source)...)
		}
	})

	return sigs
}

func (e *goSignatures) function(node *tree_sitter.Node, source []byte) *SignatureEntry {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := nameNode.Utf8Text(source)
	return &SignatureEntry{
		Kind:      KindFunction,
		Name:      name,
		Signature: headText(node, source, "body"),
		Exported:  isGoExported(name),
		Line:      lineOf(node),
	}
}

func (e *goSignatures) typeDecl(node *tree_sitter.Node, source []byte) []SignatureEntry {
	var sigs []SignatureEntry
	// type_declaration holds one or more type_spec children.
	for i := uint(0); i < node.ChildCount(); i++ {
		spec := node.Child(i)
		if spec == nil || spec.Kind() != "type_spec" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := nameNode.Utf8Text(source)

		kind := KindType
		signature := "type " + oneLine(spec.Utf8Text(source))
		if typeNode := spec.ChildByFieldName("type"); typeNode != nil {
			switch typeNode.Kind() {
			case "interface_type":
				kind = KindInterface
				signature = "type " + name + " interface { ... }"
			case "struct_type":
				signature = "type " + name + " struct { ... }"
			}
		}

		sigs = append(sigs, SignatureEntry{
			Kind:      kind,
			Name:      name,
			Signature: signature,
			Exported:  isGoExported(name),
			Line:      lineOf(spec),
		})
	}
	return sigs
}

func (e *goSignatures) valueDecl(node *tree_sitter.Node, source []byte) []SignatureEntry {
	var sigs []SignatureEntry
	for i := uint(0); i < node.ChildCount(); i++ {
		spec := node.Child(i)
		if spec == nil || (spec.Kind() != "const_spec" && spec.Kind() != "var_spec") {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := nameNode.Utf8Text(source)
		sigs = append(sigs, SignatureEntry{
			Kind:      KindConst,
			Name:      name,
			Signature: oneLine(spec.Utf8Text(source)),
			Exported:  isGoExported(name),
			Line:      lineOf(spec),
		})
	}
	return sigs
}

// isGoExported reports whether the first rune of name is uppercase.
func isGoExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

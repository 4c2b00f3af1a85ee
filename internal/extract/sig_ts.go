package extract

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// tsSignatures extracts top-level declarations from TypeScript and
// JavaScript source files.
type tsSignatures struct{}

func (e *tsSignatures) Extract(root *tree_sitter.Node, source []byte) []SignatureEntry {
	var sigs []SignatureEntry

	eachNamedChild(root, func(node *tree_sitter.Node) {
		if node.Kind() == "export_statement" {
			// `export ... from "x"` and `export * from "x"` collapse into a
			// single synthetic entry per statement.
			if src := node.ChildByFieldName("source"); src != nil {
				sigs = append(sigs, SignatureEntry{
					Kind:      KindReExport,
					Name:      "re-export " + trimQuotes(src.Utf8Text(source)),
					Signature: oneLine(node.Utf8Text(source)),
					Exported:  true,
					Line:      lineOf(node),
				})
				return
			}
			if decl := node.ChildByFieldName("declaration"); decl != nil {
				sigs = append(sigs, e.declaration(decl, source, true)...)
			}
			return
		}
		sigs = append(sigs, e.declaration(node, source, false)...)
	})

	return sigs
}

// declaration classifies one declaration node. exported is true when the
// node is wrapped in an export statement.
func (e *tsSignatures) declaration(node *tree_sitter.Node, source []byte, exported bool) []SignatureEntry {
	switch node.Kind() {
	case "function_declaration", "generator_function_declaration":
		return e.named(node, source, KindFunction, exported, "body")
	case "class_declaration", "abstract_class_declaration":
		return e.named(node, source, KindClass, exported, "body")
	case "interface_declaration":
		return e.named(node, source, KindInterface, exported, "body")
	case "type_alias_declaration":
		return e.named(node, source, KindType, exported, "")
	case "enum_declaration":
		return e.named(node, source, KindEnum, exported, "body")
	case "lexical_declaration", "variable_declaration":
		return e.variables(node, source, exported)
	}
	return nil
}

func (e *tsSignatures) named(node *tree_sitter.Node, source []byte, kind Kind, exported bool, bodyField string) []SignatureEntry {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	signature := oneLine(node.Utf8Text(source))
	if bodyField != "" {
		signature = headText(node, source, bodyField)
	}
	return []SignatureEntry{{
		Kind:      kind,
		Name:      nameNode.Utf8Text(source),
		Signature: signature,
		Exported:  exported,
		Line:      lineOf(node),
		Async:     hasKeywordChild(node, "async"),
	}}
}

// variables extracts const/let/var declarators. Function-valued declarators
// (arrow functions, function expressions) become function entries; plain
// values become const entries with the value elided.
func (e *tsSignatures) variables(node *tree_sitter.Node, source []byte, exported bool) []SignatureEntry {
	keyword := "const"
	if first := node.Child(0); first != nil {
		keyword = first.Utf8Text(source)
	}

	var sigs []SignatureEntry
	for i := uint(0); i < node.NamedChildCount(); i++ {
		decl := node.NamedChild(i)
		if decl == nil || decl.Kind() != "variable_declarator" {
			continue
		}
		nameNode := decl.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := nameNode.Utf8Text(source)
		value := decl.ChildByFieldName("value")

		if value != nil && (value.Kind() == "arrow_function" || value.Kind() == "function_expression") {
			params := "()"
			if p := value.ChildByFieldName("parameters"); p != nil {
				params = oneLine(p.Utf8Text(source))
			}
			sigs = append(sigs, SignatureEntry{
				Kind:      KindFunction,
				Name:      name,
				Signature: keyword + " " + name + " = " + params + " => { ... }",
				Exported:  exported,
				Line:      lineOf(decl),
				Async:     hasKeywordChild(value, "async"),
			})
			continue
		}

		signature := keyword + " " + name
		if typ := decl.ChildByFieldName("type"); typ != nil {
			signature += oneLine(typ.Utf8Text(source))
		}
		sigs = append(sigs, SignatureEntry{
			Kind:      KindConst,
			Name:      name,
			Signature: signature,
			Exported:  exported,
			Line:      lineOf(decl),
		})
	}
	return sigs
}

func trimQuotes(s string) string {
	return strings.Trim(s, "\"'`")
}

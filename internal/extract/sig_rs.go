package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// rsSignatures extracts top-level items from Rust source files.
type rsSignatures struct{}

func (e *rsSignatures) Extract(root *tree_sitter.Node, source []byte) []SignatureEntry {
	var sigs []SignatureEntry

	eachNamedChild(root, func(node *tree_sitter.Node) {
		switch node.Kind() {
		case "function_item":
			if sig := e.item(node, source, KindFunction, "body"); sig != nil {
				sig.Async = hasKeywordChild(node, "async")
				sigs = append(sigs, *sig)
			}
		case "struct_item":
			if sig := e.item(node, source, KindType, "body"); sig != nil {
				sigs = append(sigs, *sig)
			}
		case "enum_item":
			if sig := e.item(node, source, KindEnum, "body"); sig != nil {
				sigs = append(sigs, *sig)
			}
		case "trait_item":
			if sig := e.item(node, source, KindInterface, "body"); sig != nil {
				sigs = append(sigs, *sig)
			}
		case "type_item":
			if sig := e.item(node, source, KindType, ""); sig != nil {
				sigs = append(sigs, *sig)
			}
		case "const_item", "static_item":
			if sig := e.item(node, source, KindConst, ""); sig != nil {
				sigs = append(sigs, *sig)
			}
		}
	})

	return sigs
}

func (e *rsSignatures) item(node *tree_sitter.Node, source []byte, kind Kind, bodyField string) *SignatureEntry {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	signature := oneLine(node.Utf8Text(source))
	if bodyField != "" {
		signature = headText(node, source, bodyField)
	}
	return &SignatureEntry{
		Kind:      kind,
		Name:      nameNode.Utf8Text(source),
		Signature: signature,
		Exported:  isRsPublic(node),
		Line:      lineOf(node),
	}
}

// isRsPublic reports whether the item carries a pub visibility modifier.
func isRsPublic(node *tree_sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == "visibility_modifier" {
			return true
		}
	}
	return false
}

package golang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/reactor/declaration"
	"github.com/viant/reactor/inspector/info"
)

// collectUsage records recv.Field.Member selectors found in a method body
func collectUsage(methodNode *sitter.Node, src []byte, usage map[string]info.Usage) {
	receiverList := methodNode.ChildByFieldName("receiver")
	body := methodNode.ChildByFieldName("body")
	if receiverList == nil || body == nil {
		return
	}
	var receiverName, receiverType string
	for j := 0; j < int(receiverList.NamedChildCount()); j++ {
		param := receiverList.NamedChild(j)
		if param.Type() != "parameter_declaration" {
			continue
		}
		if nameNode := param.ChildByFieldName("name"); nameNode != nil {
			receiverName = nameNode.Content(src)
		}
		if typeNode := param.ChildByFieldName("type"); typeNode != nil {
			receiverType = declaration.TypeName(typeNode.Content(src))
		}
	}
	if receiverName == "" || receiverName == "_" || receiverType == "" {
		return
	}
	walk(body, func(node *sitter.Node) {
		if node.Type() != "selector_expression" {
			return
		}
		operand := node.ChildByFieldName("operand")
		field := node.ChildByFieldName("field")
		if operand == nil || field == nil || operand.Type() != "selector_expression" {
			return
		}
		holder := operand.ChildByFieldName("operand")
		reference := operand.ChildByFieldName("field")
		if holder == nil || reference == nil || holder.Type() != "identifier" || holder.Content(src) != receiverName {
			return
		}
		typeUsage, ok := usage[receiverType]
		if !ok {
			typeUsage = info.Usage{}
			usage[receiverType] = typeUsage
		}
		typeUsage.Add(reference.Content(src), strings.TrimSpace(field.Content(src)))
	})
}

func walk(node *sitter.Node, visit func(node *sitter.Node)) {
	visit(node)
	for j := 0; j < int(node.NamedChildCount()); j++ {
		walk(node.NamedChild(j), visit)
	}
}

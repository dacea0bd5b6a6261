package golang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/reactor/declaration"
)

// parseTypeDeclaration extracts struct declarations from a type declaration node
func (i *Inspector) parseTypeDeclaration(typeNode *sitter.Node, src []byte, filename string, resolver *typeResolver) []*declaration.Declaration {
	var ret []*declaration.Declaration
	grouped := typeNode.NamedChildCount() > 1
	for j := 0; j < int(typeNode.NamedChildCount()); j++ {
		spec := typeNode.NamedChild(j)
		if spec.Type() != "type_spec" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		typeValue := spec.ChildByFieldName("type")
		if nameNode == nil || typeValue == nil || typeValue.Type() != "struct_type" {
			continue
		}
		name := nameNode.Content(src)
		annotated := typeNode
		if grouped {
			annotated = spec
		}
		decl := &declaration.Declaration{
			FQN:         declaration.FQN(resolver.importPath, name),
			Name:        name,
			Annotations: commentAnnotations(annotated, src),
			Location:    location(filename, spec),
		}
		if params := spec.ChildByFieldName("type_parameters"); params != nil {
			decl.TypeParams = parseTypeParams(params, src)
		}
		i.parseStructFields(decl, typeValue, src, filename, resolver)
		ret = append(ret, decl)
	}
	return ret
}

// parseTypeParams extracts generic type parameter names with their constraints
func parseTypeParams(params *sitter.Node, src []byte) []*declaration.TypeParam {
	var ret []*declaration.TypeParam
	for j := 0; j < int(params.NamedChildCount()); j++ {
		param := params.NamedChild(j)
		constraint := ""
		if typeNode := param.ChildByFieldName("type"); typeNode != nil {
			constraint = typeNode.Content(src)
		}
		for k := 0; k < int(param.NamedChildCount()); k++ {
			if ident := param.NamedChild(k); ident.Type() == "identifier" {
				ret = append(ret, &declaration.TypeParam{Name: ident.Content(src), Constraint: constraint})
			}
		}
	}
	return ret
}

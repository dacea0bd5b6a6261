package golang

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/reactor/inspector/info"
)

// parseImports extracts imports from a single import or an import block
func parseImports(importNode *sitter.Node, src []byte) []info.Import {
	var imports []info.Import
	for j := 0; j < int(importNode.NamedChildCount()); j++ {
		child := importNode.NamedChild(j)
		switch child.Type() {
		case "import_spec":
			if anImport, ok := parseImportSpec(child, src); ok {
				imports = append(imports, anImport)
			}
		case "import_spec_list":
			imports = append(imports, parseImports(child, src)...)
		}
	}
	return imports
}

func parseImportSpec(spec *sitter.Node, src []byte) (info.Import, bool) {
	pathNode := spec.ChildByFieldName("path")
	if pathNode == nil {
		return info.Import{}, false
	}
	importPath, err := strconv.Unquote(pathNode.Content(src))
	if err != nil {
		importPath = strings.Trim(pathNode.Content(src), "\"`")
	}
	name := ""
	if nameNode := spec.ChildByFieldName("name"); nameNode != nil {
		name = nameNode.Content(src)
	} else {
		name = importPath[strings.LastIndex(importPath, "/")+1:]
	}
	return info.Import{Name: name, Path: importPath}, true
}

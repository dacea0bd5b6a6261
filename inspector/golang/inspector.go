package golang

import (
	"context"
	"fmt"
	"path"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/viant/reactor/declaration"
	"github.com/viant/reactor/inspector/info"
)

const defaultFilename = "source.go"

// Inspector extracts reactive declarations from Go source using tree-sitter
type Inspector struct {
	config *info.Config
}

// New creates an inspector
func New(config *info.Config) *Inspector {
	if config == nil {
		config = info.DefaultConfig()
	}
	return &Inspector{config: config}
}

// InspectSource parses Go source code and extracts struct declarations with receiver usage
func (i *Inspector) InspectSource(ctx context.Context, importPath, filename string, src []byte) (*info.File, error) {
	if filename == "" {
		filename = defaultFilename
	}
	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	defer tree.Close()
	return i.processFile(tree.RootNode(), src, importPath, filename), nil
}

// InspectPackage inspects package sources keyed by file name
func (i *Inspector) InspectPackage(ctx context.Context, importPath string, sources map[string][]byte) (*info.Package, error) {
	pkg := &info.Package{ImportPath: importPath}
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		aFile, err := i.InspectSource(ctx, importPath, name, sources[name])
		if err != nil {
			return nil, err
		}
		pkg.AddFile(aFile)
	}
	return pkg, nil
}

// processFile extracts package, imports, struct types and method usage from a Go file
func (i *Inspector) processFile(root *sitter.Node, src []byte, importPath, filename string) *info.File {
	aFile := &info.File{
		Path:       filename,
		Name:       path.Base(filename),
		ImportPath: importPath,
		Usage:      map[string]info.Usage{},
	}
	var typeNodes, methodNodes []*sitter.Node
	for j := 0; j < int(root.NamedChildCount()); j++ {
		child := root.NamedChild(j)
		switch child.Type() {
		case "package_clause":
			for k := 0; k < int(child.NamedChildCount()); k++ {
				if ident := child.NamedChild(k); ident.Type() == "package_identifier" {
					aFile.Package = ident.Content(src)
				}
			}
		case "import_declaration":
			aFile.Imports = append(aFile.Imports, parseImports(child, src)...)
		case "type_declaration":
			typeNodes = append(typeNodes, child)
		case "method_declaration":
			methodNodes = append(methodNodes, child)
		}
	}
	resolver := newTypeResolver(importPath, aFile.Imports)
	for _, typeNode := range typeNodes {
		aFile.Declarations = append(aFile.Declarations, i.parseTypeDeclaration(typeNode, src, filename, resolver)...)
	}
	for _, methodNode := range methodNodes {
		collectUsage(methodNode, src, aFile.Usage)
	}
	return aFile
}

// Declarations returns package declarations with method usage evidence merged across files
func Declarations(pkg *info.Package) []*declaration.Declaration {
	var ret []*declaration.Declaration
	byName := map[string]*declaration.Declaration{}
	for _, aFile := range pkg.FileSet {
		for _, decl := range aFile.Declarations {
			ret = append(ret, decl)
			byName[decl.Name] = decl
		}
	}
	for _, aFile := range pkg.FileSet {
		for typeName, usage := range aFile.Usage {
			decl, ok := byName[typeName]
			if !ok {
				continue
			}
			for _, reference := range decl.References {
				for _, member := range usage[reference.Name] {
					reference.Usage = appendUnique(reference.Usage, member)
				}
			}
		}
	}
	for _, decl := range ret {
		for _, reference := range decl.References {
			sort.Strings(reference.Usage)
		}
	}
	return ret
}

func appendUnique(values []string, value string) []string {
	for _, candidate := range values {
		if candidate == value {
			return values
		}
	}
	return append(values, value)
}

package golang

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/reactor/declaration"
	"github.com/viant/reactor/inspector/info"
)

var annRe = regexp.MustCompile(`@([\w:.-]+)(?:[=:]([^\s]+))?`)

var builtinTypes = map[string]bool{
	"bool": true, "string": true, "error": true, "any": true, "byte": true, "rune": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"float32": true, "float64": true, "complex64": true, "complex128": true,
}

// typeResolver resolves type expressions of a file into fully qualified names
type typeResolver struct {
	importPath string
	imports    map[string]string
}

func newTypeResolver(importPath string, imports []info.Import) *typeResolver {
	ret := &typeResolver{importPath: importPath, imports: map[string]string{}}
	for _, anImport := range imports {
		ret.imports[anImport.Name] = anImport.Path
	}
	return ret
}

// resolve returns fully qualified name of a type expression and its import path,
// builtin types and unnamed types are returned as is
func (r *typeResolver) resolve(expr string) (string, string) {
	name := declaration.TypeName(expr)
	for _, prefix := range []string{"map[", "chan ", "chan<-", "<-chan", "func(", "struct{", "interface{"} {
		if strings.HasPrefix(strings.TrimLeft(expr, "*[]"), prefix) {
			return expr, ""
		}
	}
	if name == "" || builtinTypes[name] || strings.ContainsAny(name, " ({") {
		return name, ""
	}
	if index := strings.Index(name, "."); index != -1 {
		alias, typeName := name[:index], name[index+1:]
		pkgPath, ok := r.imports[alias]
		if !ok {
			pkgPath = alias
		}
		return declaration.FQN(pkgPath, typeName), pkgPath
	}
	return declaration.FQN(r.importPath, name), r.importPath
}

// isStandardLibrary returns true for import paths without a domain element
func isStandardLibrary(pkgPath string) bool {
	if pkgPath == "" {
		return false
	}
	first := pkgPath
	if index := strings.Index(pkgPath, "/"); index != -1 {
		first = pkgPath[:index]
	}
	return !strings.Contains(first, ".")
}

// isExported returns true if the identifier is exported (starts with an uppercase letter)
func isExported(name string) bool {
	if name == "" {
		return false
	}
	return strings.ToUpper(name[:1]) == name[:1]
}

func location(filename string, node *sitter.Node) string {
	return fmt.Sprintf("%v:%v", filename, node.StartPoint().Row+1)
}

// commentAnnotations extracts @key=value annotations from line comments preceding a node
func commentAnnotations(node *sitter.Node, src []byte) map[string]string {
	var ret map[string]string
	start := int(node.StartByte())
	end := bytes.LastIndexByte(src[:start], '\n')
	for end >= 0 {
		begin := bytes.LastIndexByte(src[:end], '\n') + 1
		line := bytes.TrimSpace(src[begin:end])
		if !bytes.HasPrefix(line, []byte("//")) {
			break
		}
		ret = mergeAnnotations(ret, line)
		end = begin - 1
	}
	return ret
}

// trailingAnnotations extracts annotations from a comment following a node on the same line
func trailingAnnotations(node *sitter.Node, src []byte) map[string]string {
	next := node.NextNamedSibling()
	if next == nil || next.Type() != "comment" || next.StartPoint().Row != node.EndPoint().Row {
		return nil
	}
	return mergeAnnotations(nil, []byte(next.Content(src)))
}

func mergeAnnotations(dst map[string]string, line []byte) map[string]string {
	for _, m := range annRe.FindAllSubmatch(line, -1) {
		if dst == nil {
			dst = map[string]string{}
		}
		key := string(m[1])
		val := ""
		if len(m) > 2 {
			val = string(m[2])
		}
		dst[key] = val
	}
	return dst
}

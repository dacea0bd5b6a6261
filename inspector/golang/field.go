package golang

import (
	"reflect"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/reactor/declaration"
)

// TagName is the struct tag key describing reactive members
const TagName = "reactive"

// TriggerAnnotation is the comment annotation declaring a trigger, e.g. // @reactive:trigger=hook
const TriggerAnnotation = "reactive:trigger"

// Tag represents parsed reactive struct tag
type Tag struct {
	Ignore    bool
	Reference bool
	Alias     string
	Command   bool
	Trigger   bool
	Mode      declaration.TriggerMode
}

// ParseTag parses reactive tag value, e.g. ref,alias=Settings or command,trigger=hook
func ParseTag(value string) *Tag {
	ret := &Tag{}
	if strings.TrimSpace(value) == "-" {
		ret.Ignore = true
		return ret
	}
	for _, element := range strings.Split(value, ",") {
		key, val, _ := strings.Cut(strings.TrimSpace(element), "=")
		switch strings.ToLower(key) {
		case "ref", "reference":
			ret.Reference = true
		case "alias":
			ret.Alias = val
		case "command":
			ret.Command = true
		case "trigger":
			ret.Trigger = true
			ret.Mode = triggerMode(val)
		}
	}
	return ret
}

func triggerMode(value string) declaration.TriggerMode {
	if strings.EqualFold(value, string(declaration.Hook)) {
		return declaration.Hook
	}
	return declaration.Render
}

// parseStructFields extracts base, members, references and triggers from a struct type node
func (i *Inspector) parseStructFields(decl *declaration.Declaration, structNode *sitter.Node, src []byte, filename string, resolver *typeResolver) {
	var fieldList *sitter.Node
	for j := 0; j < int(structNode.NamedChildCount()); j++ {
		if child := structNode.NamedChild(j); child.Type() == "field_declaration_list" {
			fieldList = child
			break
		}
	}
	if fieldList == nil {
		return
	}
	commandFQN := declaration.CommandFQN(i.config.Marker)
	rootFQN := declaration.RootFQN(i.config.Marker)
	// the root sentinel or a local struct wins over embedded third party types
	var preferred, fallback string
	for j := 0; j < int(fieldList.NamedChildCount()); j++ {
		fieldNode := fieldList.NamedChild(j)
		if fieldNode.Type() != "field_declaration" {
			continue
		}
		var names []string
		var tagValue string
		for k := 0; k < int(fieldNode.NamedChildCount()); k++ {
			child := fieldNode.NamedChild(k)
			switch child.Type() {
			case "field_identifier":
				names = append(names, child.Content(src))
			case "raw_string_literal", "interpreted_string_literal":
				tagValue = unquoteTag(child.Content(src))
			}
		}
		typeText := ""
		if typeNode := fieldNode.ChildByFieldName("type"); typeNode != nil {
			typeText = typeNode.Content(src)
		}
		tag := ParseTag(reflect.StructTag(tagValue).Get(TagName))
		if tag.Ignore {
			continue
		}
		annotations := commentAnnotations(fieldNode, src)
		for k, v := range trailingAnnotations(fieldNode, src) {
			if annotations == nil {
				annotations = map[string]string{}
			}
			annotations[k] = v
		}
		if value, ok := annotations[TriggerAnnotation]; ok {
			tag.Trigger = true
			tag.Mode = triggerMode(value)
		}
		typeName, pkgPath := resolver.resolve(typeText)
		if len(names) == 0 {
			switch {
			case pkgPath == "":
			case pkgPath == resolver.importPath || typeName == rootFQN:
				if preferred == "" {
					preferred = typeName
				}
			case !isStandardLibrary(pkgPath):
				if fallback == "" {
					fallback = typeName
				}
			}
			continue
		}
		for _, name := range names {
			at := location(filename, fieldNode)
			isCommand := false
			switch {
			case tag.Reference:
				decl.References = append(decl.References, &declaration.Reference{Name: name, Alias: tag.Alias, Target: typeName, Location: at})
			case tag.Command || typeName == commandFQN:
				decl.AddCommand(&declaration.Member{Name: name, Type: typeText, Annotations: annotations, Location: at})
				isCommand = true
			case !isExported(name):
				continue
			default:
				decl.AddProperty(&declaration.Member{Name: name, Type: typeText, Annotations: annotations, Location: at})
			}
			if tag.Trigger {
				kind := declaration.PropertyTrigger
				if isCommand {
					kind = declaration.CommandTrigger
				}
				decl.Triggers = append(decl.Triggers, &declaration.Trigger{Member: name, Mode: tag.Mode, Kind: kind})
			}
		}
	}
	if decl.Base = preferred; decl.Base == "" {
		decl.Base = fallback
	}
}

func unquoteTag(literal string) string {
	if strings.HasPrefix(literal, "`") {
		return strings.Trim(literal, "`")
	}
	if value, err := strconv.Unquote(literal); err == nil {
		return value
	}
	return strings.Trim(literal, "\"")
}

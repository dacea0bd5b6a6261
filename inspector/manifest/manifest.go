package manifest

import (
	"fmt"
	"strings"

	"github.com/viant/reactor/declaration"
	"gopkg.in/yaml.v3"
)

// Manifest represents public surface of an external module
type Manifest struct {
	Module   string    `yaml:"module"`
	Requires []string  `yaml:"requires,omitempty"`
	Entities []*Entity `yaml:"entities,omitempty"`
}

// Entity represents an entity declaration visible through a manifest
type Entity struct {
	Name       string                   `yaml:"name"`
	Base       string                   `yaml:"base,omitempty"`
	Properties []string                 `yaml:"properties,omitempty"`
	Commands   []string                 `yaml:"commands,omitempty"`
	References []*Reference             `yaml:"references,omitempty"`
	Triggers   []*declaration.Trigger   `yaml:"triggers,omitempty"`
	TypeParams []*declaration.TypeParam `yaml:"typeParams,omitempty"`
}

// Reference represents a manifest reference
type Reference struct {
	Name   string `yaml:"name"`
	Alias  string `yaml:"alias,omitempty"`
	Target string `yaml:"target"`
}

// Decode decodes manifest YAML
func Decode(data []byte) (*Manifest, error) {
	ret := &Manifest{}
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if ret.Module == "" {
		return nil, fmt.Errorf("invalid manifest: module was empty")
	}
	return ret, nil
}

// FQN returns entity fully qualified name, unqualified names belong to the manifest module package
func (m *Manifest) FQN(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return declaration.FQN(m.Module, name)
}

// DeclarationModule converts manifest into an external module, only public surface is
// carried: references have no usage evidence
func (m *Manifest) DeclarationModule(location string) *declaration.Module {
	ret := declaration.NewModule(m.Module, declaration.External, m.Requires...)
	for _, entity := range m.Entities {
		decl := &declaration.Declaration{
			FQN:        m.FQN(entity.Name),
			Base:       entity.Base,
			TypeParams: entity.TypeParams,
			Location:   location,
		}
		for _, name := range entity.Properties {
			decl.AddProperty(&declaration.Member{Name: name})
		}
		for _, name := range entity.Commands {
			decl.AddCommand(&declaration.Member{Name: name})
		}
		for _, reference := range entity.References {
			decl.References = append(decl.References, &declaration.Reference{
				Name:   reference.Name,
				Alias:  reference.Alias,
				Target: reference.Target,
			})
		}
		for _, trigger := range entity.Triggers {
			decl.Triggers = append(decl.Triggers, &declaration.Trigger{Member: trigger.Member, Mode: trigger.Mode, Kind: trigger.Kind})
		}
		ret.AddDeclaration(decl)
	}
	return ret
}

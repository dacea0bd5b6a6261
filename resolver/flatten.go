package resolver

import (
	"sort"

	"github.com/viant/reactor/declaration"
)

// Entity represents a reactive declaration flattened over its base chain, immutable after flattening
type Entity struct {
	FQN           string
	Name          string
	Module        string
	Origin        declaration.Origin
	Location      string
	NearestBase   string
	Chain         []string
	AllMembers    []string
	DirectMembers []string
	Commands      []string
	References    []*declaration.Reference
	Triggers      []*declaration.Trigger
	TypeParams    []*declaration.TypeParam

	members  map[string]bool
	commands map[string]bool
	own      map[*declaration.Reference]bool
}

// HasMember returns true if name is a flattened property or command
func (e *Entity) HasMember(name string) bool {
	return e.members[name] || e.commands[name]
}

// HasCommand returns true if name is a flattened command
func (e *Entity) HasCommand(name string) bool {
	return e.commands[name]
}

// declares returns true if reference is declared by the entity itself, not inherited
func (e *Entity) declares(reference *declaration.Reference) bool {
	return e.own[reference]
}

// derives returns true if fqn is the entity itself or one of its bases
func (e *Entity) derives(fqn string) bool {
	for _, candidate := range e.Chain {
		if candidate == fqn {
			return true
		}
	}
	return false
}

// Observable returns sorted properties and commands
func (e *Entity) Observable() []string {
	ret := make([]string, 0, len(e.AllMembers)+len(e.Commands))
	ret = append(ret, e.AllMembers...)
	ret = append(ret, e.Commands...)
	sort.Strings(ret)
	return ret
}

// flatten walks base chain of fqn up to the root sentinel; it returns false when
// the chain never reaches the root, i.e. the type is not reactive
func flatten(index declaration.Index, fqn string) (*Entity, bool) {
	root := index.Root()
	if fqn == root {
		return nil, false
	}
	decl, ok := index.Lookup(fqn)
	if !ok {
		return nil, false
	}
	entity := &Entity{
		FQN:        decl.FQN,
		Name:       decl.Name,
		Module:     decl.Module,
		Origin:     decl.Origin,
		Location:   decl.Location,
		TypeParams: decl.TypeParams,
		members:    map[string]bool{},
		commands:   map[string]bool{},
		own:        map[*declaration.Reference]bool{},
	}
	for _, reference := range decl.References {
		entity.own[reference] = true
	}
	for _, member := range decl.Properties {
		entity.DirectMembers = append(entity.DirectMembers, member.Name)
	}
	for _, member := range decl.Commands {
		entity.DirectMembers = append(entity.DirectMembers, member.Name)
	}
	sort.Strings(entity.DirectMembers)

	seen := map[string]bool{}
	aliases := map[string]bool{}
	triggers := map[string]bool{}
	visited := map[string]bool{}
	reactive := false
	for current := decl; current != nil; {
		if visited[current.FQN] {
			break
		}
		visited[current.FQN] = true
		entity.Chain = append(entity.Chain, current.FQN)
		// most derived declaration wins, every level is visited even if it adds nothing
		for _, member := range current.Properties {
			if seen[member.Name] {
				continue
			}
			seen[member.Name] = true
			entity.members[member.Name] = true
		}
		for _, member := range current.Commands {
			if seen[member.Name] {
				continue
			}
			seen[member.Name] = true
			entity.commands[member.Name] = true
		}
		for _, reference := range current.References {
			alias := reference.AliasName()
			if aliases[alias] {
				continue
			}
			aliases[alias] = true
			entity.References = append(entity.References, reference)
		}
		for _, trigger := range current.Triggers {
			descriptor := trigger.Descriptor()
			if triggers[descriptor] {
				continue
			}
			triggers[descriptor] = true
			entity.Triggers = append(entity.Triggers, trigger)
		}
		if current.Base == "" {
			break
		}
		base, ok := lookupBase(index, current.Base)
		if !ok {
			break
		}
		if base == root {
			reactive = true
			break
		}
		current, _ = index.Lookup(base)
	}
	if !reactive {
		return nil, false
	}
	entity.NearestBase, _ = lookupBase(index, decl.Base)
	entity.AllMembers = sortedKeys(entity.members)
	entity.Commands = sortedKeys(entity.commands)
	sort.SliceStable(entity.References, func(i, j int) bool {
		return entity.References[i].AliasName() < entity.References[j].AliasName()
	})
	sort.SliceStable(entity.Triggers, func(i, j int) bool {
		return entity.Triggers[i].Descriptor() < entity.Triggers[j].Descriptor()
	})
	return entity, true
}

// lookupBase resolves base name by exact name or unique short name
func lookupBase(index declaration.Index, name string) (string, bool) {
	name = declaration.TypeName(name)
	if name == index.Root() {
		return name, true
	}
	if _, ok := index.Lookup(name); ok {
		return name, true
	}
	if candidates := index.Find(declaration.ShortName(name)); len(candidates) == 1 {
		return candidates[0], true
	}
	return "", false
}

// ambiguousBase returns an error when a base in the chain of fqn is named by a short
// name matching several declarations of which at least one is reactive
func ambiguousBase(index declaration.Index, fqn string) error {
	visited := map[string]bool{}
	for current, ok := index.Lookup(fqn); ok && current.Base != "" && !visited[current.FQN]; {
		visited[current.FQN] = true
		base, found := lookupBase(index, current.Base)
		if !found {
			candidates := index.Find(declaration.ShortName(declaration.TypeName(current.Base)))
			if len(candidates) < 2 {
				return nil
			}
			for _, candidate := range candidates {
				if _, reactive := flatten(index, candidate); reactive {
					return &AmbiguousReferenceError{From: fqn, Alias: "base", Target: current.Base, Candidates: candidates}
				}
			}
			return nil
		}
		if base == index.Root() {
			return nil
		}
		current, ok = index.Lookup(base)
	}
	return nil
}

func sortedKeys(set map[string]bool) []string {
	ret := make([]string, 0, len(set))
	for k := range set {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

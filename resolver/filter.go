package resolver

import (
	"strings"

	"github.com/viant/reactor/cache"
	"github.com/viant/reactor/declaration"
	"github.com/viant/reactor/diagnostic"
	"github.com/viant/reactor/observed"
)

// ResolvedReference represents an effective one hop reference
type ResolvedReference struct {
	Alias  string `yaml:"alias"`
	Target string `yaml:"target"`
}

// EntityResult represents filter output of an entity, values may be shared
// across passes through the cache and must not be modified
type EntityResult struct {
	FQN         string               `yaml:"fqn"`
	Module      string               `yaml:"module"`
	Origin      declaration.Origin   `yaml:"origin"`
	NearestBase string               `yaml:"nearestBase,omitempty"`
	Members     []string             `yaml:"members,omitempty"`
	Direct      []string             `yaml:"direct,omitempty"`
	Commands    []string             `yaml:"commands,omitempty"`
	References  []*ResolvedReference `yaml:"references,omitempty"`
	Filter      *observed.Set        `yaml:"filter"`
	Triggered   *observed.Set        `yaml:"triggered,omitempty"`
	Hooks       *observed.Set        `yaml:"hooks,omitempty"`

	Diagnostics diagnostic.Diagnostics `yaml:"-"`

	locations string
}

// descriptor returns structural cache input of an entity
func descriptor(entity *Entity, graph *Graph) *cache.Descriptor {
	ret := &cache.Descriptor{
		FQN:      entity.FQN,
		Module:   entity.Module,
		Members:  entity.AllMembers,
		Commands: entity.Commands,
	}
	for _, edge := range graph.Edges(entity.FQN) {
		ret.References = append(ret.References, cache.Edge{Alias: edge.Alias, Target: edge.Target})
	}
	for _, trigger := range entity.Triggers {
		ret.Triggers = append(ret.Triggers, trigger.Descriptor())
	}
	return ret
}

// locations returns source locations diagnostics of an entity may carry, they are
// not part of the structural key so a cached result is reused only when they match
func locations(entity *Entity, graph *Graph) string {
	builder := strings.Builder{}
	builder.WriteString(entity.Location)
	for _, edge := range graph.Edges(entity.FQN) {
		builder.WriteString("|")
		builder.WriteString(edge.Alias)
		builder.WriteString("@")
		builder.WriteString(edge.Reference.Location)
	}
	return builder.String()
}

// computeFilter computes entity filter with one hop reference expansion
// together with trigger mandated paths
func computeFilter(entity *Entity, graph *Graph, entities map[string]*Entity) *EntityResult {
	ret := &EntityResult{
		FQN:         entity.FQN,
		Module:      entity.Module,
		Origin:      entity.Origin,
		NearestBase: entity.NearestBase,
		Members:     entity.AllMembers,
		Direct:      entity.DirectMembers,
		Commands:    entity.Commands,
		Filter:      observed.NewSet(),
		Triggered:   observed.NewSet(),
		Hooks:       observed.NewSet(),
		locations:   locations(entity, graph),
	}
	for _, member := range entity.Observable() {
		ret.Filter.Add(observed.NewPath(member))
	}
	for _, trigger := range entity.Triggers {
		if !validTrigger(entity, trigger) {
			ret.Diagnostics.Append(diagnostic.New(diagnostic.UnresolvedTrigger, entity.FQN, entity.Location,
				"%v trigger on unknown member %v", trigger.KindOrDefault(), trigger.Member))
			continue
		}
		addTrigger(ret, trigger)
	}

	for _, edge := range graph.Edges(entity.FQN) {
		target := entities[edge.Target]
		ret.References = append(ret.References, &ResolvedReference{Alias: edge.Alias, Target: edge.Target})
		for _, member := range target.Observable() {
			ret.Filter.Add(observed.NewPath(edge.Alias, member))
		}
		if len(target.Triggers) == 0 {
			continue
		}
		if target.Module != entity.Module {
			for _, trigger := range target.Triggers {
				ret.Diagnostics.Append(diagnostic.New(diagnostic.CrossModuleExpansionSkipped, entity.FQN, locationOf(edge.Reference.Location, entity.Location),
					"trigger %v of %v declared in module %v is not propagated into module %v", trigger.Descriptor(), target.FQN, target.Module, entity.Module))
			}
			continue
		}
		for _, trigger := range target.Triggers {
			if !validTrigger(target, trigger) {
				continue
			}
			addTrigger(ret, trigger, edge.Alias)
		}
	}
	dropDeepTriggers(ret, entity, graph, entities)
	return ret
}

// dropDeepTriggers reports triggers declared two or more hops away, they never propagate
func dropDeepTriggers(ret *EntityResult, entity *Entity, graph *Graph, entities map[string]*Entity) {
	type hop struct {
		fqn   string
		depth int
	}
	visited := map[string]bool{entity.FQN: true}
	var queue []hop
	for _, edge := range graph.Edges(entity.FQN) {
		if !visited[edge.Target] {
			visited[edge.Target] = true
			queue = append(queue, hop{fqn: edge.Target, depth: 1})
		}
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current.depth > 1 {
			target := entities[current.fqn]
			for _, trigger := range target.Triggers {
				ret.Diagnostics.Append(diagnostic.New(diagnostic.DeepTriggerDropped, entity.FQN, entity.Location,
					"trigger %v of %v is %v hops away, only one hop is propagated", trigger.Descriptor(), target.FQN, current.depth))
			}
		}
		for _, edge := range graph.Edges(current.fqn) {
			if visited[edge.Target] {
				continue
			}
			visited[edge.Target] = true
			queue = append(queue, hop{fqn: edge.Target, depth: current.depth + 1})
		}
	}
}

func validTrigger(entity *Entity, trigger *declaration.Trigger) bool {
	if trigger.KindOrDefault() == declaration.CommandTrigger {
		return entity.HasCommand(trigger.Member)
	}
	return entity.HasMember(trigger.Member)
}

func addTrigger(ret *EntityResult, trigger *declaration.Trigger, prefix ...string) {
	aPath := observed.NewPath(append(prefix, trigger.Member)...)
	if trigger.ModeOrDefault() == declaration.Hook {
		ret.Hooks.Add(aPath)
		return
	}
	ret.Triggered.Add(aPath)
}

package resolver

import (
	"strings"

	"github.com/viant/reactor/diagnostic"
	"github.com/viant/reactor/observed"
)

// Binding represents a UI consumer of exactly one entity
type Binding struct {
	Name     string   `yaml:"name"`
	Entity   string   `yaml:"entity"`
	Accesses []string `yaml:"accesses,omitempty"`
	Location string   `yaml:"location,omitempty"`
}

// BindingResult represents resolved binding filter
type BindingResult struct {
	Name     string        `yaml:"name"`
	Entity   string        `yaml:"entity"`
	Filter   *observed.Set `yaml:"filter"`
	Dropped  []string      `yaml:"dropped,omitempty"`
	Location string        `yaml:"location,omitempty"`
}

// analyzeBinding maps raw accesses to entity filter paths by longest matching prefix
func analyzeBinding(binding *Binding, entity *EntityResult, surface map[string]bool) (*BindingResult, *diagnostic.Diagnostic) {
	ret := &BindingResult{Name: binding.Name, Entity: entity.FQN, Filter: observed.NewSet(), Location: binding.Location}
	for _, access := range binding.Accesses {
		matched, ok := match(normalize(access), entity.Filter, surface)
		if !ok {
			ret.Dropped = append(ret.Dropped, access)
			continue
		}
		ret.Filter.Add(matched)
	}
	ret.Filter.Merge(entity.Triggered)
	if ret.Filter.Len() == 0 {
		return ret, diagnostic.New(diagnostic.NonReactiveBinding, entity.FQN, binding.Location,
			"binding %v never refreshes: no access resolves to an observed path", binding.Name)
	}
	return ret, nil
}

// match returns the most specific filter path for access segments; a trailing
// command surface operation is stripped once when the remaining chain is observed
func match(segments []string, filter *observed.Set, surface map[string]bool) (observed.Path, bool) {
	count := len(segments)
	if count == 0 {
		return "", false
	}
	if count > 1 && surface[segments[count-1]] {
		if stripped := observed.NewPath(segments[:count-1]...); filter.Has(stripped) {
			return stripped, true
		}
	}
	for i := count; i > 0; i-- {
		if candidate := observed.NewPath(segments[:i]...); filter.Has(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// normalize splits raw access into segments, Root prefix, indexers and call
// arguments are removed
func normalize(access string) []string {
	access = strings.TrimSpace(access)
	access = strings.TrimPrefix(access, observed.Root+".")
	var ret []string
	for _, segment := range strings.Split(stripGroups(access), ".") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		ret = append(ret, segment)
	}
	return ret
}

// stripGroups removes bracketed indexers and call argument lists, nested groups included
func stripGroups(access string) string {
	builder := strings.Builder{}
	depth := 0
	for _, r := range access {
		switch r {
		case '[', '(':
			depth++
			continue
		case ']', ')':
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth == 0 {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

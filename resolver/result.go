package resolver

import (
	"github.com/viant/reactor/diagnostic"
)

// Result represents output of a resolution pass
type Result struct {
	RootModule  string                    `yaml:"rootModule,omitempty"`
	Entities    map[string]*EntityResult  `yaml:"entities"`
	Bindings    map[string]*BindingResult `yaml:"bindings,omitempty"`
	Diagnostics diagnostic.Diagnostics    `yaml:"diagnostics,omitempty"`
	Stats       Stats                     `yaml:"-"`
}

// Stats represents pass counters
type Stats struct {
	Entities    int
	Computed    int
	Cached      int
	Invalidated int
}

// Filter returns sorted entity filter, nil if entity was not resolved
func (r *Result) Filter(fqn string) []string {
	entity, ok := r.Entities[fqn]
	if !ok {
		return nil
	}
	return entity.Filter.Strings()
}

// BindingFilter returns sorted binding filter, nil if binding was not resolved
func (r *Result) BindingFilter(name string) []string {
	binding, ok := r.Bindings[name]
	if !ok {
		return nil
	}
	return binding.Filter.Strings()
}

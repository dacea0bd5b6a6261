package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/viant/reactor/cache"
	"github.com/viant/reactor/declaration"
	"github.com/viant/reactor/diagnostic"
	"github.com/viant/reactor/observed"
)

// Service resolves observed paths of reactive entities and bindings
type Service struct {
	config *Config
	cache  *cache.Cache[*EntityResult]
	logger *slog.Logger
}

// New creates a resolver service
func New(opts ...Option) *Service {
	ret := &Service{config: DefaultConfig()}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	if ret.cache == nil && ret.config.CacheSize > 0 {
		if aCache, err := cache.New[*EntityResult](ret.config.CacheSize); err == nil {
			ret.cache = aCache
		}
	}
	return ret
}

// Resolve runs a resolution pass over an immutable index snapshot; diagnostics
// are returned as data, only a missing marker library fails the pass
func (s *Service) Resolve(ctx context.Context, index declaration.Index, bindings []*Binding) (*Result, error) {
	if index == nil {
		return nil, ErrMarkerNotFound
	}
	if _, ok := index.Lookup(index.Root()); !ok {
		return nil, fmt.Errorf("%w: %v", ErrMarkerNotFound, index.Marker())
	}
	result := &Result{
		RootModule: s.config.RootModule,
		Entities:   map[string]*EntityResult{},
		Bindings:   map[string]*BindingResult{},
	}

	entities, scanned := s.scan(index)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	graph, diagnostics := buildGraph(index, entities)
	diagnostics = append(scanned, diagnostics...)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.computeFilters(entities, graph, result); err != nil {
		return nil, err
	}
	for _, fqn := range sortedEntityNames(entities) {
		diagnostics = append(diagnostics, result.Entities[fqn].Diagnostics...)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	diagnostics = append(diagnostics, s.analyzeBindings(index, entities, bindings, result)...)
	diagnostics = append(diagnostics, unusedReferences(entities, graph, result)...)
	diagnostics.Sort()
	result.Diagnostics = diagnostics
	result.Stats.Entities = len(entities)
	s.logger.Debug("resolved",
		"rootModule", s.config.RootModule,
		"entities", result.Stats.Entities,
		"computed", result.Stats.Computed,
		"cached", result.Stats.Cached,
		"invalidated", result.Stats.Invalidated,
		"bindings", len(result.Bindings),
		"diagnostics", len(result.Diagnostics))
	return result, nil
}

// scan flattens entities of local modules and of external modules depending on the marker library
func (s *Service) scan(index declaration.Index) (map[string]*Entity, diagnostic.Diagnostics) {
	ret := map[string]*Entity{}
	var diagnostics diagnostic.Diagnostics
	for _, module := range index.Modules() {
		if module.Origin != declaration.Local && !index.DependsOnMarker(module.ID) {
			s.logger.Debug("skipped module", "module", module.ID)
			continue
		}
		for _, fqn := range index.Entities(module.ID) {
			if entity, ok := flatten(index, fqn); ok {
				ret[fqn] = entity
				continue
			}
			if err := ambiguousBase(index, fqn); err != nil {
				decl, _ := index.Lookup(fqn)
				diagnostics.Append(asDiagnostic(err, fqn, decl.Location))
			}
		}
	}
	return ret, diagnostics
}

func (s *Service) computeFilters(entities map[string]*Entity, graph *Graph, result *Result) error {
	keys := make(map[string]uint64, len(entities))
	for fqn, entity := range entities {
		key, err := descriptor(entity, graph).Key()
		if err != nil {
			return fmt.Errorf("failed to compute key of %v: %w", fqn, err)
		}
		keys[fqn] = key
	}
	if s.cache != nil {
		result.Stats.Invalidated = len(s.cache.Sync(keys))
	}
	for _, fqn := range sortedEntityNames(entities) {
		key := keys[fqn]
		if s.cache != nil {
			if cached, ok := s.cache.Get(fqn, key); ok && cached.locations == locations(entities[fqn], graph) {
				result.Entities[fqn] = cached
				result.Stats.Cached++
				continue
			}
		}
		entityResult := computeFilter(entities[fqn], graph, entities)
		result.Entities[fqn] = entityResult
		result.Stats.Computed++
		if s.cache != nil {
			s.cache.Put(fqn, key, graph.Reachable(fqn), entityResult)
		}
	}
	return nil
}

func (s *Service) analyzeBindings(index declaration.Index, entities map[string]*Entity, bindings []*Binding, result *Result) diagnostic.Diagnostics {
	surface := make(map[string]bool, len(s.config.CommandSurface))
	for _, operation := range s.config.CommandSurface {
		surface[operation] = true
	}
	var diagnostics diagnostic.Diagnostics
	for i, binding := range bindings {
		if binding == nil {
			continue
		}
		name := binding.Name
		if name == "" {
			name = binding.Entity + "#" + strconv.Itoa(i)
		}
		fqn, err := resolveTarget(index, entities, binding.Entity)
		if err != nil {
			switch actual := err.(type) {
			case *UnresolvedReferenceError:
				actual.From, actual.Alias = name, name
			case *AmbiguousReferenceError:
				actual.From, actual.Alias = name, name
			}
			diagnostics.Append(asDiagnostic(err, binding.Entity, binding.Location))
			continue
		}
		bindingResult, warning := analyzeBinding(binding, result.Entities[fqn], surface)
		bindingResult.Name = name
		result.Bindings[name] = bindingResult
		diagnostics.Append(warning)
	}
	return diagnostics
}

// unusedReferences reports references of local entities with no usage evidence
// whose target paths never reach a binding filter
func unusedReferences(entities map[string]*Entity, graph *Graph, result *Result) diagnostic.Diagnostics {
	var diagnostics diagnostic.Diagnostics
	for _, fqn := range sortedEntityNames(entities) {
		entity := entities[fqn]
		if entity.Origin != declaration.Local {
			continue
		}
		for _, edge := range graph.Edges(fqn) {
			if !entity.declares(edge.Reference) || len(edge.Reference.Usage) > 0 {
				continue
			}
			if boundUnder(entities, fqn, observed.NewPath(edge.Alias), result) {
				continue
			}
			diagnostics.Append(diagnostic.New(diagnostic.UnusedReference, fqn, locationOf(edge.Reference.Location, entity.Location),
				"reference %v to %v is never used", edge.Alias, edge.Target))
		}
	}
	return diagnostics
}

// boundUnder returns true if a binding of the entity, or of an entity derived from it, observes prefix
func boundUnder(entities map[string]*Entity, fqn string, prefix observed.Path, result *Result) bool {
	for _, binding := range result.Bindings {
		bound, ok := entities[binding.Entity]
		if !ok || !bound.derives(fqn) {
			continue
		}
		if binding.Filter.HasUnder(prefix) {
			return true
		}
	}
	return false
}

package resolver

import (
	"sort"

	"github.com/viant/reactor/declaration"
	"github.com/viant/reactor/diagnostic"
)

// Edge represents a resolved reference between two entities
type Edge struct {
	From      string
	Alias     string
	Target    string
	Reference *declaration.Reference
}

// Graph represents the acyclic reference graph of a pass, edges closing a cycle
// and edges with unresolved targets are not part of it
type Graph struct {
	edges     map[string][]*Edge
	referrers map[string][]string
}

// Edges returns effective edges of an entity sorted by alias
func (g *Graph) Edges(fqn string) []*Edge {
	return g.edges[fqn]
}

// Referrers returns sorted entities with an effective edge to fqn
func (g *Graph) Referrers(fqn string) []string {
	return g.referrers[fqn]
}

// Reachable returns sorted entities reachable from fqn, fqn itself excluded
func (g *Graph) Reachable(fqn string) []string {
	visited := map[string]bool{fqn: true}
	queue := []string{fqn}
	var ret []string
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, edge := range g.edges[current] {
			if visited[edge.Target] {
				continue
			}
			visited[edge.Target] = true
			ret = append(ret, edge.Target)
			queue = append(queue, edge.Target)
		}
	}
	sort.Strings(ret)
	return ret
}

// buildGraph resolves reference targets of every entity and removes back edges,
// failures are local to a single reference
func buildGraph(index declaration.Index, entities map[string]*Entity) (*Graph, diagnostic.Diagnostics) {
	var diagnostics diagnostic.Diagnostics
	candidates := map[string][]*Edge{}
	names := sortedEntityNames(entities)
	for _, fqn := range names {
		entity := entities[fqn]
		for _, reference := range entity.References {
			target, err := resolveTarget(index, entities, reference.Target)
			if err != nil {
				switch actual := err.(type) {
				case *UnresolvedReferenceError:
					actual.From, actual.Alias = fqn, reference.AliasName()
				case *AmbiguousReferenceError:
					actual.From, actual.Alias = fqn, reference.AliasName()
				}
				diagnostics.Append(asDiagnostic(err, fqn, locationOf(reference.Location, entity.Location)))
				continue
			}
			candidates[fqn] = append(candidates[fqn], &Edge{From: fqn, Alias: reference.AliasName(), Target: target, Reference: reference})
		}
	}

	detector := &cycleDetector{edges: candidates, state: map[string]int{}, suppressed: map[*Edge]bool{}}
	for _, fqn := range names {
		if detector.state[fqn] == unvisited {
			detector.visit(fqn)
		}
	}
	for _, err := range detector.errors {
		from := entities[err.From]
		diagnostics.Append(asDiagnostic(err, err.From, from.Location))
	}

	graph := &Graph{edges: map[string][]*Edge{}, referrers: map[string][]string{}}
	for _, fqn := range names {
		for _, edge := range candidates[fqn] {
			if detector.suppressed[edge] {
				continue
			}
			graph.edges[fqn] = append(graph.edges[fqn], edge)
			graph.referrers[edge.Target] = append(graph.referrers[edge.Target], fqn)
		}
	}
	for target, referrers := range graph.referrers {
		graph.referrers[target] = dedupeSorted(referrers)
	}
	return graph, diagnostics
}

// resolveTarget finds target by fully qualified name first, then by short name;
// the target has to be a reactive entity
func resolveTarget(index declaration.Index, entities map[string]*Entity, name string) (string, error) {
	name = declaration.TypeName(name)
	fqn := name
	if _, ok := index.Lookup(name); !ok {
		candidates := index.Find(declaration.ShortName(name))
		switch len(candidates) {
		case 0:
			return "", &UnresolvedReferenceError{Target: name}
		case 1:
			fqn = candidates[0]
		default:
			return "", &AmbiguousReferenceError{Target: name, Candidates: candidates}
		}
	}
	if _, ok := entities[fqn]; !ok {
		return "", &UnresolvedReferenceError{Target: fqn, Reason: "not a reactive entity"}
	}
	return fqn, nil
}

const (
	unvisited = iota
	visiting
	done
)

type cycleDetector struct {
	edges      map[string][]*Edge
	state      map[string]int
	stack      []string
	suppressed map[*Edge]bool
	errors     []*CircularReferenceError
}

func (d *cycleDetector) visit(fqn string) {
	d.state[fqn] = visiting
	d.stack = append(d.stack, fqn)
	for _, edge := range d.edges[fqn] {
		switch d.state[edge.Target] {
		case unvisited:
			d.visit(edge.Target)
		case visiting:
			d.suppressed[edge] = true
			d.errors = append(d.errors, &CircularReferenceError{From: fqn, Alias: edge.Alias, Cycle: d.cycle(edge.Target)})
		}
	}
	d.stack = d.stack[:len(d.stack)-1]
	d.state[fqn] = done
}

func (d *cycleDetector) cycle(target string) []string {
	for i := len(d.stack) - 1; i >= 0; i-- {
		if d.stack[i] == target {
			return append([]string(nil), d.stack[i:]...)
		}
	}
	return []string{target}
}

func sortedEntityNames(entities map[string]*Entity) []string {
	ret := make([]string, 0, len(entities))
	for fqn := range entities {
		ret = append(ret, fqn)
	}
	sort.Strings(ret)
	return ret
}

func dedupeSorted(values []string) []string {
	sort.Strings(values)
	ret := make([]string, 0, len(values))
	for i, value := range values {
		if i > 0 && values[i-1] == value {
			continue
		}
		ret = append(ret, value)
	}
	return ret
}

func locationOf(candidates ...string) string {
	for _, candidate := range candidates {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

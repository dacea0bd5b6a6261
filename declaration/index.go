package declaration

import (
	"fmt"
	"sort"

	"github.com/viant/reactor/reactive"
)

// Index is a read-only oracle over local and external declarations
type Index interface {
	// Lookup returns a declaration by fully qualified name
	Lookup(fqn string) (*Declaration, bool)

	// Find returns sorted fully qualified names matching a short type name
	Find(shortName string) []string

	// DependsOnMarker returns true if the module transitively requires the marker library
	DependsOnMarker(module string) bool

	// Entities returns sorted fully qualified names declared in the module
	Entities(module string) []string

	// Modules returns modules sorted by ID
	Modules() []*Module

	// Marker returns the marker library module path
	Marker() string

	// Root returns the root sentinel fully qualified name
	Root() string
}

// Catalog is an immutable in-memory index snapshot
type Catalog struct {
	marker       string
	root         string
	modules      []*Module
	moduleMap    map[string]*Module
	declarations map[string]*Declaration
	shortNames   map[string][]string
	dependsOn    map[string]bool
}

// NewCatalog creates a catalog snapshot, external declarations are capability
// restricted: usage evidence is never visible across module boundaries
func NewCatalog(marker string, modules ...*Module) (*Catalog, error) {
	ret := &Catalog{
		marker:       marker,
		root:         RootFQN(marker),
		moduleMap:    make(map[string]*Module, len(modules)),
		declarations: make(map[string]*Declaration),
		shortNames:   make(map[string][]string),
		dependsOn:    make(map[string]bool),
	}
	var err error
	for _, module := range modules {
		if module == nil {
			continue
		}
		if _, ok := ret.moduleMap[module.ID]; ok {
			err = fmt.Errorf("duplicate module: %v", module.ID)
			continue
		}
		snapshot := &Module{ID: module.ID, Origin: module.Origin, Requires: append([]string(nil), module.Requires...)}
		for _, decl := range module.Declarations {
			if _, ok := ret.declarations[decl.FQN]; ok {
				err = fmt.Errorf("duplicate declaration %v in module %v", decl.FQN, module.ID)
				continue
			}
			aCopy := decl.Clone()
			if aCopy.Module == "" {
				aCopy.Module = module.ID
			}
			if aCopy.Origin == "" {
				aCopy.Origin = module.Origin
			}
			if aCopy.Origin == External {
				for _, reference := range aCopy.References {
					reference.Usage = nil
				}
			}
			aCopy.Init()
			snapshot.AddDeclaration(aCopy)
			ret.declarations[aCopy.FQN] = aCopy
			short := ShortName(aCopy.FQN)
			ret.shortNames[short] = append(ret.shortNames[short], aCopy.FQN)
		}
		ret.moduleMap[snapshot.ID] = snapshot
		ret.modules = append(ret.modules, snapshot)
	}
	sort.Slice(ret.modules, func(i, j int) bool { return ret.modules[i].ID < ret.modules[j].ID })
	for _, names := range ret.shortNames {
		sort.Strings(names)
	}
	for _, module := range ret.modules {
		ret.dependsOn[module.ID] = ret.reachesMarker(module.ID)
	}
	return ret, err
}

// RootFQN returns root sentinel fully qualified name for a marker module
func RootFQN(marker string) string {
	return FQN(marker+"/reactive", reactive.EntityName)
}

// CommandFQN returns command type fully qualified name for a marker module
func CommandFQN(marker string) string {
	return FQN(marker+"/reactive", reactive.CommandName)
}

func (c *Catalog) Lookup(fqn string) (*Declaration, bool) {
	decl, ok := c.declarations[fqn]
	return decl, ok
}

func (c *Catalog) Find(shortName string) []string {
	return append([]string(nil), c.shortNames[shortName]...)
}

func (c *Catalog) DependsOnMarker(module string) bool {
	return c.dependsOn[module]
}

func (c *Catalog) Entities(module string) []string {
	aModule, ok := c.moduleMap[module]
	if !ok {
		return nil
	}
	var ret = make([]string, 0, len(aModule.Declarations))
	for _, decl := range aModule.Declarations {
		ret = append(ret, decl.FQN)
	}
	sort.Strings(ret)
	return ret
}

func (c *Catalog) Modules() []*Module {
	return append([]*Module(nil), c.modules...)
}

func (c *Catalog) Marker() string {
	return c.marker
}

func (c *Catalog) Root() string {
	return c.root
}

// Module returns module by ID
func (c *Catalog) Module(id string) (*Module, bool) {
	module, ok := c.moduleMap[id]
	return module, ok
}

// reachesMarker walks module requirements breadth first, unknown modules are leaves
func (c *Catalog) reachesMarker(id string) bool {
	if id == c.marker {
		return true
	}
	visited := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		module, ok := c.moduleMap[current]
		if !ok {
			continue
		}
		for _, required := range module.Requires {
			if required == c.marker {
				return true
			}
			if visited[required] {
				continue
			}
			visited[required] = true
			queue = append(queue, required)
		}
	}
	return false
}

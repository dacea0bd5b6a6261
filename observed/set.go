package observed

import (
	"sort"

	"gopkg.in/yaml.v3"
)

// Set represents a filter set, a set of observed paths
type Set struct {
	paths map[Path]bool
}

// NewSet creates a set with supplied paths
func NewSet(paths ...Path) *Set {
	ret := &Set{paths: make(map[Path]bool, len(paths))}
	for _, p := range paths {
		ret.Add(p)
	}
	return ret
}

// Add adds a path, returns false if path was already present
func (s *Set) Add(p Path) bool {
	if s.paths == nil {
		s.paths = map[Path]bool{}
	}
	if s.paths[p] {
		return false
	}
	s.paths[p] = true
	return true
}

// Has returns true if path is in the set
func (s *Set) Has(p Path) bool {
	if s == nil {
		return false
	}
	return s.paths[p]
}

// Merge adds all paths from other sets
func (s *Set) Merge(sets ...*Set) {
	for _, other := range sets {
		if other == nil {
			continue
		}
		for p := range other.paths {
			s.Add(p)
		}
	}
}

// HasUnder returns true if any path equals prefix or is nested under it
func (s *Set) HasUnder(prefix Path) bool {
	if s == nil {
		return false
	}
	for p := range s.paths {
		if p.Under(prefix) {
			return true
		}
	}
	return false
}

// Len returns set size
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.paths)
}

// Sorted returns paths in stable sorted order
func (s *Set) Sorted() []Path {
	if s == nil || len(s.paths) == 0 {
		return []Path{}
	}
	ret := make([]Path, 0, len(s.paths))
	for p := range s.paths {
		ret = append(ret, p)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

// Strings returns sorted paths as strings
func (s *Set) Strings() []string {
	sorted := s.Sorted()
	ret := make([]string, len(sorted))
	for i, p := range sorted {
		ret[i] = string(p)
	}
	return ret
}

// Clone returns a copy of the set
func (s *Set) Clone() *Set {
	ret := NewSet()
	ret.Merge(s)
	return ret
}

// Equal returns true if both sets hold the same paths
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	if s.Len() == 0 {
		return true
	}
	for p := range s.paths {
		if !other.Has(p) {
			return false
		}
	}
	return true
}

// MarshalYAML encodes set as a sorted sequence
func (s *Set) MarshalYAML() (interface{}, error) {
	return s.Strings(), nil
}

// UnmarshalYAML decodes set from a sequence
func (s *Set) UnmarshalYAML(node *yaml.Node) error {
	var paths []string
	if err := node.Decode(&paths); err != nil {
		return err
	}
	for _, p := range paths {
		s.Add(Path(p))
	}
	return nil
}

package info

import "github.com/viant/reactor/declaration"

// File represents an inspected source file
type File struct {
	Name         string                     // File name
	Path         string                     // File URL
	Package      string                     // Package name
	ImportPath   string                     // Import path
	Imports      []Import                   // Imports used in this file
	Declarations []*declaration.Declaration // Struct declarations
	Usage        map[string]Usage           // Receiver type name to selector usage
}

// Usage maps a receiver field name to member names selected through it
type Usage map[string][]string

// Add adds a selected member
func (u Usage) Add(field, member string) {
	for _, candidate := range u[field] {
		if candidate == member {
			return
		}
	}
	u[field] = append(u[field], member)
}

// Import represents an imported package
type Import struct {
	Name string // Local name (may be empty for default)
	Path string // Import path
}

// Package represents a Go package with its files
type Package struct {
	Name       string
	ImportPath string
	FileSet    []*File // Files that are part of this package
}

// AddFile adds a file to the package
func (p *Package) AddFile(file *File) {
	p.FileSet = append(p.FileSet, file)
	if p.Name == "" {
		p.Name = file.Package
	}
}

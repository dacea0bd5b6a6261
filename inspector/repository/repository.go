package repository

import "github.com/viant/reactor/inspector/info"

// Repository represents a detected repository holding a project
type Repository struct {
	Kind    string
	RootURL string
	Origin  string
	Project *info.Project
}

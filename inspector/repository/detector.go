package repository

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/reactor/inspector/info"
	"golang.org/x/mod/modfile"
)

// GoModFile is the go module project marker
const GoModFile = "go.mod"

const maxDepth = 64

// ErrProjectNotFound is returned when no go.mod exists at or above a location
var ErrProjectNotFound = errors.New("project not found")

// Detector identifies project root folders and provides project-related information
type Detector struct {
	fs afs.Service
}

// New creates a new project detector instance
func New(fs afs.Service) *Detector {
	if fs == nil {
		fs = afs.New()
	}
	return &Detector{fs: fs}
}

// DetectProject searches location and its parents for go.mod and returns project info
func (d *Detector) DetectProject(ctx context.Context, location string) (*info.Project, error) {
	dir := folder(location)
	for i := 0; i < maxDepth; i++ {
		goModURL := url.Join(dir, GoModFile)
		if ok, _ := d.fs.Exists(ctx, goModURL); ok {
			data, err := d.fs.DownloadWithURL(ctx, goModURL)
			if err != nil {
				return nil, fmt.Errorf("failed to download %v: %w", goModURL, err)
			}
			project, err := ParseModule(goModURL, data)
			if err != nil {
				return nil, err
			}
			project.RootURL = dir
			return project, nil
		}
		parent, ok := parentOf(dir)
		if !ok {
			break
		}
		dir = parent
	}
	return nil, fmt.Errorf("%w: %v", ErrProjectNotFound, location)
}

// DetectRepository identifies the repository containing the project at location
func (d *Detector) DetectRepository(ctx context.Context, location string) (*Repository, error) {
	project, err := d.DetectProject(ctx, location)
	if err != nil {
		return nil, err
	}
	repo := &Repository{Kind: "go", RootURL: project.RootURL, Project: project}
	dir := project.RootURL
	for i := 0; i < maxDepth; i++ {
		configURL := url.Join(dir, ".git", "config")
		if ok, _ := d.fs.Exists(ctx, configURL); ok {
			repo.Kind = "git"
			repo.RootURL = dir
			if data, err := d.fs.DownloadWithURL(ctx, configURL); err == nil {
				repo.Origin = gitOrigin(data)
				project.Origin = repo.Origin
			}
			break
		}
		parent, ok := parentOf(dir)
		if !ok {
			break
		}
		dir = parent
	}
	return repo, nil
}

// ParseModule parses go.mod content
func ParseModule(URL string, data []byte) (*info.Project, error) {
	mod, err := modfile.Parse(URL, data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", URL, err)
	}
	if mod.Module == nil {
		return nil, fmt.Errorf("invalid %v: missing module directive", URL)
	}
	project := &info.Project{Module: mod.Module.Mod.Path}
	project.Name = project.Module[strings.LastIndex(project.Module, "/")+1:]
	if mod.Go != nil {
		project.GoVersion = mod.Go.Version
	}
	for _, require := range mod.Require {
		project.Requires = append(project.Requires, require.Mod.Path)
	}
	return project, nil
}

// gitOrigin extracts the origin URL from git config
func gitOrigin(data []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			foundRemote = strings.Contains(line, "[remote \"origin\"]")
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url") {
			if _, value, ok := strings.Cut(line, "="); ok {
				return strings.TrimSpace(value)
			}
		}
	}
	return ""
}

func folder(location string) string {
	location = strings.TrimRight(location, "/")
	if strings.HasSuffix(location, "/"+GoModFile) || strings.HasSuffix(location, ".go") {
		parent, _ := url.Split(location, file.Scheme)
		return parent
	}
	return location
}

func parentOf(dir string) (string, bool) {
	parent, _ := url.Split(dir, file.Scheme)
	parent = strings.TrimRight(parent, "/")
	if parent == "" || len(parent) >= len(dir) || strings.HasSuffix(parent, ":/") || strings.HasSuffix(parent, ":") {
		return "", false
	}
	return parent, true
}

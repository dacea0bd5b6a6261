package inspector

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/reactor/declaration"
	"github.com/viant/reactor/inspector/golang"
	"github.com/viant/reactor/inspector/info"
	"github.com/viant/reactor/inspector/manifest"
	"github.com/viant/reactor/inspector/repository"
)

// Inspector builds a declaration catalog for a Go project and the manifests it ships with
type Inspector struct {
	fs        afs.Service
	config    *info.Config
	logger    *slog.Logger
	detector  *repository.Detector
	golang    *golang.Inspector
	manifests *manifest.Loader
}

// Project represents an inspected project
type Project struct {
	Info     *info.Project
	Packages []*info.Package
	Catalog  *declaration.Catalog
	Warnings []string
}

// Option represents an inspector option
type Option func(i *Inspector)

// WithFs sets file system service
func WithFs(fs afs.Service) Option {
	return func(i *Inspector) {
		i.fs = fs
	}
}

// WithConfig sets inspection config
func WithConfig(config *info.Config) Option {
	return func(i *Inspector) {
		i.config = config
	}
}

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) {
		i.logger = logger
	}
}

// New creates a project inspector
func New(opts ...Option) *Inspector {
	ret := &Inspector{}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	if ret.config == nil {
		ret.config = info.DefaultConfig()
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	ret.detector = repository.New(ret.fs)
	ret.golang = golang.New(ret.config)
	ret.manifests = manifest.NewLoader(ret.fs, ret.config)
	return ret
}

// InspectProject detects the project at location, inspects its packages and loads its manifests
func (i *Inspector) InspectProject(ctx context.Context, location string) (*Project, error) {
	repo, err := i.detector.DetectRepository(ctx, location)
	if err != nil {
		return nil, err
	}
	project := repo.Project
	sources, err := i.sources(ctx, project.RootURL)
	if err != nil {
		return nil, err
	}
	ret := &Project{Info: project}
	local := declaration.NewModule(project.Module, declaration.Local, project.Requires...)
	for _, dir := range sortedDirs(sources) {
		importPath := project.Module
		if dir != "" {
			importPath = path.Join(project.Module, dir)
		}
		pkg, err := i.golang.InspectPackage(ctx, importPath, sources[dir])
		if err != nil {
			return nil, fmt.Errorf("failed to inspect package %v: %w", importPath, err)
		}
		ret.Packages = append(ret.Packages, pkg)
		for _, decl := range golang.Declarations(pkg) {
			local.AddDeclaration(decl)
		}
	}
	modules := []*declaration.Module{local}
	if folder := i.config.ManifestFolder; folder != "" {
		external, err := i.manifests.LoadAll(ctx, url.Join(project.RootURL, folder))
		if err != nil {
			return nil, err
		}
		modules = append(modules, external...)
	}
	if marker := i.config.Marker; project.Module != marker && requiresMarker(marker, modules) {
		modules = append(modules, declaration.MarkerModule(marker))
	}
	// duplicates, e.g. one type declared per build constraint, keep the first declaration
	if ret.Catalog, err = declaration.NewCatalog(i.config.Marker, modules...); err != nil {
		i.logger.Warn("duplicate declarations", "module", project.Module, "error", err.Error())
		ret.Warnings = append(ret.Warnings, err.Error())
	}
	i.logger.Debug("inspected project",
		"module", project.Module,
		"packages", len(ret.Packages),
		"declarations", len(local.Declarations),
		"modules", len(modules))
	return ret, nil
}

// sources downloads Go sources under rootURL grouped by folder relative to rootURL
func (i *Inspector) sources(ctx context.Context, rootURL string) (map[string]map[string][]byte, error) {
	files := map[string][]string{}
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			if i.config.SkipFolder(info.Name()) {
				return false, nil
			}
			return i.config.RecursivePackages, nil
		}
		if !i.match(info.Name()) {
			return true, nil
		}
		files[parent] = append(files[parent], info.Name())
		return true, nil
	}
	if err := i.fs.Walk(ctx, rootURL, visitor); err != nil {
		return nil, fmt.Errorf("failed to walk %v: %w", rootURL, err)
	}
	ret := make(map[string]map[string][]byte, len(files))
	for dir, names := range files {
		folderURL := rootURL
		if dir != "" {
			folderURL = url.Join(rootURL, dir)
		}
		ret[dir] = make(map[string][]byte, len(names))
		for _, name := range names {
			data, err := i.fs.DownloadWithURL(ctx, url.Join(folderURL, name))
			if err != nil {
				return nil, fmt.Errorf("failed to download %v: %w", name, err)
			}
			ret[dir][name] = data
		}
	}
	return ret, nil
}

func (i *Inspector) match(name string) bool {
	if !strings.HasSuffix(name, ".go") {
		return false
	}
	return !(i.config.SkipTests && strings.HasSuffix(name, "_test.go"))
}

func requiresMarker(marker string, modules []*declaration.Module) bool {
	for _, module := range modules {
		if module.ID == marker {
			return false
		}
	}
	for _, module := range modules {
		if module.Requirement(marker) {
			return true
		}
	}
	return false
}

func sortedDirs(sources map[string]map[string][]byte) []string {
	ret := make([]string, 0, len(sources))
	for dir := range sources {
		ret = append(ret, dir)
	}
	sort.Strings(ret)
	return ret
}

package manifest

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/reactor/declaration"
	"github.com/viant/reactor/inspector/info"
	"github.com/viant/reactor/resolver"
	"gopkg.in/yaml.v3"
)

// Loader loads manifests and binding lists with afs
type Loader struct {
	fs     afs.Service
	config *info.Config
}

// NewLoader creates a loader, config manifest suffixes select files when walking a folder
func NewLoader(fs afs.Service, config *info.Config) *Loader {
	if fs == nil {
		fs = afs.New()
	}
	if config == nil || len(config.ManifestSuffixes) == 0 {
		config = info.DefaultConfig()
	}
	return &Loader{fs: fs, config: config}
}

// Load loads a single manifest as an external module
func (l *Loader) Load(ctx context.Context, URL string) (*declaration.Module, error) {
	data, err := l.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download manifest %v: %w", URL, err)
	}
	aManifest, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", URL, err)
	}
	return aManifest.DeclarationModule(URL), nil
}

// LoadAll loads every manifest under baseURL sorted by URL, a missing folder yields no modules
func (l *Loader) LoadAll(ctx context.Context, baseURL string) ([]*declaration.Module, error) {
	if ok, _ := l.fs.Exists(ctx, baseURL); !ok {
		return nil, nil
	}
	var URLs []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, fileInfo os.FileInfo, reader io.Reader) (bool, error) {
		if fileInfo.IsDir() {
			return true, nil
		}
		if l.config.IsManifest(fileInfo.Name()) {
			folderURL := baseURL
			if parent != "" {
				folderURL = url.Join(baseURL, parent)
			}
			URLs = append(URLs, url.Join(folderURL, fileInfo.Name()))
		}
		return true, nil
	}
	if err := l.fs.Walk(ctx, baseURL, visitor); err != nil {
		return nil, fmt.Errorf("failed to walk manifests %v: %w", baseURL, err)
	}
	sort.Strings(URLs)
	var ret []*declaration.Module
	for _, URL := range URLs {
		module, err := l.Load(ctx, URL)
		if err != nil {
			return nil, err
		}
		ret = append(ret, module)
	}
	return ret, nil
}

// LoadBindings loads a binding list
func (l *Loader) LoadBindings(ctx context.Context, URL string) ([]*resolver.Binding, error) {
	data, err := l.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download bindings %v: %w", URL, err)
	}
	var bindings []*resolver.Binding
	if err = yaml.Unmarshal(data, &bindings); err != nil {
		return nil, fmt.Errorf("failed to decode bindings %v: %w", URL, err)
	}
	return bindings, nil
}

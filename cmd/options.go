package cmd

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/reactor/inspector/info"
	"github.com/viant/reactor/resolver"
	"gopkg.in/yaml.v3"
)

// Options represents command line options
type Options struct {
	Projects  []string `short:"p" long:"project" description:"project location, repeat for several projects"`
	Bindings  []string `short:"b" long:"bindings" description:"bindings YAML location, bindings apply to every project"`
	ConfigURL string   `short:"c" long:"config" description:"config YAML location"`
	Output    string   `short:"o" long:"output" description:"result YAML destination, stdout if empty"`
	LogLevel  string   `short:"l" long:"log" description:"log level" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"warn"`
	Strict    bool     `short:"s" long:"strict" description:"fail when any error diagnostic is reported"`
	Version   bool     `short:"v" long:"version" description:"print version"`
}

// Config represents YAML config file
type Config struct {
	Inspector *info.Config     `yaml:"inspector,omitempty"`
	Resolver  *resolver.Config `yaml:"resolver,omitempty"`
}

// Validate checks required options
func (o *Options) Validate() error {
	if len(o.Projects) == 0 {
		return fmt.Errorf("at least one project location is required")
	}
	return nil
}

// LoadConfig loads config file or returns defaults when no config location was set
func (o *Options) LoadConfig(ctx context.Context, fs afs.Service) (*Config, error) {
	ret := &Config{}
	if o.ConfigURL != "" {
		data, err := fs.DownloadWithURL(ctx, o.ConfigURL)
		if err != nil {
			return nil, fmt.Errorf("failed to download config %v: %w", o.ConfigURL, err)
		}
		if err = yaml.Unmarshal(data, ret); err != nil {
			return nil, fmt.Errorf("failed to decode config %v: %w", o.ConfigURL, err)
		}
	}
	if ret.Inspector == nil {
		ret.Inspector = info.DefaultConfig()
	}
	if ret.Inspector.Marker == "" {
		ret.Inspector.Marker = info.DefaultConfig().Marker
	}
	if len(ret.Inspector.ManifestSuffixes) == 0 {
		ret.Inspector.ManifestSuffixes = info.DefaultConfig().ManifestSuffixes
	}
	if ret.Resolver == nil {
		ret.Resolver = resolver.DefaultConfig()
	}
	return ret, nil
}

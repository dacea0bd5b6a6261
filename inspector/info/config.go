package info

import (
	"strings"

	"github.com/viant/reactor/reactive"
)

// Config represents inspection configuration
type Config struct {
	// Marker is the marker library module path
	Marker            string   `yaml:"marker,omitempty"`
	SkipTests         bool     `yaml:"skipTests,omitempty"`
	RecursivePackages bool     `yaml:"recursivePackages,omitempty"`
	ManifestFolder    string   `yaml:"manifestFolder,omitempty"`
	ManifestSuffixes  []string `yaml:"manifestSuffixes,omitempty"`
	SkipFolders       []string `yaml:"skipFolders,omitempty"`
}

// SkipFolder returns true if folder should not be inspected
func (c *Config) SkipFolder(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return true
	}
	for _, candidate := range c.SkipFolders {
		if candidate == name {
			return true
		}
	}
	return false
}

// IsManifest returns true if file name has manifest suffix
func (c *Config) IsManifest(name string) bool {
	for _, suffix := range c.ManifestSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func DefaultConfig() *Config {
	return &Config{
		Marker:            reactive.ModulePath,
		SkipTests:         true,
		RecursivePackages: true,
		ManifestFolder:    ".reactor",
		ManifestSuffixes:  []string{".yaml", ".yml"},
		SkipFolders:       []string{"testdata", "vendor", "node_modules"},
	}
}

package resolver

import (
	"log/slog"

	"github.com/viant/reactor/cache"
	"github.com/viant/reactor/reactive"
)

// Config represents resolver configuration
type Config struct {
	// RootModule is used for diagnostic display only
	RootModule string `yaml:"rootModule,omitempty"`
	// CommandSurface lists command object operations stripped from binding accesses
	CommandSurface []string `yaml:"commandSurface,omitempty"`
	// CacheSize enables incremental cache when positive
	CacheSize int `yaml:"cacheSize,omitempty"`
}

// DefaultConfig returns default resolver configuration
func DefaultConfig() *Config {
	return &Config{
		CommandSurface: append([]string(nil), reactive.CommandSurface...),
	}
}

type Option func(*Service)

// WithConfig sets configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config == nil {
			return
		}
		s.config = config
		if len(s.config.CommandSurface) == 0 {
			s.config.CommandSurface = append([]string(nil), reactive.CommandSurface...)
		}
	}
}

// WithRootModule sets root module identifier used in diagnostics display
func WithRootModule(module string) Option {
	return func(s *Service) {
		s.config.RootModule = module
	}
}

// WithCommandSurface overrides command surface operations
func WithCommandSurface(operations ...string) Option {
	return func(s *Service) {
		s.config.CommandSurface = operations
	}
}

// WithCache sets incremental cache, a cache may be shared by concurrent passes
func WithCache(aCache *cache.Cache[*EntityResult]) Option {
	return func(s *Service) {
		s.cache = aCache
	}
}

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

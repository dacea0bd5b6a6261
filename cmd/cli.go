package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/reactor/inspector"
	"github.com/viant/reactor/inspector/manifest"
	"github.com/viant/reactor/logging"
	"github.com/viant/reactor/resolver"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// ErrDiagnostics is returned in strict mode when a pass reports error diagnostics
var ErrDiagnostics = errors.New("error diagnostics reported")

// Report represents resolution output of a single project
type Report struct {
	Project string           `yaml:"project"`
	Module  string           `yaml:"module"`
	Result  *resolver.Result `yaml:"result"`
}

// Run parses arguments, resolves every project and writes YAML reports
func Run(ctx context.Context, version string, args []string, stdout io.Writer) error {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		if isHelp(err) {
			return nil
		}
		return err
	}
	if options.Version {
		fmt.Fprintf(stdout, "Reactor: version: %v\n", version)
		return nil
	}
	if err := options.Validate(); err != nil {
		return err
	}
	fs := afs.New()
	logger := logging.New(options.LogLevel, os.Stderr)
	config, err := options.LoadConfig(ctx, fs)
	if err != nil {
		return err
	}
	bindings, err := loadBindings(ctx, fs, options.Bindings)
	if err != nil {
		return err
	}
	reports, err := Resolve(ctx, fs, logger, config, options.Projects, bindings)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(reports)
	if err != nil {
		return fmt.Errorf("failed to encode reports: %w", err)
	}
	if options.Output != "" {
		if err = fs.Upload(ctx, options.Output, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("failed to upload %v: %w", options.Output, err)
		}
	} else if _, err = stdout.Write(data); err != nil {
		return err
	}
	if options.Strict {
		for _, report := range reports {
			if report.Result.Diagnostics.HasErrors() {
				return fmt.Errorf("%w: %v", ErrDiagnostics, report.Project)
			}
		}
	}
	return nil
}

// Resolve inspects and resolves projects in parallel, each project gets its own resolver
func Resolve(ctx context.Context, fs afs.Service, logger *slog.Logger, config *Config, projects []string, bindings []*resolver.Binding) ([]*Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	reports := make([]*Report, len(projects))
	group, ctx := errgroup.WithContext(ctx)
	for i, location := range projects {
		i, location := i, location
		group.Go(func() error {
			project, err := inspector.New(
				inspector.WithFs(fs),
				inspector.WithConfig(config.Inspector),
				inspector.WithLogger(logger),
			).InspectProject(ctx, location)
			if err != nil {
				return fmt.Errorf("failed to inspect %v: %w", location, err)
			}
			resolverConfig := *config.Resolver
			resolverConfig.RootModule = project.Info.Module
			service := resolver.New(resolver.WithConfig(&resolverConfig), resolver.WithLogger(logger))
			result, err := service.Resolve(ctx, project.Catalog, bindings)
			if err != nil {
				return fmt.Errorf("failed to resolve %v: %w", location, err)
			}
			reports[i] = &Report{Project: location, Module: project.Info.Module, Result: result}
			logger.Info("resolved project",
				"project", location,
				"module", project.Info.Module,
				"entities", len(result.Entities),
				"bindings", len(result.Bindings),
				"diagnostics", len(result.Diagnostics))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func loadBindings(ctx context.Context, fs afs.Service, URLs []string) ([]*resolver.Binding, error) {
	loader := manifest.NewLoader(fs, nil)
	var ret []*resolver.Binding
	for _, URL := range URLs {
		bindings, err := loader.LoadBindings(ctx, URL)
		if err != nil {
			return nil, err
		}
		ret = append(ret, bindings...)
	}
	return ret, nil
}

func isHelp(err error) bool {
	var flagsErr *flags.Error
	return errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp
}

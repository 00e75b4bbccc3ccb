package analyzer

import (
	"fmt"

	"github.com/Zachacious/go-rpcdoc/internal/config"
	"github.com/Zachacious/go-rpcdoc/internal/introspect"
	"github.com/Zachacious/go-rpcdoc/internal/logger"
	"github.com/Zachacious/go-rpcdoc/internal/model"
	"golang.org/x/tools/go/packages"
)

// Analyzer holds the state for a single analysis run.
type Analyzer struct {
	projectPath string
	cfg         *config.Config
	universe    *introspect.Universe
	matcher     resolverMatcher
	log         logger.Logger
}

// LoadUniverse type-checks the packages matching patterns, relative to dir.
func LoadUniverse(dir string, patterns ...string) (*introspect.Universe, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	cfg := &packages.Config{
		Dir: dir,
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
			packages.NeedImports | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("packages contain errors")
	}
	return introspect.FromPackages(pkgs), nil
}

// New loads the configured packages of the project at projectPath.
func New(projectPath string, cfg *config.Config, log logger.Logger) (*Analyzer, error) {
	if log == nil {
		log = logger.NewDefaultLogger()
	}
	matcher, err := newResolverMatcher(cfg.Resolvers)
	if err != nil {
		return nil, err
	}
	universe, err := LoadUniverse(projectPath, cfg.Packages...)
	if err != nil {
		return nil, err
	}
	return &Analyzer{
		projectPath: projectPath,
		cfg:         cfg,
		universe:    universe,
		matcher:     matcher,
		log:         log,
	}, nil
}

// Resolvers lists the Go classes selected by the resolver patterns.
func (a *Analyzer) Resolvers() []introspect.Class {
	var classes []introspect.Class
	for _, named := range a.universe.Structs() {
		if !a.matcher.Match(named) {
			continue
		}
		if class, ok := a.universe.ClassOf(named); ok {
			classes = append(classes, class)
		}
	}
	return classes
}

// Analyze documents every discovered resolver and every manifest resolver.
func (a *Analyzer) Analyze() (model.Schema, error) {
	opts := []Option{
		WithMaxDepth(a.cfg.MaxDepth),
		WithAccessorPrefix(a.cfg.AccessorPrefix),
		WithUniverse(a.universe),
		WithLogger(a.log),
	}
	if a.cfg.MethodNames == config.MethodNamesLowerFirst {
		opts = append(opts, WithMethodNamer(LowerFirst))
	}
	b := NewBuilder(opts...)

	resolvers := a.Resolvers()
	a.log.Info("discovered resolvers", "count", len(resolvers))
	for _, class := range resolvers {
		if _, err := b.Add(class); err != nil {
			return nil, err
		}
	}

	for _, path := range a.cfg.ManifestPaths(a.projectPath) {
		manifest, err := introspect.LoadManifest(path)
		if err != nil {
			return nil, err
		}
		classes := manifest.Resolvers()
		a.log.Info("loaded manifest", "path", path, "resolvers", len(classes))
		for _, class := range classes {
			if _, err := b.Add(class); err != nil {
				return nil, err
			}
		}
	}

	return b.GetAll(), nil
}

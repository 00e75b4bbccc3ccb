package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

const (
	// YAMLFile is looked up first in the project directory.
	YAMLFile = ".rpcdoc.yaml"
	// TOMLFile is read when no YAMLFile exists.
	TOMLFile = ".rpcdoc.toml"
)

// Operation key styles for MethodNames.
const (
	MethodNamesGo         = "go"
	MethodNamesLowerFirst = "lowerFirst"
)

// Config controls discovery, schema extraction and rendering.
type Config struct {
	// Info titles the OpenAPI rendering.
	Info *openapi3.Info `yaml:"info" toml:"info" jsonschema:"description=Title and version of the OpenAPI rendering"`
	// Resolvers are glob patterns selecting resolver types. A pattern
	// without a dot matches the type name, otherwise "importpath.Type".
	Resolvers []string `yaml:"resolvers" toml:"resolvers" jsonschema:"description=Glob patterns selecting resolver types"`
	// Packages are the go/packages patterns to load.
	Packages []string `yaml:"packages" toml:"packages" jsonschema:"description=Package patterns to load"`
	// Manifests are YAML class manifests, relative to the project path.
	Manifests      []string `yaml:"manifests" toml:"manifests" jsonschema:"description=YAML class manifests to document"`
	MaxDepth       int      `yaml:"maxDepth" toml:"maxDepth" jsonschema:"minimum=0,description=Nested object expansion bound"`
	AccessorPrefix string   `yaml:"accessorPrefix" toml:"accessorPrefix" jsonschema:"description=Accessor prefix for non-public properties"`
	MethodNames    string   `yaml:"methodNames" toml:"methodNames" jsonschema:"enum=go,enum=lowerFirst,description=Operation key style"`
	Format         string   `yaml:"format" toml:"format" jsonschema:"enum=yaml,enum=json,enum=openapi,enum=markdown"`
	LogLevel       string   `yaml:"logLevel" toml:"logLevel" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,enum=none"`
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		Info:           &openapi3.Info{Title: "JSON-RPC API", Version: "1.0.0"},
		Resolvers:      []string{"*Resolver", "*Service"},
		Packages:       []string{"./..."},
		MaxDepth:       2,
		AccessorPrefix: "Get",
		MethodNames:    MethodNamesGo,
		Format:         "yaml",
		LogLevel:       "info",
	}
}

// Load overlays the project's .rpcdoc.yaml, or else its .rpcdoc.toml, on
// the defaults. A missing file is not an error.
func Load(projectPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(projectPath, YAMLFile))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", YAMLFile, err)
		}
	case errors.Is(err, os.ErrNotExist):
		data, err = os.ReadFile(filepath.Join(projectPath, TOMLFile))
		if err == nil {
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", TOMLFile, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the resolver patterns and numeric bounds.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("maxDepth must not be negative, got %d", c.MaxDepth)
	}
	switch c.MethodNames {
	case "", MethodNamesGo, MethodNamesLowerFirst:
	default:
		return fmt.Errorf("unknown methodNames style %q", c.MethodNames)
	}
	for _, pattern := range c.Resolvers {
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid resolver pattern %q: %w", pattern, err)
		}
	}
	return nil
}

// ManifestPaths resolves the manifest entries against the project path.
func (c *Config) ManifestPaths(projectPath string) []string {
	paths := make([]string, 0, len(c.Manifests))
	for _, m := range c.Manifests {
		if !filepath.IsAbs(m) {
			m = filepath.Join(projectPath, m)
		}
		paths = append(paths, m)
	}
	return paths
}

// JSONSchema describes the configuration file format.
func JSONSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		FieldNameTag:   "yaml",
		ExpandedStruct: true,
	}
	return r.Reflect(&Config{})
}

// Package rpcdoc builds JSON-RPC documentation schemas from resolver
// values:
//
//	schema, err := rpcdoc.Document(&UserService{}, &OrderService{})
//
// Every public method of a resolver becomes an operation under a namespace
// named after the resolver's type. Values are inspected through reflect
// unless a Universe loaded from source is supplied with WithUniverse, in
// which case parameter names and doc comment annotations are available too.
package rpcdoc

import (
	"io"
	"iter"
	"slices"

	"github.com/Zachacious/go-rpcdoc/internal/analyzer"
	"github.com/Zachacious/go-rpcdoc/internal/assembler"
	"github.com/Zachacious/go-rpcdoc/internal/config"
	"github.com/Zachacious/go-rpcdoc/internal/introspect"
	"github.com/Zachacious/go-rpcdoc/internal/model"
)

type (
	Builder  = analyzer.Builder
	Option   = analyzer.Option
	Schema   = model.Schema
	Universe = introspect.Universe
)

// ErrInvalidArgument is matched by the error returned for a resolver that
// is not an object.
var ErrInvalidArgument = analyzer.ErrInvalidArgument

var (
	WithMaxDepth       = analyzer.WithMaxDepth
	WithAccessorPrefix = analyzer.WithAccessorPrefix
	WithLogger         = analyzer.WithLogger
	WithUniverse       = analyzer.WithUniverse
	WithMethodNamer    = analyzer.WithMethodNamer
)

// LowerFirst is a method namer producing lowerCamel operation keys.
func LowerFirst(name string) string { return analyzer.LowerFirst(name) }

// New returns an empty schema builder.
func New(opts ...Option) *Builder {
	return analyzer.NewBuilder(opts...)
}

// Load type-checks the packages matching patterns in dir so that Add can
// read parameter names and doc comments.
func Load(dir string, patterns ...string) (*Universe, error) {
	return analyzer.LoadUniverse(dir, patterns...)
}

// Collect adds every resolver yielded by the sequence and returns the
// resulting schema. It stops at the first resolver that is not an object.
func Collect(resolvers iter.Seq[any], opts ...Option) (Schema, error) {
	b := New(opts...)
	for r := range resolvers {
		if _, err := b.Add(r); err != nil {
			return nil, err
		}
	}
	return b.GetAll(), nil
}

// Document is Collect over a list of resolvers with default options.
func Document(resolvers ...any) (Schema, error) {
	return Collect(slices.Values(resolvers))
}

// Write renders a schema as yaml, json, openapi or markdown.
func Write(w io.Writer, schema Schema, format string) error {
	return assembler.Render(w, schema, format, config.Default())
}

package analyzer

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/Zachacious/go-rpcdoc/internal/introspect"
	"github.com/Zachacious/go-rpcdoc/internal/logger"
)

const testPkgPath = "example.com/svc"

// loadSource type-checks a single file and wraps it in a universe.
func loadSource(t *testing.T, src string) *introspect.Universe {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "svc.go", src, parser.ParseComments)
	if err != nil {
		t.Fatal(err)
	}
	cfg := &types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkg, err := cfg.Check(testPkgPath, fset, []*ast.File{file}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return introspect.NewUniverse(introspect.Package{Types: pkg, Syntax: []*ast.File{file}})
}

func mustClass(t *testing.T, u *introspect.Universe, name string) introspect.Class {
	t.Helper()
	class, ok := u.Lookup(testPkgPath, name)
	if !ok {
		t.Fatalf("class %s not found", name)
	}
	return class
}

func newTestBuilder(opts ...Option) *Builder {
	return NewBuilder(append([]Option{WithLogger(logger.Nop())}, opts...)...)
}

func mustAdd(t *testing.T, b *Builder, resolver any) {
	t.Helper()
	if _, err := b.Add(resolver); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
}

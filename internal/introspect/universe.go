package introspect

import (
	"go/ast"
	"go/token"
	"go/types"
	"sort"

	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/types/typeutil"
)

// Package is a type-checked package together with its syntax, which is
// where doc comments live.
type Package struct {
	Types  *types.Package
	Syntax []*ast.File
}

// Universe indexes the loaded packages. Only struct types declared in one
// of them are inspectable classes; everything else is reported by name.
type Universe struct {
	pkgs   []Package
	loaded map[*types.Package]bool
	docs   map[token.Pos]string
	msets  typeutil.MethodSetCache
}

// NewUniverse builds a universe over already type-checked packages.
func NewUniverse(pkgs ...Package) *Universe {
	u := &Universe{
		loaded: make(map[*types.Package]bool),
		docs:   make(map[token.Pos]string),
	}
	for _, p := range pkgs {
		if p.Types == nil || u.loaded[p.Types] {
			continue
		}
		u.pkgs = append(u.pkgs, p)
		u.loaded[p.Types] = true
	}
	return u
}

// FromPackages builds a universe from the result of packages.Load.
func FromPackages(pkgs []*packages.Package) *Universe {
	var list []Package
	for _, pkg := range pkgs {
		list = append(list, Package{Types: pkg.Types, Syntax: pkg.Syntax})
	}
	return NewUniverse(list...)
}

// Structs returns every named struct type declared at package scope in the
// loaded packages, ordered by package path and then by name.
func (u *Universe) Structs() []*types.Named {
	var out []*types.Named
	for _, p := range u.sortedPackages() {
		scope := p.Types.Scope()
		for _, name := range scope.Names() {
			tn, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || tn.IsAlias() {
				continue
			}
			named, ok := tn.Type().(*types.Named)
			if !ok {
				continue
			}
			if _, isStruct := named.Underlying().(*types.Struct); isStruct {
				out = append(out, named)
			}
		}
	}
	return out
}

func (u *Universe) sortedPackages() []Package {
	pkgs := append([]Package(nil), u.pkgs...)
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Types.Path() < pkgs[j].Types.Path() })
	return pkgs
}

// Lookup finds the class declared as pkgPath.name.
func (u *Universe) Lookup(pkgPath, name string) (Class, bool) {
	for _, p := range u.pkgs {
		if p.Types.Path() != pkgPath {
			continue
		}
		tn, ok := p.Types.Scope().Lookup(name).(*types.TypeName)
		if !ok {
			return nil, false
		}
		named, ok := tn.Type().(*types.Named)
		if !ok {
			return nil, false
		}
		return u.ClassOf(named)
	}
	return nil, false
}

// ClassOf returns the class for a named struct type declared in a loaded package.
func (u *Universe) ClassOf(named *types.Named) (Class, bool) {
	if named == nil || !u.loaded[named.Obj().Pkg()] {
		return nil, false
	}
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, false
	}
	return &goClass{u: u, named: named, st: st}, true
}

// qualifier renders loaded packages unqualified and everything else by
// package name, e.g. "User" and "time.Time".
func (u *Universe) qualifier(p *types.Package) string {
	if u.loaded[p] {
		return ""
	}
	return p.Name()
}

// doc returns the doc comment attached to the declaration at pos.
func (u *Universe) doc(pos token.Pos) string {
	if !pos.IsValid() {
		return ""
	}
	if text, ok := u.docs[pos]; ok {
		return text
	}
	text := u.findDoc(pos)
	u.docs[pos] = text
	return text
}

func (u *Universe) findDoc(pos token.Pos) string {
	for _, p := range u.pkgs {
		for _, file := range p.Syntax {
			if file == nil || pos < file.Pos() || pos > file.End() {
				continue
			}
			path, _ := astutil.PathEnclosingInterval(file, pos, pos)
			for _, node := range path {
				switch n := node.(type) {
				case *ast.Field:
					if n.Doc != nil {
						return n.Doc.Text()
					}
					return n.Comment.Text()
				case *ast.FuncDecl:
					return n.Doc.Text()
				case *ast.TypeSpec:
					if n.Doc != nil {
						return n.Doc.Text()
					}
				case *ast.GenDecl:
					return n.Doc.Text()
				}
			}
			return ""
		}
	}
	return ""
}

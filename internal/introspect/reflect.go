package introspect

import (
	"context"
	"fmt"
	"go/build"
	"reflect"
	"strings"
	"sync"
)

var (
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
)

// FromType returns a runtime class for a named struct type, or for a
// pointer to one. Runtime classes carry no doc comments and name their
// parameters arg0, arg1, ...
func FromType(t reflect.Type) (Class, bool) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct || t.Name() == "" {
		return nil, false
	}
	return &runtimeClass{t: t}, true
}

// runtimeClass names types of its own package unqualified, like the
// go/types source does for loaded packages.
type runtimeClass struct {
	t reflect.Type
}

func (c *runtimeClass) pkg() string { return c.t.PkgPath() }

func (c *runtimeClass) Name() string { return c.t.Name() }

func (c *runtimeClass) Methods() []Method {
	pt := reflect.PointerTo(c.t)
	methods := make([]Method, 0, pt.NumMethod())
	for i := 0; i < pt.NumMethod(); i++ {
		methods = append(methods, &runtimeMethod{m: pt.Method(i), pkg: c.pkg()})
	}
	return methods
}

func (c *runtimeClass) Method(name string) (Method, bool) {
	m, ok := reflect.PointerTo(c.t).MethodByName(name)
	if !ok {
		return nil, false
	}
	return &runtimeMethod{m: m, pkg: c.pkg()}, true
}

func (c *runtimeClass) Properties() []Property {
	var props []Property
	for i := 0; i < c.t.NumField(); i++ {
		f := c.t.Field(i)
		key := f.Name
		if tag := f.Tag.Get("json"); tag != "" {
			name, _, _ := strings.Cut(tag, ",")
			if name == "-" {
				continue
			}
			if name != "" {
				key = name
			}
		}
		props = append(props, &runtimeProperty{f: f, key: key, pkg: c.pkg()})
	}
	return props
}

type runtimeMethod struct {
	m   reflect.Method
	pkg string
}

func (m *runtimeMethod) Name() string        { return m.m.Name }
func (m *runtimeMethod) IsConstructor() bool { return false }
func (m *runtimeMethod) Doc() string         { return "" }

// Params skips the receiver, which reflect reports as the first input.
func (m *runtimeMethod) Params() []Parameter {
	ft := m.m.Type
	var params []Parameter
	for i := 1; i < ft.NumIn(); i++ {
		in := ft.In(i)
		if in == contextType {
			continue
		}
		params = append(params, &runtimeParam{
			name:     fmt.Sprintf("arg%d", i-1),
			t:        in,
			pkg:      m.pkg,
			variadic: ft.IsVariadic() && i == ft.NumIn()-1,
		})
	}
	return params
}

func (m *runtimeMethod) Result() (Type, bool) {
	ft := m.m.Type
	n := ft.NumOut()
	if n > 0 && ft.Out(n-1) == errorType {
		n--
	}
	if n == 0 {
		return nil, false
	}
	return runtimeType{t: ft.Out(0), pkg: m.pkg}, true
}

type runtimeParam struct {
	name     string
	t        reflect.Type
	pkg      string
	variadic bool
}

func (p *runtimeParam) Name() string { return p.name }

func (p *runtimeParam) Type() (Type, bool) {
	if isEmptyInterfaceType(p.t) {
		return nil, false
	}
	return runtimeType{t: p.t, pkg: p.pkg}, true
}

func (p *runtimeParam) IsArray() bool        { return isArrayKind(p.t) }
func (p *runtimeParam) IsOptional() bool     { return p.variadic }
func (p *runtimeParam) AllowsNull() bool     { return isNilableKind(p.t) }
func (p *runtimeParam) Default() (any, bool) { return nil, false }

type runtimeProperty struct {
	f   reflect.StructField
	key string
	pkg string
}

func (p *runtimeProperty) Name() string   { return p.f.Name }
func (p *runtimeProperty) Key() string    { return p.key }
func (p *runtimeProperty) IsPublic() bool { return p.f.IsExported() }
func (p *runtimeProperty) Doc() string    { return "" }

func (p *runtimeProperty) Type() (Type, bool) {
	if isEmptyInterfaceType(p.f.Type) {
		return nil, false
	}
	return runtimeType{t: p.f.Type, pkg: p.pkg}, true
}

type runtimeType struct {
	t   reflect.Type
	pkg string
}

func (t runtimeType) Name() string     { return typeName(derefType(t.t), t.pkg) }
func (t runtimeType) IsArray() bool    { return isArrayKind(derefType(t.t)) }
func (t runtimeType) AllowsNull() bool { return isNilableKind(t.t) }

// Class treats named structs outside the standard library as inspectable.
func (t runtimeType) Class() (Class, bool) {
	rt := derefType(t.t)
	if isStdPackage(rt.PkgPath()) {
		return nil, false
	}
	return FromType(rt)
}

func derefType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

func isArrayKind(t reflect.Type) bool {
	return (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) && isEmptyInterfaceType(t.Elem())
}

func isNilableKind(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

func isEmptyInterfaceType(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.NumMethod() == 0
}

// typeName renders t with named types of pkg unqualified, e.g. "[]User"
// instead of "[]svc.User".
func typeName(t reflect.Type, pkg string) string {
	if t.Name() != "" {
		if pkg != "" && t.PkgPath() == pkg {
			return t.Name()
		}
		return t.String()
	}
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + typeName(t.Elem(), pkg)
	case reflect.Slice:
		return "[]" + typeName(t.Elem(), pkg)
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), typeName(t.Elem(), pkg))
	case reflect.Map:
		return "map[" + typeName(t.Key(), pkg) + "]" + typeName(t.Elem(), pkg)
	}
	return t.String()
}

var stdPackages sync.Map

// isStdPackage reports whether path is a standard library package, i.e.
// one found under GOROOT. Predeclared types have an empty path.
func isStdPackage(path string) bool {
	if path == "" {
		return true
	}
	if std, ok := stdPackages.Load(path); ok {
		return std.(bool)
	}
	std := lookupStdPackage(path)
	stdPackages.Store(path, std)
	return std
}

func lookupStdPackage(path string) bool {
	if path == "main" {
		return false
	}
	if build.Default.GOROOT != "" {
		pkg, err := build.Default.Import(path, "", build.FindOnly)
		return err == nil && pkg.Goroot
	}
	// no GOROOT to consult: fall back to the go command's naming rule
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}

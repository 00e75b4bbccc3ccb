package introspect

import (
	"fmt"
	"go/types"
	"reflect"
	"strings"

	"golang.org/x/tools/go/types/typeutil"
)

type goClass struct {
	u     *Universe
	named *types.Named
	st    *types.Struct
}

func (c *goClass) Name() string { return c.named.Obj().Name() }

// Methods collects the exported methods of *T, promoted ones included.
func (c *goClass) Methods() []Method {
	var methods []Method
	for _, sel := range typeutil.IntuitiveMethodSet(c.named, &c.u.msets) {
		fn, ok := sel.Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}
		methods = append(methods, &goMethod{u: c.u, fn: fn})
	}
	return methods
}

func (c *goClass) Method(name string) (Method, bool) {
	obj, _, _ := types.LookupFieldOrMethod(types.NewPointer(c.named), true, c.named.Obj().Pkg(), name)
	fn, ok := obj.(*types.Func)
	if !ok || !fn.Exported() {
		return nil, false
	}
	return &goMethod{u: c.u, fn: fn}, true
}

func (c *goClass) Properties() []Property {
	var props []Property
	for i := 0; i < c.st.NumFields(); i++ {
		field := c.st.Field(i)
		key := field.Name()
		if tag := reflect.StructTag(c.st.Tag(i)).Get("json"); tag != "" {
			name, _, _ := strings.Cut(tag, ",")
			if name == "-" {
				continue
			}
			if name != "" {
				key = name
			}
		}
		props = append(props, &goProperty{u: c.u, v: field, key: key})
	}
	return props
}

type goMethod struct {
	u  *Universe
	fn *types.Func
}

func (m *goMethod) Name() string        { return m.fn.Name() }
func (m *goMethod) IsConstructor() bool { return false }
func (m *goMethod) Doc() string         { return m.u.doc(m.fn.Pos()) }

func (m *goMethod) Params() []Parameter {
	sig := m.fn.Type().(*types.Signature)
	params := sig.Params()
	var out []Parameter
	for i := 0; i < params.Len(); i++ {
		p := params.At(i)
		if isContext(p.Type()) {
			continue
		}
		name := p.Name()
		if name == "" || name == "_" {
			name = fmt.Sprintf("arg%d", i)
		}
		out = append(out, &goParam{
			u:        m.u,
			name:     name,
			t:        p.Type(),
			variadic: sig.Variadic() && i == params.Len()-1,
		})
	}
	return out
}

// Result reports the first result once a trailing error is dropped.
func (m *goMethod) Result() (Type, bool) {
	results := m.fn.Type().(*types.Signature).Results()
	n := results.Len()
	if n > 0 && isError(results.At(n-1).Type()) {
		n--
	}
	if n == 0 {
		return nil, false
	}
	return &goType{u: m.u, t: results.At(0).Type()}, true
}

type goParam struct {
	u        *Universe
	name     string
	t        types.Type
	variadic bool
}

func (p *goParam) Name() string { return p.name }

func (p *goParam) Type() (Type, bool) {
	if isEmptyInterface(p.t) {
		return nil, false
	}
	return &goType{u: p.u, t: p.t}, true
}

func (p *goParam) IsArray() bool        { return isArray(p.t) }
func (p *goParam) IsOptional() bool     { return p.variadic }
func (p *goParam) AllowsNull() bool     { return isNilable(p.t) }
func (p *goParam) Default() (any, bool) { return nil, false }

type goProperty struct {
	u   *Universe
	v   *types.Var
	key string
}

func (p *goProperty) Name() string   { return p.v.Name() }
func (p *goProperty) Key() string    { return p.key }
func (p *goProperty) IsPublic() bool { return p.v.Exported() }
func (p *goProperty) Doc() string    { return p.u.doc(p.v.Pos()) }

func (p *goProperty) Type() (Type, bool) {
	if isEmptyInterface(p.v.Type()) {
		return nil, false
	}
	return &goType{u: p.u, t: p.v.Type()}, true
}

type goType struct {
	u *Universe
	t types.Type
}

func (t *goType) Name() string {
	return types.TypeString(derefPointer(t.t), t.u.qualifier)
}

func (t *goType) IsArray() bool    { return isArray(derefPointer(t.t)) }
func (t *goType) AllowsNull() bool { return isNilable(t.t) }

func (t *goType) Class() (Class, bool) {
	named, ok := derefPointer(t.t).(*types.Named)
	if !ok {
		return nil, false
	}
	return t.u.ClassOf(named)
}

func derefPointer(t types.Type) types.Type {
	t = types.Unalias(t)
	if ptr, ok := t.(*types.Pointer); ok {
		return types.Unalias(ptr.Elem())
	}
	return t
}

// isArray reports collections whose element type is unknown ([]any,
// [N]interface{}), the Go counterpart of an untyped array.
func isArray(t types.Type) bool {
	switch u := t.Underlying().(type) {
	case *types.Slice:
		return isEmptyInterface(u.Elem())
	case *types.Array:
		return isEmptyInterface(u.Elem())
	}
	return false
}

func isNilable(t types.Type) bool {
	switch t.Underlying().(type) {
	case *types.Pointer, *types.Slice, *types.Map, *types.Interface, *types.Signature, *types.Chan:
		return true
	}
	return false
}

func isEmptyInterface(t types.Type) bool {
	iface, ok := t.Underlying().(*types.Interface)
	return ok && iface.Empty()
}

func isError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}

func isContext(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == "context" && obj.Name() == "Context"
}

package introspect

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest describes classes in a language-neutral YAML document, for
// services whose source is not Go:
//
//	classes:
//	  - name: UserService
//	    resolver: true
//	    methods:
//	      - name: find
//	        params:
//	          - {name: id, type: int}
//	        returns: {type: "?string"}
//
// A type written as "?T" is nullable, "array" is an untyped array and an
// omitted type is unknown. Type names matching another class of the same
// manifest are inspectable.
type Manifest struct {
	Classes []ClassSpec `yaml:"classes"`

	index map[string]*ClassSpec
}

type ClassSpec struct {
	Name       string         `yaml:"name"`
	Resolver   bool           `yaml:"resolver"`
	Methods    []MethodSpec   `yaml:"methods"`
	Properties []PropertySpec `yaml:"properties"`
}

type MethodSpec struct {
	Name        string      `yaml:"name"`
	Doc         string      `yaml:"doc"`
	Visibility  string      `yaml:"visibility"`
	Constructor bool        `yaml:"constructor"`
	Params      []ParamSpec `yaml:"params"`
	Returns     *TypeSpec   `yaml:"returns"`
}

type ParamSpec struct {
	Name     string    `yaml:"name"`
	Type     string    `yaml:"type"`
	Nullable bool      `yaml:"nullable"`
	Optional bool      `yaml:"optional"`
	Default  yaml.Node `yaml:"default"`
}

type PropertySpec struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Nullable   bool   `yaml:"nullable"`
	Visibility string `yaml:"visibility"`
	Doc        string `yaml:"doc"`
}

type TypeSpec struct {
	Type     string `yaml:"type"`
	Nullable bool   `yaml:"nullable"`
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes a manifest document.
func ParseManifest(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, err
	}
	m.index = make(map[string]*ClassSpec, len(m.Classes))
	for i := range m.Classes {
		c := &m.Classes[i]
		if c.Name == "" {
			return nil, fmt.Errorf("class #%d has no name", i)
		}
		if _, dup := m.index[c.Name]; dup {
			return nil, fmt.Errorf("duplicate class %q", c.Name)
		}
		m.index[c.Name] = c
	}
	return m, nil
}

// Class looks up a class by name.
func (m *Manifest) Class(name string) (Class, bool) {
	c, ok := m.index[name]
	if !ok {
		return nil, false
	}
	return &manifestClass{m: m, spec: c}, true
}

// Resolvers returns the classes flagged as resolvers, in document order.
func (m *Manifest) Resolvers() []Class {
	var out []Class
	for i := range m.Classes {
		if m.Classes[i].Resolver {
			out = append(out, &manifestClass{m: m, spec: &m.Classes[i]})
		}
	}
	return out
}

type manifestClass struct {
	m    *Manifest
	spec *ClassSpec
}

func (c *manifestClass) Name() string { return c.spec.Name }

func (c *manifestClass) Methods() []Method {
	var out []Method
	for i := range c.spec.Methods {
		if isPublic(c.spec.Methods[i].Visibility) {
			out = append(out, &manifestMethod{m: c.m, spec: &c.spec.Methods[i]})
		}
	}
	return out
}

func (c *manifestClass) Method(name string) (Method, bool) {
	for i := range c.spec.Methods {
		spec := &c.spec.Methods[i]
		if spec.Name == name && isPublic(spec.Visibility) {
			return &manifestMethod{m: c.m, spec: spec}, true
		}
	}
	return nil, false
}

func (c *manifestClass) Properties() []Property {
	out := make([]Property, 0, len(c.spec.Properties))
	for i := range c.spec.Properties {
		out = append(out, &manifestProperty{m: c.m, spec: &c.spec.Properties[i]})
	}
	return out
}

type manifestMethod struct {
	m    *Manifest
	spec *MethodSpec
}

func (m *manifestMethod) Name() string { return m.spec.Name }
func (m *manifestMethod) Doc() string  { return m.spec.Doc }

func (m *manifestMethod) IsConstructor() bool {
	return m.spec.Constructor || m.spec.Name == "__construct"
}

func (m *manifestMethod) Params() []Parameter {
	out := make([]Parameter, 0, len(m.spec.Params))
	for i := range m.spec.Params {
		out = append(out, &manifestParam{m: m.m, spec: &m.spec.Params[i]})
	}
	return out
}

func (m *manifestMethod) Result() (Type, bool) {
	if m.spec.Returns == nil || m.spec.Returns.Type == "" {
		return nil, false
	}
	return newManifestType(m.m, m.spec.Returns.Type, m.spec.Returns.Nullable), true
}

type manifestParam struct {
	m    *Manifest
	spec *ParamSpec
}

func (p *manifestParam) Name() string { return p.spec.Name }

func (p *manifestParam) Type() (Type, bool) {
	if p.spec.Type == "" {
		return nil, false
	}
	return newManifestType(p.m, p.spec.Type, p.spec.Nullable), true
}

func (p *manifestParam) IsArray() bool {
	return p.spec.Type != "" && newManifestType(p.m, p.spec.Type, false).IsArray()
}

func (p *manifestParam) IsOptional() bool { return p.spec.Optional || p.hasDefault() }

func (p *manifestParam) hasDefault() bool { return p.spec.Default.Kind != 0 }

// AllowsNull also holds for parameters whose default value is null.
func (p *manifestParam) AllowsNull() bool {
	if p.spec.Type == "" {
		return true
	}
	if newManifestType(p.m, p.spec.Type, p.spec.Nullable).AllowsNull() {
		return true
	}
	return p.hasDefault() && p.spec.Default.ShortTag() == "!!null"
}

func (p *manifestParam) Default() (any, bool) {
	if !p.hasDefault() {
		return nil, false
	}
	var v any
	if err := p.spec.Default.Decode(&v); err != nil {
		return p.spec.Default.Value, true
	}
	return v, true
}

type manifestProperty struct {
	m    *Manifest
	spec *PropertySpec
}

func (p *manifestProperty) Name() string   { return p.spec.Name }
func (p *manifestProperty) Key() string    { return p.spec.Name }
func (p *manifestProperty) IsPublic() bool { return isPublic(p.spec.Visibility) }
func (p *manifestProperty) Doc() string    { return p.spec.Doc }

func (p *manifestProperty) Type() (Type, bool) {
	if p.spec.Type == "" {
		return nil, false
	}
	return newManifestType(p.m, p.spec.Type, p.spec.Nullable), true
}

type manifestType struct {
	m        *Manifest
	name     string
	nullable bool
}

func newManifestType(m *Manifest, spec string, nullable bool) manifestType {
	if name, ok := strings.CutPrefix(spec, "?"); ok {
		return manifestType{m: m, name: name, nullable: true}
	}
	return manifestType{m: m, name: spec, nullable: nullable}
}

func (t manifestType) Name() string { return t.name }

func (t manifestType) AllowsNull() bool {
	return t.nullable || t.name == "null" || t.name == "mixed"
}

// IsArray reports the untyped "array" marker; "T[]" is a typed name.
func (t manifestType) IsArray() bool {
	return t.name == "array"
}

func (t manifestType) Class() (Class, bool) {
	return t.m.Class(t.name)
}

func isPublic(visibility string) bool {
	return visibility == "" || visibility == "public"
}

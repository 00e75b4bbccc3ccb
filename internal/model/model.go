package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Schema is the top-level container for the entire discovered API:
// namespace -> operation name -> operation.
type Schema map[string]Namespace

// Namespace holds the operations of one resolver.
type Namespace map[string]*Operation

// Operation represents a single callable method of a resolver.
type Operation struct {
	// Params are the method parameters in declaration order.
	Params *OrderedMap[ParameterDescriptor] `json:"params" yaml:"params"`
	// Result describes the return value.
	Result ReturnDescriptor `json:"result" yaml:"result"`
	// Summary is the first line of the method's doc comment.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
	// Description is the remaining free text of the doc comment.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// TypeRef is either a scalar type name or an expanded object.
type TypeRef struct {
	Name   string
	Object *ExpandedObject
}

// ExpandedObject maps property names to their resolved types.
type ExpandedObject = OrderedMap[TypeRef]

// Named returns a TypeRef holding a plain type name.
func Named(name string) TypeRef { return TypeRef{Name: name} }

// Expanded returns a TypeRef holding an expanded object.
func Expanded(obj *ExpandedObject) TypeRef { return TypeRef{Object: obj} }

// IsObject reports whether the reference was expanded into properties.
func (t TypeRef) IsObject() bool { return t.Object != nil }

// String renders the reference compactly, e.g. "{id: int, owner: User}".
func (t TypeRef) String() string {
	if t.Object == nil {
		return t.Name
	}
	var sb strings.Builder
	sb.WriteString("{")
	for i, e := range t.Object.Entries() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Key)
		sb.WriteString(": ")
		sb.WriteString(e.Value.String())
	}
	sb.WriteString("}")
	return sb.String()
}

func (t TypeRef) MarshalJSON() ([]byte, error) {
	if t.Object != nil {
		return json.Marshal(t.Object)
	}
	return json.Marshal(t.Name)
}

func (t TypeRef) MarshalYAML() (interface{}, error) {
	if t.Object != nil {
		return t.Object, nil
	}
	return t.Name, nil
}

// ParameterDescriptor describes one operation parameter.
type ParameterDescriptor struct {
	Type      TypeRef
	Required  bool
	AllowNull bool
	// HasDefault is set when a default value is available; Default may be nil.
	HasDefault bool
	Default    any
}

func (p ParameterDescriptor) fields() *OrderedMap[any] {
	m := NewOrderedMap[any]()
	m.Set("type", p.Type)
	m.Set("required", p.Required)
	m.Set("allowNull", p.AllowNull)
	if p.HasDefault {
		m.Set("default", p.Default)
	}
	return m
}

func (p ParameterDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.fields())
}

func (p ParameterDescriptor) MarshalYAML() (interface{}, error) {
	return p.fields(), nil
}

// VoidResult is the literal emitted for methods without a declared return type.
const VoidResult = "void"

// ReturnDescriptor describes an operation result, or the "void" marker.
type ReturnDescriptor struct {
	Void      bool
	Type      TypeRef
	AllowNull bool
}

// Void returns the descriptor for a method without a declared return type.
func Void() ReturnDescriptor { return ReturnDescriptor{Void: true} }

func (r ReturnDescriptor) fields() interface{} {
	if r.Void {
		return VoidResult
	}
	m := NewOrderedMap[any]()
	m.Set("type", r.Type)
	m.Set("allowNull", r.AllowNull)
	return m
}

func (r ReturnDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.fields())
}

func (r ReturnDescriptor) MarshalYAML() (interface{}, error) {
	return r.fields(), nil
}

// Entry is a single key/value pair of an OrderedMap.
type Entry[V any] struct {
	Key   string
	Value V
}

// OrderedMap is a string-keyed map that remembers insertion order.
// Setting an existing key replaces its value in place.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
}

func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: make(map[string]V)}
}

func (m *OrderedMap[V]) Set(key string, value V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

func (m *OrderedMap[V]) Entries() []Entry[V] {
	if m == nil {
		return nil
	}
	entries := make([]Entry[V], 0, len(m.keys))
	for _, k := range m.keys {
		entries = append(entries, Entry[V]{Key: k, Value: m.values[k]})
	}
	return entries
}

func (m *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *OrderedMap[V]) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.Keys() {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(m.values[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

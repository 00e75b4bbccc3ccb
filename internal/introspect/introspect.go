// Package introspect describes the reflection surface rpcdoc needs from a
// resolver: its public methods, their typed parameters and results, its
// properties and the free-text documentation attached to each of them.
//
// Three sources implement it: go/types packages loaded from source
// (Universe), live Go types via reflect (FromType) and YAML manifests
// (Manifest).
package introspect

// Class is an inspectable type exposing methods and properties.
type Class interface {
	// Name is the short (unqualified) class name.
	Name() string
	// Methods lists the public methods.
	Methods() []Method
	// Method looks up a public method by name.
	Method(name string) (Method, bool)
	// Properties lists all properties, public or not, in declaration order.
	Properties() []Property
}

// Method is a public callable member of a Class.
type Method interface {
	Name() string
	IsConstructor() bool
	Params() []Parameter
	// Result returns the declared return type; ok is false when none is declared.
	Result() (t Type, ok bool)
	Doc() string
}

// Parameter is one declared parameter of a Method.
type Parameter interface {
	Name() string
	// Type returns the static type; ok is false when the parameter is untyped.
	Type() (t Type, ok bool)
	// IsArray reports a native array declaration.
	IsArray() bool
	IsOptional() bool
	AllowsNull() bool
	// Default returns the declared default value, if one is available.
	Default() (v any, ok bool)
}

// Property is a data member of a Class.
type Property interface {
	// Name is the declared name, used to derive accessor names.
	Name() string
	// Key is the name under which the property is serialized.
	Key() string
	IsPublic() bool
	// Type returns the static type; ok is false when the property is untyped.
	Type() (t Type, ok bool)
	Doc() string
}

// Type is a resolved static type.
type Type interface {
	// Name is the display name of the type.
	Name() string
	// IsArray reports the generic array marker.
	IsArray() bool
	AllowsNull() bool
	// Class returns the inspectable class named by the type, if any.
	Class() (Class, bool)
}

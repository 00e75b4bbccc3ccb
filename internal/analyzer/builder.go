package analyzer

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Zachacious/go-rpcdoc/internal/introspect"
	"github.com/Zachacious/go-rpcdoc/internal/logger"
	"github.com/Zachacious/go-rpcdoc/internal/model"
)

const (
	// DefaultMaxDepth is how many levels below the first object expansion
	// nested classes are still expanded.
	DefaultMaxDepth = 2
	// DefaultAccessorPrefix prefixes the accessor looked up for a
	// non-public property.
	DefaultAccessorPrefix = "Get"
)

// Option configures a Builder.
type Option func(*Builder)

// WithMaxDepth sets the expansion depth bound. Negative values mean 0.
func WithMaxDepth(depth int) Option {
	return func(b *Builder) {
		if depth < 0 {
			depth = 0
		}
		b.maxDepth = depth
	}
}

// WithAccessorPrefix sets the prefix of accessors for non-public properties.
func WithAccessorPrefix(prefix string) Option {
	return func(b *Builder) { b.accessorPrefix = prefix }
}

// WithMethodNamer maps Go method names to operation keys. The default
// keeps the method name; LowerFirst gives "find" for Find.
func WithMethodNamer(namer func(string) string) Option {
	return func(b *Builder) {
		if namer != nil {
			b.methodNamer = namer
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// WithUniverse lets Add resolve Go values against type-checked packages,
// which carry parameter names and doc comments.
func WithUniverse(u *introspect.Universe) Option {
	return func(b *Builder) { b.universe = u }
}

// Builder accumulates the schema of the resolvers passed to Add. It is not
// safe for concurrent use.
type Builder struct {
	collection     model.Schema
	maxDepth       int
	accessorPrefix string
	methodNamer    func(string) string
	universe       *introspect.Universe
	log            logger.Logger
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		collection:     make(model.Schema),
		maxDepth:       DefaultMaxDepth,
		accessorPrefix: DefaultAccessorPrefix,
		methodNamer:    func(name string) string { return name },
		log:            logger.NewDefaultLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add registers the public methods of resolver under a namespace named
// after its class. resolver is an introspect.Class or a Go value whose type
// is a named struct (or a pointer to one); anything else yields an
// InvalidArgumentError. Adding a second resolver of the same class merges
// into the existing namespace.
func (b *Builder) Add(resolver any) (*Builder, error) {
	class, err := b.classOf(resolver)
	if err != nil {
		return b, err
	}

	namespace := LowerFirst(class.Name())
	methods := class.Methods()
	if len(methods) == 0 {
		return b, nil
	}

	ns, ok := b.collection[namespace]
	if !ok {
		ns = make(model.Namespace)
		b.collection[namespace] = ns
	}

	b.log.Debug("registering resolver", "namespace", namespace, "methods", len(methods))
	for _, method := range methods {
		if method.IsConstructor() || strings.HasPrefix(method.Name(), "__") {
			continue
		}
		doc := NewDocComment(method.Doc())
		ns[b.methodNamer(method.Name())] = &model.Operation{
			Params:      b.parseAttributes(method, doc),
			Result:      b.parseReturnType(method, doc),
			Summary:     doc.Summary(),
			Description: doc.Description(),
		}
	}

	return b, nil
}

// GetAll returns the accumulated schema.
func (b *Builder) GetAll() model.Schema {
	return b.collection
}

func (b *Builder) classOf(resolver any) (introspect.Class, error) {
	if resolver == nil {
		return nil, &InvalidArgumentError{Type: "nil"}
	}
	if class, ok := resolver.(introspect.Class); ok {
		return class, nil
	}

	rt := reflect.TypeOf(resolver)
	t := rt
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t.Name() == "" {
		return nil, &InvalidArgumentError{Type: rt.String()}
	}

	if b.universe != nil {
		if class, ok := b.universe.Lookup(t.PkgPath(), t.Name()); ok {
			return class, nil
		}
	}
	class, _ := introspect.FromType(t)
	return class, nil
}

func (b *Builder) parseAttributes(method introspect.Method, doc *DocComment) *model.OrderedMap[model.ParameterDescriptor] {
	result := model.NewOrderedMap[model.ParameterDescriptor]()

	for _, param := range method.Params() {
		typ, typed := param.Type()
		if !typed || param.IsArray() {
			def, hasDefault := param.Default()
			result.Set(param.Name(), doc.ArgumentDefinition(param.Name(), param.IsArray(), param.IsOptional(), hasDefault, def))
			continue
		}

		desc := model.ParameterDescriptor{
			Type:      b.resolveType(typ),
			Required:  !param.IsOptional(),
			AllowNull: param.AllowsNull(),
		}
		if param.IsOptional() {
			desc.Default, desc.HasDefault = param.Default()
		}
		result.Set(param.Name(), desc)
	}

	return result
}

func (b *Builder) parseReturnType(method introspect.Method, doc *DocComment) model.ReturnDescriptor {
	typ, ok := method.Result()
	if !ok {
		return model.Void()
	}

	result := model.ReturnDescriptor{AllowNull: typ.AllowsNull()}
	switch class, isClass := typ.Class(); {
	case isClass:
		result.Type = model.Expanded(b.parseObjectType(class, 1))
	case typ.IsArray():
		result.Type = doc.ReturnDefinition()
	default:
		result.Type = model.Named(typ.Name())
	}
	return result
}

// LowerFirst lower-cases the first character of s, turning Go method names
// into lowerCamel JSON-RPC names.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

package analyzer

import (
	"github.com/Zachacious/go-rpcdoc/internal/introspect"
	"github.com/Zachacious/go-rpcdoc/internal/model"
)

// resolveType turns a parameter or result type into a TypeRef, expanding
// inspectable classes from the first level.
func (b *Builder) resolveType(t introspect.Type) model.TypeRef {
	if class, ok := t.Class(); ok {
		return model.Expanded(b.parseObjectType(class, 1))
	}
	return model.Named(t.Name())
}

// nestedType resolves the type of a member found at the given depth. Past
// the depth bound classes keep their plain name, which is what stops
// cyclic class graphs.
func (b *Builder) nestedType(t introspect.Type, depth int) model.TypeRef {
	if depth <= b.maxDepth {
		if class, ok := t.Class(); ok {
			return model.Expanded(b.parseObjectType(class, depth+1))
		}
	}
	return model.Named(t.Name())
}

// parseObjectType maps the properties of a class to their types. Public
// properties are read directly; a non-public one is described through its
// public accessor and skipped when there is none.
func (b *Builder) parseObjectType(class introspect.Class, depth int) *model.ExpandedObject {
	result := model.NewOrderedMap[model.TypeRef]()

	for _, prop := range class.Properties() {
		if prop.IsPublic() {
			typ, ok := prop.Type()
			if !ok {
				result.Set(prop.Key(), NewDocComment(prop.Doc()).PropertyDefinition())
				continue
			}
			result.Set(prop.Key(), b.nestedType(typ, depth))
			continue
		}

		accessor, ok := class.Method(b.accessorPrefix + upperFirst(prop.Name()))
		if !ok {
			continue
		}
		typ, ok := accessor.Result()
		if !ok {
			result.Set(prop.Key(), NewDocComment(accessor.Doc()).ReturnDefinition())
			continue
		}
		result.Set(prop.Key(), b.nestedType(typ, depth))
	}

	return result
}

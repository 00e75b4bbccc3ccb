package assembler

import (
	"sort"
	"strings"

	"github.com/Zachacious/go-rpcdoc/internal/config"
	"github.com/Zachacious/go-rpcdoc/internal/model"
	"github.com/getkin/kin-openapi/openapi3"
)

// BuildSpec renders the schema as an OpenAPI document with one POST
// operation per method at "/<namespace>.<method>".
func BuildSpec(schema model.Schema, cfg *config.Config) (*openapi3.T, error) {
	info := config.Default().Info
	if cfg != nil && cfg.Info != nil {
		info = cfg.Info
	}
	spec := &openapi3.T{
		OpenAPI:    "3.0.3",
		Info:       info,
		Components: &openapi3.Components{Schemas: make(openapi3.Schemas)},
		Paths:      openapi3.NewPaths(),
	}

	for _, namespace := range sortedKeys(schema) {
		ns := schema[namespace]
		for _, method := range sortedKeys(ns) {
			spec.Paths.Set("/"+MethodName(namespace, method), &openapi3.PathItem{
				Post: buildOperation(namespace, method, ns[method]),
			})
		}
	}

	return spec, nil
}

// MethodName is the JSON-RPC method name of an operation.
func MethodName(namespace, method string) string {
	return namespace + "." + method
}

func buildOperation(namespace, method string, op *model.Operation) *openapi3.Operation {
	operation := openapi3.NewOperation()
	operation.OperationID = MethodName(namespace, method)
	operation.Tags = []string{namespace}
	operation.Summary = op.Summary
	operation.Description = op.Description

	params := openapi3.NewObjectSchema()
	for _, e := range op.Params.Entries() {
		prop := schemaFor(e.Value.Type)
		if e.Value.AllowNull {
			prop.Nullable = true
		}
		if e.Value.HasDefault {
			prop.Default = e.Value.Default
		}
		params.WithProperty(e.Key, prop)
		if e.Value.Required {
			params.Required = append(params.Required, e.Key)
		}
	}
	operation.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(params),
	}

	if op.Result.Void {
		operation.AddResponse(200, openapi3.NewResponse().WithDescription("No result"))
		return operation
	}
	result := schemaFor(op.Result.Type)
	if op.Result.AllowNull {
		result.Nullable = true
	}
	operation.AddResponse(200, openapi3.NewResponse().WithDescription("Result").WithJSONSchema(result))
	return operation
}

func schemaFor(t model.TypeRef) *openapi3.Schema {
	if t.Object != nil {
		schema := openapi3.NewObjectSchema()
		for _, e := range t.Object.Entries() {
			schema.WithProperty(e.Key, schemaFor(e.Value))
		}
		return schema
	}
	return scalarSchema(t.Name)
}

// scalarSchema maps a display type name onto the closest JSON schema.
// Names it does not know are kept as the description.
func scalarSchema(name string) *openapi3.Schema {
	nullable := false
	if trimmed, ok := strings.CutPrefix(name, "?"); ok {
		name, nullable = trimmed, true
	}
	var members []string
	for _, part := range strings.Split(name, "|") {
		if part = strings.TrimSpace(part); part == "null" {
			nullable = true
		} else if part != "" {
			members = append(members, part)
		}
	}

	var schema *openapi3.Schema
	if len(members) == 1 {
		schema = namedSchema(members[0])
	} else {
		schema = &openapi3.Schema{Description: name}
	}
	if nullable {
		schema.Nullable = true
	}
	return schema
}

func namedSchema(name string) *openapi3.Schema {
	switch name {
	case "string", "rune":
		return openapi3.NewStringSchema()
	case "bool", "boolean":
		return openapi3.NewBoolSchema()
	case "int", "int8", "int16", "int32", "int64", "integer",
		"uint", "uint8", "uint16", "uint32", "uint64", "byte":
		return openapi3.NewIntegerSchema()
	case "float", "float32", "float64", "double":
		return openapi3.NewFloat64Schema()
	case "mixed", "any", "interface{}":
		return &openapi3.Schema{}
	case "array", "mixed[]", "[]any", "[]interface{}":
		return openapi3.NewArraySchema().WithItems(&openapi3.Schema{})
	}

	switch {
	case strings.HasPrefix(name, "[]"):
		return openapi3.NewArraySchema().WithItems(scalarSchema(strings.TrimPrefix(name, "[]")))
	case strings.HasSuffix(name, "[]"):
		return openapi3.NewArraySchema().WithItems(scalarSchema(strings.TrimSuffix(name, "[]")))
	case strings.HasPrefix(name, "map["):
		if i := strings.Index(name, "]"); i > 0 {
			return openapi3.NewObjectSchema().WithAdditionalProperties(scalarSchema(name[i+1:]))
		}
	}
	return &openapi3.Schema{Description: name}
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package assembler

import (
	"embed"
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/Zachacious/go-rpcdoc/internal/config"
	"github.com/Zachacious/go-rpcdoc/internal/model"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var markdownTemplate = template.Must(
	template.New("schema.md.tmpl").
		Funcs(sprig.TxtFuncMap()).
		Funcs(template.FuncMap{"methodName": MethodName}).
		ParseFS(templateFS, "templates/schema.md.tmpl"),
)

type markdownNamespace struct {
	Name       string
	Operations []markdownOperation
}

type markdownOperation struct {
	Method string
	*model.Operation
}

func renderMarkdown(w io.Writer, schema model.Schema, cfg *config.Config) error {
	title := config.Default().Info.Title
	if cfg != nil && cfg.Info != nil && cfg.Info.Title != "" {
		title = cfg.Info.Title
	}

	var namespaces []markdownNamespace
	for _, name := range sortedKeys(schema) {
		ns := markdownNamespace{Name: name}
		for _, method := range sortedKeys(schema[name]) {
			ns.Operations = append(ns.Operations, markdownOperation{Method: method, Operation: schema[name][method]})
		}
		namespaces = append(namespaces, ns)
	}

	data := map[string]any{
		"Title":      title,
		"Namespaces": namespaces,
	}
	if err := markdownTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	return nil
}

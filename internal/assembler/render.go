package assembler

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Zachacious/go-rpcdoc/internal/config"
	"github.com/Zachacious/go-rpcdoc/internal/model"
	"gopkg.in/yaml.v3"
)

// Output formats understood by Render.
const (
	FormatYAML     = "yaml"
	FormatJSON     = "json"
	FormatOpenAPI  = "openapi"
	FormatMarkdown = "markdown"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatYAML, FormatJSON, FormatOpenAPI, FormatMarkdown}

// Render writes the schema to w in the given format.
func Render(w io.Writer, schema model.Schema, format string, cfg *config.Config) error {
	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(schema); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(schema); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case FormatOpenAPI:
		spec, err := BuildSpec(schema, cfg)
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(spec)
		if err != nil {
			return fmt.Errorf("marshaling spec to yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatMarkdown:
		return renderMarkdown(w, schema, cfg)
	}
	return fmt.Errorf("unknown output format %q", format)
}

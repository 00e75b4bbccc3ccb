package analyzer

import (
	"regexp"
	"strings"

	"github.com/Zachacious/go-rpcdoc/internal/model"
)

const (
	// MixedType is reported for values whose type cannot be determined.
	MixedType = "mixed"
	// MixedArrayType is reported for untyped arrays.
	MixedArrayType = "mixed[]"
	// NullableMixedType is reported when a doc tag lookup finds nothing.
	NullableMixedType = "mixed|null"
)

var (
	propertyTypePattern = regexp.MustCompile(`(?m)@var[ \t]+(.*)$`)
	returnTypePattern   = regexp.MustCompile(`(?m)@return[ \t]+(\S+)`)
)

// argumentPattern matches "@param <type> $name", or "@param <type> name"
// where the type is then a single token so a description of another tag
// cannot be taken for it.
func argumentPattern(name string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(name)
	return regexp.MustCompile(`(?m)@param[ \t]+(?:([^$\n]*?)[ \t]+\$` + quoted + `|(\S+)[ \t]+` + quoted + `)(?:[ \t]|$)`)
}

// DocComment extracts type hints and free text from a documentation
// comment. It never fails: a missing tag yields a permissive default.
type DocComment struct {
	text string
}

func NewDocComment(text string) *DocComment {
	return &DocComment{text: text}
}

// ArgumentDefinition resolves a parameter from its @param tag.
func (d *DocComment) ArgumentDefinition(name string, isArray, isOptional, hasDefault bool, defaultValue any) model.ParameterDescriptor {
	var typ string
	if matches := argumentPattern(name).FindStringSubmatch(d.text); matches != nil {
		typ = strings.TrimSpace(matches[1] + matches[2])
	}
	if typ == "" {
		fallback := MixedType
		if isArray {
			fallback = MixedArrayType
		}
		return model.ParameterDescriptor{
			Type:       model.Named(fallback),
			Required:   !isOptional,
			AllowNull:  true,
			HasDefault: hasDefault,
			Default:    defaultValue,
		}
	}

	return model.ParameterDescriptor{
		Type:      model.Named(typ),
		Required:  !isOptional,
		AllowNull: true,
	}
}

// PropertyDefinition resolves a property type from its @var tag.
func (d *DocComment) PropertyDefinition() model.TypeRef {
	return model.Named(d.capture(propertyTypePattern))
}

// ReturnDefinition resolves a return type from its @return tag.
func (d *DocComment) ReturnDefinition() model.TypeRef {
	return model.Named(d.capture(returnTypePattern))
}

func (d *DocComment) capture(re *regexp.Regexp) string {
	matches := re.FindStringSubmatch(d.text)
	if len(matches) < 2 {
		return NullableMixedType
	}
	if typ := strings.TrimSpace(matches[1]); typ != "" {
		return typ
	}
	return NullableMixedType
}

// Summary is the first line of free text.
func (d *DocComment) Summary() string {
	lines := d.freeText()
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

// Description is the free text following the summary line.
func (d *DocComment) Description() string {
	lines := d.freeText()
	if len(lines) < 2 {
		return ""
	}
	return strings.TrimSpace(strings.Join(lines[1:], "\n"))
}

// freeText returns the comment lines that are not tags, leading blank
// lines dropped.
func (d *DocComment) freeText() []string {
	var lines []string
	for _, line := range strings.Split(d.text, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "//"))
		if strings.HasPrefix(line, "@") {
			continue
		}
		if line == "" && len(lines) == 0 {
			continue
		}
		lines = append(lines, line)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

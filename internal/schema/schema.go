// Package schema validates request documents against the embedded JSON schemas.
package schema

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"
)

// Schema identifiers
const (
	RecipeSchema      = "https://recipeshare.local/schemas/recipe.json"
	RecipePatchSchema = "https://recipeshare.local/schemas/recipe-patch.json"
)

// NonFieldErrors is the key used for problems that are not tied to a single field,
// for example a body that is not a JSON object.
const NonFieldErrors = "non_field_errors"

const requiredMessage = "This field is required."

//go:embed schemas
var schemaFS embed.FS

// Validator validates JSON documents against a set of compiled schemas
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewValidator compiles the embedded schemas. JSON files directly under schemas/ are
// top level schemas, files under schemas/refs/ may only be referenced.
func NewValidator() (*Validator, error) {
	tops, err := readDir("schemas")
	if err != nil {
		return nil, err
	}
	refs, err := readDir("schemas/refs")
	if err != nil {
		return nil, err
	}
	return newValidator(tops, refs)
}

func readDir(dir string) ([]string, error) {
	entries, err := schemaFS.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read dir %s: %w", dir, err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		b, err := schemaFS.ReadFile(path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("cannot read file '%s': %w", e.Name(), err)
		}
		out = append(out, string(b))
	}
	return out, nil
}

func newValidator(tops, refs []string) (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema)}
	for _, str := range tops {
		var head struct {
			ID string `json:"$id"`
		}
		if err := json.Unmarshal([]byte(str), &head); err != nil {
			return nil, fmt.Errorf("parse error '%v' in schema: '%s'", err, str)
		}
		if head.ID == "" {
			return nil, fmt.Errorf("schema does not contain $id: '%s'", str)
		}

		sl := gojsonschema.NewSchemaLoader()
		for _, ref := range refs {
			if err := sl.AddSchemas(gojsonschema.NewStringLoader(ref)); err != nil {
				return nil, fmt.Errorf("cannot add ref: %w", err)
			}
		}
		compiled, err := sl.Compile(gojsonschema.NewStringLoader(str))
		if err != nil {
			return nil, fmt.Errorf("cannot compile schema %s: %w", head.ID, err)
		}
		v.schemas[head.ID] = compiled
	}
	return v, nil
}

// Validate checks body against schemaID. It returns the messages per top level field
// when the document is invalid and a nil map when it is valid. An error is returned
// when body is not JSON at all or the schema is unknown.
func (v *Validator) Validate(body []byte, schemaID string) (map[string][]string, error) {
	s, ok := v.schemas[schemaID]
	if !ok {
		return nil, fmt.Errorf("there is no schema %s", schemaID)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("cannot validate with schema %s: %w", schemaID, err)
	}
	if result.Valid() {
		return nil, nil
	}

	fields := make(map[string][]string)
	for _, e := range result.Errors() {
		name, msg := describe(e)
		fields[name] = append(fields[name], msg)
	}
	return fields, nil
}

// describe reduces a schema error to the top level property it belongs to
func describe(e gojsonschema.ResultError) (string, string) {
	if e.Type() == "required" {
		if p, ok := e.Details()["property"].(string); ok {
			return topLevel(p), requiredMessage
		}
	}
	return topLevel(e.Field()), e.Description()
}

func topLevel(field string) string {
	field = strings.TrimPrefix(field, gojsonschema.STRING_ROOT_SCHEMA_PROPERTY)
	field = strings.TrimPrefix(field, ".")
	if i := strings.Index(field, "."); i >= 0 {
		field = field[:i]
	}
	if field == "" {
		return NonFieldErrors
	}
	return field
}

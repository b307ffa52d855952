package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Upstream payloads are checked against these schemas before they are mapped
// onto models. Only the fields the front end relies on are constrained;
// nullable strings are common in catalog responses and are allowed.
const mediaSchemaSrc = `{
	"type": "object",
	"required": ["id"],
	"properties": {
		"id": {"type": "integer", "minimum": 1},
		"media_type": {"type": ["string", "null"]},
		"title": {"type": ["string", "null"]},
		"name": {"type": ["string", "null"]},
		"original_title": {"type": ["string", "null"]},
		"original_name": {"type": ["string", "null"]},
		"overview": {"type": ["string", "null"]},
		"poster_path": {"type": ["string", "null"]},
		"backdrop_path": {"type": ["string", "null"]},
		"release_date": {"type": ["string", "null"]},
		"first_air_date": {"type": ["string", "null"]},
		"vote_average": {"type": ["number", "null"]},
		"vote_count": {"type": ["integer", "null"]},
		"genre_ids": {"type": ["array", "null"], "items": {"type": "integer"}}
	}
}`

const pageSchemaSrc = `{
	"type": "object",
	"required": ["results"],
	"properties": {
		"page": {"type": "integer", "minimum": 0},
		"total_pages": {"type": "integer", "minimum": 0},
		"total_results": {"type": "integer", "minimum": 0},
		"results": {"type": "array", "items": {"$ref": "media.json"}}
	}
}`

const detailSchemaSrc = `{
	"allOf": [{"$ref": "media.json"}],
	"properties": {
		"runtime": {"type": ["integer", "null"]},
		"number_of_seasons": {"type": ["integer", "null"]},
		"genres": {
			"type": ["array", "null"],
			"items": {"type": "object", "required": ["id", "name"]}
		},
		"seasons": {
			"type": ["array", "null"],
			"items": {"type": "object", "required": ["season_number"]}
		}
	}
}`

var (
	pageSchema   *jsonschema.Schema
	detailSchema *jsonschema.Schema
)

func init() {
	compiler := jsonschema.NewCompiler()
	for name, src := range map[string]string{
		"media.json":  mediaSchemaSrc,
		"page.json":   pageSchemaSrc,
		"detail.json": detailSchemaSrc,
	} {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
		if err != nil {
			panic(fmt.Sprintf("catalog: parse schema %s: %v", name, err))
		}
		if err := compiler.AddResource(name, doc); err != nil {
			panic(fmt.Sprintf("catalog: add schema %s: %v", name, err))
		}
	}
	pageSchema = mustCompile(compiler, "page.json")
	detailSchema = mustCompile(compiler, "detail.json")
}

func mustCompile(c *jsonschema.Compiler, name string) *jsonschema.Schema {
	s, err := c.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("catalog: compile schema %s: %v", name, err))
	}
	return s
}

// validatePayload checks body against schema and returns an ErrInvalidPayload
// wrapped error naming the first offending location.
func validatePayload(schema *jsonschema.Schema, body []byte) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := schema.Validate(inst); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%w: %s", ErrInvalidPayload, firstViolation(verr))
		}
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

// firstViolation walks to the deepest leaf cause, which carries the most
// specific location.
func firstViolation(err *jsonschema.ValidationError) string {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}
	location := "/" + strings.Join(err.InstanceLocation, "/")
	if err.ErrorKind == nil {
		return location
	}
	return fmt.Sprintf("%s: %s", location, err.ErrorKind.LocalizedString(printer))
}

package schema

import (
	"fmt"
	"strings"
	"sync"

	json "github.com/json-iterator/go"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/vine-io/flowlayout/api"
	"github.com/vine-io/flowlayout/bpmn"
)

const literalSchemaURL = "mem://flowlayout/layout-config.json"

const literalSchemaTemplate = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "layout config",
  "type": "object",
  "required": ["name", "elements"],
  "definitions": {
    "lane": {"type": ["string", "null"]},
    "tag": {"type": "string", "minLength": 1, "examples": [%s]},
    "number": {"type": "number"},
    "size": {"type": "number", "minimum": 0}
  },
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "lanes": {"type": "array", "items": {"type": "string", "minLength": 1}},
    "lane_bounds": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string"},
          "y": {"type": "number"},
          "h": {"$ref": "#/definitions/size"}
        }
      }
    },
    "elements": {
      "type": "array",
      "items": {
        "oneOf": [
          {
            "type": "array", "minItems": 3, "maxItems": 3,
            "items": [{"type": "string", "minLength": 1}, {"$ref": "#/definitions/tag"}, {"$ref": "#/definitions/lane"}]
          },
          {
            "type": "array", "minItems": 7, "maxItems": 7,
            "items": [
              {"type": "string", "minLength": 1}, {"$ref": "#/definitions/tag"}, {"$ref": "#/definitions/lane"},
              {"$ref": "#/definitions/number"}, {"$ref": "#/definitions/number"},
              {"$ref": "#/definitions/size"}, {"$ref": "#/definitions/size"}
            ]
          }
        ]
      }
    },
    "data_objects": {
      "type": "array",
      "items": {
        "oneOf": [
          {
            "type": "array", "minItems": 3, "maxItems": 3,
            "items": [{"type": "string", "minLength": 1}, {"$ref": "#/definitions/lane"}, {"type": "integer"}]
          },
          {
            "type": "array", "minItems": 6, "maxItems": 6,
            "items": [
              {"type": "string", "minLength": 1}, {"$ref": "#/definitions/lane"},
              {"$ref": "#/definitions/number"}, {"$ref": "#/definitions/number"},
              {"$ref": "#/definitions/size"}, {"$ref": "#/definitions/size"}
            ]
          }
        ]
      }
    },
    "layout": {
      "type": "object",
      "additionalProperties": {
        "oneOf": [
          {"type": "integer"},
          {"type": "array", "minItems": 1, "maxItems": 2, "items": {"type": "integer"}}
        ]
      }
    },
    "data_associations": {
      "type": "array",
      "items": {
        "type": "array", "minItems": 2, "maxItems": 3,
        "items": [{"type": "string"}, {"type": "string"}, {"enum": ["output", "input"]}]
      }
    },
    "flows": {
      "type": "array",
      "items": {
        "type": "array", "minItems": 2, "maxItems": 3,
        "items": [{"type": "string"}, {"type": "string"}, {"type": "string"}]
      }
    },
    "settings": {
      "type": "object",
      "additionalProperties": {"type": "integer"}
    }
  }
}`

var (
	literalSchemaOnce sync.Once
	literalSchema     *jsonschema.Schema
	literalSchemaErr  error
)

// LiteralSchema returns the JSON Schema of the written config form.
func LiteralSchema() string {
	tags := make([]string, 0)
	for _, t := range bpmn.ElementTypes() {
		tags = append(tags, `"`+string(t)+`"`)
	}
	return fmt.Sprintf(literalSchemaTemplate, strings.Join(tags, ", "))
}

func compiledLiteralSchema() (*jsonschema.Schema, error) {
	literalSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft7
		if err := compiler.AddResource(literalSchemaURL, strings.NewReader(LiteralSchema())); err != nil {
			literalSchemaErr = err
			return
		}
		literalSchema, literalSchemaErr = compiler.Compile(literalSchemaURL)
	})
	return literalSchema, literalSchemaErr
}

// ValidateDocument checks a written config against the literal JSON Schema.
// JSON documents are checked as is, the other formats after decoding.
func ValidateDocument(data []byte, f Format) error {
	s, err := compiledLiteralSchema()
	if err != nil {
		return api.InternalServerError("compile literal schema: %v", err)
	}

	if f != FormatJSON {
		lit, err := decodeLiteral(data, f)
		if err != nil {
			return err
		}
		if data, err = json.Marshal(lit); err != nil {
			return api.InternalServerError("encode literal: %v", err)
		}
	}

	var doc interface{}
	if err = json.Unmarshal(data, &doc); err != nil {
		return api.BadRequest("decode json: %v", err)
	}
	if err = s.Validate(doc); err != nil {
		return api.Unprocessable("%v", err)
	}
	return nil
}

// Package schemas embeds the JSON Schemas for ocreval's YAML files.
package schemas

import _ "embed"

// ConfigSchemaJSON is the schema for .ocreval.yaml.
//
//go:embed config.schema.json
var ConfigSchemaJSON string

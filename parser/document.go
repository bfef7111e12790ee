package parser

import (
	_ "embed"
	"encoding/json"
	"os"

	"github.com/d3flow/mindflow/constants"
	"github.com/d3flow/mindflow/model"
	"github.com/d3flow/mindflow/utils"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed diagram.schema.json
var schemaJSON []byte

// ParseDocument reads a YAML diagram document from the given path.
func ParseDocument(path string) (*model.Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDocumentFromString(string(data))
}

// ParseDocumentFromString unmarshals a YAML diagram document.
func ParseDocumentFromString(src string) (*model.Diagram, error) {
	var d model.Diagram
	if err := yaml.Unmarshal([]byte(src), &d); err != nil {
		return nil, utils.Errorf("diagram document parsing failed: %w", err)
	}
	return &d, nil
}

// ValidateDocument checks required fields, runs JSON-Schema validation
// against the embedded diagram schema, then checks the source parses for
// the declared diagram type.
func ValidateDocument(d *model.Diagram) error {
	if err := utils.ValidateRequired("title", d.Title); err != nil {
		return err
	}
	if err := utils.ValidateRequired("source", d.Source); err != nil {
		return err
	}
	if err := utils.ValidateOneOf("type", d.Type.String(), []string{
		model.Mindmap.String(), model.Gantt.String(), model.Flowchart.String(),
	}); err != nil {
		return err
	}
	jsonBytes, err := json.Marshal(d)
	if err != nil {
		return err
	}
	schema, err := jsonschema.CompileString(constants.DiagramSchemaFile, string(schemaJSON))
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(jsonBytes, &doc); err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return utils.Errorf("diagram document validation failed: %w", err)
	}
	_, err = ValidateSource(d.Type, d.Source)
	return err
}

// Package hookschema validates the JSON documents exchanged with Claude
// Code's PreToolUse hook: the input document read from stdin, the decision
// document written to stdout, and the YAML validator configuration.
//
// The schema documents are embedded verbatim so the same bytes can be
// injected into the judgment system prompt. Both follow the hook protocol
// described at
// https://docs.claude.com/en/docs/claude-code/hooks#pretooluse-decision-control
package hookschema

import (
	"encoding/json"
	"fmt"
	"strings"

	_ "embed"

	"github.com/xeipuuv/gojsonschema"
)

var (
	// InputSchemaJSON is the draft-07 schema for the PreToolUse input
	// document. Unknown top-level fields are allowed so newer Claude Code
	// versions can add fields without breaking the hook.
	//go:embed pretooluse_input.json
	InputSchemaJSON string

	// OutputSchemaJSON is the draft-07 schema for the decision document.
	// The inner hookSpecificOutput envelope is a closed set; the outer
	// object allows extras.
	//go:embed pretooluse_output.json
	OutputSchemaJSON string

	// ConfigSchemaJSON is the draft-07 schema for validator configuration
	// files, including the model identifier allow-list.
	//go:embed config.json
	ConfigSchemaJSON string
)

var (
	inputSchema  = mustCompile(InputSchemaJSON)
	outputSchema = mustCompile(OutputSchemaJSON)
	configSchema = mustCompile(ConfigSchemaJSON)

	allowedModels = mustModelEnum(ConfigSchemaJSON)
)

func mustCompile(schemaJSON string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("hookschema: invalid embedded schema: %v", err))
	}
	return schema
}

// mustModelEnum reads the model allow-list out of the config schema so it
// has a single source of truth.
func mustModelEnum(schemaJSON string) map[string]bool {
	var doc struct {
		Properties struct {
			Model struct {
				Enum []string `json:"enum"`
			} `json:"model"`
		} `json:"properties"`
	}
	if err := json.Unmarshal([]byte(schemaJSON), &doc); err != nil {
		panic(fmt.Sprintf("hookschema: invalid embedded schema: %v", err))
	}
	if len(doc.Properties.Model.Enum) == 0 {
		panic("hookschema: config schema carries no model enum")
	}
	models := make(map[string]bool, len(doc.Properties.Model.Enum))
	for _, m := range doc.Properties.Model.Enum {
		models[m] = true
	}
	return models
}

// AllowedModel reports whether name is in the model allow-list enforced by
// the config schema.
func AllowedModel(name string) bool {
	return allowedModels[name]
}

// ValidationError reports a document that failed schema validation or
// could not be parsed at all. The message names the offending field or
// constraint.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// ValidateInput parses raw JSON and validates it as a PreToolUse input
// document. Returns the parsed document on success.
func ValidateInput(raw []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, NewValidationError("invalid JSON input: %v", err)
	}
	if doc == nil {
		return nil, NewValidationError("input document must be a JSON object")
	}
	if err := validate(inputSchema, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ValidateOutput validates a parsed decision document against the output
// schema. The document is returned unchanged by the caller on success;
// validation has no side effects.
func ValidateOutput(doc map[string]any) error {
	return validate(outputSchema, doc)
}

// ValidateConfig validates a parsed configuration document.
func ValidateConfig(doc map[string]any) error {
	return validate(configSchema, doc)
}

func validate(schema *gojsonschema.Schema, doc map[string]any) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return NewValidationError("document could not be validated: %v", err)
	}
	if result.Valid() {
		return nil
	}
	descs := make([]string, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		descs = append(descs, fmt.Sprintf("%s: %s", resultErr.Field(), resultErr.Description()))
	}
	return NewValidationError("%s", strings.Join(descs, "; "))
}

// Package importer reads outlines exported as JSON, such as an LMS chapter
// dump, and turns them into domain sections.
package importer

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var importSchemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(importSchemaJSON)); err != nil {
		return nil, fmt.Errorf("loading import schema: %w", err)
	}
	return compiler.Compile("schema.json")
})

// ImportSchema is the top-level JSON structure for an outline import.
type ImportSchema struct {
	CourseID string          `json:"course_id,omitempty"`
	Title    string          `json:"title,omitempty"`
	Targets  *domain.Targets `json:"targets,omitempty"`
	Sections []SectionImport `json:"sections"`
}

// SectionImport is one chapter in the import file.
type SectionImport struct {
	Name   string        `json:"name"`
	Order  *int          `json:"order,omitempty"`
	Themes []ThemeImport `json:"themes"`
}

// ThemeImport is one lesson. Type is free text resolved like a parenthesized
// label in a plain-text outline; empty means unlabelled.
type ThemeImport struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// LooksLikeJSON reports whether data is a JSON object rather than outline text.
func LooksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// ParseImportSchema checks the document shape against the embedded JSON
// schema and decodes it.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("import does not match schema: %w", err)
	}

	var out ImportSchema
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &out, nil
}

// LoadImportSchema reads and parses an outline import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

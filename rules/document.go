package rules

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/pk-services/pks/filesystem"
)

// Document is the on-disk form of a table: a flat object of domain to rule.
type Document map[string]Rule

// Marshal encodes t as an indented document.
func Marshal(t *Table) ([]byte, error) {
	return json.MarshalIndent(Document(t.rules), "", "  ")
}

// Unmarshal decodes a document and merges it over a fresh default table.
func Unmarshal(data []byte) (*Table, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}

	t := New()
	t.Update(doc)
	return t, nil
}

// Load reads the document at path. A missing file yields the default table.
func Load(path string) (*Table, error) {
	exists, err := filesystem.API().Exists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return New(), nil
	}

	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Unmarshal(data)
}

// Save writes t to path.
func Save(path string, t *Table) error {
	data, err := Marshal(t)
	if err != nil {
		return err
	}

	return filesystem.WriteFileAtomic(path, data, 0644)
}

// Schema describes the document format.
func Schema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(Document{})
	schema.Title = "pks domain rules"
	schema.Required = []string{DefaultDomain}
	return schema
}

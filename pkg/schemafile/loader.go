package schemafile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-paramform/pkg/schema"
)

// ErrEmptyDocument is returned for blank files.
var ErrEmptyDocument = errors.New("schemafile: document is empty")

// Document is a parsed schema file.
type Document struct {
	Source   string
	BasePath string
	Schema   *schema.Schema
}

type documentFile struct {
	BasePath   string              `json:"basePath,omitempty" yaml:"basePath,omitempty"`
	Parameters []schema.Definition `json:"parameters" yaml:"parameters"`
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("schemafile: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads and parses name from fsys.
func LoadFS(fsys fs.FS, name string) (Document, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Document{}, fmt.Errorf("schemafile: read %s: %w", name, err)
	}
	return Parse(data, name)
}

// Parse decodes data as JSON, falling back to YAML, and builds the schema.
// source names the document in error messages.
func Parse(data []byte, source string) (Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Document{}, fmt.Errorf("%w: %s", ErrEmptyDocument, source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Document{}, fmt.Errorf("schemafile: parse %s: invalid JSON or YAML: %w", source, err)
		}
	}

	if len(doc.Parameters) == 0 {
		return Document{}, fmt.Errorf("schemafile: %s defines no parameters", source)
	}
	for i := range doc.Parameters {
		doc.Parameters[i].Type = schema.ValueType(strings.ToLower(strings.TrimSpace(string(doc.Parameters[i].Type))))
	}

	s, err := schema.New(doc.Parameters...)
	if err != nil {
		return Document{}, fmt.Errorf("schemafile: %s: %w", source, err)
	}

	return Document{
		Source:   source,
		BasePath: strings.TrimSpace(doc.BasePath),
		Schema:   s,
	}, nil
}

// MarshalYAML renders s (and basePath when set) back into the document format.
func MarshalYAML(s *schema.Schema, basePath string) ([]byte, error) {
	out, err := yaml.Marshal(documentFile{
		BasePath:   basePath,
		Parameters: s.Definitions(),
	})
	if err != nil {
		return nil, fmt.Errorf("schemafile: marshal: %w", err)
	}
	return out, nil
}

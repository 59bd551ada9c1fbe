package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the manifest file name inside a package or project root.
const FileName = "package.json"

// InitialVersion is the version written into a freshly created project.
const InitialVersion = "0.1.0"

// PackageJSON is the typed subset of package.json the bootstrapper reads.
type PackageJSON struct {
	Name         string            `json:"name"`
	Version      string            `json:"version,omitempty"`
	Private      bool              `json:"private,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	Engines      map[string]string `json:"engines,omitempty"`
}

// NewRoot returns the minimal manifest written into a new project root.
func NewRoot(appName string) *Document {
	doc := NewDocument()
	_ = doc.Set("name", appName)
	_ = doc.Set("version", InitialVersion)
	_ = doc.Set("private", true)
	return doc
}

// Typed decodes the document into a PackageJSON.
func (d *Document) Typed() (*PackageJSON, error) {
	data, err := d.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("decoding package.json: %w", err)
	}
	return &pkg, nil
}

// ReadFile reads a package.json into a Document.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// WriteFile writes doc to path with a two-space indent and trailing newline.
func WriteFile(path string, doc *Document) error {
	data, err := doc.Bytes()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// UpdateFile reads path, applies patch, and writes the result back. Nothing
// is written if patch fails.
func UpdateFile(path string, patch func(*Document) error) error {
	doc, err := ReadFile(path)
	if err != nil {
		return err
	}
	if err := patch(doc); err != nil {
		return err
	}
	return WriteFile(path, doc)
}

// ReadPackage reads the manifest of a package that did not originate from
// this tool. path may name the package.json itself or the directory that
// contains it. The content must pass schema validation.
func ReadPackage(path string) (*PackageJSON, error) {
	if filepath.Base(path) != FileName {
		path = filepath.Join(path, FileName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("%s is not a valid package manifest: %s", path, result.Summary())
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc.Typed()
}

// Summary joins the issues into a single line.
func (r *ValidationResult) Summary() string {
	parts := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		if issue.Path != "" {
			parts = append(parts, issue.Path+": "+issue.Message)
		} else {
			parts = append(parts, issue.Message)
		}
	}
	return strings.Join(parts, "; ")
}

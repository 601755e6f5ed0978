package vuepress

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"
)

// Document is one read of the navigation file.
type Document struct {
	File     File
	Revision string // content hash, identical bytes give identical revisions
	Data     []byte
}

// Loader handles loading and parsing of the navigation file (YAML or JSON).
type Loader struct {
	filePath string
}

// NewLoader creates a new navigation file loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Path returns the file this loader reads.
func (l *Loader) Path() string { return l.filePath }

// Load reads and parses the navigation file
func (l *Loader) Load() (*Document, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read nav file: %w", err)
	}

	file, err := Parse(data)
	if err != nil {
		return nil, err
	}

	return &Document{
		File:     file,
		Revision: RevisionID(data),
		Data:     data,
	}, nil
}

// Parse decodes navigation file content. JSON input is accepted as well,
// since YAML is a superset of it.
func Parse(data []byte) (File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("failed to parse nav yaml: %w", err)
	}
	return file, nil
}

// RevisionID returns a stable identifier for file content.
func RevisionID(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}

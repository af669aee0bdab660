package model

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when the source holds no YAML document.
var ErrEmptyDocument = errors.New("empty resume document")

// Decode reads one YAML resume document. Unknown fields are rejected.
func Decode(r io.Reader) (Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, ErrEmptyDocument
		}
		return Document{}, fmt.Errorf("decode resume document: %w", err)
	}
	return doc, nil
}

// DecodeBytes is Decode over an in-memory source.
func DecodeBytes(data []byte) (Document, error) {
	return Decode(bytes.NewReader(data))
}

// LoadFile reads and decodes the resume source at path. The raw bytes are
// returned too so callers can fingerprint the source.
func LoadFile(path string) (Document, []byte, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Document{}, nil, fmt.Errorf("read resume source: %w", err)
	}
	doc, err := DecodeBytes(data)
	if err != nil {
		return Document{}, nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, data, nil
}

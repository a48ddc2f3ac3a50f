package utils

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads a YAML file and decodes it into target, rejecting unknown fields.
func LoadYAML(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if err := DecodeYAML(data, target); err != nil {
		return fmt.Errorf("failed to decode YAML from %s: %w", path, err)
	}
	return nil
}

// DecodeYAML decodes a YAML document in strict mode. An empty document is an error.
func DecodeYAML(data []byte, target interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty document")
		}
		return err
	}
	return nil
}

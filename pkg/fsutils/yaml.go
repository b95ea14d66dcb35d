package fsutils

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ReadYAMLFile decodes the YAML document in filePath into o, rejecting unknown fields.
// A missing or empty file leaves o untouched and is an error only when required.
func ReadYAMLFile(filePath string, required bool, o any) error {
	file, err := os.Open(filePath)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer func() {
		_ = file.Close()
	}()
	return decodeYAML(file, filePath, required, o)
}

func decodeYAML(r io.Reader, name string, required bool, o any) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	err := decoder.Decode(o)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		if required {
			return fmt.Errorf("%s is empty", name)
		}
		return nil
	default:
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
}

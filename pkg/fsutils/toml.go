package fsutils

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
)

// ReadTOMLFile decodes the TOML document in filePath into o through its `toml` struct tags.
// Durations may be given as strings such as "250ms". Unknown keys are rejected.
// A missing or empty file leaves o untouched and is an error only when required.
func ReadTOMLFile(filePath string, required bool, o any) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		if required {
			return fmt.Errorf("%s is empty", filePath)
		}
		return nil
	}

	var raw map[string]any
	if err = toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      o,
		TagName:     "toml",
		ErrorUnused: true,
		DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	if err = decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filePath, err)
	}
	return nil
}

package files

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format is a structured file encoding understood by Decode
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned when a file extension maps to no Format
var ErrUnknownFormat = errors.New("unknown file format")

// FormatFromPath picks the decoder for a file by its extension.
// JSON files may carry comments and trailing commas.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// ParseFormat converts a user-supplied format name
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "json", "jsonc":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
}

// Decode unmarshals data in the given format into v
func Decode(data []byte, format Format, v any) error {
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	case FormatTOML:
		return toml.Unmarshal(data, v)
	case FormatJSON:
		return json.Unmarshal(jsonc.ToJSON(data), v)
	}
	return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// ReadFile reads path and decodes it according to its extension
func ReadFile(path string, v any) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := Decode(data, format, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

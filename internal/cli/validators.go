package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pluqqy/taginput/pkg/taginput"
)

// ValidateFilePath validates that a file path exists and is a file
func ValidateFilePath(path string) error {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", path)
		}
		return fmt.Errorf("error accessing path: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, expected file: %s", path)
	}

	return nil
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	if Contains(validFormats, format) {
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ParseDelimiters splits a comma separated --delimiters value. The word
// "comma" stands for a literal comma and "space" for a space.
func ParseDelimiters(value string) ([]string, error) {
	var delimiters []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		switch strings.ToLower(part) {
		case "":
			continue
		case "comma":
			part = ","
		case "space":
			part = " "
		}
		delimiters = append(delimiters, string(taginput.NormalizeKey(part)))
	}
	if len(delimiters) == 0 {
		return nil, fmt.Errorf("at least one delimiter is required")
	}
	return delimiters, nil
}

// ValidateLengths checks the numeric input settings
func ValidateLengths(minQueryLength, maxSuggestions int) error {
	if minQueryLength < 0 {
		return fmt.Errorf("min query length cannot be negative: %d", minQueryLength)
	}
	if maxSuggestions < 1 {
		return fmt.Errorf("max suggestions must be at least 1: %d", maxSuggestions)
	}
	return nil
}

// Contains checks if a string is in a slice
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

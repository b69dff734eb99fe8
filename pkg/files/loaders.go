package files

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pluqqy/taginput/pkg/models"
)

// SettingsFileNames are probed, in order, when no explicit settings path
// is given
var SettingsFileNames = []string{
	".taginput.yaml",
	".taginput.yml",
	".taginput.toml",
}

// FindSettings returns the first settings file present in dir, or "" if
// there is none
func FindSettings(dir string) string {
	for _, name := range SettingsFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ReadSettings loads settings from path on top of the defaults, so a file
// only has to mention what it changes
func ReadSettings(path string) (*models.Settings, error) {
	settings := models.DefaultSettings()
	if path == "" {
		return settings, nil
	}

	if err := ReadFile(path, settings); err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pluqqy/taginput/pkg/files"
	"github.com/pluqqy/taginput/pkg/models"
	"github.com/pluqqy/taginput/pkg/tags"
)

// CommandContext carries settings and logging shared by commands
type CommandContext struct {
	SettingsPath string
	Settings     *models.Settings
	Logger       *slog.Logger

	logFile io.Closer
}

// NewCommandContext loads settings from settingsPath, or from the first
// settings file found in the working directory when it is empty
func NewCommandContext(settingsPath string) (*CommandContext, error) {
	if settingsPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			settingsPath = files.FindSettings(cwd)
		}
	}

	settings, err := files.ReadSettings(settingsPath)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		SettingsPath: settingsPath,
		Settings:     settings,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// SetupLogging configures the context logger. Records go to logPath when
// set, otherwise to fallback; a nil fallback discards them.
func (c *CommandContext) SetupLogging(debug bool, logPath string, fallback io.Writer) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	w := fallback
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		c.logFile = f
		w = f
	}
	if w == nil {
		w = io.Discard
	}

	c.Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return nil
}

// LoadCatalog returns the candidate catalog named by path, falling back to
// the settings' suggestion source. With neither it returns an empty catalog.
func (c *CommandContext) LoadCatalog(path string) (*tags.Catalog, error) {
	if path == "" {
		path = c.Settings.Suggestions.Source
	}
	if path == "" {
		return &tags.Catalog{}, nil
	}
	if err := ValidateFilePath(path); err != nil {
		return nil, err
	}
	return tags.LoadCatalog(path)
}

// Close releases the log file, if any
func (c *CommandContext) Close() error {
	if c.logFile != nil {
		return c.logFile.Close()
	}
	return nil
}

package cli

import (
	"fmt"
	"os"
)

// PrintSuccess prints a success message unless quiet mode is enabled
func PrintSuccess(format string, args ...interface{}) {
	if !quiet {
		msg := fmt.Sprintf(format, args...)
		if !noColor {
			fmt.Fprintf(os.Stderr, "✓ %s\n", msg)
		} else {
			fmt.Fprintf(os.Stderr, "OK: %s\n", msg)
		}
	}
}

// PrintInfo prints an info message unless quiet mode is enabled
func PrintInfo(format string, args ...interface{}) {
	if !quiet {
		msg := fmt.Sprintf(format, args...)
		if !noColor {
			fmt.Fprintf(os.Stderr, "ℹ %s\n", msg)
		} else {
			fmt.Fprintf(os.Stderr, "INFO: %s\n", msg)
		}
	}
}

// PrintWarning prints a warning message to stderr
func PrintWarning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if !noColor {
		fmt.Fprintf(os.Stderr, "⚠ %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", msg)
	}
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if !noColor {
		fmt.Fprintf(os.Stderr, "✗ %s\n", msg)
	} else {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", msg)
	}
}

// Global flags (set from the cmd package)
var (
	quiet   bool
	noColor bool
)

// SetGlobalFlags sets the global flag values from the cmd package
func SetGlobalFlags(q, nc bool) {
	quiet = q
	noColor = nc
}

// NoColor reports whether colour output is disabled
func NoColor() bool {
	return noColor
}

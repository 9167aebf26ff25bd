package console

import (
	"path/filepath"
	"strings"
	"time"
)

// DefaultExtension is added to save paths that have none.
const DefaultExtension = ".txt"

// DefaultFileName suggests a save path for a log saved at t.
func DefaultFileName(t time.Time) string {
	return "serial_log_" + t.Format("20060102-150405") + DefaultExtension
}

// WithDefaultExtension trims path and appends DefaultExtension when the file
// name has no extension.
func WithDefaultExtension(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if filepath.Ext(path) == "" {
		return path + DefaultExtension
	}
	return path
}

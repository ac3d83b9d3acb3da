package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves $VAR references and a leading ~ in a workbook path.
// Relative paths stay relative to the working directory.
func ExpandPath(path string) string {
	path = os.ExpandEnv(strings.TrimSpace(path))
	if path == "" {
		return ""
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return filepath.Clean(path)
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// osUserHomeDir allows tests to substitute the home directory lookup.
var osUserHomeDir = os.UserHomeDir

// ExpandHome rewrites a leading ~ or ~/ prefix to the current user's home
// directory. Paths without the prefix are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	if path == "~" {
		return home, nil
	}

	return filepath.Join(home, path[2:]), nil
}

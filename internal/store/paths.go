package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDir returns the directory holding recorded runs. ZADOS_DATA_DIR
// overrides the default of ~/.zados.
func DataDir() (string, error) {
	if dir := os.Getenv("ZADOS_DATA_DIR"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".zados"), nil
}

// DefaultDBPath returns the default run database path inside DataDir.
func DefaultDBPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "runs.db"), nil
}

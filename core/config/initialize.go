package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// Initialize writes the default configuration into dir. An existing
// configuration is left untouched.
func Initialize(dir string, logger *log.Logger) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(dir, ConfigurationName)
	switch _, err := os.Stat(path); {
	case err == nil:
		logger.Printf("%s already exists, skipping", path)
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	logger.Printf("Writing %s", path)
	return os.WriteFile(path, defaultConfigData, 0644)
}

package config

import (
	"os"
	"path/filepath"

	"github.com/mrz1836/horizon/internal/constants"
	"github.com/mrz1836/horizon/internal/errors"
)

// GlobalConfigDir returns the path to the Horizon configuration directory.
// This is typically ~/.horizon on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.HorizonHome), nil
}

// GlobalConfigPath returns the full path to the configuration file.
// This is typically ~/.horizon/config.yaml on Unix systems.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}

// Package storage persists perft results: a node-count cache keyed by
// position hash and depth, and a log of timed perft runs.
package storage

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/apex/log"
)

const appName = "chesscore"

// DataDirEnv overrides the platform data directory when set.
const DataDirEnv = "CHESSCORE_DATA_DIR"

// GetDataDir returns the platform-specific data directory for the application.
// - macOS: ~/Library/Application Support/chesscore/
// - Linux: ~/.local/share/chesscore/
// - Windows: %APPDATA%/chesscore/
func GetDataDir() (string, error) {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
		return dir, nil
	}

	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		// Check XDG_DATA_HOME first
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// GetDatabaseDir returns the directory for storing the BadgerDB database.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}

	log.WithField("dir", dbDir).Debug("database directory")
	return dbDir, nil
}

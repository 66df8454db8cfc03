package internal

import (
	"log"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

var (
	// DefaultAppName is the canonical application name used for paths and logging
	DefaultAppName    = "filenest"
	DefaultConfigPath = filepath.Join(getHomeDir(), ".config", DefaultAppName)
	DefaultConfigFile = filepath.Join(DefaultConfigPath, "config.yaml")
	DefaultWatchDir   = filepath.Join(getHomeDir(), "Downloads")
	DefaultLockDir    = filepath.Join(DefaultConfigPath, "locks")
	DefaultHistoryDB  = filepath.Join(DefaultConfigPath, "history.db")

	// ProtectedDirName is the reserved folder excluded from organization.
	// Files moved here by the protect operation are never reorganized.
	ProtectedDirName = "protected_files"
)

func getHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current working directory if home directory is unavailable
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			// Last resort - use tmp directory
			log.Printf("Unable to get home or working directory, using /tmp: %v", err)
			return "/tmp"
		}
		log.Printf("Unable to get home directory, using current working directory: %v", err)
		return cwd
	}
	return homeDir
}

// GetLogger returns a properly configured zerolog logger instance
func GetLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

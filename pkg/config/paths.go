// Copyright © 2026 Teradata Corporation - All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package config locates CyberWallet's on-disk state.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DataDirEnv overrides the data directory.
const DataDirEnv = "CYBERWALLET_DATA_DIR"

// Default file names inside the data directory.
const (
	ConfigFileName    = "cwcolor"
	ThemeFileName     = "theme.yaml"
	ThemeDatabaseName = "theme.db"
)

// GetDataDir returns the CyberWallet data directory.
//
// Priority:
// 1. CYBERWALLET_DATA_DIR environment variable (if set and non-empty)
// 2. ~/.cyberwallet (default)
//
// The returned path is absolute. A leading ~/ is expanded to the user's home
// directory and relative paths are resolved against the working directory.
//
// It reads the environment directly, not viper, because it is used to find
// the config file itself.
func GetDataDir() string {
	if dataDir := os.Getenv(DataDirEnv); dataDir != "" {
		return expandPath(dataDir)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".cyberwallet"
	}
	return filepath.Join(homeDir, ".cyberwallet")
}

// GetSubDir returns a path inside the data directory.
func GetSubDir(name string) string {
	return filepath.Join(GetDataDir(), name)
}

// DefaultThemePath returns where the theme preference lives for backend
// ("file" or "sqlite").
func DefaultThemePath(backend string) string {
	if backend == "sqlite" {
		return GetSubDir(ThemeDatabaseName)
	}
	return GetSubDir(ThemeFileName)
}

// ConfigSearchPaths lists the directories searched for cwcolor.yaml, in order.
func ConfigSearchPaths() []string {
	return []string{GetDataDir(), ".", "/etc/cyberwallet"}
}

// ExpandPath expands a leading ~/ and makes path absolute. Empty stays empty.
func ExpandPath(path string) string {
	if path == "" || path == ":memory:" {
		return path
	}
	return expandPath(path)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

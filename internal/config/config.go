package config

import (
	"os"
	"path/filepath"
)

const VERSION = "0.4.1"

// Config holds global application settings
type Config struct {
	Debug       bool
	Quiet       bool
	Version     string
	SubmitCmd   string            // Submission command (path or name, e.g. "bsub")
	ScriptsDir  string            // Directory for transient rendered scripts
	KeepScripts bool              // Keep rendered scripts after submission
	DefaultSets map[string]string // Default substitutions, overridden by --set
}

// Global holds the singleton configuration instance
var Global Config

// LoadDefaults initializes Global with built-in defaults.
// Viper values and command-line flags are layered on top afterwards.
func LoadDefaults() {
	Global = Config{
		Debug:       false,
		Quiet:       false,
		Version:     VERSION,
		SubmitCmd:   "",
		ScriptsDir:  filepath.Join(os.TempDir(), "batchsub"),
		KeepScripts: false,
		DefaultSets: make(map[string]string),
	}
}

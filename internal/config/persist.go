package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/viper"
)

// ConfigFilename is the name of the config file
const ConfigFilename = "config"

// ConfigType is the type of config file (yaml, json, toml)
const ConfigType = "yaml"

// InitViper initializes Viper with proper search paths and defaults
// Priority (highest to lowest):
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (BATCHSUB_*)
// 3. User config file (~/.config/batchsub/config.yaml)
// 4. System config file (/etc/batchsub/config.yaml)
// 5. Defaults
func InitViper() error {
	viper.SetConfigName(ConfigFilename)
	viper.SetConfigType(ConfigType)

	// Set config search paths (order matters)
	// User config (highest priority)
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(userConfigDir, "batchsub"))
	}

	// Home directory fallback
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".batchsub"))
	}

	// System-wide config (lower priority)
	viper.AddConfigPath("/etc/batchsub")

	// Current directory (for development)
	viper.AddConfigPath(".")

	// Environment variables
	viper.SetEnvPrefix("BATCHSUB")
	viper.AutomaticEnv()

	// Set defaults (lowest priority)
	setDefaults()

	// Read config file (non-fatal if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; will use defaults and auto-detect
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// setDefaults sets default values for all config keys
func setDefaults() {
	viper.SetDefault("submit_cmd", "")
	viper.SetDefault("scripts_dir", filepath.Join(os.TempDir(), "batchsub"))
	viper.SetDefault("keep_scripts", false)
	viper.SetDefault("set", map[string]string{})
}

// GetUserConfigPath returns the path to the user config file
func GetUserConfigPath() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".batchsub", ConfigFilename+"."+ConfigType), nil
	}

	return filepath.Join(userConfigDir, "batchsub", ConfigFilename+"."+ConfigType), nil
}

// SaveConfig saves current Viper config to user config file
func SaveConfig() error {
	configPath, err := GetUserConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Create directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write config file
	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ValidateBinary checks if a binary exists and is executable
func ValidateBinary(binPath string) bool {
	if binPath == "" {
		return false
	}

	// If it's a full path, check directly
	if filepath.IsAbs(binPath) {
		info, err := os.Stat(binPath)
		if err != nil {
			return false
		}
		// Check if it's executable (unix-style check)
		return info.Mode()&0111 != 0
	}

	// Otherwise, try to find it in PATH
	_, err := exec.LookPath(binPath)
	return err == nil
}

// DetectSubmitCmd attempts to find a scheduler submission command.
// Returns (binary_path, dialect_name) if found. LSF is tried first because
// bsub-style templates are the primary target.
func DetectSubmitCmd() (string, string) {
	// Try LSF
	if path, err := exec.LookPath("bsub"); err == nil {
		return path, "LSF"
	}

	// Try SLURM
	if path, err := exec.LookPath("sbatch"); err == nil {
		return path, "SLURM"
	}

	// Try PBS/Torque (SGE also answers to qsub)
	if path, err := exec.LookPath("qsub"); err == nil {
		return path, "PBS"
	}

	return "", ""
}

// AutoDetectAndSave auto-detects the submission command and saves to config if needed
// Returns true if config was updated
func AutoDetectAndSave() (bool, error) {
	updated := false

	submitCmd := viper.GetString("submit_cmd")
	if !ValidateBinary(submitCmd) {
		detectedBin, detectedDialect := DetectSubmitCmd()
		if detectedBin != "" {
			viper.Set("submit_cmd", detectedBin)
			viper.Set("submit_dialect", detectedDialect)
			updated = true
		}
	}

	// Save if anything was updated
	if updated {
		if err := SaveConfig(); err != nil {
			return false, err
		}
	}

	return updated, nil
}

// LoadFromViper loads config from Viper into the Global struct
func LoadFromViper() {
	if cmd := viper.GetString("submit_cmd"); cmd != "" {
		Global.SubmitCmd = cmd
	}
	if dir := viper.GetString("scripts_dir"); dir != "" {
		Global.ScriptsDir = dir
	}
	Global.KeepScripts = viper.GetBool("keep_scripts")

	// Default substitutions from the config file; per-invocation --set pairs
	// are merged on top by the CLI layer.
	if sets := viper.GetStringMapString("set"); len(sets) > 0 {
		for k, v := range sets {
			Global.DefaultSets[k] = v
		}
	}
}

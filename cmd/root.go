package cmd

import (
	"fmt"
	"os"

	"github.com/Justype/batchsub/internal/config"
	"github.com/Justype/batchsub/internal/utils"
	"github.com/spf13/cobra"
)

var (
	debugMode     bool
	quietMode     bool
	submitCmdFlag string
)

var rootCmd = &cobra.Command{
	Use:           "batchsub",
	Short:         "BatchSub: render per-work-item batch script templates and hand them to a cluster scheduler.",
	Version:       config.VERSION,
	SilenceErrors: true,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Step 1: Load built-in defaults
		config.LoadDefaults()

		// Step 2: Initialize Viper (read config file, env vars)
		if err := config.InitViper(); err != nil {
			utils.PrintDebug("Error reading config file: %v", err)
		}

		// Step 3: Auto-detect the submission command if needed and save to config
		updated, err := config.AutoDetectAndSave()
		if err != nil {
			utils.PrintDebug("Failed to save config: %v", err)
		} else if updated {
			if configPath, err := config.GetUserConfigPath(); err == nil {
				utils.PrintDebug("Auto-detected submission command saved to: %s", configPath)
			}
		}

		// Step 4: Load detected values from Viper into Global config
		config.LoadFromViper()

		// Step 5: Apply command-line flags (highest priority)
		if debugMode {
			utils.DebugMode = true
			config.Global.Debug = true
			utils.PrintDebug("Debug mode enabled")
			utils.PrintDebug("BatchSub Version: %s", utils.StyleInfo(config.VERSION))
			utils.PrintDebug("Scripts Directory: %s", config.Global.ScriptsDir)
			if config.Global.SubmitCmd != "" {
				utils.PrintDebug("Submission Command: %s", config.Global.SubmitCmd)
			}
		}

		if quietMode {
			utils.QuietMode = true
			config.Global.Quiet = true
		}

		if submitCmdFlag != "" {
			config.Global.SubmitCmd = submitCmdFlag
			utils.PrintDebug("Submission command overridden: %s", submitCmdFlag)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra's automatic error printing is silenced. Print the error once
		// and map it to a distinct exit code (render vs. submission failure).
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

func init() {
	// Subcommands are attached to rootCmd in their respective init() functions
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode with verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().StringVar(&submitCmdFlag, "submit-cmd", "", "Submission command (overrides config and auto-detection)")
}

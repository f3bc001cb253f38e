package cmd

import (
	"fmt"
	"os"

	"github.com/Justype/batchsub/internal/config"
	"github.com/Justype/batchsub/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var showConfigPath bool

// configKeys is the list of known configuration keys for shell completion
var configKeys = []string{
	"submit_cmd",
	"scripts_dir",
	"keep_scripts",
	"set",
}

// configKeysCompletion returns config keys for shell completion
func configKeysCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return configKeys, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage batchsub configuration",
	Long: `Manage batchsub configuration settings.

Configuration file priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (BATCHSUB_*)
  3. User config file (~/.config/batchsub/config.yaml)
  4. System config file (/etc/batchsub/config.yaml)
  5. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		if showConfigPath {
			configPath, err := config.GetUserConfigPath()
			if err != nil {
				utils.PrintError("Failed to get config path: %v", err)
				os.Exit(1)
			}
			fmt.Println(configPath)
			return
		}

		fmt.Println(utils.StyleTitle("Configuration:"))
		fmt.Printf("  submit_cmd:   %s\n", utils.StylePath(config.Global.SubmitCmd))
		fmt.Printf("  scripts_dir:  %s\n", utils.StylePath(config.Global.ScriptsDir))
		fmt.Printf("  keep_scripts: %v\n", config.Global.KeepScripts)
		if len(config.Global.DefaultSets) > 0 {
			fmt.Println("  set:")
			for k, v := range config.Global.DefaultSets {
				fmt.Printf("    %s: %s\n", utils.StyleName(k), v)
			}
		}

		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Println()
			fmt.Printf("Config file: %s\n", utils.StylePath(used))
		} else {
			fmt.Println()
			fmt.Printf("%s (defaults and environment only)\n", utils.StyleWarning("No config file found"))
		}
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get [key]",
	Short:             "Get a configuration value",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: configKeysCompletion,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(viper.Get(args[0]))
	},
}

var configSetCmd = &cobra.Command{
	Use:               "set [key] [value]",
	Short:             "Set a configuration value and save it",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: configKeysCompletion,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		viper.Set(args[0], args[1])
		if err := config.SaveConfig(); err != nil {
			return err
		}
		configPath, _ := config.GetUserConfigPath()
		utils.PrintSuccess("Saved %s to %s", utils.StyleName(args[0]), utils.StylePath(configPath))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configShowCmd.Flags().BoolVar(&showConfigPath, "path", false, "Print only the user config file path")
}

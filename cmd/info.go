package cmd

import (
	"fmt"

	"github.com/Justype/batchsub/internal/config"
	"github.com/Justype/batchsub/internal/submit"
	"github.com/Justype/batchsub/internal/utils"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display submission command information",
	Long: `Display information about the detected scheduler submission command.

Shows the command path, dialect (LSF, SLURM, PBS or generic), scheduler
version, and availability status.`,
	Example: `  batchsub info                               # Auto-detected submission command
  batchsub info --submit-cmd /opt/lsf/bin/bsub`,
	Run: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	submitter, err := submit.New(config.Global.SubmitCmd, submit.Options{})
	if err != nil {
		// If we're inside a scheduled job, show a concise message and exit
		if submit.IsInsideJob() {
			utils.PrintMessage("Submission Status: %s", utils.StyleWarning("Unavailable (inside job)"))
			utils.PrintMessage("")
			utils.PrintMessage("You are currently inside a scheduled job; job submission is disabled to prevent nested submissions.")
			return
		}

		utils.PrintMessage("Submission Status: %s", utils.StyleError("Not Found"))
		utils.PrintMessage("")
		utils.PrintMessage("No scheduler submission command detected on this system.")
		utils.PrintMessage("Looked for: bsub (LSF), sbatch (SLURM), qsub (PBS). Use --submit-cmd to set one explicitly.")
		return
	}

	info := submitter.GetInfo(cmd.Context())

	// Structured output, no [BSB] prefix
	fmt.Println("Submission Command Information:")
	fmt.Printf("  Command:   %s\n", utils.StylePath(info.Command))
	dialect := string(info.Dialect)
	if dialect == "" {
		dialect = "generic"
	}
	fmt.Printf("  Dialect:   %s\n", utils.StyleInfo(dialect))

	if info.Version != "" {
		fmt.Printf("  Version:   %s\n", utils.StyleNumber(info.Version))
	}

	if info.InJob {
		fmt.Printf("  Status:    %s (inside job)\n", utils.StyleError("Unavailable"))
		fmt.Println()
		fmt.Println("You are currently inside a scheduled job (detected via environment).")
		fmt.Println("Job submission is disabled to prevent nested job submissions.")
		return
	}

	fmt.Printf("  Status:    %s\n", utils.StyleSuccess("Available"))

	if info.Dialect == submit.DialectLSF && info.Version != "" {
		fmt.Println()
		if info.GpuDirective {
			fmt.Printf("This LSF supports the -gpu directive syntax (%s >= 10.1).\n", info.Version)
		} else {
			fmt.Printf("This LSF (%s) predates the -gpu directive; templates should request GPUs via -R \"rusage[ngpus_physical=N]\".\n", info.Version)
		}
	}
}

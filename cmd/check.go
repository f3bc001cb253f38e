package cmd

import (
	"fmt"

	"github.com/Justype/batchsub/internal/config"
	"github.com/Justype/batchsub/internal/template"
	"github.com/Justype/batchsub/internal/utils"
	"github.com/spf13/cobra"
)

var templateCheckCmd = &cobra.Command{
	Use:   "check [template]",
	Short: "Check a job template and list its placeholders",
	Long: `Validate a template's placeholder syntax and list the placeholders it uses.

Reports which placeholders are already satisfied by the 'set' defaults in the
config file and which must be supplied with --set at submission time.
Malformed templates (unbalanced braces, bad placeholder names) exit with the
render-failure code.`,
	Example: `  batchsub check job.lsf
  batchsub check templates/gpu-job.lsf`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	rootCmd.AddCommand(templateCheckCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	tmpl, err := template.Load(args[0])
	if err != nil {
		return err
	}

	placeholders := tmpl.Placeholders()
	if len(placeholders) == 0 {
		utils.PrintMessage("Template %s has no placeholders", utils.StylePath(tmpl.Name()))
		return nil
	}

	utils.PrintMessage("Template %s uses %d placeholder(s):", utils.StylePath(tmpl.Name()), len(placeholders))
	unsatisfied := 0
	for _, name := range placeholders {
		if value, ok := config.Global.DefaultSets[name]; ok {
			fmt.Printf("  %s %s (default: %s)\n", utils.StyleSuccess("✓"), utils.StyleName(name), value)
		} else {
			fmt.Printf("  %s %s\n", utils.StyleWarning("•"), utils.StyleName(name))
			unsatisfied++
		}
	}

	if unsatisfied > 0 {
		utils.PrintHint("Supply the remaining placeholder(s) with --set key=value")
	}
	return nil
}

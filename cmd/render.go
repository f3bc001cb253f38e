package cmd

import (
	"fmt"
	"os"

	"github.com/Justype/batchsub/internal/config"
	"github.com/Justype/batchsub/internal/template"
	"github.com/Justype/batchsub/internal/utils"
	"github.com/spf13/cobra"
)

var (
	renderTemplatePath string
	renderSetPairs     []string
	renderOutputPath   string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a job template without submitting it",
	Long: `Render a batch script template to stdout or a file.

All placeholders must be resolved; rendering fails listing any missing keys.
Useful for inspecting the exact script that 'submit' would hand to the
scheduler.`,
	Example: `  batchsub render --template job.lsf --set work_item_num=7 --set work_dir=/tmp/x
  batchsub render --template job.lsf --set n=7 -o job-7.sh`,
	SilenceUsage: true,
	RunE:         runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderTemplatePath, "template", "t", "", "Path to the job template (required)")
	renderCmd.Flags().StringArrayVarP(&renderSetPairs, "set", "s", nil, "Placeholder substitution as key=value (repeatable)")
	renderCmd.Flags().StringVarP(&renderOutputPath, "output", "o", "", "Write the rendered script to a file instead of stdout")
	renderCmd.MarkFlagRequired("template")
}

func runRender(cmd *cobra.Command, args []string) error {
	tmpl, err := template.Load(renderTemplatePath)
	if err != nil {
		return err
	}

	flagSets, err := utils.ParseKeyValues(renderSetPairs)
	if err != nil {
		return err
	}

	rendered, err := tmpl.Render(mergeSubstitutions(config.Global.DefaultSets, nil, flagSets))
	if err != nil {
		return err
	}

	if renderOutputPath == "" {
		fmt.Fprint(os.Stdout, rendered)
		return nil
	}

	if err := os.WriteFile(renderOutputPath, []byte(rendered), utils.PermExec); err != nil {
		return fmt.Errorf("failed to write rendered script: %w", err)
	}
	utils.PrintSuccess("Rendered %s to %s", utils.StyleName(tmpl.Name()), utils.StylePath(renderOutputPath))
	return nil
}

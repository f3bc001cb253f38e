package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Justype/batchsub/internal/config"
	"github.com/Justype/batchsub/internal/manifest"
	"github.com/Justype/batchsub/internal/submit"
	"github.com/Justype/batchsub/internal/template"
	"github.com/Justype/batchsub/internal/utils"
	"github.com/spf13/cobra"
)

var (
	submitTemplatePath string
	submitSetPairs     []string
	submitManifestPath string
	submitTag          string
	submitDryRun       bool
	submitKeepScript   bool
)

var submitJobCmd = &cobra.Command{
	Use:   "submit",
	Short: "Render a job template and submit it to the scheduler",
	Long: `Render a batch script template and hand it to the scheduler submission command.

Placeholders like {work_item_num} and {work_dir} are replaced from --set pairs
(and default substitutions from the config file). The rendered script is written
to a transient uniquely-named file and passed to the submission command; the
job ID printed by the scheduler is reported on success.

With --manifest, one job is submitted per work item listed in the manifest,
strictly in order. The first failure aborts the run.

Substitution priority (highest to lowest):
  1. --set pairs
  2. Work-item 'set' entries from the manifest
  3. Manifest-level 'set' defaults
  4. 'set' defaults from the config file`,
	Example: `  batchsub submit --template job.lsf --set work_item_num=7 --set work_dir=/scratch/run1
  batchsub submit --template job.lsf --manifest items.yaml
  batchsub submit --template job.lsf --set n=1 --submit-cmd /opt/lsf/10.1/bin/bsub
  batchsub submit --template job.lsf --set n=1 --dry-run     # print, don't submit`,
	SilenceUsage: true,
	RunE:         runSubmit,
}

func init() {
	rootCmd.AddCommand(submitJobCmd)
	submitJobCmd.Flags().StringVarP(&submitTemplatePath, "template", "t", "", "Path to the job template (required)")
	submitJobCmd.Flags().StringArrayVarP(&submitSetPairs, "set", "s", nil, "Placeholder substitution as key=value (repeatable)")
	submitJobCmd.Flags().StringVarP(&submitManifestPath, "manifest", "m", "", "Work-item manifest for fan-out submission")
	submitJobCmd.Flags().StringVar(&submitTag, "tag", "", "Work-item tag used in the transient script name (default: template name)")
	submitJobCmd.Flags().BoolVar(&submitDryRun, "dry-run", false, "Render only; print the script instead of submitting")
	submitJobCmd.Flags().BoolVar(&submitKeepScript, "keep-script", false, "Keep the transient rendered script after submission")
	submitJobCmd.MarkFlagRequired("template")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	tmpl, err := template.Load(submitTemplatePath)
	if err != nil {
		return err
	}

	flagSets, err := utils.ParseKeyValues(submitSetPairs)
	if err != nil {
		return err
	}

	// Resolve the per-item substitution maps up front so a missing key fails
	// before anything is submitted.
	type workItem struct {
		tag      string
		rendered string
	}
	var items []workItem

	if submitManifestPath != "" {
		man, err := manifest.Load(submitManifestPath)
		if err != nil {
			return err
		}
		for _, item := range man.Items {
			subs := mergeSubstitutions(config.Global.DefaultSets, man.Substitutions(item), flagSets)
			rendered, err := tmpl.Render(subs)
			if err != nil {
				return fmt.Errorf("work item %s: %w", item.Name, err)
			}
			items = append(items, workItem{tag: item.Name, rendered: rendered})
		}
	} else {
		subs := mergeSubstitutions(config.Global.DefaultSets, nil, flagSets)
		rendered, err := tmpl.Render(subs)
		if err != nil {
			return err
		}
		tag := submitTag
		if tag == "" {
			tag = strings.TrimSuffix(filepath.Base(submitTemplatePath), filepath.Ext(submitTemplatePath))
		}
		items = append(items, workItem{tag: tag, rendered: rendered})
	}

	if submitDryRun {
		for _, item := range items {
			utils.PrintMessage("Rendered script for %s:", utils.StyleName(item.tag))
			fmt.Fprint(os.Stdout, item.rendered)
		}
		return nil
	}

	submitter, err := newSubmitter()
	if err != nil {
		return err
	}

	// Strictly sequential: one render, one submission attempt per item.
	for _, item := range items {
		handle, err := submitter.Submit(cmd.Context(), item.rendered, item.tag)
		if err != nil {
			return err
		}
		utils.PrintSuccess("Submitted job %s with ID %s", utils.StyleName(item.tag), utils.StyleNumber(handle))
	}

	if len(items) > 1 {
		utils.PrintMessage("Submitted %d work items", len(items))
	}
	return nil
}

// newSubmitter builds a Submitter from the global config, refusing nested
// submission from inside a running job.
func newSubmitter() (*submit.Submitter, error) {
	if submit.IsInsideJob() {
		return nil, submit.ErrAlreadyInJob
	}
	return submit.New(config.Global.SubmitCmd, submit.Options{
		ScriptsDir:  config.Global.ScriptsDir,
		KeepScripts: config.Global.KeepScripts || submitKeepScript,
	})
}

// mergeSubstitutions overlays the maps left to right; later maps win.
func mergeSubstitutions(maps ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}

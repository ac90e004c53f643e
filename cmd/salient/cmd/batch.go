package cmd

import (
	"fmt"

	"github.com/MeKo-Tech/salient/internal/batch"
	"github.com/MeKo-Tech/salient/internal/rips"
	"github.com/spf13/cobra"
)

// batchCmd represents the batch command.
var batchCmd = &cobra.Command{
	Use:   "batch [files or directories...]",
	Short: "Localize salient objects in many images",
	Long: `Run detection over a set of images given as files or directories.
Per-image failures are recorded in the output instead of aborting the run
unless --fail-fast is set.

Examples:
  salient batch photos/
  salient batch photos/ --recursive --include "*.png" --format csv
  salient batch a.png b.png --mask-dir masks/ --output results.json`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		policy, err := rips.ParsePolicy(cfg.Detector.Policy)
		if err != nil {
			return err
		}

		bcfg := batch.DefaultConfig()
		bcfg.Detector.Epsilon = cfg.Detector.Epsilon
		bcfg.Detector.Scaling = cfg.Detector.Scaling
		bcfg.Detector.Policy = policy
		bcfg.Detector.Workers = cfg.Detector.Workers
		bcfg.Side = cfg.Detector.Side

		flags := cmd.Flags()
		bcfg.Recursive, _ = flags.GetBool("recursive")
		bcfg.IncludePatterns, _ = flags.GetStringSlice("include")
		bcfg.ExcludePatterns, _ = flags.GetStringSlice("exclude")
		bcfg.MaskDir, _ = flags.GetString("mask-dir")
		bcfg.Format, _ = flags.GetString("format")
		bcfg.OutputFile, _ = flags.GetString("output")
		bcfg.Quiet, _ = flags.GetBool("quiet")
		failFast, _ := flags.GetBool("fail-fast")
		bcfg.ContinueOnError = !failFast
		showStats, _ := flags.GetBool("stats")

		res, err := batch.ProcessBatch(cmd.Context(), args, &bcfg)
		if err != nil {
			return fmt.Errorf("batch processing failed: %w", err)
		}

		if err := res.SaveResults(cmd.OutOrStdout(), bcfg.Format, bcfg.OutputFile, bcfg.Quiet); err != nil {
			return err
		}
		if showStats && !bcfg.Quiet {
			res.PrintStats(cmd.OutOrStdout())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().Bool("recursive", false, "descend into subdirectories")
	batchCmd.Flags().StringSlice("include", nil, "only process files matching these glob patterns")
	batchCmd.Flags().StringSlice("exclude", nil, "skip files matching these glob patterns")
	batchCmd.Flags().String("mask-dir", "", "write one mask PNG per image into this directory")
	batchCmd.Flags().String("format", "text", "output format (text, json, csv)")
	batchCmd.Flags().String("output", "", "write results to this file instead of stdout")
	batchCmd.Flags().Bool("quiet", false, "suppress non-result output")
	batchCmd.Flags().Bool("fail-fast", false, "abort on the first failing image")
	batchCmd.Flags().Bool("stats", false, "print processing statistics")
}

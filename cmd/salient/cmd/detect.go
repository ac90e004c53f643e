package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/MeKo-Tech/salient/internal/rips"
	"github.com/MeKo-Tech/salient/internal/saliency"
	"github.com/MeKo-Tech/salient/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// detectCmd represents the detect command.
var detectCmd = &cobra.Command{
	Use:   "detect [image]",
	Short: "Localize a salient object in a grayscale image",
	Long: `Build the nested-square region graph of an image, compute its connected
components and localize the salient object as a minimal bounding square.

Supported formats: JPEG, PNG, BMP

Examples:
  salient detect photo.png
  salient detect photo.png --epsilon 2 --policy disjunctive
  salient detect photo.png --side 64 --mask mask.png --format json`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		policy, err := rips.ParsePolicy(cfg.Detector.Policy)
		if err != nil {
			return err
		}

		img, meta, err := utils.LoadImage(args[0])
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", args[0], err)
		}
		slog.Debug("image loaded", "path", meta.Path, "format", meta.Format,
			"width", meta.Width, "height", meta.Height)

		grid, err := utils.GridFromImage(img, cfg.Detector.Side)
		if err != nil {
			return fmt.Errorf("failed to convert %s: %w", args[0], err)
		}

		detector, err := saliency.NewBuilder().
			WithEpsilon(cfg.Detector.Epsilon).
			WithScaling(cfg.Detector.Scaling).
			WithPolicy(policy).
			WithWorkers(cfg.Detector.Workers).
			Build()
		if err != nil {
			return fmt.Errorf("failed to build detector: %w", err)
		}

		res, err := detector.DetectContext(cmd.Context(), grid)
		if err != nil {
			if errors.Is(err, saliency.ErrNoBoundaryFound) {
				if res != nil && res.Degenerate {
					slog.Warn("input has a single intensity value")
				}
				return fmt.Errorf("no detectable object in %s: %w", args[0], err)
			}
			return fmt.Errorf("detection failed for %s: %w", args[0], err)
		}
		if res.Degenerate {
			slog.Warn("input has a single intensity value; result is degenerate")
		}

		if cfg.Output.Mask != "" {
			if err := utils.SaveMask(res.Mask, cfg.Output.Mask); err != nil {
				return err
			}
			slog.Info("mask written", "path", cfg.Output.Mask)
		}

		switch cfg.Output.Format {
		case "json":
			data, err := saliency.ResultToJSON(res)
			if err != nil {
				return fmt.Errorf("failed to serialize result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		default:
			fmt.Fprint(cmd.OutOrStdout(), saliency.FormatText(res))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().Float64("epsilon", 1.0, "error parameter controlling connectivity strictness")
	detectCmd.Flags().Float64("scaling", 1.0, "scaling constant for the conjunctive policy")
	detectCmd.Flags().String("policy", "conjunctive", "connectivity policy (conjunctive, disjunctive)")
	detectCmd.Flags().Int("workers", 0, "builder workers (0 = number of CPUs)")
	detectCmd.Flags().Int("side", 0, "resize input to this square side (0 = keep native size)")
	detectCmd.Flags().String("format", "text", "output format (text, json)")
	detectCmd.Flags().String("mask", "", "write the detection mask to this file")

	_ = viper.BindPFlag("detector.epsilon", detectCmd.Flags().Lookup("epsilon"))
	_ = viper.BindPFlag("detector.scaling", detectCmd.Flags().Lookup("scaling"))
	_ = viper.BindPFlag("detector.policy", detectCmd.Flags().Lookup("policy"))
	_ = viper.BindPFlag("detector.workers", detectCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("detector.side", detectCmd.Flags().Lookup("side"))
	_ = viper.BindPFlag("output.format", detectCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("output.mask", detectCmd.Flags().Lookup("mask"))
}

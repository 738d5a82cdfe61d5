package cmd

import (
	"fmt"

	"github.com/brafe/qc/internal/config"
	"github.com/brafe/qc/internal/guide"
	"github.com/brafe/qc/internal/output"
	"github.com/spf13/cobra"
)

var guideCmd = &cobra.Command{
	Use:   "guide [dim|bend|loi]",
	Short: "Show measurement instructions",
	Long: `Shows the step-by-step instructions for a test. Without a topic every
test's instructions are shown. Values reflect the current config.`,
	Example:   `  qc guide loi`,
	GroupID:   "reference",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(guide.TopicDimensional), string(guide.TopicBend), string(guide.TopicLOI)},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fail(cmd, err)
		}

		text := guide.All(guideSettings(cfg))
		if len(args) == 1 {
			topic, err := guide.ParseTopic(args[0])
			if err != nil {
				return fail(cmd, fmt.Errorf("%w: %v", errInvalidInput, err))
			}
			text = guide.Markdown(topic, guideSettings(cfg))
		}
		return printMarkdown(text)
	},
}

var specsCmd = &cobra.Command{
	Use:     "specs",
	Short:   "Show test specifications and support contacts",
	GroupID: "reference",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fail(cmd, err)
		}
		return printMarkdown(guide.Specs(guideSettings(cfg)))
	},
}

func guideSettings(cfg *config.Config) guide.Settings {
	return guide.Settings{
		Dimensional: cfg.Dimensional,
		Bend:        cfg.Bend.Params,
		LOI:         cfg.LOI,
	}
}

func printMarkdown(text string) error {
	rendered, err := output.RenderMarkdown(text)
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	return nil
}

func init() {
	rootCmd.AddCommand(guideCmd, specsCmd)
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/brafe/qc/internal/config"
	"github.com/brafe/qc/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Manage qc configuration",
	Long:    `Reads and writes .qc/config.yaml. Keys are dotted paths such as dim.tolerance.`,
	GroupID: "system",
}

var configSetCmd = &cobra.Command{
	Use:     "set <key> <value>",
	Short:   "Set a config value",
	Example: `  qc config set dim.tolerance 0.5
  qc config set bend.force_unit N
  qc config set operator "J. Smith"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]

		if !config.IsValidKey(key) {
			output.Error("unknown config key: %s", key)
			fmt.Println("Valid keys:", strings.Join(config.Keys, ", "))
			return fmt.Errorf("%w: %s", config.ErrUnknownKey, key)
		}

		err := config.Update(getBaseDir(), func(c *config.Config) error {
			return c.Set(key, val)
		})
		if err != nil {
			output.Error("%v", err)
			return err
		}

		output.Success("set %s = %s", key, val)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a config value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		if !config.IsValidKey(key) {
			output.Error("unknown config key: %s", key)
			fmt.Println("Valid keys:", strings.Join(config.Keys, ", "))
			return fmt.Errorf("%w: %s", config.ErrUnknownKey, key)
		}

		cfg, err := loadConfig()
		if err != nil {
			output.Error("load config: %v", err)
			return err
		}
		val, err := cfg.Get(key)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		fmt.Println(val)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all config values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		cfg, err := loadConfig()
		if err != nil {
			return fail(cmd, err)
		}

		values := make(map[string]string, len(config.Keys))
		for _, key := range config.Keys {
			values[key], _ = cfg.Get(key)
		}
		if jsonOut {
			return output.JSON(values)
		}
		for _, key := range config.Keys {
			fmt.Printf("%-20s %s\n", key, values[key])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd, configListCmd)
	configListCmd.Flags().Bool("json", false, "Output as JSON")
}

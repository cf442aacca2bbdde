package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ioyy900205/quantL/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
}

var configInitOutput string

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Default().SaveToFile(configInitOutput); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", configInitOutput)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Check that a configuration file loads and validates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromFile(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s is valid: strategy %s over %s\n", args[0], cfg.Strategy.Name, cfg.Data.Dir)
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "quantl.yaml", "output path (.yaml, .yml, or .json)")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

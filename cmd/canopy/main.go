package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	logger
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "canopy",
		Short: "canopy computes label-distribution statistics for decision-forest training",
		Long:  `A tool to compute label histograms, their probability mass functions and entropies, and to score candidate decision-tree splits by information gain`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP((*bool)(&(config.logger)), "verbose", "v", false, "")
	rootCmd.AddCommand(versionCmd(), entropyCmd(config), gainCmd(config))
	return rootCmd
}

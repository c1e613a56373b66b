package main

import (
	"context"
	"fmt"
	"os"

	"github.com/canopyml/canopy/label/yaml"
	"github.com/canopyml/canopy/pmf"
	"github.com/spf13/cobra"
)

type entropyCmdConfig struct {
	inputConfig
	dataInput     string
	metadataInput string
}

func entropyCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &entropyCmdConfig{inputConfig: inputConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "entropy",
		Short: "Compute the label-distribution entropy of a set of examples",
		Long:  `Accumulate the labels of a set of examples into a histogram, derive its probability mass function and print its entropy in bits.`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			config.Logf("Accumulating label histogram from input...")
			h, err := config.histogramFrom(ctx, config.dataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			config.Logf("Histogram accumulated: %v", h)
			if config.metadataInput != "" {
				config.Logf("Reading known labels from metadata at %s...", config.metadataInput)
				known, err := yaml.ReadLabelsFromFile(config.metadataInput)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(3)
				}
				if err = validateLabels(h.Labels(), known); err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(4)
				}
			}
			p, err := pmf.New(h)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			config.Logf("Probability mass function: %v", p)
			fmt.Printf("%g\n", p.Entropy())
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an annotation, CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL, MongoDB or redis connection URL with the labels to accumulate (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file declaring the known labels; observed labels outside the declaration make the command fail")
	config.declareFlags(cmd)
	return cmd
}

func validateLabels(observed, known []string) error {
	knownSet := make(map[string]bool, len(known))
	for _, l := range known {
		knownSet[l] = true
	}
	for _, l := range observed {
		if !knownSet[l] {
			return fmt.Errorf("observed label %q is not declared on the metadata", l)
		}
	}
	return nil
}

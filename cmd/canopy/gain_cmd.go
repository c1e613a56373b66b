package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/canopyml/canopy"
	"github.com/canopyml/canopy/histogram"
	"github.com/canopyml/canopy/pmf"
	"github.com/spf13/cobra"
)

type gainCmdConfig struct {
	inputConfig
	parentInput string
	childInputs []string
}

func gainCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &gainCmdConfig{inputConfig: inputConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "gain",
		Short: "Score a candidate split by information gain",
		Long:  `Accumulate label histograms for a parent set of examples and for each of its partitions under a candidate split, and print the information gain of the split in bits.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := context.Background()
			config.Logf("Accumulating parent label histogram...")
			parent, err := config.histogramFrom(ctx, config.parentInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			children := make([]*histogram.Histogram[string], 0, len(config.childInputs))
			for _, childInput := range config.childInputs {
				config.Logf("Accumulating child label histogram from %s...", childInput)
				child, err := config.histogramFrom(ctx, childInput)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(3)
				}
				children = append(children, child)
			}
			gain, err := canopy.Gain(parent, children...)
			if err != nil {
				if errors.Is(err, pmf.ErrEmptyHistogram) {
					fmt.Fprintf(os.Stderr, "the split cannot be scored: %v\n", err)
					os.Exit(4)
				}
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			fmt.Printf("%g\n", gain)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.parentInput), "parent", "p", "", "input with the labels of the unsplit set of examples (required; same forms as the entropy command's input)")
	cmd.PersistentFlags().StringArrayVar(&(config.childInputs), "child", nil, "input with the labels of one partition of the parent set under the candidate split; repeat once per partition (at least one required)")
	config.declareFlags(cmd)
	return cmd
}

func (gcc *gainCmdConfig) Validate() error {
	if gcc.parentInput == "" {
		return fmt.Errorf("required parent flag was not set")
	}
	if len(gcc.childInputs) == 0 {
		return fmt.Errorf("at least one child flag is required")
	}
	return nil
}

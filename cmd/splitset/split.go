package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/splitset-ml/splitset/dataset"
)

var splitOpts struct {
	SourceDir     string
	TrainDir      string
	TestDir       string
	TrainFraction float64
	DatasetSize   int
	TargetSize    int
	Seed          int64
	SeedSet       bool
}

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Resize images, shuffle, and write train/test tensor sets",
	Long: `Split enumerates the files directly inside --source, shuffles them, resizes
every .jpg to a fixed resolution, converts it to a normalized channel-first
float32 tensor, and writes one .tns file per image to the train or test
directory depending on its shuffled position.

Without --seed the shuffle uses an unseeded source, so two runs may assign
the same file to different sets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		splitOpts.SeedSet = cmd.Flags().Changed("seed")
		return runSplit()
	},
}

func init() {
	splitCmd.Flags().StringVarP(&splitOpts.SourceDir, "source", "s", "", "directory of input images")
	splitCmd.Flags().StringVar(&splitOpts.TrainDir, "train", "", "train output directory (default: <source>/tensors/train)")
	splitCmd.Flags().StringVar(&splitOpts.TestDir, "test", "", "test output directory (default: <source>/tensors/test)")
	splitCmd.Flags().Float64VarP(&splitOpts.TrainFraction, "fraction", "f", dataset.DefaultTrainFraction, "fraction of the dataset size routed to the train set")
	splitCmd.Flags().IntVar(&splitOpts.DatasetSize, "dataset-size", dataset.DefaultDatasetSize, "nominal dataset size the split threshold is computed against (0 = actual input count)")
	splitCmd.Flags().IntVar(&splitOpts.TargetSize, "size", dataset.DefaultTargetSize, "output resolution (size x size)")
	splitCmd.Flags().Int64Var(&splitOpts.Seed, "seed", 0, "shuffle seed for reproducible splits (unseeded when omitted)")

	_ = splitCmd.MarkFlagRequired("source")
	rootCmd.AddCommand(splitCmd)
}

func runSplit() error {
	if splitOpts.TrainFraction < 0 || splitOpts.TrainFraction > 1 {
		return fmt.Errorf("--fraction must be between 0.0 and 1.0, got %g", splitOpts.TrainFraction)
	}

	cfg := dataset.Config{
		SourceDir:     splitOpts.SourceDir,
		TrainDir:      splitOpts.TrainDir,
		TestDir:       splitOpts.TestDir,
		TrainFraction: splitOpts.TrainFraction,
		DatasetSize:   splitOpts.DatasetSize,
		TargetSize:    splitOpts.TargetSize,
		Progress:      os.Stderr,
	}
	if splitOpts.SeedSet {
		cfg.Rand = rand.New(rand.NewSource(splitOpts.Seed))
	}

	res, err := dataset.Run(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "train: %d  test: %d  skipped: %d\n", res.Train, res.Test, res.Skipped)
	fmt.Println("Done")
	return nil
}

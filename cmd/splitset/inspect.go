package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/splitset-ml/splitset/sample"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Print the tensors and metadata stored in a .tns file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(path string) error {
	r, err := sample.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, name := range r.TensorNames() {
		meta, err := r.Meta(name)
		if err != nil {
			return err
		}
		fmt.Printf("%s  dtype=%s  shape=%v  bytes=%d\n", meta.Name, meta.DType, meta.Shape, meta.Size)
	}

	if md := r.Metadata(); len(md) > 0 {
		fmt.Println("metadata:")
		for k, v := range md {
			fmt.Printf("  %s: %s\n", k, v)
		}
	}
	return nil
}

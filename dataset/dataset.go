// Copyright 2025 Splitset Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dataset exposes the image-to-tensor dataset splitter.
//
// Example:
//
//	res, err := dataset.Run(dataset.Config{
//	    SourceDir: "data/cats_dogs",
//	    Rand:      rand.New(rand.NewSource(42)),
//	})
package dataset

import (
	"math/rand"

	"github.com/splitset-ml/splitset/internal/dataset"
	"github.com/splitset-ml/splitset/internal/tensor"
)

// Defaults of the splitter.
const (
	DefaultTrainFraction = dataset.DefaultTrainFraction
	DefaultDatasetSize   = dataset.DefaultDatasetSize
	DefaultTargetSize    = dataset.DefaultTargetSize
	SampleExt            = dataset.SampleExt
)

// Config parameterizes one split run.
type Config = dataset.Config

// Result summarizes one split run.
type Result = dataset.Result

// Run executes one split pass over Config.SourceDir.
func Run(cfg Config) (Result, error) {
	return dataset.Run(cfg)
}

// CollectInputs lists regular files directly inside dir, non-recursive.
func CollectInputs(dir string) ([]string, error) {
	return dataset.CollectInputs(dir)
}

// Shuffle permutes files in place using rng, or the process global source
// when rng is nil.
func Shuffle(files []string, rng *rand.Rand) {
	dataset.Shuffle(files, rng)
}

// IsJPEG is the default Accept predicate: paths ending in ".jpg".
func IsJPEG(path string) bool {
	return dataset.IsJPEG(path)
}

// LoadImageTensor decodes, resizes and normalizes one image into a
// channel-first float32 tensor.
func LoadImageTensor(path string, size int) (*tensor.RawTensor, error) {
	return dataset.LoadImageTensor(path, size)
}

// Copyright 2025 Splitset Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package sample exposes reading and writing of .tns serialized samples.
package sample

import (
	"github.com/splitset-ml/splitset/internal/serialization"
	"github.com/splitset-ml/splitset/internal/tensor"
)

// Reader reads tensors from a .tns file.
type Reader = serialization.SampleReader

// Writer writes tensors to a .tns file.
type Writer = serialization.SampleWriter

// TensorMeta describes one tensor in a .tns file.
type TensorMeta = serialization.TensorMeta

// Open opens a .tns file and validates its header.
func Open(path string) (*Reader, error) {
	return serialization.NewSampleReader(path)
}

// Create creates (or truncates) a .tns file for writing.
func Create(path string) (*Writer, error) {
	return serialization.NewSampleWriter(path)
}

// Write persists a single tensor under the name "sample".
func Write(path string, raw *tensor.RawTensor, metadata map[string]string) error {
	return serialization.WriteSample(path, raw, metadata)
}

// Read loads the single tensor written by Write.
func Read(path string) (*tensor.RawTensor, map[string]string, error) {
	return serialization.ReadSample(path)
}

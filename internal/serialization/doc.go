// Package serialization implements the .tns container used to persist one
// sample (or any small set of named tensors) per file.
//
// Layout:
//
//	[4 bytes: Magic "TSNS"]
//	[4 bytes: Version (uint32 LE)]
//	[4 bytes: Flags (uint32 LE)]
//	[8 bytes: Header Size (uint64 LE)]
//	[Header: JSON metadata]
//	[Padding to 64-byte alignment]
//	[Tensor data: raw bytes, in header order]
//
// The JSON header carries tensor names, dtypes, shapes and payload offsets,
// plus a free-form string metadata map (the dataset splitter records the
// source file name there).
package serialization

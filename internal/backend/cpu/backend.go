// Package cpu implements the CPU compute backend.
package cpu

import (
	"fmt"

	"github.com/splitset-ml/splitset/internal/parallel"
	"github.com/splitset-ml/splitset/internal/tensor"
)

// Backend implements tensor.Backend on the CPU.
// Large element-wise kernels are chunked across goroutines.
type Backend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a CPU backend with default parallelism.
func New() *Backend {
	return &Backend{
		device: tensor.CPU,
		par:    parallel.DefaultConfig(),
	}
}

// NewSequential creates a CPU backend that never spawns goroutines.
// Useful for deterministic profiling and small workloads.
func NewSequential() *Backend {
	return &Backend{
		device: tensor.CPU,
		par:    parallel.Config{},
	}
}

// Name returns the backend name.
func (c *Backend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (c *Backend) Device() tensor.Device {
	return c.device
}

// Add performs element-wise addition with broadcasting.
func (c *Backend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary("add", opAdd, a, b)
}

// Sub performs element-wise subtraction with broadcasting.
func (c *Backend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary("sub", opSub, a, b)
}

// Mul performs element-wise multiplication with broadcasting.
func (c *Backend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary("mul", opMul, a, b)
}

// Div performs element-wise division with broadcasting.
func (c *Backend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return c.binary("div", opDiv, a, b)
}

// binary allocates the broadcast result and dispatches on dtype.
func (c *Backend) binary(name string, op binOp, a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	switch a.DType() {
	case tensor.Float32:
		binaryKernel[float32](c.par, op, result, a, b, needsBroadcast)
	case tensor.Float64:
		binaryKernel[float64](c.par, op, result, a, b, needsBroadcast)
	case tensor.Int32:
		binaryKernel[int32](c.par, op, result, a, b, needsBroadcast)
	case tensor.Int64:
		binaryKernel[int64](c.par, op, result, a, b, needsBroadcast)
	case tensor.Uint8:
		binaryKernel[uint8](c.par, op, result, a, b, needsBroadcast)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, a.DType()))
	}

	return result
}

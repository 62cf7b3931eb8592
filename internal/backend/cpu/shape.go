package cpu

import (
	"fmt"

	"github.com/splitset-ml/splitset/internal/tensor"
)

// Reshape returns a view with the same data and a new shape.
func (c *Backend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: invalid shape: %v", err))
	}
	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes: %v -> %v (different number of elements)",
			t.Shape(), newShape))
	}
	return t.View(newShape)
}

// Transpose permutes dimensions. With no axes the order is fully reversed.
// The result is materialized in row-major layout.
func (c *Backend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	rank := len(shape)

	if len(axes) == 0 {
		axes = make([]int, rank)
		for i := range axes {
			axes[i] = rank - 1 - i
		}
	}
	if len(axes) != rank {
		panic(fmt.Sprintf("transpose: got %d axes for %dD tensor", len(axes), rank))
	}

	seen := make([]bool, rank)
	outShape := make(tensor.Shape, rank)
	for i, ax := range axes {
		if ax < 0 || ax >= rank || seen[ax] {
			panic(fmt.Sprintf("transpose: invalid axes %v for %dD tensor", axes, rank))
		}
		seen[ax] = true
		outShape[i] = shape[ax]
	}

	result, err := tensor.NewRaw(outShape, t.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("transpose: failed to create result tensor: %v", err))
	}

	switch t.DType() {
	case tensor.Float32:
		transposeKernel[float32](result, t, axes)
	case tensor.Float64:
		transposeKernel[float64](result, t, axes)
	case tensor.Int32:
		transposeKernel[int32](result, t, axes)
	case tensor.Int64:
		transposeKernel[int64](result, t, axes)
	case tensor.Uint8:
		transposeKernel[uint8](result, t, axes)
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", t.DType()))
	}

	return result
}

func transposeKernel[T tensor.DType](dst, src *tensor.RawTensor, axes []int) {
	d := sliceOf[T](dst)
	s := sliceOf[T](src)

	outShape := dst.Shape()
	srcStrides := src.Strides()

	idx := make([]int, len(outShape))
	for i := range d {
		srcOffset := 0
		for k, v := range idx {
			srcOffset += v * srcStrides[axes[k]]
		}
		d[i] = s[srcOffset]

		for k := len(idx) - 1; k >= 0; k-- {
			idx[k]++
			if idx[k] < outShape[k] {
				break
			}
			idx[k] = 0
		}
	}
}

// Sum reduces the whole tensor to a single-element tensor.
func (c *Backend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(tensor.Shape{1}, x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("sum: failed to create result tensor: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		sumKernel[float32](result, x)
	case tensor.Float64:
		sumKernel[float64](result, x)
	case tensor.Int32:
		sumKernel[int32](result, x)
	case tensor.Int64:
		sumKernel[int64](result, x)
	case tensor.Uint8:
		sumKernel[uint8](result, x)
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}

	return result
}

func sumKernel[T tensor.DType](dst, x *tensor.RawTensor) {
	var total T
	for _, v := range sliceOf[T](x) {
		total += v
	}
	sliceOf[T](dst)[0] = total
}

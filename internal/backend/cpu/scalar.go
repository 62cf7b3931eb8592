package cpu

import (
	"fmt"

	"github.com/splitset-ml/splitset/internal/parallel"
	"github.com/splitset-ml/splitset/internal/tensor"
)

// MulScalar multiplies every element by a scalar.
func (c *Backend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return c.scalarOp("mulScalar", opMul, x, scalar)
}

// AddScalar adds a scalar to every element.
func (c *Backend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return c.scalarOp("addScalar", opAdd, x, scalar)
}

// SubScalar subtracts a scalar from every element.
func (c *Backend) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return c.scalarOp("subScalar", opSub, x, scalar)
}

// DivScalar divides every element by a scalar.
func (c *Backend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return c.scalarOp("divScalar", opDiv, x, scalar)
}

// scalarOp requires the scalar's Go type to match the tensor's dtype, the same
// contract the typed Tensor API guarantees.
func (c *Backend) scalarOp(name string, op binOp, x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	switch x.DType() {
	case tensor.Float32:
		scalarKernel(c.par, op, result, x, scalar.(float32))
	case tensor.Float64:
		scalarKernel(c.par, op, result, x, scalar.(float64))
	case tensor.Int32:
		scalarKernel(c.par, op, result, x, scalar.(int32))
	case tensor.Int64:
		scalarKernel(c.par, op, result, x, scalar.(int64))
	case tensor.Uint8:
		scalarKernel(c.par, op, result, x, scalar.(uint8))
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}

	return result
}

func scalarKernel[T tensor.DType](cfg parallel.Config, op binOp, dst, x *tensor.RawTensor, scalar T) {
	d := sliceOf[T](dst)
	src := sliceOf[T](x)
	f := opFunc[T](op)

	parallel.ForRange(len(d), cfg, func(start, end int) {
		for i := start; i < end; i++ {
			d[i] = f(src[i], scalar)
		}
	})
}

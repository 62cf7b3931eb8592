package cpu

import (
	"github.com/splitset-ml/splitset/internal/parallel"
	"github.com/splitset-ml/splitset/internal/tensor"
)

// binOp selects the element-wise operation for the generic kernels.
type binOp int

const (
	opAdd binOp = iota
	opSub
	opMul
	opDiv
)

// sliceOf reinterprets a RawTensor's buffer as a typed slice.
func sliceOf[T tensor.DType](r *tensor.RawTensor) []T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(r.AsFloat32()).([]T)
	case float64:
		return any(r.AsFloat64()).([]T)
	case int32:
		return any(r.AsInt32()).([]T)
	case int64:
		return any(r.AsInt64()).([]T)
	case uint8:
		return any(r.AsUint8()).([]T)
	default:
		panic("cpu: unsupported element type")
	}
}

func opFunc[T tensor.DType](op binOp) func(a, b T) T {
	switch op {
	case opAdd:
		return func(a, b T) T { return a + b }
	case opSub:
		return func(a, b T) T { return a - b }
	case opMul:
		return func(a, b T) T { return a * b }
	case opDiv:
		return func(a, b T) T { return a / b }
	default:
		panic("cpu: unknown binary op")
	}
}

// binaryKernel applies op element-wise into dst.
// The fast path handles identical shapes; otherwise operands are walked with
// broadcast strides (stride 0 on size-1 dimensions).
func binaryKernel[T tensor.DType](cfg parallel.Config, op binOp, dst, a, b *tensor.RawTensor, broadcast bool) {
	d := sliceOf[T](dst)
	x := sliceOf[T](a)
	y := sliceOf[T](b)
	f := opFunc[T](op)

	if !broadcast {
		parallel.ForRange(len(d), cfg, func(start, end int) {
			for i := start; i < end; i++ {
				d[i] = f(x[i], y[i])
			}
		})
		return
	}

	outShape := dst.Shape()
	ax := broadcastStrides(a.Shape(), outShape)
	bx := broadcastStrides(b.Shape(), outShape)

	idx := make([]int, len(outShape))
	for i := range d {
		ai, bi := 0, 0
		for k, v := range idx {
			ai += v * ax[k]
			bi += v * bx[k]
		}
		d[i] = f(x[ai], y[bi])

		for k := len(idx) - 1; k >= 0; k-- {
			idx[k]++
			if idx[k] < outShape[k] {
				break
			}
			idx[k] = 0
		}
	}
}

// broadcastStrides returns per-output-dimension strides into an operand whose
// shape right-aligns against out. Size-1 and missing dimensions get stride 0.
func broadcastStrides(in, out tensor.Shape) []int {
	inStrides := in.ComputeStrides()
	strides := make([]int, len(out))
	offset := len(out) - len(in)
	for k := range out {
		j := k - offset
		if j >= 0 && in[j] != 1 {
			strides[k] = inStrides[j]
		}
	}
	return strides
}

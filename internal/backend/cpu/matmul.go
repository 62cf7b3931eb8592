package cpu

import (
	"fmt"

	"github.com/splitset-ml/splitset/internal/parallel"
	"github.com/splitset-ml/splitset/internal/tensor"
)

// MatMul performs 2D matrix multiplication: (M, K) @ (K, N) -> (M, N).
// Naive O(M*N*K) kernel, rows distributed across workers.
func (c *Backend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape, bShape := a.Shape(), b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape)))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("matmul: dtype mismatch %s vs %s", a.DType(), b.DType()))
	}

	m, k := aShape[0], aShape[1]
	k2, n := bShape[0], bShape[1]
	if k != k2 {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, k2, n))
	}

	result, err := tensor.NewRaw(tensor.Shape{m, n}, a.DType(), c.device)
	if err != nil {
		panic(fmt.Sprintf("matmul: failed to create result tensor: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		matmulKernel[float32](c.par, result, a, b, m, k, n)
	case tensor.Float64:
		matmulKernel[float64](c.par, result, a, b, m, k, n)
	case tensor.Int32:
		matmulKernel[int32](c.par, result, a, b, m, k, n)
	case tensor.Int64:
		matmulKernel[int64](c.par, result, a, b, m, k, n)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}

	return result
}

// matmulKernel computes C[i,j] = sum_k A[i,k] * B[k,j].
func matmulKernel[T tensor.DType](cfg parallel.Config, dst, a, b *tensor.RawTensor, m, k, n int) {
	cd := sliceOf[T](dst)
	ad := sliceOf[T](a)
	bd := sliceOf[T](b)

	parallel.For(m, cfg, func(i int) {
		row := ad[i*k : (i+1)*k]
		out := cd[i*n : (i+1)*n]
		for j := range out {
			var sum T
			for kk, av := range row {
				sum += av * bd[kk*n+j]
			}
			out[j] = sum
		}
	})
}

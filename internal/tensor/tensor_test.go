package tensor_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitset-ml/splitset/internal/backend/cpu"
	"github.com/splitset-ml/splitset/internal/tensor"
)

func TestFromSlice(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)

	assert.True(t, x.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, tensor.Float32, x.DType())
	assert.Equal(t, float32(6), x.At(1, 2))
}

func TestFromSliceLengthMismatch(t *testing.T) {
	backend := cpu.New()

	_, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{2, 2}, backend)
	assert.Error(t, err)
}

func TestZerosOnesFull(t *testing.T) {
	backend := cpu.New()

	zeros := tensor.Zeros[float64](tensor.Shape{3, 3}, backend)
	for _, v := range zeros.Data() {
		assert.Equal(t, float64(0), v)
	}

	ones := tensor.Ones[int32](tensor.Shape{4}, backend)
	assert.Equal(t, []int32{1, 1, 1, 1}, ones.Data())

	full := tensor.Full[float32](tensor.Shape{2}, 3.25, backend)
	assert.Equal(t, []float32{3.25, 3.25}, full.Data())
}

func TestAtSetRoundTrip(t *testing.T) {
	backend := cpu.New()

	x := tensor.Zeros[float32](tensor.Shape{2, 2}, backend)
	x.Set(7.5, 1, 0)

	assert.Equal(t, float32(7.5), x.At(1, 0))
	assert.Equal(t, float32(0), x.At(0, 1))
	assert.Panics(t, func() { x.At(2, 0) })
}

func TestAddAndMatMul(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	y := tensor.Ones[float32](tensor.Shape{2, 2}, backend)

	z := x.Add(y)
	assert.Equal(t, []float32{2, 3, 4, 5}, z.Data())

	w := x.MatMul(z)
	// [1 2; 3 4] @ [2 3; 4 5] = [10 13; 22 29]
	assert.Equal(t, []float32{10, 13, 22, 29}, w.Data())
}

func TestElementwiseAndScalar(t *testing.T) {
	backend := cpu.New()

	v, err := tensor.FromSlice([]int64{1, 2, 3}, tensor.Shape{3}, backend)
	require.NoError(t, err)
	u, err := tensor.FromSlice([]int64{4, 5, 6}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	assert.Equal(t, []int64{4, 10, 18}, v.Mul(u).Data())
	assert.Equal(t, []int64{2, 4, 6}, v.MulScalar(2).Data())
}

func TestCloneIsIndependent(t *testing.T) {
	backend := cpu.New()

	x := tensor.Ones[float32](tensor.Shape{2}, backend)
	y := x.Clone()
	y.Set(99, 0)

	assert.Equal(t, float32(1), x.At(0))
	assert.Equal(t, float32(99), y.At(0))
}

func TestRandnFromIsReproducible(t *testing.T) {
	backend := cpu.New()

	a := tensor.RandnFrom[float32](tensor.Shape{32}, rand.New(rand.NewSource(7)), backend)
	b := tensor.RandnFrom[float32](tensor.Shape{32}, rand.New(rand.NewSource(7)), backend)

	assert.Equal(t, a.Data(), b.Data())
}

func TestRandnDistribution(t *testing.T) {
	backend := cpu.New()

	x := tensor.RandnFrom[float64](tensor.Shape{200, 50}, rand.New(rand.NewSource(1)), backend)

	var sum float64
	for _, v := range x.Data() {
		sum += v
	}
	mean := sum / float64(x.NumElements())
	assert.Less(t, math.Abs(mean), 0.05)
}

func TestRandRange(t *testing.T) {
	backend := cpu.New()

	x := tensor.RandFrom[float32](tensor.Shape{1000}, rand.New(rand.NewSource(3)), backend)
	for _, v := range x.Data() {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}
}

func TestArange(t *testing.T) {
	backend := cpu.New()

	x := tensor.Arange[int32](0, 5, backend)
	assert.Equal(t, []int32{0, 1, 2, 3, 4}, x.Data())
}

func TestFormat2D(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]int32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	assert.Equal(t, "[1 2]\n[3 4]\n", x.Format())
}

func TestShapeBroadcasting(t *testing.T) {
	tests := []struct {
		name    string
		a, b    tensor.Shape
		want    tensor.Shape
		needs   bool
		wantErr bool
	}{
		{"same", tensor.Shape{3, 5}, tensor.Shape{3, 5}, tensor.Shape{3, 5}, false, false},
		{"row", tensor.Shape{3, 1}, tensor.Shape{3, 5}, tensor.Shape{3, 5}, true, false},
		{"missing dim", tensor.Shape{5}, tensor.Shape{3, 5}, tensor.Shape{3, 5}, true, false},
		{"incompatible", tensor.Shape{3, 4}, tensor.Shape{3, 5}, nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, needs, err := tensor.BroadcastShapes(tt.a, tt.b)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want))
			assert.Equal(t, tt.needs, needs)
		})
	}
}

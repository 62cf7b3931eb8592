package tensor

import (
	"math"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var zero T
	raw, err := NewRaw(shape, inferDataType(zero), b.Device())
	if err != nil {
		panic(err)
	}
	// Memory is already zero-initialized.
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, T(1), b)
}

// Full creates a tensor filled with a specific value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Randn creates a tensor with values drawn from N(0, 1) using the process
// global random source. Float types only.
func Randn[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return randn[T, B](shape, rand.Float64, b)
}

// RandnFrom is Randn with an explicit random source, for reproducible runs.
func RandnFrom[T DType, B Backend](shape Shape, rng *rand.Rand, b B) *Tensor[T, B] {
	return randn[T, B](shape, rng.Float64, b)
}

// randn fills via the Box-Muller transform.
func randn[T DType, B Backend](shape Shape, next func() float64, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()

	var zero T
	switch any(zero).(type) {
	case float32, float64:
	default:
		panic("Randn only supports float32 and float64 types")
	}

	for i := 0; i < len(data); i += 2 {
		u1 := next()
		u2 := next()
		r := math.Sqrt(-2.0 * math.Log(u1))
		data[i] = T(r * math.Cos(2.0*math.Pi*u2))
		if i+1 < len(data) {
			data[i+1] = T(r * math.Sin(2.0*math.Pi*u2))
		}
	}
	return t
}

// Rand creates a tensor with values uniformly distributed in [0, 1) using the
// process global random source. Float types only.
func Rand[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return uniform[T, B](shape, rand.Float64, b)
}

// RandFrom is Rand with an explicit random source.
func RandFrom[T DType, B Backend](shape Shape, rng *rand.Rand, b B) *Tensor[T, B] {
	return uniform[T, B](shape, rng.Float64, b)
}

func uniform[T DType, B Backend](shape Shape, next func() float64, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()

	var zero T
	switch any(zero).(type) {
	case float32, float64:
	default:
		panic("Rand only supports float32 and float64 types")
	}

	for i := range data {
		data[i] = T(next())
	}
	return t
}

// Arange creates a 1D tensor with values from start to end (exclusive), step 1.
func Arange[T DType, B Backend](start, end T, b B) *Tensor[T, B] {
	n := int(float64(end) - float64(start))
	if n <= 0 {
		panic("Arange requires end > start")
	}
	t := Zeros[T, B](Shape{n}, b)
	data := t.Data()
	for i := range data {
		data[i] = start + T(i)
	}
	return t
}

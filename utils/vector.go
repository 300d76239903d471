package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) (R Vector) {
	var v *mat.VecDense
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			err := fmt.Errorf("mismatch in allocation: NewVector n = %v, len(data[0]) = %v\n", n, len(dataO[0]))
			panic(err)
		}
		v = mat.NewVecDense(n, dataO[0])
	} else {
		v = mat.NewVecDense(n, make([]float64, n))
	}
	return Vector{v}
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (v Vector) Dims() (r, c int)         { return v.V.Dims() }
func (v Vector) At(i, j int) float64      { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix            { return v.V.T() }
func (v Vector) AtVec(i int) float64      { return v.V.AtVec(i) }
func (v Vector) RawVector() blas64.Vector { return v.V.RawVector() }
func (v Vector) Len() int                 { return v.V.Len() }
func (v Vector) Data() []float64          { return v.V.RawVector().Data }

// Chainable (extended) methods
func (v Vector) Set(a float64) Vector {
	var (
		data = v.V.RawVector().Data
	)
	for i := range data {
		data[i] = a
	}
	return v
}

// Linspace fills the vector with evenly spaced values from xmin to
// xmax inclusive. A length 1 vector gets xmin.
func (v Vector) Linspace(xmin, xmax float64) Vector {
	var (
		data = v.V.RawVector().Data
		N    = len(data)
	)
	if N == 1 {
		data[0] = xmin
		return v
	}
	h := (xmax - xmin) / float64(N-1)
	for i := range data {
		data[i] = xmin + float64(i)*h
	}
	data[N-1] = xmax
	return v
}

func (v Vector) Apply(f func(float64) float64) Vector {
	var (
		data = v.V.RawVector().Data
	)
	for i, val := range data {
		data[i] = f(val)
	}
	return v
}

// Non chainable methods
func (v Vector) Min() float64 { return floats.Min(v.V.RawVector().Data) }
func (v Vector) Max() float64 { return floats.Max(v.V.RawVector().Data) }
func (v Vector) Sum() float64 { return floats.Sum(v.V.RawVector().Data) }

func (v Vector) Dot(a Vector) (dot float64) {
	var (
		data  = v.V.RawVector().Data
		dataA = a.V.RawVector().Data
	)
	if len(data) != len(dataA) {
		err := fmt.Errorf("dimension mismatch: len(v), len(a) = %v, %v", len(data), len(dataA))
		panic(err)
	}
	for i, val := range data {
		dot += val * dataA[i]
	}
	return
}

func (v Vector) Concat(a Vector) (R Vector) {
	var (
		data  = v.V.RawVector().Data
		dataA = a.V.RawVector().Data
		N     = len(data) + len(dataA)
		dataR = make([]float64, N)
	)
	copy(dataR, data)
	copy(dataR[len(data):], dataA)
	R = NewVector(N, dataR)
	return
}

// ToMatrix returns the vector as an Nx1 column matrix.
func (v Vector) ToMatrix() (R Matrix) {
	var (
		data  = v.V.RawVector().Data
		N     = len(data)
		dataR = make([]float64, N)
	)
	copy(dataR, data)
	R = NewMatrix(N, 1, dataR)
	return
}

// Transpose returns the vector as a 1xN row matrix.
func (v Vector) Transpose() (R Matrix) {
	var (
		data  = v.V.RawVector().Data
		N     = len(data)
		dataR = make([]float64, N)
	)
	copy(dataR, data)
	R = NewMatrix(1, N, dataR)
	return
}

// Mul forms the outer product of two vectors.
func (v Vector) Mul(a Vector) (R Matrix) {
	var (
		nr, nc = v.Len(), a.Len()
		dataV  = v.V.RawVector().Data
		dataA  = a.V.RawVector().Data
	)
	R = NewMatrix(nr, nc)
	dataR := R.M.RawMatrix().Data
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			dataR[j+i*nc] = dataV[i] * dataA[j]
		}
	}
	return
}

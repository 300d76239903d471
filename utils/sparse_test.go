package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparse(t *testing.T) {
	// Assembly via Accumulate, then conversion to CSR
	{
		D := NewDOK(3, 3)
		D.Accumulate(0, 0, 1)
		D.Accumulate(0, 0, 1) // repeated scatter adds
		D.Accumulate(1, 1, 3)
		D.Accumulate(2, 0, 4)
		assert.Equal(t, 2., D.At(0, 0))
		assert.Equal(t, 3, D.NNZ())

		C := D.ToCSR()
		assert.Equal(t, 2., C.At(0, 0))
		assert.Equal(t, 3., C.At(1, 1))
		assert.Equal(t, 4., C.At(2, 0))
		assert.Equal(t, 3, C.NNZ())

		v := NewVector(3, []float64{1, 2, 3})
		r := C.MulVec(v)
		assert.Equal(t, []float64{2, 6, 4}, r.Data())
	}
	// ReadOnly protection
	{
		D := NewDOK(2, 2)
		D.SetReadOnly("D")
		assert.Panics(t, func() { D.Set(0, 0, 1) })
	}
}

func TestElementTypes(t *testing.T) {
	assert.Equal(t, 4, Quad.GetNumNodes())
	assert.Equal(t, 2, Quad.GetDimension())
	assert.Equal(t, 9, Quad.VTKCode())
	assert.Equal(t, 3, Line.VTKCode())
	assert.Equal(t, Quad, ElementTypeFromVTK(9))
	assert.Equal(t, Line, ElementTypeFromVTK(3))
	assert.Equal(t, Unknown, ElementTypeFromVTK(99))
	assert.Equal(t, "Quad", Quad.String())
}

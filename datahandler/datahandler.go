package datahandler

import (
	"github.com/govpinn/govpinn/fespace"
	"github.com/govpinn/govpinn/geometry"
	"github.com/govpinn/govpinn/types"
	"github.com/govpinn/govpinn/utils"
)

/*
DataHandler2D packages the finite element space and the geometry into
the three point sets a variational PINN trainer consumes: interior
collocation points with quadrature weights, stacked Dirichlet boundary
training pairs, and the tensor product test grid. Everything it returns
is deterministic for a fixed mesh and configuration.
*/
type DataHandler2D struct {
	FESpace *fespace.FESpace2D
	Geom    *geometry.Geometry2D
}

func NewDataHandler2D(fes *fespace.FESpace2D, geom *geometry.Geometry2D) (*DataHandler2D, error) {
	if fes == nil || geom == nil {
		return nil, types.NewConfigurationError("data handler needs both a finite element space and a geometry")
	}
	if fes.Geom != geom {
		return nil, types.NewConfigurationError("finite element space was built on a different geometry")
	}
	return &DataHandler2D{FESpace: fes, Geom: geom}, nil
}

// CollocationPoints returns the interior quadrature points (M x 2) and
// their Jacobian scaled weights, the residual loss measure.
func (dh *DataHandler2D) CollocationPoints() (utils.Matrix, utils.Vector, error) {
	return dh.FESpace.QuadraturePoints()
}

/*
BoundaryData stacks every Dirichlet tag's sampled points and evaluated
values into flat training arrays, with tags[i] recording which boundary
row i came from. Tags stack in ascending order. With no Dirichlet tags
all returns are empty.
*/
func (dh *DataHandler2D) BoundaryData() (points utils.Matrix, values utils.Vector, tags []int, err error) {
	data, err := dh.FESpace.DirichletData()
	if err != nil {
		return
	}
	var total int
	for _, td := range data {
		n, _ := td.Points.Dims()
		total += n
	}
	if total == 0 {
		return
	}
	points = utils.NewMatrix(total, 2)
	values = utils.NewVector(total)
	tags = make([]int, 0, total)
	var (
		vData = values.Data()
		r     int
	)
	for _, td := range data {
		n, _ := td.Points.Dims()
		for i := 0; i < n; i++ {
			points.SetRow(r, []float64{td.Points.At(i, 0), td.Points.At(i, 1)})
			vData[r] = td.Values.AtVec(i)
			tags = append(tags, td.Tag)
			r++
		}
	}
	return
}

// TestPoints returns the geometry's test grid.
func (dh *DataHandler2D) TestPoints() (utils.Matrix, error) {
	return dh.Geom.TestPoints()
}

package geometry

import (
	"github.com/govpinn/govpinn/readfiles"
	"github.com/govpinn/govpinn/types"
	"github.com/govpinn/govpinn/utils"
)

// Quad is one quadrilateral cell as corner coordinates in CCW order.
type Quad [4][2]float64

// QuadMesh is the mesh product shared by both provenances: vertex
// coordinates, connectivity, tagged boundary edges and, once sampled,
// the per tag boundary point sets.
type QuadMesh struct {
	VX, VY         utils.Vector
	EToV           utils.Matrix // K x 4, zero based, CCW
	BCEdges        types.TagMap
	BoundaryPoints map[int]utils.Matrix // tag -> N x 2
	TagNames       map[int]string
}

func (qm *QuadMesh) NumVertices() int { return qm.VX.Len() }

func (qm *QuadMesh) NumCells() int {
	K, _ := qm.EToV.Dims()
	return K
}

// Cells expands the connectivity into corner coordinate tuples, the
// form collaborators consume.
func (qm *QuadMesh) Cells() (cells []Quad) {
	var (
		K, _   = qm.EToV.Dims()
		vx, vy = qm.VX.Data(), qm.VY.Data()
	)
	cells = make([]Quad, K)
	for k := 0; k < K; k++ {
		I := utils.NewFromFloat(qm.EToV.Row(k).Data())
		for j, v := range I {
			cells[k][j][0] = vx[v]
			cells[k][j][1] = vy[v]
		}
	}
	return
}

func (qm *QuadMesh) BoundingBox() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = qm.VX.Min(), qm.VX.Max()
	ymin, ymax = qm.VY.Min(), qm.VY.Max()
	return
}

// meshSource builds a QuadMesh for one provenance. The concrete
// source is selected by the Geometry2D generation method, so the rest
// of the pipeline never branches on where a mesh came from.
type meshSource interface {
	build() (*QuadMesh, error)
}

// internalSource tiles an axis aligned box with a regular grid of
// quads. Cells are ordered row major from the bottom left, vertices
// CCW within each cell.
type internalSource struct {
	xLimits, yLimits [2]float64
	nCellsX, nCellsY int
}

func (s internalSource) build() (*QuadMesh, error) {
	var (
		nx, ny = s.nCellsX, s.nCellsY
		nvx    = nx + 1
		nvy    = ny + 1
	)
	xCoords := utils.NewVector(nvx).Linspace(s.xLimits[0], s.xLimits[1])
	yCoords := utils.NewVector(nvy).Linspace(s.yLimits[0], s.yLimits[1])

	qm := &QuadMesh{
		VX:      utils.NewVector(nvx * nvy),
		VY:      utils.NewVector(nvx * nvy),
		EToV:    utils.NewMatrix(nx*ny, 4),
		BCEdges: make(types.TagMap),
	}
	vx, vy := qm.VX.Data(), qm.VY.Data()
	for j := 0; j < nvy; j++ {
		for i := 0; i < nvx; i++ {
			v := i + nvx*j
			vx[v] = xCoords.AtVec(i)
			vy[v] = yCoords.AtVec(j)
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			var (
				k   = i + nx*j
				v00 = i + nvx*j
				v10 = v00 + 1
				v01 = v00 + nvx
				v11 = v01 + 1
			)
			qm.EToV.SetRow(k, []float64{float64(v00), float64(v10), float64(v11), float64(v01)})
		}
	}

	// The four sides get fixed tags: bottom, right, top, left.
	bottom := make([]types.EdgeInt, nx)
	top := make([]types.EdgeInt, nx)
	for i := 0; i < nx; i++ {
		bottom[i] = types.NewEdgeInt([2]int{i, i + 1})
		jTop := nvx * ny
		top[i] = types.NewEdgeInt([2]int{jTop + i, jTop + i + 1})
	}
	left := make([]types.EdgeInt, ny)
	right := make([]types.EdgeInt, ny)
	for j := 0; j < ny; j++ {
		left[j] = types.NewEdgeInt([2]int{nvx * j, nvx * (j + 1)})
		right[j] = types.NewEdgeInt([2]int{nvx*j + nx, nvx*(j+1) + nx})
	}
	qm.BCEdges.AddEdges(types.TagBottom, bottom)
	qm.BCEdges.AddEdges(types.TagRight, right)
	qm.BCEdges.AddEdges(types.TagTop, top)
	qm.BCEdges.AddEdges(types.TagLeft, left)
	return qm, nil
}

// externalSource loads a mesh file and optionally subdivides it.
type externalSource struct {
	filename        string
	refinementLevel int
	verbose         bool
}

func (s externalSource) build() (*QuadMesh, error) {
	md, err := readfiles.ReadMeshFile(s.filename, s.verbose)
	if err != nil {
		return nil, err
	}
	qm := &QuadMesh{
		VX:       md.VX,
		VY:       md.VY,
		EToV:     md.EToV,
		BCEdges:  md.BCEdges,
		TagNames: md.TagNames,
	}
	for level := 0; level < s.refinementLevel; level++ {
		if qm, err = refineQuadMesh(qm); err != nil {
			return nil, types.WrapFileFormatError(s.filename, err)
		}
	}
	return qm, nil
}

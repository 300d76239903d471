package geometry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/govpinn/govpinn/types"
	"github.com/govpinn/govpinn/utils"
	"github.com/govpinn/govpinn/writefiles"
)

// Mesh kinds and generation methods accepted by NewGeometry2D.
const (
	MeshKindQuadrilateral = "quadrilateral"

	GenerationInternal = "internal"
	GenerationExternal = "external"
)

/*
Geometry2D acquires the mesh for a two dimensional problem, either by
tiling a box with a structured quadrilateral grid or by reading an
external mesh file, and samples boundary points for every boundary tag.
The mesh stays on the receiver afterwards for VTK export and for the
finite element collaborators.

The two provenances are exclusive: a geometry constructed for internal
generation only answers GenerateQuadMeshInternal, one constructed for
external meshes only answers ReadMesh.
*/
type Geometry2D struct {
	MeshKind         string
	GenerationMethod string
	NTestPointsX     int
	NTestPointsY     int
	OutputFolder     string
	Verbose          bool

	Mesh           *QuadMesh
	BoundaryPoints map[int]utils.Matrix
}

func NewGeometry2D(meshKind, generationMethod string, nTestPointsX, nTestPointsY int,
	outputFolder string) (*Geometry2D, error) {
	if meshKind != MeshKindQuadrilateral {
		return nil, types.NewConfigurationError("mesh kind %q is not supported, only %q",
			meshKind, MeshKindQuadrilateral)
	}
	switch generationMethod {
	case GenerationInternal, GenerationExternal:
	default:
		return nil, types.NewConfigurationError("mesh generation method %q is not supported, must be %q or %q",
			generationMethod, GenerationInternal, GenerationExternal)
	}
	if nTestPointsX < 2 || nTestPointsY < 2 {
		return nil, types.NewConfigurationError("test grid needs at least 2 points per direction, have %d x %d",
			nTestPointsX, nTestPointsY)
	}
	if outputFolder != "" {
		if err := os.MkdirAll(outputFolder, 0755); err != nil {
			return nil, types.NewConfigurationError("unable to create output folder %q: %v",
				outputFolder, err)
		}
	}
	return &Geometry2D{
		MeshKind:         meshKind,
		GenerationMethod: generationMethod,
		NTestPointsX:     nTestPointsX,
		NTestPointsY:     nTestPointsY,
		OutputFolder:     outputFolder,
	}, nil
}

/*
GenerateQuadMeshInternal tiles [xLimits[0],xLimits[1]] x
[yLimits[0],yLimits[1]] with nCellsX x nCellsY quads, row major from
the bottom left with CCW vertex order, and places numBoundaryPoints
evenly spaced points on each of the four sides under the fixed tags
bottom/right/top/left. It returns the cells and the per tag boundary
points and retains both on the receiver. No files are written.
*/
func (g *Geometry2D) GenerateQuadMeshInternal(xLimits, yLimits [2]float64,
	nCellsX, nCellsY, numBoundaryPoints int) (cells []Quad, boundaryPoints map[int]utils.Matrix, err error) {
	if g.GenerationMethod != GenerationInternal {
		err = types.NewConfigurationError("geometry was constructed with method %q, internal generation is unavailable",
			g.GenerationMethod)
		return
	}
	if nCellsX < 1 || nCellsY < 1 {
		err = types.NewConfigurationError("cell counts must be at least 1, have %d x %d", nCellsX, nCellsY)
		return
	}
	if xLimits[1] <= xLimits[0] || yLimits[1] <= yLimits[0] {
		err = types.NewConfigurationError("domain limits must be increasing, have x=%v, y=%v", xLimits, yLimits)
		return
	}
	if numBoundaryPoints < 1 {
		err = types.NewConfigurationError("number of boundary points must be at least 1, have %d", numBoundaryPoints)
		return
	}
	var qm *QuadMesh
	src := internalSource{xLimits: xLimits, yLimits: yLimits, nCellsX: nCellsX, nCellsY: nCellsY}
	if qm, err = src.build(); err != nil {
		return
	}
	qm.BoundaryPoints = sampleSides(xLimits, yLimits, numBoundaryPoints)
	g.Mesh = qm
	g.BoundaryPoints = qm.BoundaryPoints
	if g.Verbose {
		fmt.Printf("Generated internal mesh: %d cells, %d vertices on [%g,%g] x [%g,%g]\n",
			qm.NumCells(), qm.NumVertices(), xLimits[0], xLimits[1], yLimits[0], yLimits[1])
	}
	cells = qm.Cells()
	boundaryPoints = qm.BoundaryPoints
	return
}

/*
ReadMesh loads an external quadrilateral mesh file, optionally
subdivides it refinementLevel times, and resamples the tagged boundary
with bdSamplingMethod at density 2^boundaryPointRefinementLevel points
per boundary edge. The format is chosen by file extension. It returns
the cells and the per tag boundary points and retains both on the
receiver.
*/
func (g *Geometry2D) ReadMesh(meshFile string, boundaryPointRefinementLevel int,
	bdSamplingMethod string, refinementLevel int) (cells []Quad, boundaryPoints map[int]utils.Matrix, err error) {
	if g.GenerationMethod != GenerationExternal {
		err = types.NewConfigurationError("geometry was constructed with method %q, external meshes are unavailable",
			g.GenerationMethod)
		return
	}
	if refinementLevel < 0 {
		err = types.NewConfigurationError("mesh refinement level must be non-negative, have %d", refinementLevel)
		return
	}
	var qm *QuadMesh
	src := externalSource{filename: meshFile, refinementLevel: refinementLevel, verbose: g.Verbose}
	if qm, err = src.build(); err != nil {
		return
	}
	if qm.BoundaryPoints, err = sampleBoundary(qm, bdSamplingMethod, boundaryPointRefinementLevel); err != nil {
		return
	}
	g.Mesh = qm
	g.BoundaryPoints = qm.BoundaryPoints
	if g.Verbose {
		fmt.Printf("Read mesh %s: %d cells, %d vertices, %d boundary tags\n",
			meshFile, qm.NumCells(), qm.NumVertices(), len(qm.BCEdges))
	}
	cells = qm.Cells()
	boundaryPoints = qm.BoundaryPoints
	return
}

/*
TestPoints returns the nTestPointsX x nTestPointsY tensor product grid
over the mesh bounding box as an N x 2 matrix, row major with x varying
fastest. The finite element space and the test grid export both consume
it.
*/
func (g *Geometry2D) TestPoints() (utils.Matrix, error) {
	if g.Mesh == nil {
		return utils.Matrix{}, types.NewConfigurationError("no mesh has been generated or read yet")
	}
	xmin, xmax, ymin, ymax := g.Mesh.BoundingBox()
	var (
		nx = g.NTestPointsX
		ny = g.NTestPointsY
		xs = utils.NewVector(nx).Linspace(xmin, xmax)
		ys = utils.NewVector(ny).Linspace(ymin, ymax)
		R  = utils.NewMatrix(nx*ny, 2)
	)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			R.SetRow(i+nx*j, []float64{xs.AtVec(i), ys.AtVec(j)})
		}
	}
	return R, nil
}

/*
WriteVTK exports the current mesh together with named solution fields.
All validation runs before any file I/O, so a rejected call leaves
nothing on disk. An empty outputPath falls back to the geometry's
output folder.
*/
func (g *Geometry2D) WriteVTK(solution utils.Matrix, outputPath, filename string,
	dataNames []string) error {
	if g.Mesh == nil {
		return types.NewConfigurationError("no mesh has been generated or read yet")
	}
	if outputPath == "" {
		outputPath = g.OutputFolder
	}
	if err := writefiles.WriteMesh(filepath.Join(outputPath, filename),
		g.Mesh.VX, g.Mesh.VY, g.Mesh.EToV, solution, dataNames); err != nil {
		return err
	}
	if g.Verbose {
		fmt.Printf("Wrote %s\n", filepath.Join(outputPath, filename))
	}
	return nil
}

/*
ExportTestGrid writes the test point lattice as a bare quadrilateral
mesh, useful for visualizing solutions interpolated onto the test grid.
*/
func (g *Geometry2D) ExportTestGrid(filename string) error {
	pts, err := g.TestPoints()
	if err != nil {
		return err
	}
	var (
		nx   = g.NTestPointsX
		ny   = g.NTestPointsY
		EToV = utils.NewMatrix((nx-1)*(ny-1), 4)
	)
	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx-1; i++ {
			var (
				k   = i + (nx-1)*j
				v00 = i + nx*j
			)
			EToV.SetRow(k, []float64{float64(v00), float64(v00+1), float64(v00+nx+1), float64(v00+nx)})
		}
	}
	return writefiles.WriteMesh(filepath.Join(g.OutputFolder, filename),
		pts.Col(0), pts.Col(1), EToV, utils.Matrix{}, nil)
}

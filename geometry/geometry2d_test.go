package geometry

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govpinn/govpinn/types"
	"github.com/govpinn/govpinn/utils"
)

func writeMeshFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func tagsOf(bp map[int]utils.Matrix) (tags []int) {
	for tag := range bp {
		tags = append(tags, tag)
	}
	sort.Ints(tags)
	return
}

func quadArea(q Quad) (area float64) {
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		area += q[i][0]*q[j][1] - q[j][0]*q[i][1]
	}
	return 0.5 * area
}

func TestGenerateQuadMeshInternal(t *testing.T) {
	g, err := NewGeometry2D(MeshKindQuadrilateral, GenerationInternal, 10, 10, t.TempDir())
	require.NoError(t, err)
	cells, bp, err := g.GenerateQuadMeshInternal([2]float64{0, 1}, [2]float64{0, 1}, 4, 4, 100)
	require.NoError(t, err)

	{ // 4 x 4 tiling yields 16 positively oriented cells
		require.Equal(t, 16, len(cells))
		assert.Equal(t, Quad{{0, 0}, {0.25, 0}, {0.25, 0.25}, {0, 0.25}}, cells[0])
		for k, c := range cells {
			assert.Greaterf(t, quadArea(c), 0.0, "cell %d", k)
		}
	}
	{ // four fixed tags, each with the requested number of points
		require.Equal(t, []int{1000, 1001, 1002, 1003}, tagsOf(bp))
		for tag, pts := range bp {
			r, c := pts.Dims()
			assert.Equalf(t, 100, r, "tag %d", tag)
			assert.Equal(t, 2, c)
		}
	}
	{ // each tag's points sit on their own side
		for i := 0; i < 100; i++ {
			assert.Equal(t, 0.0, bp[types.TagBottom].At(i, 1))
			assert.Equal(t, 1.0, bp[types.TagRight].At(i, 0))
			assert.Equal(t, 1.0, bp[types.TagTop].At(i, 1))
			assert.Equal(t, 0.0, bp[types.TagLeft].At(i, 0))
		}
		// corners are included
		assert.Equal(t, 0.0, bp[types.TagBottom].At(0, 0))
		assert.Equal(t, 1.0, bp[types.TagBottom].At(99, 0))
	}
	{ // mean of a constant boundary function recovers the constant
		bound := func(x, y float64) float64 { return 3.25 }
		for tag, pts := range bp {
			n, _ := pts.Dims()
			var sum float64
			for i := 0; i < n; i++ {
				sum += bound(pts.At(i, 0), pts.At(i, 1))
			}
			assert.InDeltaf(t, 3.25, sum/float64(n), 1.e-12, "tag %d", tag)
		}
	}
	{ // mesh is retained on the receiver
		require.NotNil(t, g.Mesh)
		assert.Equal(t, 16, g.Mesh.NumCells())
		assert.Equal(t, 25, g.Mesh.NumVertices())
		assert.Equal(t, 4, len(g.BoundaryPoints))
	}
}

func TestInternalMeshDeterminism(t *testing.T) {
	gen := func() ([]Quad, map[int]utils.Matrix) {
		g, err := NewGeometry2D(MeshKindQuadrilateral, GenerationInternal, 10, 10, t.TempDir())
		require.NoError(t, err)
		cells, bp, err := g.GenerateQuadMeshInternal([2]float64{-1, 2}, [2]float64{0, 1}, 3, 5, 17)
		require.NoError(t, err)
		return cells, bp
	}
	cells1, bp1 := gen()
	cells2, bp2 := gen()
	assert.Equal(t, cells1, cells2)
	require.Equal(t, tagsOf(bp1), tagsOf(bp2))
	for tag := range bp1 {
		assert.Equal(t, bp1[tag].Data(), bp2[tag].Data())
	}
}

func TestReadMeshExternal(t *testing.T) {
	path := writeMeshFile(t, "square_loop.mesh", squareLoopMesh)
	g, err := NewGeometry2D(MeshKindQuadrilateral, GenerationExternal, 10, 10, t.TempDir())
	require.NoError(t, err)
	cells, bp, err := g.ReadMesh(path, 2, SamplingUniform, 0)
	require.NoError(t, err)

	{ // 2 x 2 quad mesh under a single boundary tag
		assert.Equal(t, 4, len(cells))
		require.Equal(t, []int{1000}, tagsOf(bp))
	}
	{ // 8 boundary edges at 2^2 points each, loop closed without duplicates
		n, c := bp[1000].Dims()
		require.Equal(t, 32, n)
		assert.Equal(t, 2, c)
		seen := make(map[[2]float64]bool, n)
		for i := 0; i < n; i++ {
			p := [2]float64{bp[1000].At(i, 0), bp[1000].At(i, 1)}
			assert.Falsef(t, seen[p], "duplicate point %v", p)
			seen[p] = true
			onBoundary := p[0] == 0 || p[0] == 1 || p[1] == 0 || p[1] == 1
			assert.Truef(t, onBoundary, "point %v is off the square boundary", p)
		}
	}
	{ // mean of a constant boundary function recovers the constant
		bound := func(x, y float64) float64 { return -2.5 }
		n, _ := bp[1000].Dims()
		var sum float64
		for i := 0; i < n; i++ {
			sum += bound(bp[1000].At(i, 0), bp[1000].At(i, 1))
		}
		assert.InDelta(t, -2.5, sum/float64(n), 1.e-12)
	}
	{ // repeated reads are identical
		g2, err := NewGeometry2D(MeshKindQuadrilateral, GenerationExternal, 10, 10, t.TempDir())
		require.NoError(t, err)
		cells2, bp2, err := g2.ReadMesh(path, 2, SamplingUniform, 0)
		require.NoError(t, err)
		assert.Equal(t, cells, cells2)
		assert.Equal(t, bp[1000].Data(), bp2[1000].Data())
	}
}

func TestReadMeshRefinement(t *testing.T) {
	path := writeMeshFile(t, "square_loop.mesh", squareLoopMesh)
	g, err := NewGeometry2D(MeshKindQuadrilateral, GenerationExternal, 10, 10, t.TempDir())
	require.NoError(t, err)
	cells, bp, err := g.ReadMesh(path, 0, SamplingUniform, 1)
	require.NoError(t, err)

	// One split turns 4 quads into 16 on a 5 x 5 point lattice
	assert.Equal(t, 16, len(cells))
	assert.Equal(t, 25, g.Mesh.NumVertices())
	for k, c := range cells {
		assert.Greaterf(t, quadArea(c), 0.0, "cell %d", k)
	}

	// Boundary edges split alongside: 16 of them, one sample each at level 0
	n, _ := bp[1000].Dims()
	assert.Equal(t, 16, n)
	for i := 0; i < n; i++ {
		x, y := bp[1000].At(i, 0), bp[1000].At(i, 1)
		onBoundary := x == 0 || x == 1 || y == 0 || y == 1
		assert.Truef(t, onBoundary, "point (%g,%g) is off the square boundary", x, y)
	}
}

func TestBoundarySamplingLHS(t *testing.T) {
	path := writeMeshFile(t, "square_loop.mesh", squareLoopMesh)
	read := func() map[int]utils.Matrix {
		g, err := NewGeometry2D(MeshKindQuadrilateral, GenerationExternal, 10, 10, t.TempDir())
		require.NoError(t, err)
		_, bp, err := g.ReadMesh(path, 3, SamplingLHS, 0)
		require.NoError(t, err)
		return bp
	}
	bp1 := read()
	bp2 := read()

	// 8 edges at 2^3 stratified samples each
	n, _ := bp1[1000].Dims()
	require.Equal(t, 64, n)
	for i := 0; i < n; i++ {
		x, y := bp1[1000].At(i, 0), bp1[1000].At(i, 1)
		onBoundary := x == 0 || x == 1 || y == 0 || y == 1
		assert.Truef(t, onBoundary, "point (%g,%g) is off the square boundary", x, y)
	}

	// The draw is seeded per tag and edge, so repeated reads coincide exactly
	assert.Equal(t, bp1[1000].Data(), bp2[1000].Data())
}

func TestGeometry2DConfiguration(t *testing.T) {
	var cfgErr *types.ConfigurationError
	{ // unsupported mesh kind
		_, err := NewGeometry2D("triangle", GenerationInternal, 10, 10, "")
		require.ErrorAs(t, err, &cfgErr)
	}
	{ // unsupported generation method
		_, err := NewGeometry2D(MeshKindQuadrilateral, "adaptive", 10, 10, "")
		require.ErrorAs(t, err, &cfgErr)
	}
	{ // degenerate test grid
		_, err := NewGeometry2D(MeshKindQuadrilateral, GenerationInternal, 1, 10, "")
		require.ErrorAs(t, err, &cfgErr)
	}
	{ // internal call on an external geometry and vice versa
		g, err := NewGeometry2D(MeshKindQuadrilateral, GenerationExternal, 10, 10, "")
		require.NoError(t, err)
		_, _, err = g.GenerateQuadMeshInternal([2]float64{0, 1}, [2]float64{0, 1}, 4, 4, 10)
		require.ErrorAs(t, err, &cfgErr)

		g, err = NewGeometry2D(MeshKindQuadrilateral, GenerationInternal, 10, 10, "")
		require.NoError(t, err)
		_, _, err = g.ReadMesh("whatever.mesh", 1, SamplingUniform, 0)
		require.ErrorAs(t, err, &cfgErr)
	}
	{ // invalid tiling parameters
		g, err := NewGeometry2D(MeshKindQuadrilateral, GenerationInternal, 10, 10, "")
		require.NoError(t, err)
		_, _, err = g.GenerateQuadMeshInternal([2]float64{0, 1}, [2]float64{0, 1}, 0, 4, 10)
		require.ErrorAs(t, err, &cfgErr)
		_, _, err = g.GenerateQuadMeshInternal([2]float64{1, 0}, [2]float64{0, 1}, 4, 4, 10)
		require.ErrorAs(t, err, &cfgErr)
		_, _, err = g.GenerateQuadMeshInternal([2]float64{0, 1}, [2]float64{0, 1}, 4, 4, 0)
		require.ErrorAs(t, err, &cfgErr)
	}
	{ // unknown sampling method
		path := writeMeshFile(t, "square_loop.mesh", squareLoopMesh)
		g, err := NewGeometry2D(MeshKindQuadrilateral, GenerationExternal, 10, 10, "")
		require.NoError(t, err)
		_, _, err = g.ReadMesh(path, 2, "sobol", 0)
		require.ErrorAs(t, err, &cfgErr)
	}
	{ // missing mesh file
		var ffErr *types.FileFormatError
		g, err := NewGeometry2D(MeshKindQuadrilateral, GenerationExternal, 10, 10, "")
		require.NoError(t, err)
		_, _, err = g.ReadMesh("no_such_file.mesh", 2, SamplingUniform, 0)
		require.ErrorAs(t, err, &ffErr)
	}
}

func TestWriteVTKInternal(t *testing.T) {
	outDir := t.TempDir()
	g, err := NewGeometry2D(MeshKindQuadrilateral, GenerationInternal, 10, 10, outDir)
	require.NoError(t, err)
	_, _, err = g.GenerateQuadMeshInternal([2]float64{0, 1}, [2]float64{0, 1}, 4, 4, 100)
	require.NoError(t, err)

	{ // a successful write leaves the file at outputPath/filename
		solution := utils.NewMatrix(25, 1, utils.ConstArray(25, 1.0))
		require.NoError(t, g.WriteVTK(solution, outDir, "internal.vtk", []string{"u"}))
		assert.FileExists(t, filepath.Join(outDir, "internal.vtk"))
	}
	{ // column/name mismatch fails before any file is produced
		solution := utils.NewMatrix(2, 2, []float64{1, 2, 3, 4})
		err := g.WriteVTK(solution, outDir, "output.vtk", []string{"data1", "data2", "data3"})
		var fce *types.FieldCountError
		require.ErrorAs(t, err, &fce)
		assert.NoFileExists(t, filepath.Join(outDir, "output.vtk"))
	}
	{ // empty outputPath falls back to the geometry's output folder
		solution := utils.NewMatrix(25, 1, utils.ConstArray(25, 2.0))
		require.NoError(t, g.WriteVTK(solution, "", "fallback.vtk", []string{"u"}))
		assert.FileExists(t, filepath.Join(outDir, "fallback.vtk"))
	}
	{ // the test point lattice exports as a bare mesh
		require.NoError(t, g.ExportTestGrid("test_grid.vtk"))
		assert.FileExists(t, filepath.Join(outDir, "test_grid.vtk"))
	}
	{ // writing requires a mesh
		g2, err := NewGeometry2D(MeshKindQuadrilateral, GenerationInternal, 10, 10, t.TempDir())
		require.NoError(t, err)
		var cfgErr *types.ConfigurationError
		err = g2.WriteVTK(utils.Matrix{}, "", "nothing.vtk", nil)
		require.ErrorAs(t, err, &cfgErr)
	}
}

func TestWriteVTKExternal(t *testing.T) {
	path := writeMeshFile(t, "square_loop.mesh", squareLoopMesh)
	outDir := t.TempDir()
	g, err := NewGeometry2D(MeshKindQuadrilateral, GenerationExternal, 10, 10, outDir)
	require.NoError(t, err)
	_, _, err = g.ReadMesh(path, 2, SamplingUniform, 0)
	require.NoError(t, err)

	{ // point data write succeeds for the external provenance too
		solution := utils.NewMatrix(9, 1, utils.ConstArray(9, 4.0))
		require.NoError(t, g.WriteVTK(solution, outDir, "external.vtk", []string{"u"}))
		assert.FileExists(t, filepath.Join(outDir, "external.vtk"))
	}
	{ // and the mismatch rejection holds for it as well
		solution := utils.NewMatrix(2, 2, []float64{1, 2, 3, 4})
		err := g.WriteVTK(solution, outDir, "output.vtk", []string{"data1", "data2", "data3"})
		var fce *types.FieldCountError
		require.ErrorAs(t, err, &fce)
		assert.NoFileExists(t, filepath.Join(outDir, "output.vtk"))
	}
}

func TestTestPoints(t *testing.T) {
	g, err := NewGeometry2D(MeshKindQuadrilateral, GenerationInternal, 5, 4, t.TempDir())
	require.NoError(t, err)

	{ // no mesh yet
		var cfgErr *types.ConfigurationError
		_, err := g.TestPoints()
		require.ErrorAs(t, err, &cfgErr)
	}

	_, _, err = g.GenerateQuadMeshInternal([2]float64{0, 2}, [2]float64{0, 1}, 2, 2, 5)
	require.NoError(t, err)
	pts, err := g.TestPoints()
	require.NoError(t, err)

	r, c := pts.Dims()
	require.Equal(t, 20, r)
	require.Equal(t, 2, c)
	// row major over the bounding box with x varying fastest
	assert.Equal(t, []float64{0, 0}, pts.Row(0).Data())
	assert.Equal(t, []float64{2, 0}, pts.Row(4).Data())
	assert.Equal(t, []float64{0.5, 0}, pts.Row(1).Data())
	assert.Equal(t, []float64{2, 1}, pts.Row(19).Data())
}

var squareLoopMesh = []byte(`MeshVersionFormatted 2
# unit square, 2x2 quads, one boundary tag
Dimension 2
Vertices
9
0.0 0.0 1
0.5 0.0 1
1.0 0.0 1
0.0 0.5 1
0.5 0.5 0
1.0 0.5 1
0.0 1.0 1
0.5 1.0 1
1.0 1.0 1
Edges
8
6 9 1000
1 2 1000
8 7 1000
3 6 1000
9 8 1000
7 4 1000
2 3 1000
4 1 1000
Quadrilaterals
4
1 2 5 4 0
2 3 6 5 0
4 5 8 7 0
5 6 9 8 0
End
`)

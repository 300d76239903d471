package datahandler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govpinn/govpinn/boundary"
	"github.com/govpinn/govpinn/fespace"
	"github.com/govpinn/govpinn/geometry"
	"github.com/govpinn/govpinn/types"
)

func trainingSetup(t *testing.T, kinds map[int]boundary.Kind) *DataHandler2D {
	t.Helper()
	g, err := geometry.NewGeometry2D(geometry.MeshKindQuadrilateral, geometry.GenerationInternal,
		6, 6, t.TempDir())
	require.NoError(t, err)
	_, _, err = g.GenerateQuadMeshInternal([2]float64{0, 1}, [2]float64{0, 1}, 3, 3, 8)
	require.NoError(t, err)

	values := make(map[int]boundary.ValueFunc, len(kinds))
	for tag := range kinds {
		values[tag] = func(x, y float64) float64 { return x + y }
	}
	cs, err := boundary.NewConditionSet(kinds, values)
	require.NoError(t, err)
	fes, err := fespace.NewFESpace2D(g, cs, 2)
	require.NoError(t, err)
	dh, err := NewDataHandler2D(fes, g)
	require.NoError(t, err)
	return dh
}

func allTags(kind boundary.Kind) map[int]boundary.Kind {
	return map[int]boundary.Kind{
		types.TagBottom: kind,
		types.TagRight:  kind,
		types.TagTop:    kind,
		types.TagLeft:   kind,
	}
}

func TestNewDataHandler2D(t *testing.T) {
	var cfgErr *types.ConfigurationError
	{ // both collaborators are required
		_, err := NewDataHandler2D(nil, nil)
		require.ErrorAs(t, err, &cfgErr)
	}
	{ // the space must have been built on the same geometry
		dh := trainingSetup(t, allTags(boundary.KindDirichlet))
		other, err := geometry.NewGeometry2D(geometry.MeshKindQuadrilateral,
			geometry.GenerationInternal, 6, 6, t.TempDir())
		require.NoError(t, err)
		_, err = NewDataHandler2D(dh.FESpace, other)
		require.ErrorAs(t, err, &cfgErr)
	}
}

func TestCollocationPoints(t *testing.T) {
	dh := trainingSetup(t, allTags(boundary.KindDirichlet))
	pts, w, err := dh.CollocationPoints()
	require.NoError(t, err)

	r, c := pts.Dims()
	require.Equal(t, 36, r) // 9 cells x 2^2 quadrature points
	require.Equal(t, 2, c)
	require.Equal(t, 36, w.Len())
	assert.InDelta(t, 1.0, w.Sum(), 1.e-12)

	// deterministic across calls
	pts2, w2, err := dh.CollocationPoints()
	require.NoError(t, err)
	assert.Equal(t, pts.Data(), pts2.Data())
	assert.Equal(t, w.Data(), w2.Data())
}

func TestBoundaryData(t *testing.T) {
	{ // all four sides Dirichlet stack in tag order
		dh := trainingSetup(t, allTags(boundary.KindDirichlet))
		pts, vals, tags, err := dh.BoundaryData()
		require.NoError(t, err)

		r, c := pts.Dims()
		require.Equal(t, 32, r) // 4 tags x 8 points
		require.Equal(t, 2, c)
		require.Equal(t, 32, vals.Len())
		require.Equal(t, 32, len(tags))

		assert.Equal(t, types.TagBottom, tags[0])
		assert.Equal(t, types.TagLeft, tags[31])
		for i := 0; i < r; i++ {
			assert.InDeltaf(t, pts.At(i, 0)+pts.At(i, 1), vals.AtVec(i), 1.e-14, "row %d", i)
		}
	}
	{ // no Dirichlet tags means no boundary training data
		dh := trainingSetup(t, allTags(boundary.KindNeumann))
		pts, vals, tags, err := dh.BoundaryData()
		require.NoError(t, err)
		assert.True(t, pts.IsEmpty())
		assert.Nil(t, vals.V)
		assert.Empty(t, tags)
	}
}

func TestHandlerTestPoints(t *testing.T) {
	dh := trainingSetup(t, allTags(boundary.KindDirichlet))
	pts, err := dh.TestPoints()
	require.NoError(t, err)
	r, c := pts.Dims()
	assert.Equal(t, 36, r) // 6 x 6 grid
	assert.Equal(t, 2, c)
}

package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var experimentYAML = []byte(`
Title: Poisson on the unit square
MeshKind: quadrilateral
GenerationMethod: internal
XLimits: [0, 1]
YLimits: [0, 1]
NCellsX: 4
NCellsY: 4
NumBoundaryPoints: 100
NTestPointsX: 10
NTestPointsY: 10
QuadratureOrder: 3
OutputFolder: output
BCs:
  1000: {Kind: dirichlet, Value: 0}
  1001: {Kind: dirichlet, Value: 0}
  1002: {Kind: dirichlet, Value: 1}
  1003: {Kind: neumann, Value: 0}
`)

func TestParseParameters(t *testing.T) {
	var ip VPINNParameters2D
	require.NoError(t, ip.Parse(experimentYAML))

	assert.Equal(t, "Poisson on the unit square", ip.Title)
	assert.Equal(t, "quadrilateral", ip.MeshKind)
	assert.Equal(t, "internal", ip.GenerationMethod)
	assert.Equal(t, [2]float64{0, 1}, ip.XLimits)
	assert.Equal(t, 4, ip.NCellsX)
	assert.Equal(t, 100, ip.NumBoundaryPoints)
	assert.Equal(t, 10, ip.NTestPointsX)
	assert.Equal(t, 3, ip.QuadratureOrder)
	assert.Equal(t, "output", ip.OutputFolder)

	require.Equal(t, 4, len(ip.BCs))
	assert.Equal(t, "dirichlet", ip.BCs[1000].Kind)
	assert.Equal(t, 1.0, ip.BCs[1002].Value)
	assert.Equal(t, "neumann", ip.BCs[1003].Kind)
}

func TestParseParametersExternal(t *testing.T) {
	var ip VPINNParameters2D
	require.NoError(t, ip.Parse([]byte(`
Title: Channel
MeshKind: quadrilateral
GenerationMethod: external
MeshFile: meshes/channel.su2
BoundaryRefinement: 2
SamplingMethod: lhs
RefinementLevel: 1
NTestPointsX: 20
NTestPointsY: 5
QuadratureOrder: 2
`)))
	assert.Equal(t, "external", ip.GenerationMethod)
	assert.Equal(t, "meshes/channel.su2", ip.MeshFile)
	assert.Equal(t, 2, ip.BoundaryRefinement)
	assert.Equal(t, "lhs", ip.SamplingMethod)
	assert.Equal(t, 1, ip.RefinementLevel)
}

func TestParseParametersRejectsGarbage(t *testing.T) {
	var ip VPINNParameters2D
	assert.Error(t, ip.Parse([]byte("NCellsX: [not, an, int]\n")))
}

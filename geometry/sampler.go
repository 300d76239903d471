package geometry

import (
	"math/rand/v2"

	"github.com/govpinn/govpinn/types"
	"github.com/govpinn/govpinn/utils"
)

// Boundary sampling methods accepted by ReadMesh.
const (
	SamplingUniform = "uniform"
	SamplingLHS     = "lhs"
)

/*
sampleBoundary resamples the tagged boundary edges of a mesh into the
per tag point sets used for boundary loss evaluation. Each tag's edges
are first chained head to tail, then every edge contributes 2^level
points along its length:

	uniform: offsets k/N for k in [0,N), so a closed loop resamples to
	         exactly N*len(edges) evenly spaced points with no
	         duplicates, and level 0 reproduces the mesh vertices. An
	         open chain additionally receives its final vertex.
	lhs:     one point per stratum of the unit interval, the one
	         dimensional latin hypercube, drawn from a PCG stream
	         seeded by (tag, edge index) so repeated reads of the same
	         mesh are identical.
*/
func sampleBoundary(qm *QuadMesh, method string, level int) (map[int]utils.Matrix, error) {
	switch method {
	case SamplingUniform, SamplingLHS:
	default:
		return nil, types.NewConfigurationError("boundary sampling method %q is not supported, must be %q or %q",
			method, SamplingUniform, SamplingLHS)
	}
	if level < 0 {
		return nil, types.NewConfigurationError("boundary point refinement level must be non-negative, have %d", level)
	}
	var (
		N      = 1 << level
		vx, vy = qm.VX.Data(), qm.VY.Data()
		bp     = make(map[int]utils.Matrix, len(qm.BCEdges))
	)
	for _, tag := range qm.BCEdges.Tags() {
		chain := qm.BCEdges[tag].ChainEdges()
		pts := make([][2]float64, 0, N*len(chain)+1)
		for i, e := range chain {
			var (
				verts   = e.GetVertices()
				x1, y1  = vx[verts[0]], vy[verts[0]]
				x2, y2  = vx[verts[1]], vy[verts[1]]
				offsets []float64
			)
			switch method {
			case SamplingUniform:
				offsets = uniformOffsets(N)
			case SamplingLHS:
				offsets = lhsOffsets(N, uint64(tag), uint64(i))
			}
			for _, t := range offsets {
				pts = append(pts, [2]float64{x1 + t*(x2-x1), y1 + t*(y2-y1)})
			}
		}
		if method == SamplingUniform && len(chain) > 0 {
			var (
				first = chain[0].GetVertices()
				last  = chain[len(chain)-1].GetVertices()
			)
			if first[0] != last[1] { // open chain, close it with the end vertex
				pts = append(pts, [2]float64{vx[last[1]], vy[last[1]]})
			}
		}
		R := utils.NewMatrix(len(pts), 2)
		for i, p := range pts {
			R.SetRow(i, p[:])
		}
		bp[tag] = R
	}
	return bp, nil
}

func uniformOffsets(N int) (t []float64) {
	t = make([]float64, N)
	for k := range t {
		t[k] = float64(k) / float64(N)
	}
	return
}

func lhsOffsets(N int, seed1, seed2 uint64) []float64 {
	var (
		rng = rand.New(rand.NewPCG(seed1, seed2))
		h   = 1 / float64(N)
	)
	// Stratum floors, then one jittered draw inside each stratum
	return utils.NewVector(N).Linspace(0, float64(N-1)*h).Apply(func(lo float64) float64 {
		return lo + h*rng.Float64()
	}).Data()
}

// sampleSides places n evenly spaced points, endpoints included, on
// each straight side of an axis aligned box. Corners are shared, so
// they appear in both adjacent tags.
func sampleSides(xLimits, yLimits [2]float64, n int) map[int]utils.Matrix {
	var (
		xs = utils.NewVector(n).Linspace(xLimits[0], xLimits[1])
		ys = utils.NewVector(n).Linspace(yLimits[0], yLimits[1])
	)
	side := func(x, y utils.Vector) utils.Matrix {
		R := utils.NewMatrix(n, 2)
		R.SetCol(0, x.Data())
		R.SetCol(1, y.Data())
		return R
	}
	fill := func(val float64) utils.Vector {
		return utils.NewVector(n).Set(val)
	}
	return map[int]utils.Matrix{
		types.TagBottom: side(xs, fill(yLimits[0])),
		types.TagRight:  side(fill(xLimits[1]), ys),
		types.TagTop:    side(xs, fill(yLimits[1])),
		types.TagLeft:   side(fill(xLimits[0]), ys),
	}
}

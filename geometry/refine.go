package geometry

import (
	"fmt"

	"github.com/govpinn/govpinn/types"
	"github.com/govpinn/govpinn/utils"
)

/*
refineQuadMesh splits every quad into four children by inserting one
midpoint per edge and a centroid per cell. Midpoints are shared between
neighboring cells through an EdgeKey map, so the refined mesh stays
conforming. Tagged boundary edges are split alongside, which keeps the
tag map aligned with the finer mesh and preserves each edge's direction.
*/
func refineQuadMesh(qm *QuadMesh) (*QuadMesh, error) {
	var (
		K, _   = qm.EToV.Dims()
		nv     = qm.VX.Len()
		vx, vy = qm.VX.Data(), qm.VY.Data()
	)
	xNew := append(make([]float64, 0, 2*nv), vx...)
	yNew := append(make([]float64, 0, 2*nv), vy...)
	midpoints := make(map[types.EdgeKey]int, 2*K)
	midpoint := func(a, b int) (v int) {
		ek := types.NewEdgeKey([2]int{a, b})
		if v, ok := midpoints[ek]; ok {
			return v
		}
		v = len(xNew)
		midpoints[ek] = v
		xNew = append(xNew, 0.5*(vx[a]+vx[b]))
		yNew = append(yNew, 0.5*(vy[a]+vy[b]))
		return
	}

	EToV := utils.NewMatrix(4*K, 4)
	for k := 0; k < K; k++ {
		var (
			I          = utils.NewFromFloat(qm.EToV.Row(k).Data())
			a, b, c, d = I[0], I[1], I[2], I[3]
			mab        = midpoint(a, b)
			mbc        = midpoint(b, c)
			mcd        = midpoint(c, d)
			mda        = midpoint(d, a)
			o          = len(xNew)
		)
		xNew = append(xNew, 0.25*(vx[a]+vx[b]+vx[c]+vx[d]))
		yNew = append(yNew, 0.25*(vy[a]+vy[b]+vy[c]+vy[d]))
		// One child per parent corner, each CCW like the parent
		children := [4][4]int{
			{a, mab, o, mda},
			{mab, b, mbc, o},
			{o, mbc, c, mcd},
			{mda, o, mcd, d},
		}
		for ch, child := range children {
			for j, v := range child {
				EToV.Set(4*k+ch, j, float64(v))
			}
		}
	}

	BCEdges := make(types.TagMap, len(qm.BCEdges))
	for tag, curve := range qm.BCEdges {
		split := make([]types.EdgeInt, 0, 2*len(curve))
		for _, e := range curve {
			verts := e.GetVertices()
			m, ok := midpoints[e.GetKey()]
			if !ok {
				return nil, fmt.Errorf("boundary edge [%d,%d] with tag %d is not an edge of any cell",
					verts[0], verts[1], tag)
			}
			split = append(split,
				types.NewEdgeInt([2]int{verts[0], m}),
				types.NewEdgeInt([2]int{m, verts[1]}))
		}
		BCEdges.AddEdges(tag, split)
	}

	refined := &QuadMesh{
		VX:       utils.NewVector(len(xNew), xNew),
		VY:       utils.NewVector(len(yNew), yNew),
		EToV:     EToV,
		BCEdges:  BCEdges,
		TagNames: qm.TagNames,
	}
	return refined, nil
}

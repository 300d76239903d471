package types

import (
	"fmt"
	"math"
)

/*
EdgeKey is an always positive number that stores an edge's vertices as indices in a way that can be compared
An edge between vertices [4] and [0] will always be stored as [0,4], in the ascending order of the index values
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	// This packs two index coordinates into two 32 bit unsigned integers to act as a hash and an indirect access method
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeKey(i1 + i2<<32)
	return
}

func (ek EdgeKey) GetVertices(rev bool) (verts [2]int) {
	var (
		enTmp EdgeKey
	)
	enTmp = ek >> 32
	verts[1] = int(enTmp)
	verts[0] = int(ek - enTmp*(1<<32))
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

/*
An EdgeInt stores the edge vertices in the original order of the vertices, so that it can be recovered with it's direction
*/
type EdgeInt int64

func NewEdgeInt(verts [2]int) (packed EdgeInt) {
	// This packs two index coordinates into two 31 bit unsigned integers to act as a hash and an indirect access method
	var (
		limit = math.MaxUint32 >> 1 // leaves room for the sign bit of an int64
		sign  bool
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into an int64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		sign = true
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeInt(i1 + i2<<32)
	if sign {
		packed = -packed
	}
	return
}

func (e EdgeInt) GetVertices() (verts [2]int) {
	var (
		eTmp EdgeInt
		sign bool
	)
	if e < 0 {
		sign = true
		e = -e
	}
	eTmp = e >> 32
	verts[1] = int(eTmp)
	verts[0] = int(e - eTmp*(1<<32))
	if sign {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}

func (e EdgeInt) GetKey() (ek EdgeKey) {
	ek = NewEdgeKey(e.GetVertices())
	return
}

/*
A Curve is a set of boundary edges sharing one tag. ChainEdges orders them
head-to-tail so that walking the result traverses the boundary contiguously,
which the boundary sampler relies on for arc-length spacing.

The walk starts from the lowest-numbered odd-degree vertex (an open chain's
endpoint) or, on a closed loop, from the lowest-numbered vertex overall, so
the ordering is deterministic for a given edge set regardless of input order.
*/
type Curve []EdgeInt

func (c Curve) ChainEdges() (chained Curve) {
	var (
		l = len(c)
	)
	if l < 2 {
		chained = c
		return
	}
	vertEdges := make(map[int][]EdgeInt, 2*l)
	for _, e := range c {
		verts := e.GetVertices()
		vertEdges[verts[0]] = append(vertEdges[verts[0]], e)
		vertEdges[verts[1]] = append(vertEdges[verts[1]], e)
	}
	start := -1
	lowest := math.MaxInt64
	for v, edges := range vertEdges {
		if v < lowest {
			lowest = v
		}
		if len(edges)%2 == 1 && (start == -1 || v < start) {
			start = v
		}
	}
	if start == -1 {
		start = lowest // closed loop
	}
	used := make(map[EdgeKey]bool, l)
	chained = make(Curve, 0, l)
	cur := start
	for len(chained) < l {
		var next EdgeInt
		found := false
		farBest := math.MaxInt64
		for _, e := range vertEdges[cur] {
			if used[e.GetKey()] {
				continue
			}
			verts := e.GetVertices()
			far := verts[0]
			if far == cur {
				far = verts[1]
			}
			if far < farBest {
				farBest = far
				next = e
				found = true
			}
		}
		if !found {
			// Disconnected remainder: restart from the lowest unused endpoint
			restart := math.MaxInt64
			for v, edges := range vertEdges {
				if v >= restart {
					continue
				}
				for _, e := range edges {
					if !used[e.GetKey()] {
						restart = v
						break
					}
				}
			}
			cur = restart
			continue
		}
		used[next.GetKey()] = true
		verts := next.GetVertices()
		if verts[0] != cur { // store directed away from the current vertex
			verts[0], verts[1] = verts[1], verts[0]
		}
		chained = append(chained, NewEdgeInt(verts))
		cur = verts[1]
	}
	return
}

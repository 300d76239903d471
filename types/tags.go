package types

import "sort"

// Boundary tags assigned by internal rectangle generation, in fixed edge
// order. External mesh files carry their own integer tags; formats with
// named markers map them to TagBase+index in file order.
const (
	TagBase   = 1000
	TagBottom = TagBase
	TagRight  = TagBase + 1
	TagTop    = TagBase + 2
	TagLeft   = TagBase + 3
)

// TagMap collects the boundary edges of a mesh keyed by boundary tag.
type TagMap map[int]Curve

func (tm TagMap) AddEdges(tag int, edges []EdgeInt) {
	tm[tag] = append(tm[tag], edges...)
}

// Tags returns the tag set in ascending order.
func (tm TagMap) Tags() (tags []int) {
	tags = make([]int, 0, len(tm))
	for tag := range tm {
		tags = append(tags, tag)
	}
	sort.Ints(tags)
	return
}

func (tm TagMap) TotalEdges() (n int) {
	for _, edges := range tm {
		n += len(edges)
	}
	return
}

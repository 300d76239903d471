package boundary

import (
	"sort"

	"github.com/govpinn/govpinn/types"
	"github.com/govpinn/govpinn/utils"
)

// ValueFunc evaluates a boundary value at a point.
type ValueFunc func(x, y float64) float64

/*
ConditionSet binds every boundary tag of a mesh to a condition kind and
a value function. Construction validates that the two maps cover
exactly the same tags, so a partially specified problem fails before
any assembly or training starts. The set itself never imposes the
conditions: the finite element collaborators pull values through
Evaluate when they need them.
*/
type ConditionSet struct {
	kinds  map[int]Kind
	values map[int]ValueFunc
}

func NewConditionSet(kinds map[int]Kind, values map[int]ValueFunc) (ConditionSet, error) {
	if err := matchTagSets(kinds, values); err != nil {
		return ConditionSet{}, err
	}
	for tag, kind := range kinds {
		if kind == KindUnknown {
			return ConditionSet{}, types.NewConfigurationError("boundary tag %d has no usable condition kind", tag)
		}
		if values[tag] == nil {
			return ConditionSet{}, types.NewConfigurationError("boundary tag %d has a nil value function", tag)
		}
	}
	return ConditionSet{kinds: kinds, values: values}, nil
}

// NewConditionSetFromNames is the configuration file entry point: kinds
// arrive as names ("dirichlet", "neumann", ...) and are parsed
// case-insensitively.
func NewConditionSetFromNames(names map[int]string, values map[int]ValueFunc) (ConditionSet, error) {
	kinds := make(map[int]Kind, len(names))
	for tag, name := range names {
		kind := ParseKind(name)
		if kind == KindUnknown {
			return ConditionSet{}, types.NewConfigurationError("unknown boundary condition %q on tag %d", name, tag)
		}
		kinds[tag] = kind
	}
	return NewConditionSet(kinds, values)
}

func matchTagSets(kinds map[int]Kind, values map[int]ValueFunc) error {
	matched := len(kinds) == len(values)
	if matched {
		for tag := range kinds {
			if _, ok := values[tag]; !ok {
				matched = false
				break
			}
		}
	}
	if matched {
		return nil
	}
	kindTags := make([]int, 0, len(kinds))
	for tag := range kinds {
		kindTags = append(kindTags, tag)
	}
	valueTags := make([]int, 0, len(values))
	for tag := range values {
		valueTags = append(valueTags, tag)
	}
	sort.Ints(kindTags)
	sort.Ints(valueTags)
	return types.NewConfigurationError("condition kinds cover tags %v but value functions cover tags %v",
		kindTags, valueTags)
}

// Evaluate applies the tag's value function to N x 2 boundary points
// and returns the N values.
func (cs ConditionSet) Evaluate(tag int, points utils.Matrix) (utils.Vector, error) {
	f, ok := cs.values[tag]
	if !ok {
		return utils.Vector{}, types.NewConfigurationError("no boundary condition bound to tag %d", tag)
	}
	n, c := points.Dims()
	if c != 2 {
		return utils.Vector{}, types.NewConfigurationError("boundary points must be Nx2, have %dx%d", n, c)
	}
	R := utils.NewVector(n)
	data := R.Data()
	for i := 0; i < n; i++ {
		data[i] = f(points.At(i, 0), points.At(i, 1))
	}
	return R, nil
}

// Tags returns the bound tags in ascending order.
func (cs ConditionSet) Tags() (tags []int) {
	tags = make([]int, 0, len(cs.kinds))
	for tag := range cs.kinds {
		tags = append(tags, tag)
	}
	sort.Ints(tags)
	return
}

func (cs ConditionSet) Kind(tag int) Kind {
	return cs.kinds[tag]
}

func (cs ConditionSet) Func(tag int) ValueFunc {
	return cs.values[tag]
}

package fespace

import (
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/govpinn/govpinn/boundary"
	"github.com/govpinn/govpinn/geometry"
	"github.com/govpinn/govpinn/types"
	"github.com/govpinn/govpinn/utils"
)

/*
FESpace2D couples a quadrilateral mesh with its boundary conditions and
a Gauss-Legendre quadrature rule. It owns the bilinear (Q1) reference
element and hands the physics side everything it needs: interior
quadrature points with weights, the vertex based mass matrix and the
Dirichlet training data.

The triple passed to the constructor is consumed immutably.
*/
type FESpace2D struct {
	Geom       *geometry.Geometry2D
	Conditions boundary.ConditionSet
	Order      int // quadrature points per direction

	xi, eta, wq []float64 // tensor rule on the reference square
}

func NewFESpace2D(geom *geometry.Geometry2D, conditions boundary.ConditionSet,
	quadratureOrder int) (*FESpace2D, error) {
	if geom == nil || geom.Mesh == nil {
		return nil, types.NewConfigurationError("finite element space needs a geometry with a mesh")
	}
	if quadratureOrder < 1 {
		return nil, types.NewConfigurationError("quadrature order must be at least 1, have %d", quadratureOrder)
	}
	// Condition tags must line up with the mesh's boundary tags exactly
	meshTags := geom.Mesh.BCEdges.Tags()
	condTags := conditions.Tags()
	if len(meshTags) != len(condTags) {
		return nil, types.NewConfigurationError("mesh has boundary tags %v but conditions cover %v",
			meshTags, condTags)
	}
	for i, tag := range meshTags {
		if condTags[i] != tag {
			return nil, types.NewConfigurationError("mesh has boundary tags %v but conditions cover %v",
				meshTags, condTags)
		}
	}

	var (
		nodes   = make([]float64, quadratureOrder)
		weights = make([]float64, quadratureOrder)
	)
	quad.Legendre{}.FixedLocations(nodes, weights, -1, 1)
	fes := &FESpace2D{
		Geom:       geom,
		Conditions: conditions,
		Order:      quadratureOrder,
		xi:         make([]float64, 0, quadratureOrder*quadratureOrder),
		eta:        make([]float64, 0, quadratureOrder*quadratureOrder),
		wq:         make([]float64, 0, quadratureOrder*quadratureOrder),
	}
	for j := 0; j < quadratureOrder; j++ {
		for i := 0; i < quadratureOrder; i++ {
			fes.xi = append(fes.xi, nodes[i])
			fes.eta = append(fes.eta, nodes[j])
			fes.wq = append(fes.wq, weights[i]*weights[j])
		}
	}
	return fes, nil
}

// TagData is one boundary tag's training data: the sampled points and
// the bound value function evaluated on them.
type TagData struct {
	Tag    int
	Points utils.Matrix
	Values utils.Vector
}

// DirichletData evaluates the Dirichlet tags' value functions on their
// sampled boundary points, in ascending tag order. Other condition
// kinds are skipped; imposing them is the solver's business.
func (fes *FESpace2D) DirichletData() (data []TagData, err error) {
	for _, tag := range fes.Conditions.Tags() {
		if fes.Conditions.Kind(tag) != boundary.KindDirichlet {
			continue
		}
		pts, ok := fes.Geom.BoundaryPoints[tag]
		if !ok {
			err = types.NewConfigurationError("boundary points for tag %d were never sampled", tag)
			return
		}
		var vals utils.Vector
		if vals, err = fes.Conditions.Evaluate(tag, pts); err != nil {
			return
		}
		data = append(data, TagData{Tag: tag, Points: pts, Values: vals})
	}
	return
}

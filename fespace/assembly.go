package fespace

import (
	"fmt"

	"github.com/govpinn/govpinn/utils"
)

// Bilinear shape functions on the reference square [-1,1]^2, ordered
// like the cell corners: (-1,-1), (1,-1), (1,1), (-1,1).
func shapeFunctions(xi, eta float64) [4]float64 {
	return [4]float64{
		0.25 * (1 - xi) * (1 - eta),
		0.25 * (1 + xi) * (1 - eta),
		0.25 * (1 + xi) * (1 + eta),
		0.25 * (1 - xi) * (1 + eta),
	}
}

func shapeDerivatives(xi, eta float64) (dXi, dEta [4]float64) {
	dXi = [4]float64{
		-0.25 * (1 - eta),
		0.25 * (1 - eta),
		0.25 * (1 + eta),
		-0.25 * (1 + eta),
	}
	dEta = [4]float64{
		-0.25 * (1 - xi),
		-0.25 * (1 + xi),
		0.25 * (1 + xi),
		0.25 * (1 - xi),
	}
	return
}

func jacobianDet(xk, yk [4]float64, xi, eta float64) float64 {
	dXi, dEta := shapeDerivatives(xi, eta)
	var dxdXi, dxdEta, dydXi, dydEta float64
	for i := 0; i < 4; i++ {
		dxdXi += dXi[i] * xk[i]
		dxdEta += dEta[i] * xk[i]
		dydXi += dXi[i] * yk[i]
		dydEta += dEta[i] * yk[i]
	}
	return dxdXi*dydEta - dxdEta*dydXi
}

func (fes *FESpace2D) cellCorners(k int) (I utils.Index, xk, yk [4]float64) {
	qm := fes.Geom.Mesh
	I = utils.NewFromFloat(qm.EToV.Row(k).Data())
	for c, v := range I {
		xk[c] = qm.VX.AtVec(v)
		yk[c] = qm.VY.AtVec(v)
	}
	return
}

/*
AssembleMass integrates the Q1 mass matrix over every cell and scatters
the 4x4 element blocks into a vertex based sparse matrix. The result is
symmetric positive definite for any non degenerate mesh; a cell whose
isoparametric map folds over reports an error rather than silently
poisoning the matrix.
*/
func (fes *FESpace2D) AssembleMass() (M utils.CSR, err error) {
	var (
		qm   = fes.Geom.Mesh
		nv   = qm.NumVertices()
		K, _ = qm.EToV.Dims()
	)
	utils.IsNanPanic(qm.VX)
	utils.IsNanPanic(qm.VY)
	W := utils.NewDOK(nv, nv)
	for k := 0; k < K; k++ {
		I, xk, yk := fes.cellCorners(k)
		for q, w := range fes.wq {
			var (
				N    = shapeFunctions(fes.xi[q], fes.eta[q])
				detJ = jacobianDet(xk, yk, fes.xi[q], fes.eta[q])
			)
			if detJ <= 0 {
				err = fmt.Errorf("cell %d is degenerate or inverted, |J|=%g at quadrature point %d", k, detJ, q)
				return
			}
			for i := 0; i < 4; i++ {
				for j := 0; j < 4; j++ {
					W.Accumulate(I[i], I[j], w*N[i]*N[j]*detJ)
				}
			}
		}
	}
	M = W.ToCSR()
	return
}

/*
QuadraturePoints maps the reference rule into every cell: the M x 2
global point locations and their Jacobian scaled weights, M = cells x
order^2. Summing the weights recovers the mesh area, which makes the
rule directly usable as a collocation measure.
*/
func (fes *FESpace2D) QuadraturePoints() (points utils.Matrix, weights utils.Vector, err error) {
	var (
		qm    = fes.Geom.Mesh
		K, _  = qm.EToV.Dims()
		nq    = len(fes.wq)
		wData []float64
	)
	points = utils.NewMatrix(K*nq, 2)
	weights = utils.NewVector(K * nq)
	wData = weights.Data()
	for k := 0; k < K; k++ {
		_, xk, yk := fes.cellCorners(k)
		for q, w := range fes.wq {
			var (
				N    = shapeFunctions(fes.xi[q], fes.eta[q])
				detJ = jacobianDet(xk, yk, fes.xi[q], fes.eta[q])
				x, y float64
			)
			if detJ <= 0 {
				err = fmt.Errorf("cell %d is degenerate or inverted, |J|=%g at quadrature point %d", k, detJ, q)
				return
			}
			for i := 0; i < 4; i++ {
				x += N[i] * xk[i]
				y += N[i] * yk[i]
			}
			points.SetRow(k*nq+q, []float64{x, y})
			wData[k*nq+q] = w * detJ
		}
	}
	return
}

// MassConditionNumber densifies the assembled mass matrix and returns
// its 2-norm condition number, a small mesh diagnostic for quadrature
// and element quality.
func (fes *FESpace2D) MassConditionNumber() (float64, error) {
	M, err := fes.AssembleMass()
	if err != nil {
		return 0, err
	}
	nv, _ := M.Dims()
	D := utils.NewMatrix(nv, nv)
	for i := 0; i < nv; i++ {
		for j := 0; j < nv; j++ {
			if v := M.At(i, j); v != 0 {
				D.Set(i, j, v)
			}
		}
	}
	return D.ConditionNumber(), nil
}

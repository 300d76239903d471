package writefiles

import (
	"bytes"
	"fmt"

	"github.com/govpinn/govpinn/utils"
)

// writeVTK emits the legacy ASCII VTK format: an UNSTRUCTURED_GRID
// dataset with quad cells, followed by one SCALARS section per field.
func writeVTK(buf *bytes.Buffer, VX, VY utils.Vector, EToV utils.Matrix,
	solution utils.Matrix, dataNames []string, cellData bool) {
	var (
		nv   = VX.Len()
		K, _ = EToV.Dims()
	)
	fmt.Fprintf(buf, "# vtk DataFile Version 3.0\n")
	fmt.Fprintf(buf, "quadrilateral mesh\n")
	fmt.Fprintf(buf, "ASCII\n")
	fmt.Fprintf(buf, "DATASET UNSTRUCTURED_GRID\n")

	fmt.Fprintf(buf, "POINTS %d double\n", nv)
	for i := 0; i < nv; i++ {
		fmt.Fprintf(buf, "%23.15e %23.15e %23.15e\n", VX.AtVec(i), VY.AtVec(i), 0.0)
	}

	// Each connectivity line is its vertex count followed by the ids
	fmt.Fprintf(buf, "CELLS %d %d\n", K, 5*K)
	for k := 0; k < K; k++ {
		I := utils.NewFromFloat(EToV.Row(k).Data())
		fmt.Fprintf(buf, "4 %d %d %d %d\n", I[0], I[1], I[2], I[3])
	}
	fmt.Fprintf(buf, "CELL_TYPES %d\n", K)
	for k := 0; k < K; k++ {
		fmt.Fprintf(buf, "%d\n", utils.Quad.VTKCode())
	}

	if solution.IsEmpty() {
		return
	}
	rows, _ := solution.Dims()
	if cellData {
		fmt.Fprintf(buf, "CELL_DATA %d\n", rows)
	} else {
		fmt.Fprintf(buf, "POINT_DATA %d\n", rows)
	}
	for j, name := range dataNames {
		fmt.Fprintf(buf, "SCALARS %s double 1\n", name)
		fmt.Fprintf(buf, "LOOKUP_TABLE default\n")
		for i := 0; i < rows; i++ {
			fmt.Fprintf(buf, "%23.15e\n", solution.At(i, j))
		}
	}
}

package writefiles

import (
	"bytes"
	"fmt"

	"github.com/govpinn/govpinn/utils"
)

/*
writeVTU emits the XML UnstructuredGrid format read by ParaView and
friends. The topology and the field data are assembled in their own
buffers and stitched between header and footer, so the section order
stays fixed no matter which sections are present.
*/
func writeVTU(out *bytes.Buffer, VX, VY utils.Vector, EToV utils.Matrix,
	solution utils.Matrix, dataNames []string, cellData bool) {
	var (
		nv   = VX.Len()
		K, _ = EToV.Dims()
		geo  bytes.Buffer
		dat  bytes.Buffer
	)

	fmt.Fprintf(&geo, "<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for i := 0; i < nv; i++ {
		fmt.Fprintf(&geo, "%23.15e %23.15e %23.15e ", VX.AtVec(i), VY.AtVec(i), 0.0)
	}
	fmt.Fprintf(&geo, "\n</DataArray>\n</Points>\n")

	fmt.Fprintf(&geo, "<Cells>\n<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for k := 0; k < K; k++ {
		I := utils.NewFromFloat(EToV.Row(k).Data())
		fmt.Fprintf(&geo, "%d %d %d %d ", I[0], I[1], I[2], I[3])
	}
	fmt.Fprintf(&geo, "\n</DataArray>\n<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	for k := 0; k < K; k++ {
		fmt.Fprintf(&geo, "%d ", 4*(k+1))
	}
	fmt.Fprintf(&geo, "\n</DataArray>\n<DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for k := 0; k < K; k++ {
		fmt.Fprintf(&geo, "%d ", utils.Quad.VTKCode())
	}
	fmt.Fprintf(&geo, "\n</DataArray>\n</Cells>\n")

	if !solution.IsEmpty() {
		rows, _ := solution.Dims()
		section := "PointData"
		if cellData {
			section = "CellData"
		}
		fmt.Fprintf(&dat, "<%s Scalars=%q>\n", section, dataNames[0])
		for j, name := range dataNames {
			fmt.Fprintf(&dat, "<DataArray type=\"Float64\" Name=%q NumberOfComponents=\"1\" format=\"ascii\">\n", name)
			for i := 0; i < rows; i++ {
				fmt.Fprintf(&dat, "%23.15e ", solution.At(i, j))
			}
			fmt.Fprintf(&dat, "\n</DataArray>\n")
		}
		fmt.Fprintf(&dat, "</%s>\n", section)
	}

	fmt.Fprintf(out, "<?xml version=\"1.0\"?>\n<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n<UnstructuredGrid>\n")
	fmt.Fprintf(out, "<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", nv, K)
	out.Write(geo.Bytes())
	out.Write(dat.Bytes())
	fmt.Fprintf(out, "</Piece>\n</UnstructuredGrid>\n</VTKFile>\n")
}

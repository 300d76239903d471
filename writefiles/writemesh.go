package writefiles

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/govpinn/govpinn/types"
	"github.com/govpinn/govpinn/utils"
)

/*
WriteMesh writes a quadrilateral mesh with optional named solution
fields, choosing the format by file extension: ".vtu" produces an XML
UnstructuredGrid, anything else the legacy ASCII VTK format.

Solution columns must match dataNames one to one, and the solution row
count must equal either the vertex count (point data) or the cell
count (cell data). An empty solution with no names exports the bare
topology. All validation happens before any I/O and the whole file is
assembled in memory and written once, so a rejected call never leaves
a file behind.
*/
func WriteMesh(path string, VX, VY utils.Vector, EToV utils.Matrix,
	solution utils.Matrix, dataNames []string) error {
	K, _ := EToV.Dims()
	cellData, err := validateFields(VX.Len(), K, solution, dataNames)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vtu":
		writeVTU(&buf, VX, VY, EToV, solution, dataNames, cellData)
	default:
		writeVTK(&buf, VX, VY, EToV, solution, dataNames, cellData)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func validateFields(nVerts, nCells int, solution utils.Matrix,
	dataNames []string) (cellData bool, err error) {
	if solution.IsEmpty() {
		if len(dataNames) != 0 {
			err = &types.FieldCountError{Columns: 0, Names: len(dataNames)}
		}
		return
	}
	rows, cols := solution.Dims()
	if cols != len(dataNames) {
		err = &types.FieldCountError{Columns: cols, Names: len(dataNames)}
		return
	}
	switch rows {
	case nVerts: // point data
	case nCells:
		cellData = true
	default:
		err = fmt.Errorf("solution has %d rows, mesh has %d vertices and %d cells",
			rows, nVerts, nCells)
	}
	return
}

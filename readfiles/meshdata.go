package readfiles

import (
	"bufio"
	"fmt"
	"io"

	"github.com/govpinn/govpinn/types"
	"github.com/govpinn/govpinn/utils"
)

// MeshData is the provenance neutral parse product of a 2D
// quadrilateral mesh file: vertex coordinates, quad connectivity and
// the boundary edges grouped by integer tag.
type MeshData struct {
	VX, VY   utils.Vector   // vertex coordinates
	EToV     utils.Matrix   // K x 4 connectivity, zero based, CCW
	BCEdges  types.TagMap   // boundary tag -> line segments
	TagNames map[int]string // marker names where the format carries them
}

func (md *MeshData) NumVertices() int { return md.VX.Len() }

func (md *MeshData) NumCells() int {
	K, _ := md.EToV.Dims()
	return K
}

// ensureCCW reorders any clockwise quad so that all cells carry
// positive signed area, the orientation the element mappings assume.
func ensureCCW(md *MeshData) {
	var (
		K, _   = md.EToV.Dims()
		vx, vy = md.VX.Data(), md.VY.Data()
	)
	for k := 0; k < K; k++ {
		var area float64
		for i := 0; i < 4; i++ {
			p := int(md.EToV.At(k, i))
			q := int(md.EToV.At(k, (i+1)%4))
			area += vx[p]*vy[q] - vx[q]*vy[p]
		}
		if area < 0 {
			v1, v3 := md.EToV.At(k, 1), md.EToV.At(k, 3)
			md.EToV.Set(k, 1, v3)
			md.EToV.Set(k, 3, v1)
		}
	}
}

// checkVertexRange validates zero based connectivity against the
// vertex count before anything downstream dereferences it.
func checkVertexRange(md *MeshData, filename string) error {
	var (
		K, _ = md.EToV.Dims()
		Nv   = md.VX.Len()
	)
	for k := 0; k < K; k++ {
		for i := 0; i < 4; i++ {
			v := int(md.EToV.At(k, i))
			if v < 0 || v >= Nv {
				return types.NewFileFormatError(filename,
					"cell %d references vertex %d, out of range [0,%d)", k, v, Nv)
			}
		}
	}
	return nil
}

func checkEdgeRange(md *MeshData, filename string) error {
	Nv := md.VX.Len()
	for tag, curve := range md.BCEdges {
		for _, e := range curve {
			verts := e.GetVertices()
			for _, v := range verts {
				if v < 0 || v >= Nv {
					return types.NewFileFormatError(filename,
						"boundary edge on tag %d references vertex %d, out of range [0,%d)", tag, v, Nv)
				}
			}
		}
	}
	return nil
}

func getLine(reader *bufio.Reader) (line string, err error) {
	line, err = reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && len(line) != 0 {
			return line, nil
		}
		if err == io.EOF {
			err = fmt.Errorf("early end of file")
		}
		return
	}
	line = line[:len(line)-1] // Strip away the newline
	return
}

func skipLines(n int, reader *bufio.Reader) (err error) {
	for i := 0; i < n; i++ {
		if _, err = getLine(reader); err != nil {
			return
		}
	}
	return
}

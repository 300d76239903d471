package readfiles

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/govpinn/govpinn/types"
	"github.com/govpinn/govpinn/utils"
)

// meditSkipWidths lists the counted MEDIT sections this reader does
// not consume, with the number of tokens per entry.
var meditSkipWidths = map[string]int{
	"triangles":        4,
	"tetrahedra":       5,
	"hexahedra":        9,
	"corners":          1,
	"requiredvertices": 1,
	"ridges":           1,
	"requirededges":    1,
}

// ReadMedit reads an INRIA MEDIT .mesh file reduced to 2D
// quadrilateral domains: Vertices, Edges carrying boundary tags as
// integer refs, and Quadrilaterals. Planar meshes saved with
// Dimension 3 are accepted, the z coordinate is dropped. Other
// counted sections are skipped.
func ReadMedit(filename string, verbose bool) (md *MeshData, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, types.WrapFileFormatError(filename, err)
	}
	defer file.Close()

	if verbose {
		fmt.Printf("Reading MEDIT mesh file named: %s\n", filename)
	}

	// MEDIT is token oriented: keywords and numbers separated by
	// arbitrary whitespace, # comments to end of line.
	var tokens []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err = scanner.Err(); err != nil {
		return nil, types.WrapFileFormatError(filename, err)
	}

	var pos int
	next := func() (string, error) {
		if pos >= len(tokens) {
			return "", fmt.Errorf("unexpected end of file")
		}
		tok := tokens[pos]
		pos++
		return tok, nil
	}
	nextInt := func() (int, error) {
		tok, err := next()
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %q", tok)
		}
		return v, nil
	}
	nextFloat := func() (float64, error) {
		tok, err := next()
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return 0, fmt.Errorf("expected number, got %q", tok)
		}
		return v, nil
	}

	var (
		dim     = 2
		vx, vy  []float64
		quads   [][4]int
		bcEdges = make(types.TagMap)
	)
	for pos < len(tokens) {
		keyword, _ := next()
		switch strings.ToLower(keyword) {
		case "meshversionformatted":
			if _, err = nextInt(); err != nil {
				return nil, types.WrapFileFormatError(filename, err)
			}

		case "dimension":
			if dim, err = nextInt(); err != nil {
				return nil, types.WrapFileFormatError(filename, err)
			}
			if dim != 2 && dim != 3 {
				return nil, types.NewFileFormatError(filename, "unsupported dimension: %d", dim)
			}

		case "vertices":
			var nv int
			if nv, err = nextInt(); err != nil {
				return nil, types.WrapFileFormatError(filename, err)
			}
			vx, vy = make([]float64, nv), make([]float64, nv)
			for i := 0; i < nv; i++ {
				if vx[i], err = nextFloat(); err != nil {
					return nil, types.WrapFileFormatError(filename, err)
				}
				if vy[i], err = nextFloat(); err != nil {
					return nil, types.WrapFileFormatError(filename, err)
				}
				if dim == 3 {
					if _, err = nextFloat(); err != nil { // z dropped
						return nil, types.WrapFileFormatError(filename, err)
					}
				}
				if _, err = nextInt(); err != nil { // vertex ref unused
					return nil, types.WrapFileFormatError(filename, err)
				}
			}
			if verbose {
				fmt.Printf("Read %d vertices\n", nv)
			}

		case "edges":
			var ne int
			if ne, err = nextInt(); err != nil {
				return nil, types.WrapFileFormatError(filename, err)
			}
			for i := 0; i < ne; i++ {
				var v1, v2, ref int
				if v1, err = nextInt(); err != nil {
					return nil, types.WrapFileFormatError(filename, err)
				}
				if v2, err = nextInt(); err != nil {
					return nil, types.WrapFileFormatError(filename, err)
				}
				if ref, err = nextInt(); err != nil {
					return nil, types.WrapFileFormatError(filename, err)
				}
				// Vertex references are 1 based
				e := types.NewEdgeInt([2]int{v1 - 1, v2 - 1})
				bcEdges.AddEdges(ref, []types.EdgeInt{e})
			}
			if verbose {
				fmt.Printf("Read %d boundary edges in %d tag groups\n", ne, len(bcEdges))
			}

		case "quadrilaterals":
			var nq int
			if nq, err = nextInt(); err != nil {
				return nil, types.WrapFileFormatError(filename, err)
			}
			quads = make([][4]int, nq)
			for i := 0; i < nq; i++ {
				for j := 0; j < 4; j++ {
					var v int
					if v, err = nextInt(); err != nil {
						return nil, types.WrapFileFormatError(filename, err)
					}
					quads[i][j] = v - 1
				}
				if _, err = nextInt(); err != nil { // cell ref unused
					return nil, types.WrapFileFormatError(filename, err)
				}
			}
			if verbose {
				fmt.Printf("Read %d quadrilaterals\n", nq)
			}

		case "end":
			pos = len(tokens)

		default:
			width, ok := meditSkipWidths[strings.ToLower(keyword)]
			if !ok {
				return nil, types.NewFileFormatError(filename, "unexpected keyword %q", keyword)
			}
			var count int
			if count, err = nextInt(); err != nil {
				return nil, types.WrapFileFormatError(filename, err)
			}
			if verbose {
				fmt.Printf("Skipping section %s with %d entries\n", keyword, count)
			}
			for i := 0; i < count*width; i++ {
				if _, err = next(); err != nil {
					return nil, types.WrapFileFormatError(filename, err)
				}
			}
		}
	}

	if len(vx) == 0 {
		return nil, types.NewFileFormatError(filename, "missing Vertices section")
	}
	if len(quads) == 0 {
		return nil, types.NewFileFormatError(filename, "no quadrilateral cells found")
	}

	md = &MeshData{
		VX:      utils.NewVector(len(vx), vx),
		VY:      utils.NewVector(len(vy), vy),
		EToV:    utils.NewMatrix(len(quads), 4),
		BCEdges: bcEdges,
	}
	for k, q := range quads {
		for j := 0; j < 4; j++ {
			md.EToV.Set(k, j, float64(q[j]))
		}
	}
	if err = checkVertexRange(md, filename); err != nil {
		return nil, err
	}
	if err = checkEdgeRange(md, filename); err != nil {
		return nil, err
	}
	ensureCCW(md)
	return md, nil
}

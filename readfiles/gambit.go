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

// gambitElementTypes maps Gambit neutral NTYPE codes.
var gambitElementTypes = map[int]utils.ElementType{
	1: utils.Line,
	2: utils.Quad,
	3: utils.Triangle,
	4: utils.Hex,
	5: utils.Prism,
	6: utils.Tet,
	7: utils.Pyramid,
}

// ReadGambitNeutral reads a Gambit .neu file restricted to 2D
// quadrilateral domains. Boundary condition sets must be element/face
// lists (ITYPE=1); they become integer tags in file order starting at
// 1000, with set names kept in TagNames.
func ReadGambitNeutral(filename string, verbose bool) (md *MeshData, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, types.WrapFileFormatError(filename, err)
	}
	defer file.Close()

	if verbose {
		fmt.Printf("Reading Gambit Neutral file named: %s\n", filename)
	}
	reader := bufio.NewReader(file)

	// Skip the six line control info banner
	if err = skipLines(6, reader); err != nil {
		return nil, types.WrapFileFormatError(filename, err)
	}

	// Header: NUMNP NELEM NGRPS NBSETS NDFCD NDFVL
	var (
		line                          string
		Nv, K, Nmats, Nbcs, Nsd, dumv int
	)
	if line, err = getLine(reader); err != nil {
		return nil, types.WrapFileFormatError(filename, err)
	}
	if n, serr := fmt.Sscanf(line, "%d %d %d %d %d %d",
		&Nv, &K, &Nmats, &Nbcs, &Nsd, &dumv); serr != nil || n < 6 {
		return nil, types.NewFileFormatError(filename, "invalid header line: %q", line)
	}
	if Nsd != 2 {
		return nil, types.NewFileFormatError(filename, "2D mesh required, got %d space dimensions", Nsd)
	}
	if verbose {
		fmt.Printf("Nv = %d, K = %d\n", Nv, K)
		fmt.Printf("Nmats = %d, Nbcs = %d\n%d space dimensions\n", Nmats, Nbcs, Nsd)
	}
	if err = skipLines(2, reader); err != nil {
		return nil, types.WrapFileFormatError(filename, err)
	}

	// Nodal coordinates: ind x y, one based indices
	vx, vy := make([]float64, Nv), make([]float64, Nv)
	for i := 0; i < Nv; i++ {
		if line, err = getLine(reader); err != nil {
			return nil, types.WrapFileFormatError(filename, err)
		}
		var (
			ind  int
			x, y float64
		)
		if n, serr := fmt.Sscanf(line, "%d %f %f", &ind, &x, &y); serr != nil || n < 3 {
			return nil, types.NewFileFormatError(filename, "invalid vertex line: %q", line)
		}
		if ind < 1 || ind > Nv {
			return nil, types.NewFileFormatError(filename, "vertex index %d out of range [1,%d]", ind, Nv)
		}
		vx[ind-1], vy[ind-1] = x, y
	}
	if err = skipLines(2, reader); err != nil {
		return nil, types.WrapFileFormatError(filename, err)
	}

	// Elements: ind NTYPE NDP n1 n2 n3 n4
	EToV := utils.NewMatrix(K, 4)
	for i := 0; i < K; i++ {
		if line, err = getLine(reader); err != nil {
			return nil, types.WrapFileFormatError(filename, err)
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, types.NewFileFormatError(filename, "invalid element line: %q", line)
		}
		ind, err1 := strconv.Atoi(fields[0])
		ntype, err2 := strconv.Atoi(fields[1])
		ndp, err3 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, types.NewFileFormatError(filename, "invalid element line: %q", line)
		}
		if etype, ok := gambitElementTypes[ntype]; !ok || etype != utils.Quad {
			named := fmt.Sprintf("NTYPE=%d", ntype)
			if ok {
				named = gambitElementTypes[ntype].String()
			}
			return nil, types.NewFileFormatError(filename,
				"mesh contains %s elements, only quadrilaterals are supported", named)
		}
		if ndp != 4 || len(fields) < 7 {
			return nil, types.NewFileFormatError(filename, "invalid quadrilateral element line: %q", line)
		}
		if ind < 1 || ind > K {
			return nil, types.NewFileFormatError(filename, "element index %d out of range [1,%d]", ind, K)
		}
		for j := 0; j < 4; j++ {
			v, serr := strconv.Atoi(fields[3+j])
			if serr != nil {
				return nil, types.NewFileFormatError(filename, "invalid node index: %v", serr)
			}
			EToV.Set(ind-1, j, float64(v-1))
		}
	}
	if err = skipLines(2, reader); err != nil {
		return nil, types.WrapFileFormatError(filename, err)
	}

	// Material groups are parsed past, the values are irrelevant here
	for i := 0; i < Nmats; i++ {
		if line, err = getLine(reader); err != nil {
			return nil, types.WrapFileFormatError(filename, err)
		}
		var (
			gn, elnum int
			matval    float64
		)
		if n, serr := fmt.Sscanf(line, "GROUP:%d ELEMENTS:%d MATERIAL:%f",
			&gn, &elnum, &matval); serr != nil || n < 3 {
			return nil, types.NewFileFormatError(filename, "invalid group header: %q", line)
		}
		if err = skipLines(2, reader); err != nil { // title + flags
			return nil, types.WrapFileFormatError(filename, err)
		}
		for remaining := elnum; remaining > 0; {
			if line, err = getLine(reader); err != nil {
				return nil, types.WrapFileFormatError(filename, err)
			}
			remaining -= len(strings.Fields(line))
		}
		if err = skipLines(2, reader); err != nil {
			return nil, types.WrapFileFormatError(filename, err)
		}
	}

	// Boundary condition sets: NAME ITYPE NENTRY NVALUES, entries are
	// ELEM ELTYPE FACE triplets. Quad face f joins corners f and f%4+1.
	var (
		bcEdges  = make(types.TagMap)
		tagNames = make(map[int]string)
	)
	for i := 0; i < Nbcs; i++ {
		if i != 0 {
			if err = skipLines(1, reader); err != nil {
				return nil, types.WrapFileFormatError(filename, err)
			}
		}
		if line, err = getLine(reader); err != nil {
			return nil, types.WrapFileFormatError(filename, err)
		}
		var (
			name          string
			itype, nentry int
		)
		if n, serr := fmt.Sscanf(line, "%s %d %d", &name, &itype, &nentry); serr != nil || n < 3 {
			return nil, types.NewFileFormatError(filename, "invalid boundary set header: %q", line)
		}
		if itype != 1 {
			return nil, types.NewFileFormatError(filename,
				"boundary set %q is vertex based (ITYPE=%d), only element/face sets are supported", name, itype)
		}
		edges := make([]types.EdgeInt, nentry)
		for j := 0; j < nentry; j++ {
			if line, err = getLine(reader); err != nil {
				return nil, types.WrapFileFormatError(filename, err)
			}
			var elem, etype, face int
			if n, serr := fmt.Sscanf(line, "%d %d %d", &elem, &etype, &face); serr != nil || n < 3 {
				return nil, types.NewFileFormatError(filename, "invalid boundary entry: %q", line)
			}
			if elem < 1 || elem > K {
				return nil, types.NewFileFormatError(filename, "boundary entry element %d out of range [1,%d]", elem, K)
			}
			if face < 1 || face > 4 {
				return nil, types.NewFileFormatError(filename, "boundary entry face %d out of range [1,4]", face)
			}
			a := int(EToV.At(elem-1, face-1))
			b := int(EToV.At(elem-1, face%4))
			edges[j] = types.NewEdgeInt([2]int{a, b})
		}
		tag := types.TagBase + i
		tagNames[tag] = name
		bcEdges.AddEdges(tag, edges)
		if err = skipLines(1, reader); err != nil {
			return nil, types.WrapFileFormatError(filename, err)
		}
	}

	md = &MeshData{
		VX:       utils.NewVector(Nv, vx),
		VY:       utils.NewVector(Nv, vy),
		EToV:     EToV,
		BCEdges:  bcEdges,
		TagNames: tagNames,
	}
	if verbose {
		fmt.Printf("Bounding Box:\nXMin/XMax = %5.3f, %5.3f\nYMin/YMax = %5.3f, %5.3f\n",
			md.VX.Min(), md.VX.Max(), md.VY.Min(), md.VY.Max())
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

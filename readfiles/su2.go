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

// ReadSU2 reads an SU2 native format file restricted to 2D
// quadrilateral domains. Boundary markers become integer tags in file
// order: first marker 1000, second 1001, and so on; the marker names
// are kept in TagNames.
func ReadSU2(filename string, verbose bool) (md *MeshData, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, types.WrapFileFormatError(filename, err)
	}
	defer file.Close()

	if verbose {
		fmt.Printf("Reading SU2 mesh file named: %s\n", filename)
	}

	var (
		scanner            = bufio.NewScanner(file)
		vx, vy             []float64
		quads              [][4]int
		bcEdges            = make(types.TagMap)
		tagNames           = make(map[int]string)
		hasNDIME, hasNPOIN bool
		markerIndex        int
	)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines
		if line == "" {
			continue
		}

		// Skip comments (text after %)
		if idx := strings.Index(line, "%"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
			if line == "" {
				continue
			}
		}

		if strings.HasPrefix(line, "NDIME=") {
			hasNDIME = true
			var ndime int
			fmt.Sscanf(line, "NDIME=%d", &ndime)
			if ndime != 2 {
				return nil, types.NewFileFormatError(filename,
					"2D mesh required, got NDIME=%d", ndime)
			}

		} else if strings.HasPrefix(line, "NPOIN=") {
			hasNPOIN = true
			var npoin int
			fmt.Sscanf(line, "NPOIN=%d", &npoin)

			vx, vy = make([]float64, npoin), make([]float64, npoin)
			for i := 0; i < npoin; i++ {
				if !scanner.Scan() {
					return nil, types.NewFileFormatError(filename, "unexpected EOF reading nodes")
				}
				fields := strings.Fields(scanner.Text())
				if len(fields) < 2 {
					return nil, types.NewFileFormatError(filename,
						"invalid node line: expected at least 2 coordinates")
				}
				if vx[i], err = strconv.ParseFloat(fields[0], 64); err != nil {
					return nil, types.NewFileFormatError(filename, "invalid coordinate: %v", err)
				}
				if vy[i], err = strconv.ParseFloat(fields[1], 64); err != nil {
					return nil, types.NewFileFormatError(filename, "invalid coordinate: %v", err)
				}
				// Node ID is implicit (0-based) based on order
				// Legacy format may have explicit ID at end of line (ignored)
			}

		} else if strings.HasPrefix(line, "NELEM=") {
			var nelem int
			fmt.Sscanf(line, "NELEM=%d", &nelem)

			quads = make([][4]int, 0, nelem)
			for i := 0; i < nelem; i++ {
				if !scanner.Scan() {
					return nil, types.NewFileFormatError(filename, "unexpected EOF reading elements")
				}
				fields := strings.Fields(scanner.Text())
				if len(fields) < 2 {
					return nil, types.NewFileFormatError(filename, "invalid element line")
				}
				code, err := strconv.Atoi(fields[0])
				if err != nil {
					return nil, types.NewFileFormatError(filename, "invalid element type: %v", err)
				}
				etype := utils.ElementTypeFromVTK(code)
				if etype == utils.Unknown {
					return nil, types.NewFileFormatError(filename, "unknown element type: %d", code)
				}
				if etype != utils.Quad {
					return nil, types.NewFileFormatError(filename,
						"mesh contains %v elements, only quadrilaterals are supported", etype)
				}
				if len(fields) < 5 {
					return nil, types.NewFileFormatError(filename,
						"quadrilateral element expects 4 nodes, got %d fields", len(fields)-1)
				}
				var q [4]int
				for j := 0; j < 4; j++ {
					if q[j], err = strconv.Atoi(fields[1+j]); err != nil {
						return nil, types.NewFileFormatError(filename, "invalid node index: %v", err)
					}
				}
				quads = append(quads, q)
			}

		} else if strings.HasPrefix(line, "NMARK=") {
			var nmark int
			fmt.Sscanf(line, "NMARK=%d", &nmark)

			for i := 0; i < nmark; i++ {
				if !scanner.Scan() {
					return nil, types.NewFileFormatError(filename, "unexpected EOF reading marker %d", i)
				}
				markerLine := strings.TrimSpace(scanner.Text())
				if !strings.HasPrefix(markerLine, "MARKER_TAG=") {
					return nil, types.NewFileFormatError(filename, "expected MARKER_TAG=, got: %s", markerLine)
				}
				tagName := strings.TrimSpace(strings.TrimPrefix(markerLine, "MARKER_TAG="))

				if !scanner.Scan() {
					return nil, types.NewFileFormatError(filename,
						"unexpected EOF reading marker elements for %s", tagName)
				}
				elemLine := strings.TrimSpace(scanner.Text())
				var nMarkerElems int
				if _, err := fmt.Sscanf(elemLine, "MARKER_ELEMS=%d", &nMarkerElems); err != nil {
					return nil, types.NewFileFormatError(filename, "invalid MARKER_ELEMS line: %s", elemLine)
				}

				tag := types.TagBase + markerIndex
				markerIndex++
				tagNames[tag] = tagName

				edges := make([]types.EdgeInt, nMarkerElems)
				for j := 0; j < nMarkerElems; j++ {
					if !scanner.Scan() {
						return nil, types.NewFileFormatError(filename, "unexpected EOF reading boundary elements")
					}
					fields := strings.Fields(scanner.Text())
					if len(fields) < 3 {
						return nil, types.NewFileFormatError(filename, "invalid boundary element line")
					}
					code, err := strconv.Atoi(fields[0])
					if err != nil {
						return nil, types.NewFileFormatError(filename, "invalid boundary element type: %v", err)
					}
					if utils.ElementTypeFromVTK(code) != utils.Line {
						return nil, types.NewFileFormatError(filename,
							"boundary marker %s contains %v elements, expected Line",
							tagName, utils.ElementTypeFromVTK(code))
					}
					var v [2]int
					for k := 0; k < 2; k++ {
						if v[k], err = strconv.Atoi(fields[1+k]); err != nil {
							return nil, types.NewFileFormatError(filename, "invalid boundary node index: %v", err)
						}
					}
					edges[j] = types.NewEdgeInt(v)
				}
				bcEdges.AddEdges(tag, edges)
			}
		}
	}

	if err = scanner.Err(); err != nil {
		return nil, types.WrapFileFormatError(filename, err)
	}

	// Validate that we read the required sections
	if !hasNDIME {
		return nil, types.NewFileFormatError(filename, "missing required NDIME= section")
	}
	if !hasNPOIN {
		return nil, types.NewFileFormatError(filename, "missing required NPOIN= section")
	}
	if len(quads) == 0 {
		return nil, types.NewFileFormatError(filename, "no quadrilateral cells found")
	}

	if verbose {
		fmt.Printf("Read %d vertices, %d quadrilaterals, %d boundary markers\n",
			len(vx), len(quads), markerIndex)
	}

	md = &MeshData{
		VX:       utils.NewVector(len(vx), vx),
		VY:       utils.NewVector(len(vy), vy),
		EToV:     utils.NewMatrix(len(quads), 4),
		BCEdges:  bcEdges,
		TagNames: tagNames,
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

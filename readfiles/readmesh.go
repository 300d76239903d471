package readfiles

import (
	"path/filepath"
	"strings"

	"github.com/govpinn/govpinn/types"
)

// ReadMeshFile reads a 2D quadrilateral mesh file based on extension
func ReadMeshFile(filename string, verbose bool) (*MeshData, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".mesh":
		return ReadMedit(filename, verbose)
	case ".su2":
		return ReadSU2(filename, verbose)
	case ".neu":
		return ReadGambitNeutral(filename, verbose)
	default:
		return nil, types.NewFileFormatError(filename, "unsupported mesh format: %q", ext)
	}
}

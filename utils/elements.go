package utils

// ElementType represents the finite element shapes that appear in 2D
// quadrilateral meshes and their boundary discretizations. The 3D
// types exist so mesh readers can name what they reject.
type ElementType int

const (
	Unknown ElementType = iota
	Point
	Line
	Triangle
	Quad
	Tet
	Hex
	Prism
	Pyramid
)

// String representation of element types
func (e ElementType) String() string {
	names := []string{
		"Unknown",
		"Point",
		"Line",
		"Triangle", "Quad",
		"Tet", "Hex", "Prism", "Pyramid",
	}
	if int(e) < len(names) {
		return names[e]
	}
	return "Invalid"
}

// GetDimension returns the spatial dimension of the element
func (e ElementType) GetDimension() int {
	switch e {
	case Point:
		return 0
	case Line:
		return 1
	case Triangle, Quad:
		return 2
	case Tet, Hex, Prism, Pyramid:
		return 3
	default:
		return -1
	}
}

// GetNumNodes returns the number of nodes for each element type
func (e ElementType) GetNumNodes() int {
	switch e {
	case Point:
		return 1
	case Line:
		return 2
	case Triangle:
		return 3
	case Quad:
		return 4
	case Tet:
		return 4
	case Hex:
		return 8
	case Prism:
		return 6
	case Pyramid:
		return 5
	default:
		return 0
	}
}

// VTKCode returns the VTK cell type identifier, shared by the legacy
// and XML output formats and by the SU2 element encoding.
func (e ElementType) VTKCode() int {
	switch e {
	case Point:
		return 1
	case Line:
		return 3
	case Triangle:
		return 5
	case Quad:
		return 9
	case Tet:
		return 10
	case Hex:
		return 12
	case Prism:
		return 13
	case Pyramid:
		return 14
	default:
		return 0
	}
}

// ElementTypeFromVTK is the inverse of VTKCode.
func ElementTypeFromVTK(code int) ElementType {
	switch code {
	case 1:
		return Point
	case 3:
		return Line
	case 5:
		return Triangle
	case 9:
		return Quad
	case 10:
		return Tet
	case 12:
		return Hex
	case 13:
		return Prism
	case 14:
		return Pyramid
	default:
		return Unknown
	}
}

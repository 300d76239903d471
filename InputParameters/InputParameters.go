package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type VPINNParameters2D struct {
	Title              string         `yaml:"Title"`
	MeshKind           string         `yaml:"MeshKind"`           // only "quadrilateral" is supported
	GenerationMethod   string         `yaml:"GenerationMethod"`   // "internal" or "external"
	MeshFile           string         `yaml:"MeshFile"`           // external generation only
	XLimits            [2]float64     `yaml:"XLimits"`            // internal generation only
	YLimits            [2]float64     `yaml:"YLimits"`
	NCellsX            int            `yaml:"NCellsX"`
	NCellsY            int            `yaml:"NCellsY"`
	NumBoundaryPoints  int            `yaml:"NumBoundaryPoints"`  // per side, internal generation
	BoundaryRefinement int            `yaml:"BoundaryRefinement"` // 2^level samples per boundary edge
	SamplingMethod     string         `yaml:"SamplingMethod"`     // "uniform" or "lhs"
	RefinementLevel    int            `yaml:"RefinementLevel"`    // uniform quad subdivisions
	NTestPointsX       int            `yaml:"NTestPointsX"`
	NTestPointsY       int            `yaml:"NTestPointsY"`
	QuadratureOrder    int            `yaml:"QuadratureOrder"`
	OutputFolder       string         `yaml:"OutputFolder"`
	BCs                map[int]BCSpec `yaml:"BCs"` // keyed by boundary tag
}

// BCSpec is one tag's boundary condition: a kind name understood by the
// boundary package and a constant value.
type BCSpec struct {
	Kind  string  `yaml:"Kind"`
	Value float64 `yaml:"Value"`
}

func (ip *VPINNParameters2D) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *VPINNParameters2D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= MeshKind\n", ip.MeshKind)
	fmt.Printf("[%s]\t\t= GenerationMethod\n", ip.GenerationMethod)
	if ip.GenerationMethod == "external" {
		fmt.Printf("[%s]\t\t= MeshFile\n", ip.MeshFile)
		fmt.Printf("[%d]\t\t\t\t= RefinementLevel\n", ip.RefinementLevel)
		fmt.Printf("[%s]\t\t= SamplingMethod\n", ip.SamplingMethod)
		fmt.Printf("[%d]\t\t\t\t= BoundaryRefinement\n", ip.BoundaryRefinement)
	} else {
		fmt.Printf("%v x %v\t= Domain\n", ip.XLimits, ip.YLimits)
		fmt.Printf("[%d x %d]\t\t\t= Cells\n", ip.NCellsX, ip.NCellsY)
		fmt.Printf("[%d]\t\t\t= NumBoundaryPoints\n", ip.NumBoundaryPoints)
	}
	fmt.Printf("[%d x %d]\t\t\t= Test Points\n", ip.NTestPointsX, ip.NTestPointsY)
	fmt.Printf("[%d]\t\t\t\t= Quadrature Order\n", ip.QuadratureOrder)
	tags := make([]int, 0, len(ip.BCs))
	for tag := range ip.BCs {
		tags = append(tags, tag)
	}
	sort.Ints(tags)
	for _, tag := range tags {
		fmt.Printf("BCs[%d] = %s(%g)\n", tag, ip.BCs[tag].Kind, ip.BCs[tag].Value)
	}
}

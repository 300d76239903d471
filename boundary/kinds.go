package boundary

import "strings"

// Kind classifies how a boundary condition constrains the solution.
type Kind uint16

const (
	// KindUnknown is the zero value and never a valid binding
	KindUnknown Kind = iota

	KindDirichlet // fixed value
	KindNeumann   // fixed normal gradient
	KindRobin     // mixed value/gradient
	KindPeriodic  // identified with the opposing boundary
)

func (k Kind) String() string {
	names := map[Kind]string{
		KindUnknown:   "Unknown",
		KindDirichlet: "Dirichlet",
		KindNeumann:   "Neumann",
		KindRobin:     "Robin",
		KindPeriodic:  "Periodic",
	}
	if name, ok := names[k]; ok {
		return name
	}
	return "Unknown"
}

// kindNameMap maps condition names to kinds. Keys are lowercase for
// case-insensitive matching and include the common aliases found in
// experiment configurations.
var kindNameMap = map[string]Kind{
	"dirichlet":   KindDirichlet,
	"fixed":       KindDirichlet,
	"fixed_value": KindDirichlet,

	"neumann":   KindNeumann,
	"flux":      KindNeumann,
	"heat_flux": KindNeumann,

	"robin": KindRobin,
	"mixed": KindRobin,

	"periodic": KindPeriodic,
}

// ParseKind converts a condition name to its Kind. The matching is
// case-insensitive and trims whitespace; unrecognized names map to
// KindUnknown, which the condition set constructors reject.
func ParseKind(name string) Kind {
	if kind, ok := kindNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return kind
	}
	return KindUnknown
}

package document

// Sheet holds the paper and scale settings used when laying out a plan for
// print. Pure data; nothing in the engine reads it.
type Sheet struct {
	Paper string `json:"paper"`
	Scale string `json:"scale"`
}

// PaperSize is a sheet size in inches, landscape.
type PaperSize struct {
	Width, Height float64
}

// PaperSizes lists the supported ANSI and ARCH sheet sizes.
var PaperSizes = map[string]PaperSize{
	"ANSI A": {11, 8.5},
	"ANSI B": {17, 11},
	"ANSI C": {22, 17},
	"ANSI D": {34, 22},
	"ARCH A": {12, 9},
	"ARCH B": {18, 12},
	"ARCH C": {24, 18},
	"ARCH D": {36, 24},
	"ARCH E": {48, 36},
}

// DefaultSheet is ARCH D at quarter-inch scale, the common residential
// plan setup.
func DefaultSheet() Sheet {
	return Sheet{Paper: "ARCH D", Scale: `1/4" = 1'-0"`}
}

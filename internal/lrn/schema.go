package lrn

import (
	"fmt"
	"strings"
)

// OpName is the operator's registered name.
const OpName = "LRN"

// Field describes one configuration option of the operator.
type Field struct {
	Name        string
	Type        string
	Default     string // Empty for required fields.
	Required    bool
	Description string
}

// Argument describes a positional tensor input.
type Argument struct {
	Name        string
	Type        string
	Description string
}

// Schema is the registration surface exposed to the graph-construction layer.
type Schema struct {
	Name              string
	Arguments         []Argument
	Outputs           []string
	NumVisibleOutputs int
	Fields            []Field
	Doc               string
}

// Doc is the operator docstring.
const Doc = `Applies local response normalization to the input.

The local response normalization layer performs "lateral inhibition" by
normalizing over local input regions.

If a[i] is the activity of channel i at a spatial position (x, y), the
response-normalized activity b[i] is

    b[i] = a[i] / (knorm + alpha * sum_{j=max(0, i-n/2)}^{min(N-1, i+n/2)} a[j]^2)^beta

where the sum runs over n "adjacent" channels at the same spatial position,
and N is the total number of channels.`

// OpSchema returns the LRN registration surface.
func OpSchema() Schema {
	return Schema{
		Name: OpName,
		Arguments: []Argument{
			{Name: "data", Type: "NDArray-or-Symbol", Description: "Input data."},
		},
		Outputs:           []string{"output", "tmp_norm"},
		NumVisibleOutputs: 1,
		Fields: []Field{
			{Name: "alpha", Type: "float", Default: formatDefault(DefaultAlpha),
				Description: "The variance scaling parameter alpha in the LRN expression."},
			{Name: "beta", Type: "float", Default: formatDefault(DefaultBeta),
				Description: "The power parameter beta in the LRN expression."},
			{Name: "knorm", Type: "float", Default: formatDefault(DefaultKnorm),
				Description: "The parameter k in the LRN expression."},
			{Name: "nsize", Type: "int (positive, odd)", Required: true,
				Description: "Normalization window width in elements."},
		},
		Doc: Doc,
	}
}

// Field returns the named field.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// String renders the schema as a short human-readable signature.
//
// Example:
//
//	LRN(data, alpha=0.0001, beta=0.75, knorm=2, nsize=<required>) -> output
func (s Schema) String() string {
	parts := make([]string, 0, len(s.Arguments)+len(s.Fields))
	for _, a := range s.Arguments {
		parts = append(parts, a.Name)
	}
	for _, f := range s.Fields {
		def := f.Default
		if f.Required {
			def = "<required>"
		}
		parts = append(parts, fmt.Sprintf("%s=%s", f.Name, def))
	}
	visible := s.Outputs[:s.NumVisibleOutputs]
	return fmt.Sprintf("%s(%s) -> %s", s.Name, strings.Join(parts, ", "), strings.Join(visible, ", "))
}

func formatDefault(v float64) string {
	return fmt.Sprintf("%g", v)
}

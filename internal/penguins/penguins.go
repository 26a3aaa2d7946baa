// Package penguins holds the Palmer penguin biometrics table the dashboard
// filters and plots. The table is loaded once at startup and never mutated.
package penguins

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Canonical vocabularies, in display order.
var (
	AllSpecies = []string{"Adelie", "Chinstrap", "Gentoo"}
	AllIslands = []string{"Biscoe", "Dream", "Torgersen"}
	AllSexes   = []string{"male", "female"}
)

// Attribute names one of the numeric measurement columns.
type Attribute string

const (
	BillLength    Attribute = "bill_length_mm"
	BillDepth     Attribute = "bill_depth_mm"
	FlipperLength Attribute = "flipper_length_mm"
	BodyMass      Attribute = "body_mass_g"
)

// Attributes lists the selectable numeric attributes in menu order.
var Attributes = []Attribute{BillLength, BillDepth, FlipperLength, BodyMass}

// AttributeNames returns the column names of Attributes.
func AttributeNames() []string {
	out := make([]string, len(Attributes))
	for i, a := range Attributes {
		out[i] = string(a)
	}
	return out
}

var titleCaser = cases.Title(language.English)

// Label turns the column name into a heading, e.g. "Bill Length Mm".
func (a Attribute) Label() string {
	return titleCaser.String(strings.ReplaceAll(string(a), "_", " "))
}

func (a Attribute) Valid() bool {
	return slices.Contains(Attributes, a)
}

// ParseAttribute accepts a column name, case-insensitively.
func ParseAttribute(s string) (Attribute, error) {
	a := Attribute(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("unknown attribute %q", s)
	}
	return a, nil
}

// Penguin is one observation. Missing measurements are NaN and a missing sex
// is the empty string.
type Penguin struct {
	Species         string  `json:"species" yaml:"species"`
	Island          string  `json:"island" yaml:"island"`
	BillLengthMM    float64 `json:"bill_length_mm" yaml:"bill_length_mm"`
	BillDepthMM     float64 `json:"bill_depth_mm" yaml:"bill_depth_mm"`
	FlipperLengthMM float64 `json:"flipper_length_mm" yaml:"flipper_length_mm"`
	BodyMassG       float64 `json:"body_mass_g" yaml:"body_mass_g"`
	Sex             string  `json:"sex" yaml:"sex"`
	Year            int     `json:"year" yaml:"year"`
}

// Value returns the measurement for attr and whether it is present.
func (p Penguin) Value(attr Attribute) (float64, bool) {
	var v float64
	switch attr {
	case BillLength:
		v = p.BillLengthMM
	case BillDepth:
		v = p.BillDepthMM
	case FlipperLength:
		v = p.FlipperLengthMM
	case BodyMass:
		v = p.BodyMassG
	default:
		return 0, false
	}
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Table is an ordered, read-only set of observations.
type Table []Penguin

func (t Table) Len() int { return len(t) }

// Species returns the distinct species present, in canonical order.
func (t Table) Species() []string {
	return t.distinct(AllSpecies, func(p Penguin) string { return p.Species })
}

// Islands returns the distinct islands present, in canonical order.
func (t Table) Islands() []string {
	return t.distinct(AllIslands, func(p Penguin) string { return p.Island })
}

// Sexes returns the distinct non-missing sexes present, in canonical order.
func (t Table) Sexes() []string {
	return t.distinct(AllSexes, func(p Penguin) string { return p.Sex })
}

func (t Table) distinct(order []string, field func(Penguin) string) []string {
	seen := make(map[string]bool)
	for _, p := range t {
		if v := field(p); v != "" {
			seen[v] = true
		}
	}
	out := make([]string, 0, len(seen))
	for _, v := range order {
		if seen[v] {
			out = append(out, v)
			delete(seen, v)
		}
	}
	extra := make([]string, 0, len(seen))
	for v := range seen {
		extra = append(extra, v)
	}
	slices.Sort(extra)
	return append(out, extra...)
}

// Where returns the rows for which keep reports true. The result never
// aliases t.
func (t Table) Where(keep func(Penguin) bool) Table {
	out := make(Table, 0, len(t))
	for _, p := range t {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

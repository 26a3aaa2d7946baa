package dashboard

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/penguindash/internal/penguins"
)

const (
	MinBins     = 1
	MaxBins     = 20
	DefaultBins = 10
)

var (
	ErrUnknownValue   = errors.New("unknown value")
	ErrBinsOutOfRange = errors.New("bins out of range")
)

// Controls is the full set of user inputs the filtered view depends on.
type Controls struct {
	Species   []string           `json:"species" yaml:"species"`
	Islands   []string           `json:"islands" yaml:"islands"`
	Sexes     []string           `json:"sexes" yaml:"sexes"`
	Attribute penguins.Attribute `json:"attribute" yaml:"attribute"`
	Bins      int                `json:"bins" yaml:"bins"`
}

// DefaultControls matches the dashboard's initial state: female Adelie
// penguins on Biscoe, bill length, ten bins.
func DefaultControls() Controls {
	return Controls{
		Species:   []string{"Adelie"},
		Islands:   []string{"Biscoe"},
		Sexes:     []string{"female"},
		Attribute: penguins.BillLength,
		Bins:      DefaultBins,
	}
}

// ValidationError describes one rejected control value.
type ValidationError struct {
	Field      string
	Value      string
	Suggestion string
	Err        error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %q: %v", e.Field, e.Value, e.Err)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Normalize canonicalises spelling and order of the selections and drops
// duplicates. Unknown values and out-of-range bins are kept so that
// Validate can report them.
func (c Controls) Normalize() Controls {
	out := Controls{
		Species:   normalizeSet(c.Species, penguins.AllSpecies),
		Islands:   normalizeSet(c.Islands, penguins.AllIslands),
		Sexes:     normalizeSet(c.Sexes, penguins.AllSexes),
		Attribute: penguins.Attribute(strings.ToLower(strings.TrimSpace(string(c.Attribute)))),
		Bins:      c.Bins,
	}
	if out.Attribute == "" {
		out.Attribute = penguins.BillLength
	}
	return out
}

// Validate reports the first unknown selection or an out-of-range bin count.
func (c Controls) Validate() error {
	checks := []struct {
		field string
		vals  []string
		vocab []string
	}{
		{"species", c.Species, penguins.AllSpecies},
		{"island", c.Islands, penguins.AllIslands},
		{"sex", c.Sexes, penguins.AllSexes},
	}
	for _, chk := range checks {
		for _, v := range chk.vals {
			if canonical(v, chk.vocab) == "" {
				return &ValidationError{Field: chk.field, Value: v, Suggestion: Suggest(v, chk.vocab), Err: ErrUnknownValue}
			}
		}
	}
	if !c.Attribute.Valid() {
		return &ValidationError{Field: "attribute", Value: string(c.Attribute), Suggestion: Suggest(string(c.Attribute), penguins.AttributeNames()), Err: ErrUnknownValue}
	}
	if c.Bins < MinBins || c.Bins > MaxBins {
		return &ValidationError{Field: "bins", Value: fmt.Sprint(c.Bins), Err: fmt.Errorf("%w: want %d..%d", ErrBinsOutOfRange, MinBins, MaxBins)}
	}
	return nil
}

// Contains reports whether v is selected in set, ignoring case.
func Contains(set []string, v string) bool {
	return slices.ContainsFunc(set, func(s string) bool { return strings.EqualFold(s, v) })
}

// Toggle adds v to set or removes it, returning a new slice in vocab order.
func Toggle(set []string, v string, vocab []string) []string {
	if Contains(set, v) {
		out := make([]string, 0, len(set))
		for _, s := range set {
			if !strings.EqualFold(s, v) {
				out = append(out, s)
			}
		}
		return out
	}
	return normalizeSet(append(slices.Clone(set), v), vocab)
}

func ClampBins(n int) int {
	return min(max(n, MinBins), MaxBins)
}

// Suggest returns the closest vocabulary entry to v, or "" when nothing is
// reasonably close.
func Suggest(v string, vocab []string) string {
	needle := strings.ToLower(strings.TrimSpace(v))
	if needle == "" {
		return ""
	}
	best, bestDist := "", -1
	for _, cand := range vocab {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(cand))
		if bestDist < 0 || d < bestDist {
			best, bestDist = cand, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len(needle)/2) {
		return ""
	}
	return best
}

func canonical(v string, vocab []string) string {
	v = strings.TrimSpace(v)
	for _, c := range vocab {
		if strings.EqualFold(c, v) {
			return c
		}
	}
	return ""
}

// normalizeSet maps known values onto their canonical spelling in vocab
// order, followed by unknown values in first-seen order.
func normalizeSet(vals, vocab []string) []string {
	known := make(map[string]bool, len(vals))
	var unknown []string
	for _, v := range vals {
		if c := canonical(v, vocab); c != "" {
			known[c] = true
			continue
		}
		v = strings.TrimSpace(v)
		if v != "" && !slices.Contains(unknown, v) {
			unknown = append(unknown, v)
		}
	}
	out := make([]string, 0, len(known)+len(unknown))
	for _, c := range vocab {
		if known[c] {
			out = append(out, c)
		}
	}
	return append(out, unknown...)
}

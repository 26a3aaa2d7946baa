package penguins

import (
	"encoding/json"
	"math"
)

// record is the wire form of a Penguin: missing values are null.
type record struct {
	Species         string   `json:"species" yaml:"species"`
	Island          string   `json:"island" yaml:"island"`
	BillLengthMM    *float64 `json:"bill_length_mm" yaml:"bill_length_mm"`
	BillDepthMM     *float64 `json:"bill_depth_mm" yaml:"bill_depth_mm"`
	FlipperLengthMM *float64 `json:"flipper_length_mm" yaml:"flipper_length_mm"`
	BodyMassG       *float64 `json:"body_mass_g" yaml:"body_mass_g"`
	Sex             *string  `json:"sex" yaml:"sex"`
	Year            int      `json:"year" yaml:"year"`
}

func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func (p Penguin) record() record {
	r := record{
		Species:         p.Species,
		Island:          p.Island,
		BillLengthMM:    optional(p.BillLengthMM),
		BillDepthMM:     optional(p.BillDepthMM),
		FlipperLengthMM: optional(p.FlipperLengthMM),
		BodyMassG:       optional(p.BodyMassG),
		Year:            p.Year,
	}
	if p.Sex != "" {
		sex := p.Sex
		r.Sex = &sex
	}
	return r
}

func (p Penguin) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.record())
}

func (p Penguin) MarshalYAML() (any, error) {
	return p.record(), nil
}

func (p *Penguin) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	value := func(v *float64) float64 {
		if v == nil {
			return math.NaN()
		}
		return *v
	}
	*p = Penguin{
		Species:         r.Species,
		Island:          r.Island,
		BillLengthMM:    value(r.BillLengthMM),
		BillDepthMM:     value(r.BillDepthMM),
		FlipperLengthMM: value(r.FlipperLengthMM),
		BodyMassG:       value(r.BodyMassG),
		Year:            r.Year,
	}
	if r.Sex != nil {
		p.Sex = *r.Sex
	}
	return nil
}

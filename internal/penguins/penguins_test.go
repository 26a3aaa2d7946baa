package penguins

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDataset(t *testing.T) {
	t.Parallel()

	tbl, err := Default()
	require.NoError(t, err)
	require.Equal(t, 99, tbl.Len())
	assert.Equal(t, AllSpecies, tbl.Species())
	assert.Equal(t, AllIslands, tbl.Islands())
	assert.Equal(t, AllSexes, tbl.Sexes())

	first := tbl[0]
	assert.Equal(t, "Adelie", first.Species)
	assert.Equal(t, "Torgersen", first.Island)
	assert.Equal(t, "male", first.Sex)
	assert.Equal(t, 2007, first.Year)
	v, ok := first.Value(BillLength)
	require.True(t, ok)
	assert.InDelta(t, 39.1, v, 1e-9)

	missing := tbl[3]
	assert.Empty(t, missing.Sex)
	_, ok = missing.Value(BodyMass)
	assert.False(t, ok)
}

func TestLoadMatchesColumnsByName(t *testing.T) {
	t.Parallel()

	data := strings.Join([]string{
		"sex,body_mass_g,species,flipper_length_mm,island,bill_depth_mm,bill_length_mm,extra",
		"female,3400,Adelie,174,Biscoe,18.3,37.8,x",
		"NA,,Gentoo,NA,Biscoe,NA,NA,y",
	}, "\n")
	tbl, err := Load(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, tbl, 2)

	assert.Equal(t, Penguin{
		Species: "Adelie", Island: "Biscoe", Sex: "female",
		BillLengthMM: 37.8, BillDepthMM: 18.3, FlipperLengthMM: 174, BodyMassG: 3400,
	}, tbl[0])
	assert.Empty(t, tbl[1].Sex)
	assert.True(t, math.IsNaN(tbl[1].BodyMassG))
	assert.Zero(t, tbl[1].Year)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader("species,island\nAdelie,Biscoe\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))

	bad := "species,island,bill_length_mm,bill_depth_mm,flipper_length_mm,body_mass_g,sex\n" +
		"Adelie,Biscoe,abc,18,180,3000,male\n"
	_, err = Load(strings.NewReader(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2 column bill_length_mm")

	_, err = Load(strings.NewReader(""))
	require.Error(t, err)
}

func TestLoadRejectsInfiniteMeasurements(t *testing.T) {
	t.Parallel()

	header := "species,island,bill_length_mm,bill_depth_mm,flipper_length_mm,body_mass_g,sex\n"
	for _, cell := range []string{"inf", "+Inf", "-Inf", "Infinity"} {
		data := header +
			"Adelie,Biscoe,39.1,18.7,181,3750,male\n" +
			"Adelie,Biscoe,39.5,17.4,186," + cell + ",female\n"
		_, err := Load(strings.NewReader(data))
		require.ErrorIs(t, err, ErrNotFinite, cell)
		assert.Contains(t, err.Error(), "line 3 column body_mass_g", cell)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	tbl, err := LoadFile("")
	require.NoError(t, err)
	require.Equal(t, 99, tbl.Len())

	path := filepath.Join(t.TempDir(), "p.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"species,island,bill_length_mm,bill_depth_mm,flipper_length_mm,body_mass_g,sex,year\n"+
			"Chinstrap,Dream,46.5,17.9,192,3500,female,2007\n"), 0o600))
	tbl, err = LoadFile(path)
	require.NoError(t, err)
	require.Len(t, tbl, 1)
	assert.Equal(t, []string{"Chinstrap"}, tbl.Species())

	_, err = LoadFile(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestAttributeLabelsAndParsing(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Bill Length Mm", BillLength.Label())
	assert.Equal(t, "Body Mass G", BodyMass.Label())

	a, err := ParseAttribute(" Flipper_Length_MM ")
	require.NoError(t, err)
	assert.Equal(t, FlipperLength, a)

	_, err = ParseAttribute("wingspan")
	assert.Error(t, err)
	assert.False(t, Attribute("wingspan").Valid())
}

func TestWhereDoesNotAlias(t *testing.T) {
	t.Parallel()

	tbl := Table{{Species: "Adelie"}, {Species: "Gentoo"}}
	out := tbl.Where(func(p Penguin) bool { return p.Species == "Gentoo" })
	require.Len(t, out, 1)
	out[0].Species = "changed"
	assert.Equal(t, "Gentoo", tbl[1].Species)
}

func TestPenguinJSONWritesMissingAsNull(t *testing.T) {
	t.Parallel()

	tbl := MustDefault()
	out, err := json.Marshal(tbl[3])
	require.NoError(t, err)
	assert.JSONEq(t, `{"species":"Adelie","island":"Torgersen","bill_length_mm":null,"bill_depth_mm":null,
		"flipper_length_mm":null,"body_mass_g":null,"sex":null,"year":2007}`, string(out))

	var back Penguin
	require.NoError(t, json.Unmarshal(out, &back))
	_, ok := back.Value(BillLength)
	assert.False(t, ok)
	assert.Equal(t, "", back.Sex)

	out, err = json.Marshal(tbl[0])
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, tbl[0], back)
}

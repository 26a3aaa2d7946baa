package penguins

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
)

//go:embed penguins.csv
var embeddedCSV []byte

var (
	defaultOnce  sync.Once
	defaultTable Table
	defaultErr   error
)

// Default returns the embedded dataset. It is parsed once per process.
func Default() (Table, error) {
	defaultOnce.Do(func() {
		defaultTable, defaultErr = Load(bytes.NewReader(embeddedCSV))
	})
	return defaultTable, defaultErr
}

// MustDefault is Default for callers that treat a broken embedded dataset as
// a build defect.
func MustDefault() Table {
	tbl, err := Default()
	if err != nil {
		panic(fmt.Sprintf("penguins: embedded dataset: %v", err))
	}
	return tbl
}

// LoadFile reads a penguins CSV from disk. An empty path selects the
// embedded dataset.
func LoadFile(path string) (Table, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("missing column")

// ErrNotFinite is returned for measurements such as "inf" that parse as
// numbers but cannot be plotted.
var ErrNotFinite = errors.New("measurement is not finite")

var requiredColumns = []string{
	"species", "island", "sex",
	string(BillLength), string(BillDepth), string(FlipperLength), string(BodyMass),
}

// Load parses a CSV with a header row. Columns are matched by name, so order
// does not matter and unknown columns are ignored. "NA" and empty cells are
// treated as missing.
func Load(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	yearCol, hasYear := cols["year"]

	var out Table
	line := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cell := func(name string) string {
			i := cols[name]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		num := func(name string) (float64, error) {
			v, err := parseMeasure(cell(name))
			if err != nil {
				return 0, fmt.Errorf("line %d column %s: %w", line, name, err)
			}
			return v, nil
		}

		p := Penguin{
			Species: missingToEmpty(cell("species")),
			Island:  missingToEmpty(cell("island")),
			Sex:     strings.ToLower(missingToEmpty(cell("sex"))),
		}
		if p.BillLengthMM, err = num(string(BillLength)); err != nil {
			return nil, err
		}
		if p.BillDepthMM, err = num(string(BillDepth)); err != nil {
			return nil, err
		}
		if p.FlipperLengthMM, err = num(string(FlipperLength)); err != nil {
			return nil, err
		}
		if p.BodyMassG, err = num(string(BodyMass)); err != nil {
			return nil, err
		}
		if hasYear && yearCol < len(rec) {
			if y, err := strconv.Atoi(strings.TrimSpace(rec[yearCol])); err == nil {
				p.Year = y
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func parseMeasure(s string) (float64, error) {
	if missingToEmpty(s) == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q: %w", s, ErrNotFinite)
	}
	return v, nil
}

func missingToEmpty(s string) string {
	if strings.EqualFold(s, "NA") || strings.EqualFold(s, "NaN") {
		return ""
	}
	return s
}

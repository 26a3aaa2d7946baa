// Package export writes dashboard snapshots and the reactive graph in
// formats meant for files and pipes rather than the terminal UI.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/jask/penguindash/internal/dashboard"
	"github.com/jask/penguindash/internal/penguins"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
	FormatText = "text"
)

var Formats = []string{FormatJSON, FormatYAML, FormatCSV, FormatText}

var ErrUnknownFormat = errors.New("unknown format")

type options struct {
	width   int
	profile termenv.Profile
}

type Option func(*options)

// WithWidth sets the chart width of the text format.
func WithWidth(w int) Option {
	return func(o *options) { o.width = w }
}

// WithProfile sets the colour profile of the text format. termenv.Ascii (the
// default) strips all styling.
func WithProfile(p termenv.Profile) Option {
	return func(o *options) { o.profile = p }
}

// Write encodes v in format. csv writes only the filtered rows.
func Write(w io.Writer, v dashboard.View, format string, opts ...Option) error {
	o := options{width: 80, profile: termenv.Ascii}
	for _, opt := range opts {
		opt(&o)
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatCSV:
		return WriteRows(w, v.Rows)
	case FormatText:
		return writeText(w, v, o)
	}
	return fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
}

// Columns is the CSV header, matching the dataset's own column names.
var Columns = []string{"species", "island", "bill_length_mm", "bill_depth_mm", "flipper_length_mm", "body_mass_g", "sex", "year"}

// WriteRows writes tbl as CSV with missing values as NA, the same
// convention the loader reads.
func WriteRows(w io.Writer, tbl penguins.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, p := range tbl {
		if err := cw.Write(Record(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Record formats one row in Columns order.
func Record(p penguins.Penguin) []string {
	rec := []string{p.Species, p.Island}
	for _, attr := range penguins.Attributes {
		v, ok := p.Value(attr)
		if !ok {
			rec = append(rec, "NA")
			continue
		}
		rec = append(rec, strconv.FormatFloat(v, 'f', -1, 64))
	}
	sex := p.Sex
	if sex == "" {
		sex = "NA"
	}
	return append(rec, sex, strconv.Itoa(p.Year))
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(s))
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, s, strings.Join(Formats, ", "))
	}
	return f, nil
}

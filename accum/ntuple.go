package accum

import (
	"fmt"
	"strings"
)

// Ntuple is a flat table of float64 rows with named columns.
type Ntuple struct {
	name  string
	title string
	cols  []string
	rows  [][]float64
}

func NewNtuple(name, title string, cols ...string) *Ntuple {
	return &Ntuple{
		name:  name,
		title: title,
		cols:  append([]string(nil), cols...),
	}
}

func (nt *Ntuple) Name() string      { return nt.name }
func (nt *Ntuple) Title() string     { return nt.title }
func (nt *Ntuple) Columns() []string { return nt.cols }
func (nt *Ntuple) Entries() int      { return len(nt.rows) }

// Fill appends one row. It needs exactly one value per column.
func (nt *Ntuple) Fill(vs ...float64) error {
	if len(vs) != len(nt.cols) {
		return fmt.Errorf("accum: ntuple %q has %d columns, got %d values", nt.name, len(nt.cols), len(vs))
	}
	nt.rows = append(nt.rows, append([]float64(nil), vs...))
	return nil
}

func (nt *Ntuple) Row(i int) []float64 {
	return nt.rows[i]
}

// Column returns a copy of the values of the named column.
func (nt *Ntuple) Column(name string) ([]float64, error) {
	icol := -1
	for i, col := range nt.cols {
		if col == name {
			icol = i
			break
		}
	}
	if icol < 0 {
		return nil, fmt.Errorf("accum: ntuple %q has no column %q (columns: %s)", nt.name, name, strings.Join(nt.cols, ":"))
	}

	vs := make([]float64, len(nt.rows))
	for i, row := range nt.rows {
		vs[i] = row[icol]
	}
	return vs, nil
}

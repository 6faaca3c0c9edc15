package accum

import (
	"fmt"
	"strings"

	"go-hep.org/x/hep/csvutil"
)

// WriteCSV writes the tuple to fname, with the column names as a commented
// header line.
func (nt *Ntuple) WriteCSV(fname string) error {
	tbl, err := csvutil.Create(fname)
	if err != nil {
		return fmt.Errorf("accum: could not create %s: %w", fname, err)
	}
	tbl.Writer.Comma = ','

	err = nt.writeRows(tbl)
	if err != nil {
		tbl.Close()
		return fmt.Errorf("accum: could not write %s: %w", fname, err)
	}

	return tbl.Close()
}

func (nt *Ntuple) writeRows(tbl *csvutil.Table) error {
	err := tbl.WriteHeader("# " + strings.Join(nt.cols, ",") + "\n")
	if err != nil {
		return err
	}

	args := make([]interface{}, len(nt.cols))
	for i, row := range nt.rows {
		for j, v := range row {
			args[j] = v
		}
		err = tbl.WriteRow(args...)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

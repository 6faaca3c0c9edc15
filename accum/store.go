package accum

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"go-hep.org/x/hep/hbook"
	_ "modernc.org/sqlite"
)

// On-disk layout of a saved container: a manifest, one YODA file per
// histogram and one SQLite database holding a table per tuple.
const (
	ManifestFile = "container.toml"
	NtupleDBFile = "ntuples.sqlite"
)

const (
	kindH1D    = "H1D"
	kindNtuple = "Ntuple"
)

var ErrBadName = errors.New("accum: name is not a valid identifier")

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type manifest struct {
	ID      string          `toml:"id"`
	Objects []manifestEntry `toml:"object"`
}

type manifestEntry struct {
	Kind    string   `toml:"kind"`
	Name    string   `toml:"name"`
	Title   string   `toml:"title"`
	Columns []string `toml:"columns,omitempty"`
}

// Save writes the container to dir, creating it if needed.
func (c *Container) Save(dir string) error {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return fmt.Errorf("accum: could not create output directory: %w", err)
	}

	man := manifest{ID: c.id.String()}
	var nts []*Ntuple
	for _, obj := range c.objs {
		if !identRE.MatchString(obj.Name()) {
			return fmt.Errorf("%w: %q", ErrBadName, obj.Name())
		}

		switch obj := obj.(type) {
		case *hbook.H1D:
			raw, err := obj.MarshalYODA()
			if err != nil {
				return fmt.Errorf("accum: could not encode %q: %w", obj.Name(), err)
			}
			err = os.WriteFile(filepath.Join(dir, obj.Name()+".yoda"), raw, 0644)
			if err != nil {
				return fmt.Errorf("accum: could not write %q: %w", obj.Name(), err)
			}
			man.Objects = append(man.Objects, manifestEntry{
				Kind:  kindH1D,
				Name:  obj.Name(),
				Title: Title(obj),
			})

		case *Ntuple:
			if len(obj.cols) == 0 {
				return fmt.Errorf("accum: ntuple %q has no columns", obj.Name())
			}
			for _, col := range obj.cols {
				if !identRE.MatchString(col) {
					return fmt.Errorf("%w: column %q of %q", ErrBadName, col, obj.Name())
				}
			}
			nts = append(nts, obj)
			man.Objects = append(man.Objects, manifestEntry{
				Kind:    kindNtuple,
				Name:    obj.Name(),
				Title:   obj.Title(),
				Columns: obj.Columns(),
			})

		default:
			return fmt.Errorf("accum: cannot save %q of type %T", obj.Name(), obj)
		}
	}

	if len(nts) > 0 {
		err = writeNtuples(filepath.Join(dir, NtupleDBFile), nts)
		if err != nil {
			return err
		}
	}

	raw, err := toml.Marshal(man)
	if err != nil {
		return fmt.Errorf("accum: could not encode manifest: %w", err)
	}
	err = os.WriteFile(filepath.Join(dir, ManifestFile), raw, 0644)
	if err != nil {
		return fmt.Errorf("accum: could not write manifest: %w", err)
	}
	return nil
}

// Load reads a container written by Save.
func Load(dir string) (*Container, error) {
	raw, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("accum: could not read manifest: %w", err)
	}

	var man manifest
	err = toml.Unmarshal(raw, &man)
	if err != nil {
		return nil, fmt.Errorf("accum: could not decode manifest: %w", err)
	}

	id, err := uuid.Parse(man.ID)
	if err != nil {
		return nil, fmt.Errorf("accum: invalid container id: %w", err)
	}

	c := &Container{id: id}

	var db *sql.DB
	defer func() {
		if db != nil {
			db.Close()
		}
	}()

	for _, entry := range man.Objects {
		var obj Object
		switch entry.Kind {
		case kindH1D:
			obj, err = readH1D(dir, entry)
		case kindNtuple:
			if db == nil {
				db, err = sql.Open("sqlite", filepath.Join(dir, NtupleDBFile))
				if err != nil {
					return nil, fmt.Errorf("accum: could not open tuple store: %w", err)
				}
			}
			obj, err = readNtuple(db, entry)
		default:
			err = fmt.Errorf("accum: unknown object kind %q", entry.Kind)
		}
		if err != nil {
			return nil, err
		}

		err = c.Add(obj)
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}

func readH1D(dir string, entry manifestEntry) (*hbook.H1D, error) {
	raw, err := os.ReadFile(filepath.Join(dir, entry.Name+".yoda"))
	if err != nil {
		return nil, fmt.Errorf("accum: could not read %q: %w", entry.Name, err)
	}

	h := hbook.NewH1D(1, 0, 1)
	err = h.UnmarshalYODA(raw)
	if err != nil {
		return nil, fmt.Errorf("accum: could not decode %q: %w", entry.Name, err)
	}
	annotate(h, entry.Name, entry.Title)
	return h, nil
}

func quoted(names []string) string {
	qs := make([]string, len(names))
	for i, name := range names {
		qs[i] = `"` + name + `"`
	}
	return strings.Join(qs, ", ")
}

func writeNtuples(path string, nts []*Ntuple) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("accum: could not open tuple store: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("accum: could not start transaction: %w", err)
	}

	for _, nt := range nts {
		err = insertNtuple(tx, nt)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("accum: could not store ntuple %q: %w", nt.Name(), err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("accum: could not commit tuple store: %w", err)
	}
	return nil
}

func insertNtuple(tx *sql.Tx, nt *Ntuple) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS "` + nt.name + `"`)
	if err != nil {
		return err
	}

	defs := make([]string, len(nt.cols))
	marks := make([]string, len(nt.cols))
	for i, col := range nt.cols {
		defs[i] = `"` + col + `" REAL`
		marks[i] = "?"
	}
	_, err = tx.Exec(`CREATE TABLE "` + nt.name + `" (` + strings.Join(defs, ", ") + `)`)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO "` + nt.name + `" (` + quoted(nt.cols) + `) VALUES (` + strings.Join(marks, ", ") + `)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]interface{}, len(nt.cols))
	for _, row := range nt.rows {
		for i, v := range row {
			// SQLite has no NaN, it is stored as NULL
			args[i] = sql.NullFloat64{Float64: v, Valid: !math.IsNaN(v)}
		}
		_, err = stmt.Exec(args...)
		if err != nil {
			return err
		}
	}
	return nil
}

func readNtuple(db *sql.DB, entry manifestEntry) (*Ntuple, error) {
	nt := NewNtuple(entry.Name, entry.Title, entry.Columns...)

	rows, err := db.Query(`SELECT ` + quoted(nt.cols) + ` FROM "` + nt.name + `" ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("accum: could not query ntuple %q: %w", nt.name, err)
	}
	defer rows.Close()

	vs := make([]sql.NullFloat64, len(nt.cols))
	ptrs := make([]interface{}, len(nt.cols))
	for i := range vs {
		ptrs[i] = &vs[i]
	}
	for rows.Next() {
		err = rows.Scan(ptrs...)
		if err != nil {
			return nil, fmt.Errorf("accum: could not read ntuple %q: %w", nt.name, err)
		}
		row := make([]float64, len(vs))
		for i, v := range vs {
			row[i] = math.NaN()
			if v.Valid {
				row[i] = v.Float64
			}
		}
		nt.rows = append(nt.rows, row)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("accum: could not read ntuple %q: %w", nt.name, err)
	}
	return nt, nil
}

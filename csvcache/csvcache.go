// Package csvcache implements the process-wide CSV read cache (spec
// §4.9 / C9): an absolute-path-keyed, append-only map of parsed
// tables, consulted by the CSV I/O executables during the pre-trial
// phase. It is modeled on loader.Load's "parse the external format
// once, hand back an immutable structure" shape, generalized from a
// single process-start parse to a path-keyed cache since a recipe may
// reference several distinct CSV files and may read from one more
// than once.
package csvcache

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/sarchlab/mcrecipe/errkind"
)

// Table is an immutable parsed CSV file: an ordered column list plus
// rows addressed by column name.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// Column returns every cell of the named column, in row order, failing
// CsvColumnNotFound if the column does not exist.
func (t *Table) Column(name string) ([]string, error) {
	found := false
	for _, c := range t.Columns {
		if c == name {
			found = true
			break
		}
	}
	if !found {
		return nil, errkind.New(errkind.CsvColumnNotFound, "column %q not found", name)
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[name]
	}
	return out, nil
}

// Cell returns the cell at (row, column), failing CsvRowIndexOutOfBounds
// or CsvColumnNotFound as appropriate.
func (t *Table) Cell(row int, column string) (string, error) {
	if row < 0 || row >= len(t.Rows) {
		return "", errkind.New(errkind.CsvRowIndexOutOfBounds,
			"row %d out of range [0,%d)", row, len(t.Rows))
	}
	found := false
	for _, c := range t.Columns {
		if c == column {
			found = true
			break
		}
	}
	if !found {
		return "", errkind.New(errkind.CsvColumnNotFound, "column %q not found", column)
	}
	return t.Rows[row][column], nil
}

// FloatColumn converts an entire column to float64, failing
// CsvConversionError on the first cell that does not parse.
func (t *Table) FloatColumn(name string) ([]float64, error) {
	cells, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(cells))
	for i, c := range cells {
		f, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return nil, errkind.New(errkind.CsvConversionError,
				"cannot convert %q (column %q, row %d) to a number", c, name, i)
		}
		out[i] = f
	}
	return out, nil
}

// FloatCell converts a single cell to float64.
func (t *Table) FloatCell(row int, column string) (float64, error) {
	cell, err := t.Cell(row, column)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, errkind.New(errkind.CsvConversionError,
			"cannot convert %q (column %q, row %d) to a number", cell, column, row)
	}
	return f, nil
}

// Cache is a path -> *Table mapping, safe for concurrent use. Inserts
// are guarded by a mutex (spec §4.9: access during the pre-trial phase
// is single-threaded in well-formed recipes, but the cache must stay
// internally synchronized in case a future recipe reads CSVs per
// trial). Entries are never evicted for the process lifetime.
type Cache struct {
	mu     sync.Mutex
	tables map[string]*Table
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{tables: make(map[string]*Table)}
}

// Get returns the parsed table for path, parsing and inserting it on
// the first request and reusing the cached pointer thereafter.
func (c *Cache) Get(path string) (*Table, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if table, ok := c.tables[abs]; ok {
		return table, nil
	}

	table, err := parseFile(abs)
	if err != nil {
		return nil, err
	}
	c.tables[abs] = table
	return table, nil
}

func parseFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errkind.New(errkind.CsvFileNotFound, "csv file not found: %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errkind.New(errkind.CsvConversionError, "failed to parse csv %s: %v", path, err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	columns := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return &Table{Columns: columns, Rows: rows}, nil
}

package dataset

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	_ "modernc.org/sqlite"
)

// TableName is the fixed name the loaded dataset is exposed under. Generated
// queries are asked to target this single table.
const TableName = "df"

// Store owns an in-memory SQLite database holding one imported dataset.
// Loaded once per run; queries only ever read from it.
type Store struct {
	db      *sql.DB
	columns []string
	types   []string
	rowsN   int
	log     func(string)
}

// Open loads a CSV or XLSX file into a fresh in-memory database.
func Open(path string, logFunc func(string)) (*Store, error) {
	rows, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in %s", path)
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, log: logFunc}
	if err := s.importRows(rows); err != nil {
		db.Close()
		return nil, err
	}
	s.logf("loaded %s: %d rows, %d columns", filepath.Base(path), s.rowsN, len(s.columns))
	return s, nil
}

func (s *Store) logf(format string, args ...interface{}) {
	if s.log != nil {
		s.log(fmt.Sprintf(format, args...))
	}
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Columns returns the imported column names in table order.
func (s *Store) Columns() []string {
	return append([]string(nil), s.columns...)
}

// Types returns the inferred SQLite type per column.
func (s *Store) Types() []string {
	return append([]string(nil), s.types...)
}

// NumRows returns the imported row count.
func (s *Store) NumRows() int {
	return s.rowsN
}

// Head returns the first n dataset rows in import order.
func (s *Store) Head(n int) (*Table, error) {
	return s.Query(fmt.Sprintf("SELECT * FROM %s LIMIT %d", TableName, n))
}

// Query runs a SQL statement and materializes the result as a Table. All
// values come back as strings; the driver's native types are formatted on
// the way out.
func (s *Store) Query(query string) (*Table, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	t := &Table{
		Columns: cols,
		Types:   make([]string, len(cols)),
	}
	for i := range t.Types {
		t.Types[i] = "TEXT"
	}

	values := make([]interface{}, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		record := make([]string, len(cols))
		for i, v := range values {
			record[i] = formatValue(v)
			if i < len(t.Types) {
				switch v.(type) {
				case int64:
					if t.Types[i] == "TEXT" {
						t.Types[i] = "INTEGER"
					}
				case float64:
					t.Types[i] = "REAL"
				}
			}
		}
		t.Rows = append(t.Rows, record)
	}
	return t, rows.Err()
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// readFile loads raw string rows from a CSV or XLSX file.
func readFile(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		reader := csv.NewReader(f)
		reader.FieldsPerRecord = -1
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv %s: %w", path, err)
		}
		return rows, nil
	case ".xlsx":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("no sheets in %s", path)
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
}

// importRows creates the df table and bulk-inserts the dataset, inferring
// per-column types and dropping columns that carry no data at all.
func (s *Store) importRows(rows [][]string) error {
	maxCols := 0
	for _, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	if maxCols == 0 {
		return fmt.Errorf("no columns found")
	}

	hasHeader := isHeaderRow(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
	}

	// A column is kept if its header or any of the first 20 data cells is
	// non-empty.
	valid := make([]bool, maxCols)
	for col := 0; col < maxCols; col++ {
		if hasHeader && col < len(rows[0]) && strings.TrimSpace(rows[0][col]) != "" {
			valid[col] = true
			continue
		}
		for r := startRow; r < len(rows) && r < startRow+20; r++ {
			if col < len(rows[r]) && strings.TrimSpace(rows[r][col]) != "" {
				valid[col] = true
				break
			}
		}
	}

	var headers []string
	for col := 0; col < maxCols; col++ {
		if !valid[col] {
			continue
		}
		name := ""
		if hasHeader && col < len(rows[0]) {
			name = sanitizeName(rows[0][col])
		}
		if name == "" {
			name = fmt.Sprintf("column_%d", len(headers)+1)
		}
		headers = append(headers, name)
	}
	headers = dedupeNames(headers)

	// Infer INTEGER < REAL < TEXT from up to 10 sample rows per column.
	types := make([]string, len(headers))
	out := 0
	for col := 0; col < maxCols; col++ {
		if !valid[col] {
			continue
		}
		current := "INTEGER"
		seen := false
		for r := startRow; r < len(rows) && r < startRow+10; r++ {
			if col >= len(rows[r]) || rows[r][col] == "" {
				continue
			}
			seen = true
			switch inferCellType(rows[r][col]) {
			case "TEXT":
				current = "TEXT"
			case "REAL":
				if current == "INTEGER" {
					current = "REAL"
				}
			}
			if current == "TEXT" {
				break
			}
		}
		if !seen {
			current = "TEXT"
		}
		types[out] = current
		out++
	}

	defs := make([]string, len(headers))
	for i, h := range headers {
		defs[i] = fmt.Sprintf(`"%s" %s`, h, types[i])
	}
	if _, err := s.db.Exec(fmt.Sprintf(`CREATE TABLE %s (%s)`, TableName, strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(headers)), ",")
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO %s VALUES (%s)`, TableName, placeholders))
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	inserted := 0
	for r := startRow; r < len(rows); r++ {
		record := make([]interface{}, 0, len(headers))
		for col := 0; col < maxCols; col++ {
			if !valid[col] {
				continue
			}
			cell := ""
			if col < len(rows[r]) {
				cell = strings.TrimSpace(rows[r][col])
			}
			record = append(record, cell)
		}
		if _, err := stmt.Exec(record...); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert row %d: %w", r, err)
		}
		inserted++
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.columns = headers
	s.types = types
	s.rowsN = inserted
	return nil
}

func inferCellType(val string) string {
	if val == "" {
		return "TEXT"
	}
	if _, err := strconv.ParseInt(val, 10, 64); err == nil {
		return "INTEGER"
	}
	if _, err := strconv.ParseFloat(val, 64); err == nil {
		return "REAL"
	}
	return "TEXT"
}

// isHeaderRow checks if the row is likely a header row: any fully numeric
// cell means data, not headers.
func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	for _, cell := range row {
		if cell == "" {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			return false
		}
	}
	return true
}

var nameCleaner = regexp.MustCompile(`[^a-zA-Z0-9_]+`)

func sanitizeName(name string) string {
	safe := nameCleaner.ReplaceAllString(strings.TrimSpace(name), "_")
	safe = strings.Trim(safe, "_")
	if safe == "" {
		return ""
	}
	if safe[0] >= '0' && safe[0] <= '9' {
		safe = "c_" + safe
	}
	return safe
}

func dedupeNames(names []string) []string {
	seen := map[string]int{}
	for i, n := range names {
		if count, ok := seen[n]; ok {
			seen[n] = count + 1
			names[i] = fmt.Sprintf("%s_%d", n, count+1)
		} else {
			seen[n] = 1
		}
	}
	return names
}

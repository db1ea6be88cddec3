package foodtable

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "modernc.org/sqlite"

	"github.com/MarieAhluwalia/nutrimap/internal/domain"
)

// DefaultSQLiteTable is the table read when none is configured
const DefaultSQLiteTable = "foods"

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteLoader reads a clustered food table from a SQLite database
type SQLiteLoader struct {
	dsn   string
	table string
}

// NewSQLiteLoader creates a loader for table in the database at dsn
func NewSQLiteLoader(dsn, table string) *SQLiteLoader {
	if table == "" {
		table = DefaultSQLiteTable
	}
	return &SQLiteLoader{dsn: dsn, table: table}
}

// Load opens the database, reads every row of the table and closes it again
func (l *SQLiteLoader) Load(ctx context.Context) (*domain.FoodTable, error) {
	db, err := sql.Open("sqlite", l.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return ReadSQLite(ctx, db, l.table)
}

// ReadSQLite reads table from an open database. Column order follows the
// table definition; NULL cells read as empty.
func ReadSQLite(ctx context.Context, db *sql.DB, table string) (*domain.FoodTable, error) {
	if !identifierRegex.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM "%s"`, table))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	builder, err := newRowBuilder(columns)
	if err != nil {
		return nil, err
	}

	var out []domain.FoodRow
	cells := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range cells {
		ptrs[i] = &cells[i]
	}
	for line := 1; rows.Next(); line++ {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", line, err)
		}
		row, err := builder.build(cells, line)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return builder.table(out), nil
}

/*
Package sqlite3adapter provides an implementation of the Adapter
interface in the sqlsource package that works over an SQLite3
database.
*/
package sqlite3adapter

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/canopyml/canopy/source/sqlsource"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

type adapter struct {
	db *sql.DB
}

/*
New takes a path to an SQLite3 database file and a limit to the
number of open connections (0 for no limit) and returns an Adapter
that works on the file's database or an error if it fails to open as
an sqlite3 database.
*/
func New(path string, maxConns int) (sqlsource.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return &adapter{db}, nil
}

func (a *adapter) TableName(name string) (string, error) {
	return identifier(name)
}

func (a *adapter) ColumnName(name string) (string, error) {
	return identifier(name)
}

func (a *adapter) IterateOnLabels(ctx context.Context, table, column string, lambda func(int, string) (bool, error)) error {
	rows, err := a.db.QueryContext(ctx, fmt.Sprintf(`SELECT "%s" FROM "%s"`, column, table))
	if err != nil {
		return fmt.Errorf("selecting labels from %s: %v", table, err)
	}
	defer rows.Close()
	for i := 0; rows.Next(); i++ {
		var text string
		if err = rows.Scan(&text); err != nil {
			return fmt.Errorf("scanning label row %d of %s: %v", i, table, err)
		}
		ok, err := lambda(i, text)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("iterating on labels of %s: %v", table, err)
	}
	return nil
}

func (a *adapter) CountLabels(ctx context.Context, table, column string) (map[string]int, error) {
	rows, err := a.db.QueryContext(ctx, fmt.Sprintf(`SELECT "%s", COUNT(*) FROM "%s" GROUP BY "%s"`, column, table, column))
	if err != nil {
		return nil, fmt.Errorf("counting labels of %s: %v", table, err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var text string
		var count int
		if err = rows.Scan(&text, &count); err != nil {
			return nil, fmt.Errorf("scanning label count of %s: %v", table, err)
		}
		counts[text] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("counting labels of %s: %v", table, err)
	}
	return counts, nil
}

func (a *adapter) CountRows(ctx context.Context, table string) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM "%s"`, table)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting rows of %s: %v", table, err)
	}
	return count, nil
}

func identifier(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty name cannot be used as an identifier")
	}
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`name '%s' contains invalid character '"'`, name)
	}
	return name, nil
}

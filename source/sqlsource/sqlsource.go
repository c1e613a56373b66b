/*
Package sqlsource provides an implementation of source.Source that
reads the label column of a SQL database table.

Database-specific behavior is factored into an Adapter; the pgadapter
and sqlite3adapter subpackages provide adapters for PostgreSQL and
SQLite3 databases.
*/
package sqlsource

import (
	"cmp"
	"context"
	"fmt"

	"github.com/canopyml/canopy/label"
	"github.com/canopyml/canopy/source"
)

/*
Adapter is an interface providing the methods needed to implement a
label source with a SQL database backend. Labels travel through the
adapter in their textual form.
*/
type Adapter interface {
	// TableName validates a name for use as a table in queries and
	// returns it, or an error if the name cannot be used.
	TableName(string) (string, error)
	// ColumnName validates a name for use as a column in queries and
	// returns it, or an error if the name cannot be used.
	ColumnName(string) (string, error)
	// IterateOnLabels calls the given lambda with the index and
	// textual label of each row of the given table's label column,
	// stopping on error or on a false from the lambda.
	IterateOnLabels(ctx context.Context, table, column string, lambda func(int, string) (bool, error)) error
	// CountLabels returns the number of rows of the given table
	// grouped by the given label column.
	CountLabels(ctx context.Context, table, column string) (map[string]int, error)
	// CountRows returns the number of rows of the given table.
	CountRows(ctx context.Context, table string) (int, error)
}

type sqlSource[L cmp.Ordered] struct {
	adapter Adapter
	table   string
	column  string
	codec   label.Codec[L]
}

/*
Open takes an adapter, table and label column names and a label codec
and returns a source with the labels of the table's rows or an error
if the table or column names are not valid for the adapter.
*/
func Open[L cmp.Ordered](adapter Adapter, table, column string, codec label.Codec[L]) (source.Source[L], error) {
	table, err := adapter.TableName(table)
	if err != nil {
		return nil, fmt.Errorf("opening SQL label source: %v", err)
	}
	column, err = adapter.ColumnName(column)
	if err != nil {
		return nil, fmt.Errorf("opening SQL label source: %v", err)
	}
	return &sqlSource[L]{adapter, table, column, codec}, nil
}

func (s *sqlSource[L]) ForEachLabel(ctx context.Context, lambda func(int, L) (bool, error)) error {
	return s.adapter.IterateOnLabels(ctx, s.table, s.column, func(i int, text string) (bool, error) {
		lb, err := s.codec.Parse(text)
		if err != nil {
			return false, fmt.Errorf("parsing label on row %d of %s.%s: %v", i, s.table, s.column, err)
		}
		return lambda(i, lb)
	})
}

func (s *sqlSource[L]) Count(ctx context.Context) (int, error) {
	return s.adapter.CountRows(ctx, s.table)
}

func (s *sqlSource[L]) CountLabels(ctx context.Context) (map[L]int, error) {
	textCounts, err := s.adapter.CountLabels(ctx, s.table, s.column)
	if err != nil {
		return nil, err
	}
	counts := make(map[L]int, len(textCounts))
	for text, count := range textCounts {
		lb, err := s.codec.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parsing label %q from %s.%s: %v", text, s.table, s.column, err)
		}
		counts[lb] += count
	}
	return counts, nil
}

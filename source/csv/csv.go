/*
Package csv provides a source of labels read from the label column of
a CSV stream.
*/
package csv

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/canopyml/canopy/label"
	"github.com/canopyml/canopy/source"
)

/*
ReadByLabel takes an io.Reader for a CSV stream, the name of the
label column, a label codec and a lambda function on an integer and a
label that returns a boolean value. It parses the label of each row
from the reader and for each it calls the lambda function with the
label and its index as parameters. If the lambda function returns
true, it will continue processing the next row, otherwise it will
stop. An error is returned if something goes wrong when reading the
stream or parsing a label.

The header or first row of the CSV content is expected to contain the
given label column name.
*/
func ReadByLabel[L cmp.Ordered](reader io.Reader, labelColumn string, codec label.Codec[L], lambda func(int, L) (bool, error)) error {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %v", err)
	}
	column := -1
	for i, name := range header {
		if name == labelColumn {
			column = i
			break
		}
	}
	if column < 0 {
		return fmt.Errorf("label column %q is not present on the CSV header", labelColumn)
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %v", err)
		}
		lb, err := codec.Parse(row[column])
		if err != nil {
			return fmt.Errorf("parsing label on line %d: %v", l, err)
		}
		ok, err := lambda(l-2, lb)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
Read takes an io.Reader for a CSV stream, the name of the label
column and a label codec and returns a source with the labels parsed
from the reader, in row order, or an error.
*/
func Read[L cmp.Ordered](reader io.Reader, labelColumn string, codec label.Codec[L]) (source.Source[L], error) {
	var labels []L
	err := ReadByLabel(reader, labelColumn, codec, func(_ int, l L) (bool, error) {
		labels = append(labels, l)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return source.New(labels), nil
}

/*
ReadFromFilePath takes a filepath string, the name of the label column
and a label codec, opens the file to which the filepath points and
uses Read to return a source read from it or an error. It will return
an error if the given filepath cannot be opened for reading.
*/
func ReadFromFilePath[L cmp.Ordered](filepath string, labelColumn string, codec label.Codec[L]) (source.Source[L], error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("opening CSV file %s: %v", filepath, err)
	}
	defer f.Close()
	s, err := Read(f, labelColumn, codec)
	if err != nil {
		return nil, fmt.Errorf("reading CSV file %s: %v", filepath, err)
	}
	return s, nil
}

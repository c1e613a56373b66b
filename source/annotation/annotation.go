/*
Package annotation provides a source of labels read from annotation
files, the per-sequence listings produced when training data is
annotated by hand.

Each non-empty line of an annotation file describes one training
instance: comma or space separated tokens of which the first is the
instance name (typically an image file name) and the last is its
label. Tokens in between are annotation detail this package does not
interpret.
*/
package annotation

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/canopyml/canopy/label"
	"github.com/canopyml/canopy/source"
)

/*
Instance is a named training instance and its label as listed on an
annotation file.
*/
type Instance[L cmp.Ordered] struct {
	Name  string
	Label L
}

/*
ReadInstances takes an io.Reader for an annotation stream and a label
codec and returns the instances parsed from the reader or an error.
Lines are tokenized on commas, spaces and carriage returns; blank
lines are skipped. A line with fewer than 2 tokens, or whose last
token cannot be parsed as a label with the given codec, produces an
error naming the offending line.
*/
func ReadInstances[L cmp.Ordered](reader io.Reader, codec label.Codec[L]) ([]Instance[L], error) {
	var instances []Instance[L]
	scanner := bufio.NewScanner(reader)
	for l := 1; scanner.Scan(); l++ {
		tokens := strings.FieldsFunc(scanner.Text(), func(r rune) bool {
			return r == ',' || r == ' ' || r == '\r'
		})
		if len(tokens) == 0 {
			continue
		}
		if len(tokens) < 2 {
			return nil, fmt.Errorf("parsing annotation line %d: expected at least an instance name and a label, got %d tokens", l, len(tokens))
		}
		lb, err := codec.Parse(tokens[len(tokens)-1])
		if err != nil {
			return nil, fmt.Errorf("parsing annotation line %d: %v", l, err)
		}
		instances = append(instances, Instance[L]{Name: tokens[0], Label: lb})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading annotations: %v", err)
	}
	return instances, nil
}

/*
ReadInstancesFromFilePath takes a filepath string and a label codec,
opens the file to which the filepath points and uses ReadInstances to
return the instances read from it or an error. It will return an
error if the given filepath cannot be opened for reading.
*/
func ReadInstancesFromFilePath[L cmp.Ordered](filepath string, codec label.Codec[L]) ([]Instance[L], error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("opening annotation file %s: %v", filepath, err)
	}
	defer f.Close()
	instances, err := ReadInstances(f, codec)
	if err != nil {
		return nil, fmt.Errorf("parsing annotation file %s: %v", filepath, err)
	}
	return instances, nil
}

/*
Read takes an io.Reader for an annotation stream and a label codec
and returns a source with the labels of the instances parsed from the
reader, in file order, or an error.
*/
func Read[L cmp.Ordered](reader io.Reader, codec label.Codec[L]) (source.Source[L], error) {
	instances, err := ReadInstances(reader, codec)
	if err != nil {
		return nil, err
	}
	return New(instances), nil
}

/*
New takes a slice of instances and returns a source with their
labels, in the given order.
*/
func New[L cmp.Ordered](instances []Instance[L]) source.Source[L] {
	labels := make([]L, 0, len(instances))
	for _, instance := range instances {
		labels = append(labels, instance.Label)
	}
	return source.New(labels)
}

/*
Package label defines the textual representation of labels.

The statistics core is generic over the label type and never needs a
textual form, but every backend that stores or transports labels
(annotation files, CSV columns, SQL tables, mongo collections, redis
hashes) does. A Codec converts between the two.
*/
package label

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

/*
Codec converts labels of a concrete type to and from their textual
form.

Its Format method returns the textual form of a label.

Its Parse method parses a label from its textual form, returning an
error if the text does not represent a valid label.
*/
type Codec[L cmp.Ordered] interface {
	Format(L) string
	Parse(string) (L, error)
}

/*
StringCodec is a Codec for string labels, such as class tags. Parsed
labels are trimmed of surrounding whitespace; empty or blank text is
rejected.
*/
type StringCodec struct{}

/*
Format returns the label itself.
*/
func (StringCodec) Format(label string) string {
	return label
}

/*
Parse returns the given text trimmed of surrounding whitespace, or an
error if nothing remains after trimming.
*/
func (StringCodec) Parse(text string) (string, error) {
	label := strings.TrimSpace(text)
	if label == "" {
		return "", fmt.Errorf("parsing label: empty text")
	}
	return label, nil
}

/*
IntCodec is a Codec for integer labels, such as numeric class IDs.
*/
type IntCodec struct{}

/*
Format returns the decimal representation of the label.
*/
func (IntCodec) Format(label int) string {
	return strconv.Itoa(label)
}

/*
Parse parses a decimal integer label from the given text.
*/
func (IntCodec) Parse(text string) (int, error) {
	label, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("parsing label %q as integer: %v", text, err)
	}
	return label, nil
}

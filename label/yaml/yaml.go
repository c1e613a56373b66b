/*
Package yaml provides methods to parse label metadata, the declaration
of the class labels known to a training run, from YAML documents.
*/
package yaml

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

/*
ReadLabels takes a slice of bytes with label metadata in YML and
returns a slice of label strings parsed from it or an error.
The YML is expected to be an object containing a labels property whose
value is the list of known class labels. Scalar entries of any type
are accepted and rendered to their string form.
*/
func ReadLabels(md []byte) ([]string, error) {
	metadata := struct {
		Labels []interface{}
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml labels: %v", err)
	}
	if metadata.Labels == nil {
		return nil, fmt.Errorf("metadata file has no label information")
	}
	labels := make([]string, 0, len(metadata.Labels))
	seen := make(map[string]bool)
	for _, l := range metadata.Labels {
		switch v := l.(type) {
		case string, int, float64, bool:
			label := fmt.Sprintf("%v", v)
			if seen[label] {
				return nil, fmt.Errorf("label %q declared more than once", label)
			}
			seen[label] = true
			labels = append(labels, label)
		default:
			return nil, fmt.Errorf("invalid label declaration of type %T", l)
		}
	}
	return labels, nil
}

/*
ReadLabelsFromFile takes a filepath string, reads its contents and uses
ReadLabels to parse it and return a slice of label strings or an error.
If the file indicated by the filepath cannot be opened for reading an
error will be returned.
*/
func ReadLabelsFromFile(filepath string) ([]string, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading labels yml file %s: %v", filepath, err)
	}
	labels, err := ReadLabels(md)
	if err != nil {
		err = fmt.Errorf("parsing labels yml file %s: %v", filepath, err)
	}
	return labels, err
}

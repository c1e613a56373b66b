/*
Package source defines sources of training-example labels: the streams
from which histograms of label observations are accumulated.

It also provides an in-memory implementation backed by a label slice.
Backend-specific implementations live in the subpackages.
*/
package source

import (
	"cmp"
	"context"
)

/*
Source represents the labels of a set of training examples.

Its ForEachLabel method calls a lambda function with each label in
turn, passing along the label's position; the lambda returns a boolean
indicating whether to continue and an error. Iteration stops on the
first error, on a false from the lambda, or when the context is done.

Its Count method returns the number of labelled examples in the
source.
*/
type Source[L cmp.Ordered] interface {
	ForEachLabel(ctx context.Context, lambda func(int, L) (bool, error)) error
	Count(ctx context.Context) (int, error)
}

/*
Counter is implemented by sources that can aggregate their label
counts natively, without iterating example by example. Accumulators
should prefer it over ForEachLabel when available.
*/
type Counter[L cmp.Ordered] interface {
	CountLabels(ctx context.Context) (map[L]int, error)
}

type sliceSource[L cmp.Ordered] struct {
	labels []L
}

/*
New takes a slice of labels and returns a source backed by it.
*/
func New[L cmp.Ordered](labels []L) Source[L] {
	return &sliceSource[L]{labels}
}

func (s *sliceSource[L]) ForEachLabel(ctx context.Context, lambda func(int, L) (bool, error)) error {
	for i, label := range s.labels {
		if err := ctx.Err(); err != nil {
			return err
		}
		ok, err := lambda(i, label)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

func (s *sliceSource[L]) Count(ctx context.Context) (int, error) {
	return len(s.labels), nil
}

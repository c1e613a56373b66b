/*
Package canopy scores candidate decision-tree splits by the entropy of
the label distributions they produce.

A split evaluator accumulates the labels of a set of training examples
into a histogram, partitions the set according to a candidate split
and accumulates a histogram per child partition, then compares
candidates by their information gain: the entropy of the parent
distribution minus the entropy left in the children, weighted by their
share of the parent's examples. Lower entropy across the children
means purer partitions and a better split.
*/
package canopy

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/canopyml/canopy/histogram"
	"github.com/canopyml/canopy/pmf"
	"gonum.org/v1/gonum/floats"
)

/*
Gain takes a histogram with the label counts of a set of training
examples and one histogram per partition of the set under a candidate
split, and returns the information gain of the split:

	H(parent) - sum over children of (|child|/|parent|) * H(child)

It returns pmf.ErrEmptyHistogram, wrapped with the position of the
offending histogram, if the parent or any child has no observations;
evaluators should exclude such candidates from consideration rather
than fail the training run.
*/
func Gain[L cmp.Ordered](parent *histogram.Histogram[L], children ...*histogram.Histogram[L]) (float64, error) {
	parentPMF, err := pmf.New(parent)
	if err != nil {
		return 0, fmt.Errorf("scoring split: parent: %w", err)
	}
	totalCount := float64(parent.Count())
	weights := make([]float64, 0, len(children))
	entropies := make([]float64, 0, len(children))
	for i, child := range children {
		childPMF, err := pmf.New(child)
		if err != nil {
			return 0, fmt.Errorf("scoring split: child %d: %w", i, err)
		}
		weights = append(weights, float64(child.Count())/totalCount)
		entropies = append(entropies, childPMF.Entropy())
	}
	return parentPMF.Entropy() - floats.Dot(weights, entropies), nil
}

/*
Candidate is a candidate split of a set of training examples: a name
identifying the split and the label histograms of the partitions it
produces.
*/
type Candidate[L cmp.Ordered] struct {
	Name     string
	Children []*histogram.Histogram[L]
}

/*
BestSplit takes the label histogram of a set of training examples and
a slice of candidate splits of the set and returns the candidate with
the highest information gain along with its gain.

Candidates that cannot be scored because one of their partitions is
empty are excluded from consideration. The returned candidate is nil
if no candidate could be scored. An error other than an empty
partition, such as a pmf.InvariantViolationError, aborts the
evaluation and is returned.
*/
func BestSplit[L cmp.Ordered](parent *histogram.Histogram[L], candidates []Candidate[L]) (*Candidate[L], float64, error) {
	var best *Candidate[L]
	var bestGain float64
	for i := range candidates {
		gain, err := Gain(parent, candidates[i].Children...)
		if err != nil {
			if errors.Is(err, pmf.ErrEmptyHistogram) {
				continue
			}
			return nil, 0, err
		}
		if best == nil || gain > bestGain {
			best = &candidates[i]
			bestGain = gain
		}
	}
	return best, bestGain, nil
}

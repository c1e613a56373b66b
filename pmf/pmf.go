/*
Package pmf provides probability mass functions over labels, derived
from histograms of observed label counts, and their Shannon entropy.

The entropy of a label distribution measures how impure the set of
examples behind it is: it is 0 when every example carries the same
label, and grows to log2(k) when k labels are equally likely. Split
evaluators compare entropies across candidate partitions of a training
set to choose decision-tree splits.
*/
package pmf

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/canopyml/canopy/histogram"
)

// smallEpsilon is the floor below which no mass is allowed to fall.
// The implementation depends on masses never becoming too small; a
// mass under this floor means the label cardinality is too large for
// the sample count and the distribution can no longer be trusted.
const smallEpsilon = 1e-9

const elementDisplayLimit = 3

/*
ErrEmptyHistogram is returned by New when given a histogram with no
observations: no distribution can be derived from it. Split
evaluators should treat a candidate partition that produces this
error as unscorable and exclude it from consideration.
*/
var ErrEmptyHistogram = errors.New("cannot derive a probability mass function from a histogram with no observations")

/*
InvariantViolationError reports a computed mass that fell below the
epsilon floor the implementation assumes. It indicates the modeling
assumption broke down for the given label cardinality and sample
count, not bad input data, so callers should let it abort the current
training task rather than recover from it.
*/
type InvariantViolationError struct {
	Label string
	Mass  float64
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("mass %g for label %s falls below the %g floor: too many distinct labels for the number of observations", e.Mass, e.Label, smallEpsilon)
}

/*
PMF is a probability mass function over labels: an immutable, derived
projection of one histogram snapshot, mapping every observed label to
its probability mass. Once built it holds no reference to the
histogram it came from and is safe to share across goroutines.
*/
type PMF[L cmp.Ordered] struct {
	masses map[L]float64
}

/*
New derives a probability mass function from the given histogram by
normalizing its bin counts: the mass of each label is its bin count
divided by the histogram's total count. Labels with a 0 bin count are
left out of the PMF. The masses of the returned PMF sum to 1 within
floating-point tolerance.

It returns ErrEmptyHistogram if the histogram has no observations,
and an *InvariantViolationError if any computed mass falls below the
1e-9 floor the implementation assumes.
*/
func New[L cmp.Ordered](h *histogram.Histogram[L]) (*PMF[L], error) {
	count := h.Count()
	if count == 0 {
		return nil, ErrEmptyHistogram
	}
	total := float64(count)
	bins := h.Bins()
	masses := make(map[L]float64, len(bins))
	for label, binCount := range bins {
		// Histograms may carry explicit 0-count bins for labels that
		// were declared but never observed; they hold no mass.
		if binCount == 0 {
			continue
		}
		mass := float64(binCount) / total
		if mass < smallEpsilon {
			return nil, &InvariantViolationError{Label: fmt.Sprintf("%v", label), Mass: mass}
		}
		masses[label] = mass
	}
	return &PMF[L]{masses}, nil
}

/*
Entropy calculates the Shannon entropy of the PMF in bits, using the
definition H = -sum over labels of p * log2(p). When the labels are
equally likely the entropy is high, up to log2 of the number of
labels; when a single label holds all the mass it is 0.
*/
func (p *PMF[L]) Entropy() float64 {
	var entropy float64
	for _, mass := range p.masses {
		// A mass of exactly 0 contributes 0 to the sum, since
		// lim p->0+ of p*log2(p) = 0.
		if mass > 0 {
			entropy += mass * math.Log2(mass)
		}
	}
	return -entropy
}

/*
Mass returns the probability mass of the given label, 0 if the label
was absent from the histogram the PMF derives from.
*/
func (p *PMF[L]) Mass(label L) float64 {
	return p.masses[label]
}

/*
Masses returns a copy of the mass table. Mutating the returned map
does not affect the PMF.
*/
func (p *PMF[L]) Masses() map[L]float64 {
	masses := make(map[L]float64, len(p.masses))
	for label, mass := range p.masses {
		masses[label] = mass
	}
	return masses
}

/*
Labels returns the labels of the PMF in their natural order.
*/
func (p *PMF[L]) Labels() []L {
	labels := make([]L, 0, len(p.masses))
	for label := range p.masses {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	return labels
}

/*
String renders a bounded view of the mass table for diagnostics: the
first few labels in their natural order followed by a count of the
remainder.
*/
func (p *PMF[L]) String() string {
	labels := p.Labels()
	var sb strings.Builder
	sb.WriteString("{")
	for i, label := range labels {
		if i == elementDisplayLimit {
			break
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v: %g", label, p.masses[label])
	}
	if len(labels) > elementDisplayLimit {
		fmt.Fprintf(&sb, ", ...(%d more)", len(labels)-elementDisplayLimit)
	}
	sb.WriteString("}")
	return sb.String()
}

package histogram

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

/*
Histogram accumulates observation counts per label over a set of
training examples. Labels are introduced dynamically on their first
observation, so an empty histogram grows as labels are added.

A histogram keeps its total count equal to the sum of its bin counts
at all times.

Histograms are not safe for concurrent mutation: at most one goroutine
may add to or merge into a given histogram at a time. Workers
accumulating statistics over disjoint subsets of examples should each
own a histogram and combine them afterwards with Merge.
*/
type Histogram[L cmp.Ordered] struct {
	bins  map[L]int
	count int
}

/*
New returns an empty histogram for the given label type.
*/
func New[L cmp.Ordered]() *Histogram[L] {
	return &Histogram[L]{bins: make(map[L]int)}
}

/*
Add records one observation of the given label, incrementing its bin
and the total count.
*/
func (h *Histogram[L]) Add(label L) {
	h.bins[label]++
	h.count++
}

/*
AddN records n observations of the given label at once. Negative
values of n leave the histogram untouched. A 0 n registers the label
with an empty bin without adding observations, which declares a label
as known before any example carrying it is seen.
*/
func (h *Histogram[L]) AddN(label L, n int) {
	if n < 0 {
		return
	}
	h.bins[label] += n
	h.count += n
}

/*
Count returns the total number of observations recorded on the
histogram, which equals the sum of all its bin counts.
*/
func (h *Histogram[L]) Count() int {
	return h.count
}

/*
CountFor returns the number of observations recorded for the given
label, 0 if the label has never been observed.
*/
func (h *Histogram[L]) CountFor(label L) int {
	return h.bins[label]
}

/*
Bins returns a copy of the histogram's bin table. Mutating the
returned map does not affect the histogram. Bins with a 0 count may
appear if they were recorded explicitly with AddN or merged in from
another histogram.
*/
func (h *Histogram[L]) Bins() map[L]int {
	bins := make(map[L]int, len(h.bins))
	for label, count := range h.bins {
		bins[label] = count
	}
	return bins
}

/*
Labels returns the distinct labels observed on the histogram in their
natural order.
*/
func (h *Histogram[L]) Labels() []L {
	labels := make([]L, 0, len(h.bins))
	for label := range h.bins {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	return labels
}

/*
Merge adds the bin counts and total of the other histogram into the
receiver. Merging is associative and commutative over bin counts, so
partial histograms accumulated by independent workers over disjoint
example subsets can be combined in any order and grouping to the same
result as accumulating every example sequentially on one histogram.
A nil other is a no-op.
*/
func (h *Histogram[L]) Merge(other *Histogram[L]) {
	if other == nil {
		return
	}
	for label, count := range other.bins {
		h.bins[label] += count
	}
	h.count += other.count
}

/*
Clone returns an independent copy of the histogram.
*/
func (h *Histogram[L]) Clone() *Histogram[L] {
	clone := &Histogram[L]{bins: make(map[L]int, len(h.bins)), count: h.count}
	for label, count := range h.bins {
		clone.bins[label] = count
	}
	return clone
}

func (h *Histogram[L]) String() string {
	var sb strings.Builder
	sb.WriteString("{Histogram")
	for _, label := range h.Labels() {
		fmt.Fprintf(&sb, " %v:%d", label, h.bins[label])
	}
	fmt.Fprintf(&sb, " (%d)}", h.count)
	return sb.String()
}

package canopy

import (
	"cmp"
	"context"
	"sync"

	"github.com/canopyml/canopy/histogram"
	"github.com/canopyml/canopy/source"
)

/*
FromSource takes a context and a source of labels and returns a
histogram with the counts of the source's labels or an error. When
the source can aggregate its label counts natively it is asked to do
so instead of iterating example by example.
*/
func FromSource[L cmp.Ordered](ctx context.Context, src source.Source[L]) (*histogram.Histogram[L], error) {
	h := histogram.New[L]()
	if counter, ok := src.(source.Counter[L]); ok {
		counts, err := counter.CountLabels(ctx)
		if err != nil {
			return nil, err
		}
		for lb, count := range counts {
			h.AddN(lb, count)
		}
		return h, nil
	}
	err := src.ForEachLabel(ctx, func(_ int, lb L) (bool, error) {
		h.Add(lb)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

/*
Accumulate takes a context, a source of labels and a number of
workers and returns a histogram with the counts of the source's
labels or an error. The source is iterated once and its labels are
spread over the given number of worker goroutines; each worker counts
its share on a private histogram and the partial histograms are
merged once the source is exhausted. Because merging is associative
and commutative, the result is identical to accumulating every label
sequentially on one histogram, regardless of how labels are spread
over workers.

With less than 2 workers the source is accumulated sequentially on
the calling goroutine.
*/
func Accumulate[L cmp.Ordered](ctx context.Context, src source.Source[L], workers int) (*histogram.Histogram[L], error) {
	if workers < 2 {
		return FromSource(ctx, src)
	}
	labels := make(chan L)
	partials := make([]*histogram.Histogram[L], workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		h := histogram.New[L]()
		partials[i] = h
		wg.Add(1)
		go func() {
			defer wg.Done()
			for lb := range labels {
				h.Add(lb)
			}
		}()
	}
	err := src.ForEachLabel(ctx, func(_ int, lb L) (bool, error) {
		select {
		case labels <- lb:
			return true, nil
		case <-ctx.Done():
			return false, ctx.Err()
		}
	})
	close(labels)
	wg.Wait()
	if err != nil {
		return nil, err
	}
	result := histogram.New[L]()
	for _, h := range partials {
		result.Merge(h)
	}
	return result, nil
}

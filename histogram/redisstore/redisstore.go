/*
Package redisstore provides a histogram accumulator backed by a redis
DB, so that workers on different processes or machines can contribute
partial label counts to a shared histogram and snapshot the combined
result.
*/
package redisstore

import (
	"cmp"
	"context"
	"fmt"

	"github.com/canopyml/canopy/histogram"
	"github.com/canopyml/canopy/label"
	redis "gopkg.in/redis.v5"
)

/*
Store is a histogram accumulator backed by a redis DB. It keeps the
accumulated data under keys derived from its prefix:
  - prefix:bins is the key to a hash mapping the textual form of each
    label to its bin count
  - prefix:count is the key to a counter with the total number of
    observations

Bin increments and total increments are applied together in a
transactional pipeline, so concurrent writers never leave the two out
of step.

The store is secure for concurrent use by multiple goroutines.
*/
type Store[L cmp.Ordered] struct {
	rc     *redis.Client
	prefix string
	codec  label.Codec[L]
}

/*
New takes a redis client, a prefix for the keys under which to keep
the histogram data and a label codec and returns a store working on
them.
*/
func New[L cmp.Ordered](rc *redis.Client, prefix string, codec label.Codec[L]) *Store[L] {
	return &Store[L]{rc, prefix, codec}
}

/*
Add records one observation of the given label on the store.
*/
func (s *Store[L]) Add(ctx context.Context, lb L) error {
	return s.AddN(ctx, lb, 1)
}

/*
AddN records n observations of the given label on the store. Values
of n that are not positive leave the store untouched.
*/
func (s *Store[L]) AddN(ctx context.Context, lb L, n int) error {
	if n <= 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	field := s.codec.Format(lb)
	_, err := s.rc.TxPipelined(func(pipe *redis.Pipeline) error {
		pipe.HIncrBy(s.binsKey(), field, int64(n))
		pipe.IncrBy(s.countKey(), int64(n))
		return nil
	})
	if err != nil {
		return fmt.Errorf("adding %d observations of label %q in redis: %v", n, field, err)
	}
	return nil
}

/*
Merge adds the bin counts and total of the given histogram into the
store. Workers accumulating partial histograms locally should use it
to publish their results once their subset of examples is exhausted.
*/
func (s *Store[L]) Merge(ctx context.Context, h *histogram.Histogram[L]) error {
	if h == nil || h.Count() == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.rc.TxPipelined(func(pipe *redis.Pipeline) error {
		for lb, count := range h.Bins() {
			if count > 0 {
				pipe.HIncrBy(s.binsKey(), s.codec.Format(lb), int64(count))
			}
		}
		pipe.IncrBy(s.countKey(), int64(h.Count()))
		return nil
	})
	if err != nil {
		return fmt.Errorf("merging histogram into redis: %v", err)
	}
	return nil
}

/*
Snapshot materializes the accumulated counts as an in-memory
histogram. The returned histogram is independent of the store:
observations recorded afterwards do not affect it.
*/
func (s *Store[L]) Snapshot(ctx context.Context) (*histogram.Histogram[L], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fields, err := s.rc.HGetAll(s.binsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("retrieving histogram bins from redis: %v", err)
	}
	h := histogram.New[L]()
	for field, value := range fields {
		lb, err := s.codec.Parse(field)
		if err != nil {
			return nil, fmt.Errorf("decoding label %q from redis: %v", field, err)
		}
		var count int
		if _, err = fmt.Sscanf(value, "%d", &count); err != nil {
			return nil, fmt.Errorf("decoding count %q for label %q from redis: %v", value, field, err)
		}
		h.AddN(lb, count)
	}
	return h, nil
}

/*
Count returns the total number of observations recorded on the store.
*/
func (s *Store[L]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count, err := s.rc.Get(s.countKey()).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("retrieving histogram count from redis: %v", err)
	}
	return int(count), nil
}

/*
Clear removes the accumulated data from the store.
*/
func (s *Store[L]) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.rc.Del(s.binsKey(), s.countKey()).Result()
	if err != nil {
		return fmt.Errorf("clearing histogram keys in redis: %v", err)
	}
	return nil
}

func (s *Store[L]) binsKey() string {
	return fmt.Sprintf("%s:bins", s.prefix)
}

func (s *Store[L]) countKey() string {
	return fmt.Sprintf("%s:count", s.prefix)
}

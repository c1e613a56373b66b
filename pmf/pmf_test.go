package pmf

import (
	"errors"
	"math"
	"testing"

	"github.com/canopyml/canopy/histogram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func histogramOf(t *testing.T, counts map[string]int) *histogram.Histogram[string] {
	t.Helper()
	h := histogram.New[string]()
	for label, count := range counts {
		h.AddN(label, count)
	}
	return h
}

func TestNewNormalizesCounts(t *testing.T) {
	h := histogramOf(t, map[string]int{"a": 3, "b": 1})
	p, err := New(h)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, p.Mass("a"), 1e-9)
	assert.InDelta(t, 0.25, p.Mass("b"), 1e-9)
	assert.Equal(t, 0.0, p.Mass("c"))
}

func TestMassesSumToOne(t *testing.T) {
	for _, counts := range []map[string]int{
		{"a": 1},
		{"a": 3, "b": 1},
		{"a": 7, "b": 13, "c": 1, "d": 29},
		{"a": 1, "b": 1, "c": 1, "d": 1, "e": 1, "f": 1, "g": 1},
	} {
		p, err := New(histogramOf(t, counts))
		require.NoError(t, err)
		masses := make([]float64, 0, len(counts))
		for _, mass := range p.Masses() {
			masses = append(masses, mass)
		}
		assert.InDelta(t, 1.0, floats.Sum(masses), 1e-6, "masses of %v", counts)
	}
}

func TestNewFromEmptyHistogramFails(t *testing.T) {
	_, err := New(histogram.New[string]())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyHistogram))
}

func TestNewToleratesZeroCountBins(t *testing.T) {
	h := histogram.New[string]()
	h.Add("a")
	h.AddN("b", 0)

	p, err := New(h)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.Mass("a"))
	assert.Equal(t, []string{"a"}, p.Labels())
	assert.Equal(t, 0.0, p.Entropy())
}

func TestNewFailsWhenAMassFallsBelowTheFloor(t *testing.T) {
	// One observation against two thousand million makes a mass of
	// 5e-10, below the 1e-9 floor.
	h := histogram.New[string]()
	h.AddN("common", 2000000000)
	h.Add("rare")

	_, err := New(h)
	require.Error(t, err)
	var violation *InvariantViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, "rare", violation.Label)
	assert.InDelta(t, 5e-10, violation.Mass, 1e-12)
}

func TestEntropyOfSkewedDistribution(t *testing.T) {
	p, err := New(histogramOf(t, map[string]int{"a": 3, "b": 1}))
	require.NoError(t, err)
	want := -(0.75*math.Log2(0.75) + 0.25*math.Log2(0.25))
	assert.InDelta(t, want, p.Entropy(), 1e-6)
	assert.InDelta(t, 0.81128, p.Entropy(), 1e-5)
}

func TestEntropyOfUniformDistributionIsLog2K(t *testing.T) {
	h := histogram.New[string]()
	labels := []string{"a", "b", "c", "d", "e"}
	for _, label := range labels {
		h.AddN(label, 4)
	}
	p, err := New(h)
	require.NoError(t, err)
	assert.InDelta(t, math.Log2(float64(len(labels))), p.Entropy(), 1e-6)
}

func TestEntropyOfEvenBinaryDistributionIsOneBit(t *testing.T) {
	p, err := New(histogramOf(t, map[string]int{"a": 2, "b": 2}))
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.Entropy())
}

func TestEntropyOfPureDistributionIsZero(t *testing.T) {
	p, err := New(histogramOf(t, map[string]int{"a": 10}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Entropy())
}

func TestEntropyIsNonNegativeAndDeterministic(t *testing.T) {
	for _, counts := range []map[string]int{
		{"a": 1},
		{"a": 1, "b": 1000000},
		{"a": 3, "b": 1, "c": 17},
	} {
		p, err := New(histogramOf(t, counts))
		require.NoError(t, err)
		entropy := p.Entropy()
		assert.GreaterOrEqual(t, entropy, 0.0, "entropy of %v", counts)
		assert.Equal(t, entropy, p.Entropy())
	}
}

func TestPMFIsASnapshotOfTheHistogram(t *testing.T) {
	h := histogramOf(t, map[string]int{"a": 1, "b": 1})
	p, err := New(h)
	require.NoError(t, err)

	// Reusing the histogram must not disturb the PMF built before.
	h.AddN("c", 100)

	assert.Equal(t, 0.5, p.Mass("a"))
	assert.Equal(t, 0.0, p.Mass("c"))
	assert.Equal(t, 1.0, p.Entropy())
}

func TestMassesReturnsACopy(t *testing.T) {
	p, err := New(histogramOf(t, map[string]int{"a": 1, "b": 3}))
	require.NoError(t, err)
	masses := p.Masses()
	masses["a"] = 0.99
	assert.Equal(t, 0.25, p.Mass("a"))
}

func TestStringIsBounded(t *testing.T) {
	p, err := New(histogramOf(t, map[string]int{"a": 1, "b": 1, "c": 1, "d": 1}))
	require.NoError(t, err)
	assert.Equal(t, "{a: 0.25, b: 0.25, c: 0.25, ...(1 more)}", p.String())

	p, err = New(histogramOf(t, map[string]int{"a": 3, "b": 1}))
	require.NoError(t, err)
	assert.Equal(t, "{a: 0.75, b: 0.25}", p.String())
}

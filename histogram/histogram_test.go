package histogram

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddKeepsCountEqualToSumOfBins(t *testing.T) {
	h := New[string]()
	require.Equal(t, 0, h.Count())

	labels := []string{"a", "b", "a", "c", "a", "b"}
	for _, l := range labels {
		h.Add(l)
	}

	require.Equal(t, len(labels), h.Count())
	bins := h.Bins()
	sum := 0
	for _, c := range bins {
		sum += c
	}
	require.Equal(t, h.Count(), sum)
	assert.Equal(t, 3, h.CountFor("a"))
	assert.Equal(t, 2, h.CountFor("b"))
	assert.Equal(t, 1, h.CountFor("c"))
	assert.Equal(t, 0, h.CountFor("d"))
}

func TestAddN(t *testing.T) {
	h := New[int]()
	h.AddN(7, 5)
	h.AddN(9, 0)
	h.AddN(11, -3)
	require.Equal(t, 5, h.Count())
	assert.Equal(t, 5, h.CountFor(7))
	assert.Equal(t, 0, h.CountFor(9))

	bins := h.Bins()
	_, declared := bins[9]
	assert.True(t, declared, "a 0 n should declare the label with an empty bin")
	_, declared = bins[11]
	assert.False(t, declared, "a negative n should leave the histogram untouched")
}

func TestMergeMatchesSequentialAccumulation(t *testing.T) {
	first := []string{"a", "b", "a"}
	second := []string{"c", "a", "b", "b"}

	sequential := New[string]()
	for _, l := range append(append([]string{}, first...), second...) {
		sequential.Add(l)
	}

	h1 := New[string]()
	for _, l := range first {
		h1.Add(l)
	}
	h2 := New[string]()
	for _, l := range second {
		h2.Add(l)
	}

	merged := New[string]()
	merged.Merge(h1)
	merged.Merge(h2)

	require.Equal(t, sequential.Count(), merged.Count())
	if diff := cmp.Diff(sequential.Bins(), merged.Bins()); diff != "" {
		t.Errorf("merged bins mismatch (-sequential +merged):\n%s", diff)
	}
}

func TestMergeIsCommutative(t *testing.T) {
	h1 := New[string]()
	h1.Add("a")
	h1.Add("b")
	h2 := New[string]()
	h2.Add("b")
	h2.Add("c")

	ab := New[string]()
	ab.Merge(h1)
	ab.Merge(h2)
	ba := New[string]()
	ba.Merge(h2)
	ba.Merge(h1)

	require.Equal(t, ab.Count(), ba.Count())
	if diff := cmp.Diff(ab.Bins(), ba.Bins()); diff != "" {
		t.Errorf("merge order changed the result (-ab +ba):\n%s", diff)
	}
}

func TestMergeNilIsANoOp(t *testing.T) {
	h := New[string]()
	h.Add("a")
	h.Merge(nil)
	require.Equal(t, 1, h.Count())
}

func TestBinsReturnsACopy(t *testing.T) {
	h := New[string]()
	h.Add("a")
	bins := h.Bins()
	bins["a"] = 100
	bins["b"] = 50
	assert.Equal(t, 1, h.CountFor("a"))
	assert.Equal(t, 0, h.CountFor("b"))
	assert.Equal(t, 1, h.Count())
}

func TestCloneIsIndependent(t *testing.T) {
	h := New[string]()
	h.Add("a")
	clone := h.Clone()
	h.Add("a")
	h.Add("b")
	assert.Equal(t, 1, clone.Count())
	assert.Equal(t, 1, clone.CountFor("a"))
	assert.Equal(t, 0, clone.CountFor("b"))
}

func TestLabelsAreSorted(t *testing.T) {
	h := New[string]()
	for _, l := range []string{"walnut", "birch", "oak", "birch"} {
		h.Add(l)
	}
	assert.Equal(t, []string{"birch", "oak", "walnut"}, h.Labels())
}

func TestString(t *testing.T) {
	h := New[string]()
	h.Add("b")
	h.Add("a")
	h.Add("b")
	assert.Equal(t, "{Histogram a:1 b:2 (3)}", h.String())
}

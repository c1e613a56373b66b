package sqlsource

import (
	"context"
	"fmt"
	"testing"

	"github.com/canopyml/canopy/label"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdapter struct {
	labels []string
}

func (a *fakeAdapter) TableName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty table name")
	}
	return name, nil
}

func (a *fakeAdapter) ColumnName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty column name")
	}
	return name, nil
}

func (a *fakeAdapter) IterateOnLabels(ctx context.Context, table, column string, lambda func(int, string) (bool, error)) error {
	for i, l := range a.labels {
		ok, err := lambda(i, l)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

func (a *fakeAdapter) CountLabels(ctx context.Context, table, column string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, l := range a.labels {
		counts[l]++
	}
	return counts, nil
}

func (a *fakeAdapter) CountRows(ctx context.Context, table string) (int, error) {
	return len(a.labels), nil
}

func TestOpenValidatesNames(t *testing.T) {
	adapter := &fakeAdapter{}
	_, err := Open[string](adapter, "", "label", label.StringCodec{})
	require.Error(t, err)
	_, err = Open[string](adapter, "samples", "", label.StringCodec{})
	require.Error(t, err)
}

func TestForEachLabelParsesLabels(t *testing.T) {
	adapter := &fakeAdapter{labels: []string{"3", "1", "3"}}
	src, err := Open[int](adapter, "samples", "label", label.IntCodec{})
	require.NoError(t, err)

	var labels []int
	err = src.ForEachLabel(context.Background(), func(_ int, l int) (bool, error) {
		labels = append(labels, l)
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 3}, labels)
}

func TestForEachLabelFailsOnUnparsableLabels(t *testing.T) {
	adapter := &fakeAdapter{labels: []string{"3", "oak"}}
	src, err := Open[int](adapter, "samples", "label", label.IntCodec{})
	require.NoError(t, err)

	err = src.ForEachLabel(context.Background(), func(int, int) (bool, error) {
		return true, nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestCountLabels(t *testing.T) {
	adapter := &fakeAdapter{labels: []string{"oak", "birch", "oak"}}
	src, err := Open[string](adapter, "samples", "label", label.StringCodec{})
	require.NoError(t, err)

	counter, ok := src.(interface {
		CountLabels(context.Context) (map[string]int, error)
	})
	require.True(t, ok)
	counts, err := counter.CountLabels(context.Background())
	require.NoError(t, err)
	if diff := cmp.Diff(map[string]int{"oak": 2, "birch": 1}, counts); diff != "" {
		t.Errorf("label counts mismatch (-want +got):\n%s", diff)
	}

	count, err := src.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

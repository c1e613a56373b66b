package yaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLabels(t *testing.T) {
	md := []byte(`labels:
  - touching
  - background
  - 3
`)
	labels, err := ReadLabels(md)
	require.NoError(t, err)
	assert.Equal(t, []string{"touching", "background", "3"}, labels)
}

func TestReadLabelsWithoutLabelInformation(t *testing.T) {
	_, err := ReadLabels([]byte(`features: {}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no label information")
}

func TestReadLabelsRejectsDuplicates(t *testing.T) {
	md := []byte(`labels:
  - touching
  - touching
`)
	_, err := ReadLabels(md)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than once")
}

func TestReadLabelsRejectsNonScalarDeclarations(t *testing.T) {
	md := []byte(`labels:
  - name: touching
`)
	_, err := ReadLabels(md)
	require.Error(t, err)
}

func TestReadLabelsOnInvalidYML(t *testing.T) {
	_, err := ReadLabels([]byte("labels: ["))
	require.Error(t, err)
}

package application

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesFromMetadata(t *testing.T) {
	names, err := NamesFromMetadata(json.RawMessage(`[{"name": "a"}, {"x": 1}, {"name": "b"}]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestNamesFromMetadata_PreservesOrderAndDuplicates(t *testing.T) {
	names, err := NamesFromMetadata(json.RawMessage(`[{"name": "b"}, {"name": "a"}, {"name": "b"}]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "b"}, names)
}

func TestNamesFromMetadata_EmptyList(t *testing.T) {
	names, err := NamesFromMetadata(json.RawMessage(`[]`))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestNamesFromMetadata_NotAList(t *testing.T) {
	_, err := NamesFromMetadata(json.RawMessage(`{"name": "a"}`))
	require.Error(t, err)
}

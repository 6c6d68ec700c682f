package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	p := Normalize(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestNormalizeClampsNegatives(t *testing.T) {
	p := Normalize(-3, -5)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestNormalizeCapsLimit(t *testing.T) {
	p := Normalize(2, 500)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, MaxLimit, p.Limit)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Normalize(1, 10).Offset())
	assert.Equal(t, 20, Normalize(3, 10).Offset())
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Normalize(2, 10), 25)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.EqualValues(t, 25, meta.TotalItems)
	assert.Equal(t, 10, meta.ItemsPerPage)
	assert.True(t, meta.HasNextPage)
	assert.True(t, meta.HasPreviousPage)
}

func TestNewMetaEmpty(t *testing.T) {
	meta := NewMeta(Normalize(1, 10), 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNextPage)
	assert.False(t, meta.HasPreviousPage)
}

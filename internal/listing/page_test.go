package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowCenteredNoClamp(t *testing.T) {
	assert.Equal(t, []int{5, 6, 7, 8, 9}, Window(7, 12))
}

func TestWindowClampsAtFirstPage(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5}, Window(1, 12))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, Window(2, 12))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, Window(3, 12))
}

func TestWindowClampsAtLastPage(t *testing.T) {
	assert.Equal(t, []int{8, 9, 10, 11, 12}, Window(12, 12))
	assert.Equal(t, []int{8, 9, 10, 11, 12}, Window(11, 12))
	assert.Equal(t, []int{8, 9, 10, 11, 12}, Window(10, 12))
}

func TestWindowShowsAllForFewPages(t *testing.T) {
	assert.Equal(t, []int{1}, Window(1, 1))
	assert.Equal(t, []int{1, 2, 3}, Window(2, 3))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, Window(3, 5))
	assert.Nil(t, Window(1, 0))
}

func TestNormalizeResetsOutOfRangePages(t *testing.T) {
	// 25 items: 3 pages
	assert.Equal(t, 3, Normalize(3, 25))
	assert.Equal(t, 1, Normalize(4, 25))
	assert.Equal(t, 1, Normalize(0, 25))
	assert.Equal(t, 1, Normalize(-2, 25))
	assert.Equal(t, 1, Normalize(7, 0))
}

func TestSlice(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i + 1
	}

	page2, meta := Slice(items, 2)
	require.Len(t, page2, 10)
	assert.Equal(t, 11, page2[0])
	assert.Equal(t, 2, meta.Number)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 11, meta.Start)
	assert.Equal(t, 20, meta.End)
	assert.True(t, meta.HasPrev())
	assert.True(t, meta.HasNext())

	last, meta := Slice(items, 3)
	assert.Len(t, last, 5)
	assert.Equal(t, 25, meta.End)
	assert.False(t, meta.HasNext())
}

func TestSliceOutOfRangeFallsToFirstPage(t *testing.T) {
	items := []int{1, 2, 3}
	got, meta := Slice(items, 9)
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, 1, meta.Number)
}

func TestSliceEmpty(t *testing.T) {
	var items []string
	got, meta := Slice(items, 1)
	assert.Empty(t, got)
	assert.Equal(t, 1, meta.TotalPages)
	assert.Equal(t, 0, meta.Start)
	assert.Equal(t, 0, meta.End)
}

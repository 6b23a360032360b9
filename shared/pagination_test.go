package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	t.Run("11 posts at page size 10 split 10/1", func(t *testing.T) {
		page := Paginate(11, 10, 1)
		assert.Equal(t, 1, page.Number)
		assert.Equal(t, 2, page.NumPages)
		assert.Equal(t, 0, page.Offset())
		assert.True(t, page.HasNext())
		assert.False(t, page.HasPrev())

		page = Paginate(11, 10, 2)
		assert.Equal(t, 2, page.Number)
		assert.Equal(t, 10, page.Offset())
		assert.False(t, page.HasNext())
		assert.True(t, page.HasPrev())
	})

	t.Run("exact multiple yields no partial page", func(t *testing.T) {
		page := Paginate(10, 10, 1)
		assert.Equal(t, 1, page.NumPages)
		assert.False(t, page.HasNext())
	})

	t.Run("empty result set is a single empty page", func(t *testing.T) {
		page := Paginate(0, 10, 1)
		assert.Equal(t, 1, page.Number)
		assert.Equal(t, 1, page.NumPages)
		assert.Equal(t, 0, page.TotalCount)
	})

	t.Run("out of range clamps to nearest valid page", func(t *testing.T) {
		assert.Equal(t, 2, Paginate(11, 10, 99).Number)
		assert.Equal(t, 1, Paginate(11, 10, 0).Number)
		assert.Equal(t, 1, Paginate(11, 10, -3).Number)
	})
}

func TestParsePageNumber(t *testing.T) {
	assert.Equal(t, 1, ParsePageNumber(""))
	assert.Equal(t, 1, ParsePageNumber("abc"))
	assert.Equal(t, 3, ParsePageNumber("3"))
	assert.Equal(t, -2, ParsePageNumber("-2"))
}

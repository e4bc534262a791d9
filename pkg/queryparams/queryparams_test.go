package queryparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListParamsValidate(t *testing.T) {
	p := ListParams{Page: -3, PerPage: 1000, OrderBy: "DROP", Name: "  ayşe "}
	p.Validate()

	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
	assert.Equal(t, DefaultSortBy, p.SortBy)
	assert.Equal(t, DefaultOrderBy, p.OrderBy)
	assert.Equal(t, "ayşe", p.Name)

	p = ListParams{Page: 2, PerPage: 10, OrderBy: "ASC", SortBy: "id"}
	p.Validate()
	assert.Equal(t, "asc", p.OrderBy)
	assert.Equal(t, "id", p.SortBy)
}

func TestCalculateOffsetAndPages(t *testing.T) {
	assert.Equal(t, 0, ListParams{Page: 1, PerPage: 20}.CalculateOffset())
	assert.Equal(t, 40, ListParams{Page: 3, PerPage: 20}.CalculateOffset())

	assert.Equal(t, 0, CalculateTotalPages(0, 20))
	assert.Equal(t, 1, CalculateTotalPages(20, 20))
	assert.Equal(t, 2, CalculateTotalPages(21, 20))

	res := NewPaginatedResult([]int{1, 2}, ListParams{Page: 1, PerPage: 2}, 5)
	assert.Equal(t, 3, res.Meta.TotalPages)
	assert.Equal(t, int64(5), res.Meta.TotalItems)
}

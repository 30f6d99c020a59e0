package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	assert.Equal(t, Pagination{Page: 2, PerPage: 10, Total: 25, LastPage: 3}, p)
	assert.Equal(t, 10, p.Offset())

	assert.Equal(t, 3, NewPagination(99, 10, 25).Page, "past the end clamps to the last page")
	assert.Equal(t, 1, NewPagination(0, 10, 0).LastPage, "empty lists still have one page")
	assert.Equal(t, 20, NewPagination(1, 0, 5).PerPage)
}

func TestPattern(t *testing.T) {
	assert.Equal(t, "%lamp%", pattern(IContains, "lamp"))
	assert.Equal(t, "jo%", pattern(IStartsWith, "jo"))
	assert.Equal(t, `%50!%!_off%`, pattern(IContains, "50%_off"))
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagination_NormalizeDefaults(t *testing.T) {
	p := Pagination{}
	p.Normalize()

	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
}

func TestPagination_NormalizeClampsOutOfRange(t *testing.T) {
	p := Pagination{Page: -3, PageSize: 0}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)

	p = Pagination{Page: 2, PageSize: 500}
	p.Normalize()
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, MaxPageSize, p.PageSize)
}

func TestPagination_Offset(t *testing.T) {
	p := Pagination{Page: 1, PageSize: 10}
	assert.Equal(t, 0, p.Offset())

	p = Pagination{Page: 3, PageSize: 25}
	assert.Equal(t, 50, p.Offset())
}

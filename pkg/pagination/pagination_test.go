package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromQuery(t *testing.T) {
	values := url.Values{"page": {"3"}, "per_page": {"10"}}
	p := FromQuery(values)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.PerPage)
	assert.Equal(t, 20, p.Offset())

	p = FromQuery(url.Values{})
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)

	p = FromQuery(url.Values{"page": {"junk"}, "per_page": {"-2"}})
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
}

func TestNormalizeCapsPerPage(t *testing.T) {
	p := Params{Page: 0, PerPage: 10_000}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPerPage, p.PerPage)
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Params{Page: 2, PerPage: 10}, 25)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, int64(25), meta.TotalCount)
	assert.Equal(t, 3, meta.TotalPages)

	meta = NewMeta(Params{Page: 1, PerPage: 10}, 0)
	assert.Equal(t, 0, meta.TotalPages)
}

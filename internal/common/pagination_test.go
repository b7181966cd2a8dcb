package common

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPageOffsets(t *testing.T) {
	page := NewPage([]int{1, 2}, 250, PageParams{Limit: 100, Offset: 0})
	require.NotNil(t, page.NextOffset)
	require.Equal(t, 100, *page.NextOffset)
	require.Nil(t, page.PrevOffset)

	page = NewPage([]int{1}, 250, PageParams{Limit: 100, Offset: 200})
	require.Nil(t, page.NextOffset)
	require.NotNil(t, page.PrevOffset)
	require.Equal(t, 100, *page.PrevOffset)

	page = NewPage([]int{1}, 250, PageParams{Limit: 100, Offset: 50})
	require.Equal(t, 150, *page.NextOffset)
	require.Nil(t, page.PrevOffset)
}

func TestNewPageNextOffsetStaysInRange(t *testing.T) {
	page := NewPage([]int{}, 1<<40, PageParams{Limit: 1000, Offset: 2147482647})
	require.NotNil(t, page.NextOffset)
	require.Equal(t, 2147483647, *page.NextOffset)

	page = NewPage([]int{}, 1<<40, PageParams{Limit: 1000, Offset: 2147483000})
	require.Nil(t, page.NextOffset)
	require.Equal(t, 2147482000, *page.PrevOffset)
}

func TestNewPageEmptyItemsEncodeAsArray(t *testing.T) {
	page := NewPage[string](nil, 0, PageParams{Limit: 10})
	require.NotNil(t, page.Items)
	require.Empty(t, page.Items)
	require.Nil(t, page.NextOffset)
}

func TestParsePageParams(t *testing.T) {
	req := httptest.NewRequest("GET", "/things", nil)
	params, err := ParsePageParams(req, 100, 1000)
	require.NoError(t, err)
	require.Equal(t, PageParams{Limit: 100, Offset: 0}, params)

	req = httptest.NewRequest("GET", "/things?limit=25&offset=50", nil)
	params, err = ParsePageParams(req, 100, 1000)
	require.NoError(t, err)
	require.Equal(t, PageParams{Limit: 25, Offset: 50}, params)

	req = httptest.NewRequest("GET", "/things?offset=2147482647", nil)
	params, err = ParsePageParams(req, 100, 1000)
	require.NoError(t, err)
	require.Equal(t, 2147482647, params.Offset)

	for _, query := range []string{
		"limit=0", "limit=1001", "limit=abc", "offset=-1",
		"offset=2147482648", "offset=4294967296", "offset=9223372036854775800", "offset=99999999999999999999",
	} {
		req = httptest.NewRequest("GET", "/things?"+query, nil)
		_, err = ParsePageParams(req, 100, 1000)
		require.Error(t, err, query)
		require.True(t, HasCode(err, CodeValidation), query)
	}
}

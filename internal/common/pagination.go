package common

import (
	"math"
	"net/http"
	"strconv"
	"strings"
)

// Default list bounds used when no configuration is supplied.
const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// PageParams carries the limit/offset window requested by a client.
type PageParams struct {
	Limit  int
	Offset int
}

// Page is the envelope returned by every list endpoint.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	NextOffset *int  `json:"next_offset"`
	PrevOffset *int  `json:"prev_offset"`
}

// NewPage builds a page and derives the neighbouring offsets.
// next_offset is set while offset+limit < total; prev_offset only when offset-limit >= 0.
func NewPage[T any](items []T, total int64, p PageParams) Page[T] {
	if items == nil {
		items = []T{}
	}
	page := Page[T]{Items: items, Total: total, Limit: p.Limit, Offset: p.Offset}
	if next := int64(p.Offset) + int64(p.Limit); next < total && next <= math.MaxInt32 {
		n := int(next)
		page.NextOffset = &n
	}
	if prev := p.Offset - p.Limit; prev >= 0 {
		page.PrevOffset = &prev
	}
	return page
}

// ParsePageParams reads limit and offset from the query string.
// Values outside 1..maxLimit (limit) or 0..MaxInt32-maxLimit (offset) are rejected,
// so the window always fits the int32 LIMIT/OFFSET query parameters.
func ParsePageParams(r *http.Request, defaultLimit, maxLimit int) (PageParams, error) {
	if defaultLimit <= 0 {
		defaultLimit = DefaultListLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxListLimit
	}
	params := PageParams{Limit: defaultLimit}
	q := r.URL.Query()
	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxLimit {
			return PageParams{}, Validation("invalid limit", map[string]string{"limit": "min=1,max=" + strconv.Itoa(maxLimit)})
		}
		params.Limit = limit
	}
	if raw := strings.TrimSpace(q.Get("offset")); raw != "" {
		maxOffset := math.MaxInt32 - maxLimit
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 || offset > maxOffset {
			return PageParams{}, Validation("invalid offset", map[string]string{"offset": "min=0,max=" + strconv.Itoa(maxOffset)})
		}
		params.Offset = offset
	}
	return params, nil
}

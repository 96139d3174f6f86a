package pagination

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jkco/site-core/internal/pkg/response"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
	// MaxOffset bounds how many rows a page may skip.
	MaxOffset = math.MaxInt32
)

// Query holds parsed pagination parameters.
type Query struct {
	Page int
	Size int
}

// FromContext extracts and validates pagination params from the request.
// Both "limit" and "size" are accepted for the page size.
func FromContext(c *gin.Context, defaultSize int) Query {
	if defaultSize < 1 {
		defaultSize = DefaultSize
	}
	raw := c.Query("limit")
	if raw == "" {
		raw = c.Query("size")
	}
	return Normalize(parseIntOr(c.Query("page"), DefaultPage), parseIntOr(raw, defaultSize), defaultSize)
}

// Normalize clamps page and size into their valid ranges.
func Normalize(page, size, defaultSize int) Query {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = defaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Query{Page: min(page, lastPage(size)), Size: size}
}

// lastPage is the highest page whose offset stays within MaxOffset.
func lastPage(size int) int {
	return MaxOffset/size + 1
}

// Offset returns the number of rows to skip.
func (q Query) Offset() int {
	if q.Page < 1 || q.Size < 1 {
		return 0
	}
	return (min(q.Page, lastPage(q.Size)) - 1) * q.Size
}

// Meta builds the pagination metadata for a page holding count items out of total.
func (q Query) Meta(total int64, count int) response.Pagination {
	pages := 0
	if q.Size > 0 {
		pages = int((total + int64(q.Size) - 1) / int64(q.Size))
	}
	return response.Pagination{
		Count: count,
		Total: total,
		Page:  q.Page,
		Pages: pages,
	}
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

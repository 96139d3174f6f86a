package pagination

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestFromContext(t *testing.T) {
	q := FromContext(contextWithQuery(""), 50)
	assert.Equal(t, Query{Page: 1, Size: 50}, q)

	q = FromContext(contextWithQuery("page=3&limit=5"), 10)
	assert.Equal(t, Query{Page: 3, Size: 5}, q)
	assert.Equal(t, 10, q.Offset())

	q = FromContext(contextWithQuery("page=-2&limit=1000"), 10)
	assert.Equal(t, Query{Page: 1, Size: MaxSize}, q)

	q = FromContext(contextWithQuery("page=abc&size=7"), 10)
	assert.Equal(t, Query{Page: 1, Size: 7}, q)
}

func TestOffsetStaysBounded(t *testing.T) {
	q := FromContext(contextWithQuery("page=9223372036854775807&limit=100"), 10)
	assert.Equal(t, MaxOffset/100+1, q.Page)
	assert.GreaterOrEqual(t, q.Offset(), 0)
	assert.LessOrEqual(t, q.Offset(), MaxOffset)

	huge := Query{Page: math.MaxInt, Size: MaxSize}
	assert.Equal(t, q.Offset(), huge.Offset())
	assert.Equal(t, 0, Query{}.Offset())
}

func TestMeta(t *testing.T) {
	q := Query{Page: 2, Size: 10}
	meta := q.Meta(21, 10)
	assert.Equal(t, 3, meta.Pages)
	assert.Equal(t, int64(21), meta.Total)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.Count)

	assert.Equal(t, 0, q.Meta(0, 0).Pages)
}

// childcare-crm/internal/handlers/pagination_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func testContextWithQuery(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, err := http.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	require.NoError(t, err)
	c.Request = req
	return c
}

func TestPageParamsDefaults(t *testing.T) {
	page, pageSize := pageParams(testContextWithQuery(t, ""))
	require.Equal(t, 1, page)
	require.Equal(t, DefaultPageSize, pageSize)
}

func TestPageParamsClamping(t *testing.T) {
	page, pageSize := pageParams(testContextWithQuery(t, "page=-3&pageSize=5000"))
	require.Equal(t, 1, page)
	require.Equal(t, MaxPageSize, pageSize)

	page, pageSize = pageParams(testContextWithQuery(t, "page=4&pageSize=0"))
	require.Equal(t, 4, page)
	require.Equal(t, DefaultPageSize, pageSize)
}

func TestCreatePaginatedResponse(t *testing.T) {
	c := testContextWithQuery(t, "page=2&pageSize=10")

	resp := CreatePaginatedResponse(c, []string{"a", "b"}, 25)
	require.Equal(t, int64(25), resp.TotalRows)
	require.Equal(t, 3, resp.TotalPages)
	require.Equal(t, 2, resp.CurrentPage)
	require.Equal(t, 10, resp.PageSize)
}

func TestCreatePaginatedResponseEmpty(t *testing.T) {
	c := testContextWithQuery(t, "")

	resp := CreatePaginatedResponse(c, []string{}, 0)
	require.Equal(t, 0, resp.TotalPages)
	require.Equal(t, 1, resp.CurrentPage)
}

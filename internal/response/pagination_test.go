package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFromRequestDefaults(t *testing.T) {
	parser := NewPaginationParser(nil)
	req := httptest.NewRequest(http.MethodGet, "/files", nil)

	params, err := parser.ParseFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 10, params.PageSize)
	assert.Equal(t, 0, params.Offset)
}

func TestParseFromRequestExplicitValues(t *testing.T) {
	parser := NewPaginationParser(nil)
	req := httptest.NewRequest(http.MethodGet, "/files?page=3&pageSize=20", nil)

	params, err := parser.ParseFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 20, params.PageSize)
	assert.Equal(t, 40, params.Offset)
}

func TestParseFromRequestRejectsBadInput(t *testing.T) {
	parser := NewPaginationParser(nil)

	for _, target := range []string{
		"/files?page=0",
		"/files?page=abc",
		"/files?pageSize=0",
		"/files?pageSize=-5",
		"/files?pageSize=banana",
		"/files?pageSize=51",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		_, err := parser.ParseFromRequest(req)
		assert.Error(t, err, "expected %s to be rejected", target)
	}
}

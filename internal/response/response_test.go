package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdfhub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) *APIResponse {
	t.Helper()
	var body APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return &body
}

func TestWriteSuccess(t *testing.T) {
	builder := NewBuilder(DefaultConfig(), zap.NewNop())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	builder.WriteSuccess(rec, req, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "v1", body.Version)
	assert.NotZero(t, body.Timestamp)
}

func TestWriteErrorMapsStatusFromErrorType(t *testing.T) {
	builder := NewBuilder(DefaultConfig(), zap.NewNop())

	cases := []struct {
		err        error
		wantStatus int
		wantType   string
	}{
		{services.NewValidationError("bad input", nil), http.StatusBadRequest, "VALIDATION_ERROR"},
		{services.NewNotFoundError("missing"), http.StatusNotFound, "NOT_FOUND"},
		{services.NewConflictError("taken", "EMAIL_TAKEN"), http.StatusConflict, "CONFLICT"},
		{services.NewUnauthorizedError("no"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{services.NewInternalError("boom", nil), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		builder.WriteError(rec, req, tc.err)

		assert.Equal(t, tc.wantStatus, rec.Code)
		body := decodeBody(t, rec)
		assert.False(t, body.Success)
		require.NotNil(t, body.Error)
		assert.Equal(t, tc.wantType, body.Error.Type)
	}
}

func TestWriteErrorMasksInternalDetails(t *testing.T) {
	builder := NewBuilder(DefaultConfig(), zap.NewNop())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	builder.WriteError(rec, req, services.NewStoreFailureError("select failed on users", fmt.Errorf("pq: broken")))

	body := decodeBody(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "An internal error occurred", body.Error.Message)
}

func TestWriteErrorUnmaskedInDevelopment(t *testing.T) {
	builder := NewBuilder(DevelopmentConfig(), zap.NewNop())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	builder.WriteError(rec, req, services.NewStoreFailureError("select failed on users", fmt.Errorf("pq: broken")))

	body := decodeBody(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "select failed on users", body.Error.Message)
}

func TestWriteNoContent(t *testing.T) {
	builder := NewBuilder(DefaultConfig(), zap.NewNop())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/test", nil)

	builder.WriteNoContent(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestBuilderContextRoundTrip(t *testing.T) {
	builder := NewBuilder(DefaultConfig(), zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	handler := Middleware(builder)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Same(t, builder, GetBuilder(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

package comments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pdfhub/internal/contextutils"
	"pdfhub/internal/models"
	"pdfhub/internal/response"
	"pdfhub/internal/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockCommentService records the last Post request for assertions.
type mockCommentService struct {
	lastPost *services.PostCommentRequest
	thread   []*models.CommentNode
}

func (m *mockCommentService) GetThread(_ context.Context, fileID int64) ([]*models.CommentNode, error) {
	if fileID == 404 {
		return nil, services.NewNotFoundError("document not found")
	}
	return m.thread, nil
}

func (m *mockCommentService) Post(_ context.Context, req *services.PostCommentRequest) (*models.Comment, error) {
	m.lastPost = req
	return &models.Comment{ID: 1, FileID: req.FileID, Content: req.Content}, nil
}

func newTestController(svc services.CommentService) *CommentController {
	return NewCommentController(svc, response.NewBuilder(response.DefaultConfig(), zap.NewNop()), zap.NewNop())
}

func TestGetThreadHandler(t *testing.T) {
	mock := &mockCommentService{
		thread: []*models.CommentNode{
			{ID: 1, Content: "root", Replies: []*models.CommentNode{}},
		},
	}
	controller := newTestController(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/files/1/comments", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rec := httptest.NewRecorder()

	controller.GetThread(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                  `json:"success"`
		Data    []*models.CommentNode `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "root", body.Data[0].Content)
}

func TestGetThreadHandlerUnknownDocument(t *testing.T) {
	controller := newTestController(&mockCommentService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/files/404/comments", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "404"})
	rec := httptest.NewRecorder()

	controller.GetThread(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetThreadHandlerInvalidID(t *testing.T) {
	controller := newTestController(&mockCommentService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/files/abc/comments", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "abc"})
	rec := httptest.NewRecorder()

	controller.GetThread(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostHandlerGuestComment(t *testing.T) {
	mock := &mockCommentService{}
	controller := newTestController(mock)

	payload := `{"guestName": "visitor", "content": "hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/files/7/comments", strings.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rec := httptest.NewRecorder()

	controller.Post(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, mock.lastPost)
	assert.Equal(t, int64(7), mock.lastPost.FileID)
	assert.Nil(t, mock.lastPost.AuthorID, "anonymous request must not carry an author")
	assert.Equal(t, "visitor", mock.lastPost.GuestName)
}

func TestPostHandlerSignedInComment(t *testing.T) {
	mock := &mockCommentService{}
	controller := newTestController(mock)

	payload := `{"content": "hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/files/7/comments", strings.NewReader(payload))
	req = req.WithContext(contextutils.WithUserID(req.Context(), 42))
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rec := httptest.NewRecorder()

	controller.Post(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, mock.lastPost)
	require.NotNil(t, mock.lastPost.AuthorID)
	assert.Equal(t, int64(42), *mock.lastPost.AuthorID)
}

func TestPostHandlerRejectsBadJSON(t *testing.T) {
	controller := newTestController(&mockCommentService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files/7/comments", strings.NewReader("{not json"))
	req = mux.SetURLVars(req, map[string]string{"id": "7"})
	rec := httptest.NewRecorder()

	controller.Post(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

package services

import (
	"context"
	"testing"
	"time"

	"pdfhub/internal/events"
	"pdfhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCommentFixture(t *testing.T) (CommentService, *fakeFileRepo, *fakeCommentRepo, *events.Bus) {
	t.Helper()
	logger := zap.NewNop()
	files := newFakeFileRepo()
	comments := newFakeCommentRepo()
	bus := events.NewBus(logger)
	return NewCommentService(comments, files, bus, logger), files, comments, bus
}

func TestPostGuestCommentRequiresName(t *testing.T) {
	svc, files, _, _ := newCommentFixture(t)
	files.addFile(&models.File{UploadedBy: 1, IsPublic: true})

	_, err := svc.Post(context.Background(), &PostCommentRequest{
		FileID:    1,
		GuestName: "   ",
		Content:   "hello",
	})
	require.Error(t, err)
	assert.True(t, IsErrorType(err, ErrorTypeValidation))
}

func TestPostGuestComment(t *testing.T) {
	svc, files, _, _ := newCommentFixture(t)
	files.addFile(&models.File{UploadedBy: 1, IsPublic: true})

	comment, err := svc.Post(context.Background(), &PostCommentRequest{
		FileID:    1,
		GuestName: "  visitor  ",
		Content:   "nice document",
	})
	require.NoError(t, err)
	assert.True(t, comment.IsGuest())
	assert.Equal(t, "visitor", comment.DisplayAuthor())
	assert.Equal(t, "nice document", comment.Content)
}

func TestPostAuthenticatedCommentIgnoresGuestName(t *testing.T) {
	svc, files, _, _ := newCommentFixture(t)
	files.addFile(&models.File{UploadedBy: 1, IsPublic: true})

	comment, err := svc.Post(context.Background(), &PostCommentRequest{
		FileID:    1,
		AuthorID:  ptrInt64(7),
		GuestName: "impostor",
		Content:   "signed in",
	})
	require.NoError(t, err)
	assert.False(t, comment.IsGuest())
	require.NotNil(t, comment.AuthorID)
	assert.Equal(t, int64(7), *comment.AuthorID)
	assert.Nil(t, comment.GuestName)
}

func TestPostCommentUnknownDocument(t *testing.T) {
	svc, _, _, _ := newCommentFixture(t)

	_, err := svc.Post(context.Background(), &PostCommentRequest{
		FileID:    42,
		GuestName: "visitor",
		Content:   "hello",
	})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestPostReplyToForeignParentRejected(t *testing.T) {
	svc, files, comments, _ := newCommentFixture(t)
	files.addFile(&models.File{UploadedBy: 1, IsPublic: true})
	files.addFile(&models.File{UploadedBy: 1, IsPublic: true})

	// Parent lives on document 2, reply targets document 1.
	parent := &models.Comment{FileID: 2, GuestName: ptrString("guest"), Content: "parent"}
	require.NoError(t, comments.Create(context.Background(), parent))

	_, err := svc.Post(context.Background(), &PostCommentRequest{
		FileID:    1,
		GuestName: "visitor",
		ParentID:  &parent.ID,
		Content:   "reply",
	})
	require.Error(t, err)
	assert.True(t, IsErrorType(err, ErrorTypeValidation))
}

func TestPostCommentPublishesEvent(t *testing.T) {
	svc, files, _, bus := newCommentFixture(t)
	files.addFile(&models.File{UploadedBy: 1, IsPublic: true})

	eventCh, cancel := bus.Subscribe(1)
	defer cancel()

	_, err := svc.Post(context.Background(), &PostCommentRequest{
		FileID:    1,
		GuestName: "visitor",
		Content:   "hello",
	})
	require.NoError(t, err)

	select {
	case event := <-eventCh:
		assert.Equal(t, events.EventCommentCreated, event.Type)
		assert.Equal(t, int64(1), event.FileID)
	case <-time.After(time.Second):
		t.Fatal("expected a comment.created event")
	}
}

func TestGetThreadNestsReplies(t *testing.T) {
	svc, files, _, _ := newCommentFixture(t)
	files.addFile(&models.File{UploadedBy: 1, IsPublic: true})

	root, err := svc.Post(context.Background(), &PostCommentRequest{
		FileID:    1,
		GuestName: "visitor",
		Content:   "root",
	})
	require.NoError(t, err)

	_, err = svc.Post(context.Background(), &PostCommentRequest{
		FileID:    1,
		GuestName: "another",
		ParentID:  &root.ID,
		Content:   "reply",
	})
	require.NoError(t, err)

	forest, err := svc.GetThread(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	require.Len(t, forest[0].Replies, 1)
	assert.Equal(t, "reply", forest[0].Replies[0].Content)
}

func TestGetThreadUnknownDocument(t *testing.T) {
	svc, _, _, _ := newCommentFixture(t)

	_, err := svc.GetThread(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

package services

import (
	"context"
	"sync"
	"testing"

	"pdfhub/internal/events"
	"pdfhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLikeFixture(t *testing.T) (LikeService, *fakeFileRepo, *fakeLikeRepo) {
	t.Helper()
	logger := zap.NewNop()
	files := newFakeFileRepo()
	likes := newFakeLikeRepo()
	bus := events.NewBus(logger)
	return NewLikeService(likes, files, bus, logger), files, likes
}

func TestToggleLikeRoundTrip(t *testing.T) {
	svc, files, _ := newLikeFixture(t)
	files.addFile(&models.File{UploadedBy: 1, IsPublic: true})

	status, err := svc.Toggle(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, int64(1), status.TotalLikes)

	status, err = svc.Toggle(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, int64(0), status.TotalLikes)
}

func TestToggleCountsAllUsers(t *testing.T) {
	svc, files, _ := newLikeFixture(t)
	files.addFile(&models.File{UploadedBy: 1, IsPublic: true})

	_, err := svc.Toggle(context.Background(), 5, 1)
	require.NoError(t, err)

	status, err := svc.Toggle(context.Background(), 6, 1)
	require.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, int64(2), status.TotalLikes)
}

func TestToggleConcurrentSinglePair(t *testing.T) {
	svc, files, likes := newLikeFixture(t)
	files.addFile(&models.File{UploadedBy: 1, IsPublic: true})

	const callers = 64
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.Toggle(context.Background(), 5, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := likes.CountByFile(context.Background(), 1)
	require.NoError(t, err)
	assert.LessOrEqual(t, count, int64(1), "one (user, document) pair must never hold more than one like row")

	status, err := svc.Status(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.Equal(t, count == 1, status.Liked)
}

func TestToggleRequiresAccount(t *testing.T) {
	svc, files, _ := newLikeFixture(t)
	files.addFile(&models.File{UploadedBy: 1, IsPublic: true})

	_, err := svc.Toggle(context.Background(), 0, 1)
	require.Error(t, err)
	assert.True(t, IsErrorType(err, ErrorTypeUnauthorized))
}

func TestToggleUnknownDocument(t *testing.T) {
	svc, _, _ := newLikeFixture(t)

	_, err := svc.Toggle(context.Background(), 5, 42)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestStatusAnonymousViewer(t *testing.T) {
	svc, files, likes := newLikeFixture(t)
	files.addFile(&models.File{UploadedBy: 1, IsPublic: true})

	_, err := likes.Insert(context.Background(), 5, 1)
	require.NoError(t, err)

	status, err := svc.Status(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, int64(1), status.TotalLikes)
}

func TestStatusSignedInViewer(t *testing.T) {
	svc, files, likes := newLikeFixture(t)
	files.addFile(&models.File{UploadedBy: 1, IsPublic: true})

	_, err := likes.Insert(context.Background(), 5, 1)
	require.NoError(t, err)

	status, err := svc.Status(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, int64(1), status.TotalLikes)
}

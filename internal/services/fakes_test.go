package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"pdfhub/internal/models"
	"pdfhub/internal/repositories"
)

// ===============================
// IN-MEMORY REPOSITORY FAKES
// ===============================

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByGoogleID(_ context.Context, googleID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.GoogleID != nil && *user.GoogleID == googleID {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) LinkGoogleID(_ context.Context, userID int64, googleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[userID]; ok {
		user.GoogleID = &googleID
	}
	return nil
}

type fakeFileRepo struct {
	mu     sync.Mutex
	nextID int64
	files  map[int64]*models.File
	feed   []*models.FeedEntry

	listPublicCalls int
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{nextID: 1, files: make(map[int64]*models.File)}
}

func (r *fakeFileRepo) Create(_ context.Context, file *models.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	file.ID = r.nextID
	r.nextID++
	file.CreatedAt = time.Now()
	file.UpdatedAt = file.CreatedAt
	clone := *file
	r.files[file.ID] = &clone
	return nil
}

func (r *fakeFileRepo) GetByID(_ context.Context, id int64) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if file, ok := r.files[id]; ok {
		clone := *file
		return &clone, nil
	}
	return nil, nil
}

func (r *fakeFileRepo) GetByShareToken(_ context.Context, token string) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, file := range r.files {
		if file.ShareToken != nil && *file.ShareToken == token {
			clone := *file
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeFileRepo) ListByOwner(_ context.Context, ownerID int64, query string, params models.PaginationParams) ([]*models.File, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*models.File
	for _, file := range r.files {
		if file.UploadedBy != ownerID {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(file.OriginalName), strings.ToLower(query)) {
			continue
		}
		clone := *file
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	if params.Offset >= len(matched) {
		return nil, total, nil
	}
	end := params.Offset + params.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[params.Offset:end], total, nil
}

func (r *fakeFileRepo) ListPublic(_ context.Context, _ int64, limit, offset int) ([]*models.FeedEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listPublicCalls++

	var public []*models.FeedEntry
	for _, entry := range r.feed {
		if entry.IsPublic {
			public = append(public, entry)
		}
	}

	if offset >= len(public) {
		return nil, nil
	}
	end := offset + limit
	if end > len(public) {
		end = len(public)
	}
	return public[offset:end], nil
}

func (r *fakeFileRepo) SetShareToken(_ context.Context, fileID int64, token *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if file, ok := r.files[fileID]; ok {
		file.ShareToken = token
	}
	return nil
}

func (r *fakeFileRepo) SetVisibility(_ context.Context, fileID int64, isPublic bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if file, ok := r.files[fileID]; ok {
		file.IsPublic = isPublic
	}
	return nil
}

func (r *fakeFileRepo) IncrementDownloadCount(_ context.Context, fileID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if file, ok := r.files[fileID]; ok {
		file.DownloadCount++
	}
	return nil
}

func (r *fakeFileRepo) Delete(_ context.Context, fileID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.files, fileID)
	return nil
}

func (r *fakeFileRepo) addFile(file *models.File) *models.File {
	r.mu.Lock()
	defer r.mu.Unlock()
	file.ID = r.nextID
	r.nextID++
	clone := *file
	r.files[file.ID] = &clone
	return file
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	nextID   int64
	comments []*models.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{nextID: 1}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	comment.ID = r.nextID
	r.nextID++
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	clone := *comment
	r.comments = append(r.comments, &clone)
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.comments {
		if c.ID == id {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeCommentRepo) ListByFile(_ context.Context, fileID int64) ([]*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Comment
	for _, c := range r.comments {
		if c.FileID == fileID {
			clone := *c
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeCommentRepo) CountByFile(_ context.Context, fileID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, c := range r.comments {
		if c.FileID == fileID {
			count++
		}
	}
	return count, nil
}

type likeKey struct {
	userID int64
	fileID int64
}

type fakeLikeRepo struct {
	mu    sync.Mutex
	likes map[likeKey]struct{}
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[likeKey]struct{})}
}

func (r *fakeLikeRepo) Insert(_ context.Context, userID, fileID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := likeKey{userID, fileID}
	if _, ok := r.likes[key]; ok {
		return false, nil
	}
	r.likes[key] = struct{}{}
	return true, nil
}

func (r *fakeLikeRepo) Delete(_ context.Context, userID, fileID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := likeKey{userID, fileID}
	if _, ok := r.likes[key]; !ok {
		return false, nil
	}
	delete(r.likes, key)
	return true, nil
}

func (r *fakeLikeRepo) Exists(_ context.Context, userID, fileID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.likes[likeKey{userID, fileID}]
	return ok, nil
}

func (r *fakeLikeRepo) CountByFile(_ context.Context, fileID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for key := range r.likes {
		if key.fileID == fileID {
			count++
		}
	}
	return count, nil
}

package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["file"][0]
}

func TestValidatePDFAccepts(t *testing.T) {
	header := fileHeader(t, "report.pdf", []byte("%PDF-1.4\nsome content"))
	assert.NoError(t, ValidatePDF(header, 1<<20))
}

func TestValidatePDFRejectsWrongExtension(t *testing.T) {
	header := fileHeader(t, "report.txt", []byte("%PDF-1.4\nsome content"))
	err := ValidatePDF(header, 1<<20)
	assert.ErrorIs(t, err, ErrInvalidExtension)
}

func TestValidatePDFRejectsWrongMagicBytes(t *testing.T) {
	header := fileHeader(t, "report.pdf", []byte("plain text pretending to be a pdf"))
	err := ValidatePDF(header, 1<<20)
	assert.ErrorIs(t, err, ErrInvalidContentType)
}

func TestValidatePDFRejectsOversize(t *testing.T) {
	header := fileHeader(t, "report.pdf", []byte("%PDF-1.4\nsome content"))
	err := ValidatePDF(header, 4)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	content := []byte("%PDF-1.4\nhello")
	obj, err := store.Save(context.Background(), "doc.pdf", bytes.NewReader(content), int64(len(content)))
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), obj.Size)

	rc, err := store.Open(context.Background(), obj.Ref)
	require.NoError(t, err)
	defer rc.Close()

	read, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, read)

	require.NoError(t, store.Remove(context.Background(), obj.Ref))
	_, err = store.Open(context.Background(), obj.Ref)
	assert.Error(t, err)
}

func TestLocalStorageRejectsDuplicateName(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	content := []byte("%PDF-1.4\nhello")
	_, err = store.Save(context.Background(), "doc.pdf", bytes.NewReader(content), int64(len(content)))
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "doc.pdf", bytes.NewReader(content), int64(len(content)))
	assert.Error(t, err, "O_EXCL must prevent overwriting an existing blob")
}

func TestRemoveMissingBlobIsNotAnError(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	assert.NoError(t, store.Remove(context.Background(), "never-existed.pdf"))
}

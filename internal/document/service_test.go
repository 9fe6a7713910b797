package document

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-claim-system/internal/identity"
	"contract-claim-system/internal/model"
	"contract-claim-system/internal/storage"
	"contract-claim-system/internal/store"
	"contract-claim-system/pkg/errors"
)

var uploader = identity.Identity{ID: "u-1001", Name: "Dr. Sarah Johnson", Role: model.RoleLecturer}

func newService(t *testing.T) (*Service, *storage.LocalStorage) {
	t.Helper()
	blobs, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	svc := NewService(store.NewMemoryStore(), blobs)
	svc.now = func() time.Time { return time.Date(2023, 11, 10, 9, 30, 0, 0, time.UTC) }
	return svc, blobs
}

func pdfUpload(name, body string) model.Upload {
	return model.Upload{Data: []byte(body), OriginalName: name, ContentType: "application/pdf"}
}

func TestStoreAndRetrieve(t *testing.T) {
	svc, blobs := newService(t)

	doc, err := svc.Store(context.Background(), uploader, pdfUpload("timesheet.pdf", "october hours"), "CL-2023-0087")
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "timesheet.pdf", doc.OriginalName)
	assert.Contains(t, doc.StoredName, "timesheet.pdf")
	assert.Equal(t, "uploads/"+doc.StoredName, doc.StoragePath)
	assert.Equal(t, int64(len("october hours")), doc.Size)
	assert.Equal(t, "Dr. Sarah Johnson", doc.UploadedBy)
	assert.Equal(t, "CL-2023-0087", doc.ClaimID)

	ok, err := blobs.Exists(context.Background(), doc.StoragePath)
	require.NoError(t, err)
	assert.True(t, ok)

	content, err := svc.Retrieve(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("october hours"), content.Data)
	assert.Equal(t, "application/pdf", content.ContentType)
	assert.Equal(t, "timesheet.pdf", content.OriginalName)
}

func TestStore_EmptyUpload(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Store(context.Background(), uploader, model.Upload{OriginalName: "empty.pdf"}, "CL-2023-0087")
	assert.ErrorIs(t, err, errors.ErrEmptyUpload)
}

func TestStore_DuplicateNamesGetDistinctStoredNames(t *testing.T) {
	svc, _ := newService(t)

	first, err := svc.Store(context.Background(), uploader, pdfUpload("timesheet.pdf", "first"), "CL-2023-0087")
	require.NoError(t, err)
	second, err := svc.Store(context.Background(), uploader, pdfUpload("timesheet.pdf", "second"), "CL-2023-0087")
	require.NoError(t, err)

	assert.NotEqual(t, first.StoredName, second.StoredName)
	assert.NotEqual(t, first.StoragePath, second.StoragePath)

	// Both blobs stay retrievable under their own names.
	content, err := svc.Retrieve(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), content.Data)

	content, err = svc.Retrieve(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), content.Data)
}

func TestStore_SanitizesHostileNames(t *testing.T) {
	svc, _ := newService(t)

	doc, err := svc.Store(context.Background(), uploader, pdfUpload("../../etc/pass wd.pdf", "body"), "CL-2023-0087")
	require.NoError(t, err)

	assert.NotContains(t, doc.StoredName, "/")
	assert.NotContains(t, doc.StoredName, "..")
	assert.NotContains(t, doc.StoredName, " ")

	content, err := svc.Retrieve(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("body"), content.Data)
}

func TestRetrieve_UnknownDocument(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Retrieve(context.Background(), "missing")
	assert.ErrorIs(t, err, errors.ErrDocumentNotFound)
}

func TestRetrieve_MissingBlob(t *testing.T) {
	svc, blobs := newService(t)

	doc, err := svc.Store(context.Background(), uploader, pdfUpload("timesheet.pdf", "body"), "CL-2023-0087")
	require.NoError(t, err)

	// Remove the backing file out from under the record.
	require.NoError(t, blobs.Delete(context.Background(), doc.StoragePath))

	_, err = svc.Retrieve(context.Background(), doc.ID)
	assert.ErrorIs(t, err, errors.ErrBlobMissing)
}

func TestDelete(t *testing.T) {
	svc, blobs := newService(t)

	doc, err := svc.Store(context.Background(), uploader, pdfUpload("timesheet.pdf", "body"), "CL-2023-0087")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), doc.ID))

	ok, err := blobs.Exists(context.Background(), doc.StoragePath)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Retrieve(context.Background(), doc.ID)
	assert.ErrorIs(t, err, errors.ErrDocumentNotFound)
}

func TestDelete_Unknown(t *testing.T) {
	svc, _ := newService(t)

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, errors.ErrDocumentNotFound)
}

func TestDisplayOrDownload(t *testing.T) {
	svc, _ := newService(t)

	pdf, err := svc.Store(context.Background(), uploader, pdfUpload("timesheet.pdf", "pdf body"), "CL-2023-0087")
	require.NoError(t, err)
	image, err := svc.Store(context.Background(), uploader, model.Upload{
		Data: []byte("png body"), OriginalName: "receipt.png", ContentType: "image/png",
	}, "CL-2023-0087")
	require.NoError(t, err)
	archive, err := svc.Store(context.Background(), uploader, model.Upload{
		Data: []byte("zip body"), OriginalName: "materials.zip", ContentType: "application/zip",
	}, "CL-2023-0087")
	require.NoError(t, err)

	content, inline, err := svc.DisplayOrDownload(context.Background(), pdf.ID)
	require.NoError(t, err)
	assert.True(t, inline)
	assert.Equal(t, []byte("pdf body"), content.Data)

	_, inline, err = svc.DisplayOrDownload(context.Background(), image.ID)
	require.NoError(t, err)
	assert.True(t, inline)

	content, inline, err = svc.DisplayOrDownload(context.Background(), archive.ID)
	require.NoError(t, err)
	assert.False(t, inline)
	assert.Nil(t, content)
}

func TestListByClaim(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Store(context.Background(), uploader, pdfUpload("a.pdf", "a"), "CL-2023-0087")
	require.NoError(t, err)
	_, err = svc.Store(context.Background(), uploader, pdfUpload("b.pdf", "b"), "CL-2023-0088")
	require.NoError(t, err)
	_, err = svc.Store(context.Background(), uploader, pdfUpload("c.pdf", "c"), "CL-2023-0087")
	require.NoError(t, err)

	docs, err := svc.ListByClaim(context.Background(), "CL-2023-0087")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.pdf", docs[0].OriginalName)
	assert.Equal(t, "c.pdf", docs[1].OriginalName)
}

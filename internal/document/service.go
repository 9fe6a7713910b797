package document

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"contract-claim-system/internal/identity"
	"contract-claim-system/internal/logger"
	"contract-claim-system/internal/model"
	"contract-claim-system/internal/storage"
	"contract-claim-system/internal/store"
	"contract-claim-system/pkg/errors"
)

const uploadPrefix = "uploads"

// Content is a retrieved document ready to be written to a response.
type Content struct {
	Data         []byte
	ContentType  string
	OriginalName string
}

// Service manages supporting files: metadata in the document repository,
// bytes in blob storage. Documents are linked to claims only by claim id.
type Service struct {
	docs  store.DocumentRepository
	blobs storage.Storage
	now   func() time.Time
	newID func() string
	log   zerolog.Logger
}

func NewService(docs store.DocumentRepository, blobs storage.Storage) *Service {
	return &Service{
		docs:  docs,
		blobs: blobs,
		now:   time.Now,
		newID: uuid.NewString,
		log:   logger.Get(),
	}
}

// Store writes the upload to blob storage under a collision-resistant name
// and records its metadata. Two uploads with the same original filename
// always get distinct stored names.
func (s *Service) Store(ctx context.Context, actor identity.Identity, upload model.Upload, claimID string) (*model.Document, error) {
	if len(upload.Data) == 0 {
		return nil, errors.ErrEmptyUpload
	}

	storedName := s.newID() + "_" + sanitizeName(upload.OriginalName)
	path := uploadPrefix + "/" + storedName

	if err := s.blobs.Upload(ctx, path, bytes.NewReader(upload.Data)); err != nil {
		return nil, err
	}

	doc := model.Document{
		ID:           s.newID(),
		StoredName:   storedName,
		OriginalName: upload.OriginalName,
		StoragePath:  path,
		Size:         int64(len(upload.Data)),
		ContentType:  upload.ContentType,
		UploadedDate: s.now(),
		UploadedBy:   actor.Name,
		ClaimID:      claimID,
	}

	if err := s.docs.InsertDocument(ctx, doc); err != nil {
		// Keep storage consistent with the record set.
		if delErr := s.blobs.Delete(ctx, path); delErr != nil {
			s.log.Error().Err(delErr).Str("path", path).Msg("Failed to clean up blob after insert failure")
		}
		return nil, err
	}

	s.log.Info().
		Str("document_id", doc.ID).
		Str("file", upload.OriginalName).
		Str("claim_id", claimID).
		Int64("size", doc.Size).
		Msg("Document stored")

	return &doc, nil
}

// Retrieve returns the raw bytes and content type for a document. A missing
// record or a missing backing blob both surface as not-found.
func (s *Service) Retrieve(ctx context.Context, id string) (*Content, error) {
	doc, err := s.docs.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.blobs.Exists(ctx, doc.StoragePath)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.ErrBlobMissing
	}

	reader, err := s.blobs.Download(ctx, doc.StoragePath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	return &Content{
		Data:         data,
		ContentType:  doc.ContentType,
		OriginalName: doc.OriginalName,
	}, nil
}

// Delete removes the blob and then the record.
func (s *Service) Delete(ctx context.Context, id string) error {
	doc, err := s.docs.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.blobs.Exists(ctx, doc.StoragePath)
	if err != nil {
		return err
	}
	if ok {
		if err := s.blobs.Delete(ctx, doc.StoragePath); err != nil {
			return err
		}
	}

	if err := s.docs.DeleteDocument(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("document_id", id).Msg("Document deleted")
	return nil
}

// DisplayOrDownload returns the content and whether it can be rendered
// inline. Images and PDFs display in the browser; anything else should be
// redirected to a download.
func (s *Service) DisplayOrDownload(ctx context.Context, id string) (*Content, bool, error) {
	doc, err := s.docs.GetDocument(ctx, id)
	if err != nil {
		return nil, false, err
	}

	if !isInline(doc.ContentType) {
		return nil, false, nil
	}

	content, err := s.Retrieve(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return content, true, nil
}

func (s *Service) List(ctx context.Context) ([]model.Document, error) {
	return s.docs.ListDocuments(ctx)
}

func (s *Service) ListByClaim(ctx context.Context, claimID string) ([]model.Document, error) {
	return s.docs.ListDocumentsByClaim(ctx, claimID)
}

func isInline(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") || contentType == "application/pdf"
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// sanitizeName strips any path component and replaces characters that are
// not safe in object keys or filenames.
func sanitizeName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	cleaned := unsafeNameChars.ReplaceAllString(base, "_")
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return "file"
	}
	return cleaned
}

package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"contract-claim-system/internal/model"
)

// ListDocuments returns every stored document's metadata.
func (h *Handler) ListDocuments(c *gin.Context) {
	docs, err := h.documents.List(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// UploadDocuments stores one or more files, optionally linked to a claim.
func (h *Handler) UploadDocuments(c *gin.Context) {
	who, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	uploads, ok := h.readUploads(c, "files")
	if !ok {
		return
	}
	if len(uploads) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Select at least one file to upload"})
		return
	}

	claimID := c.PostForm("claim_id")
	stored := make([]model.Document, 0, len(uploads))
	for _, upload := range uploads {
		doc, err := h.documents.Store(c.Request.Context(), who, upload, claimID)
		if err != nil {
			h.renderError(c, err)
			return
		}
		stored = append(stored, *doc)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   fmt.Sprintf("Successfully uploaded %d file(s)", len(stored)),
		"documents": stored,
	})
}

// DownloadDocument streams a document as an attachment under its original
// filename.
func (h *Handler) DownloadDocument(c *gin.Context) {
	content, err := h.documents.Retrieve(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", content.OriginalName))
	c.Data(http.StatusOK, content.ContentType, content.Data)
}

// ViewDocument renders images and PDFs inline; anything else is redirected
// to the download endpoint.
func (h *Handler) ViewDocument(c *gin.Context) {
	id := c.Param("id")
	content, inline, err := h.documents.DisplayOrDownload(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if !inline {
		c.Redirect(http.StatusFound, fmt.Sprintf("/api/v1/documents/%s/download", id))
		return
	}
	c.Data(http.StatusOK, content.ContentType, content.Data)
}

// DeleteDocument removes the document record and its backing blob.
func (h *Handler) DeleteDocument(c *gin.Context) {
	if err := h.documents.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}

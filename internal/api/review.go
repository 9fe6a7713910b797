package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"contract-claim-system/internal/identity"
	"contract-claim-system/internal/model"
)

// PendingClaims lists every claim awaiting review.
func (h *Handler) PendingClaims(c *gin.Context) {
	claims, err := h.reviews.ListPending(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"claims": toViews(claims)})
}

// SearchClaims runs the filtered, paginated review query.
func (h *Handler) SearchClaims(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	result, err := h.reviews.Search(c.Request.Context(), filter)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type reviewRequest struct {
	Comments string `json:"comments"`
}

type bulkReviewRequest struct {
	ClaimIDs []string `json:"claim_ids"`
	Comments string   `json:"comments"`
}

func (h *Handler) ApproveClaim(c *gin.Context) {
	who, ok := h.reviewerIdentity(c)
	if !ok {
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id := c.Param("id")
	claim, err := h.claims.Approve(c.Request.Context(), who, id, req.Comments)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Claim " + id + " has been approved",
		"claim":   model.NewClaimView(*claim),
	})
}

func (h *Handler) RejectClaim(c *gin.Context) {
	who, ok := h.reviewerIdentity(c)
	if !ok {
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id := c.Param("id")
	claim, err := h.claims.Reject(c.Request.Context(), who, id, req.Comments)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Claim " + id + " has been rejected",
		"claim":   model.NewClaimView(*claim),
	})
}

func (h *Handler) BulkApprove(c *gin.Context) {
	h.bulkReview(c, h.claims.BulkApprove, "approved")
}

func (h *Handler) BulkReject(c *gin.Context) {
	h.bulkReview(c, h.claims.BulkReject, "rejected")
}

type bulkReviewFunc func(ctx context.Context, reviewer identity.Identity, ids []string, comments string) (int, error)

func (h *Handler) bulkReview(c *gin.Context, apply bulkReviewFunc, verb string) {
	who, ok := h.reviewerIdentity(c)
	if !ok {
		return
	}

	var req bulkReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if len(req.ClaimIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Select at least one claim"})
		return
	}

	count, err := apply(c.Request.Context(), who, req.ClaimIDs, req.Comments)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Successfully %s %d claim(s)", verb, count),
		"count":   count,
	})
}

// ReviewStatistics returns the dashboard aggregates.
func (h *Handler) ReviewStatistics(c *gin.Context) {
	stats, err := h.reviews.Statistics(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type exportRequest struct {
	Status   string `json:"status"`
	Search   string `json:"search"`
	Lecturer string `json:"lecturer"`
	Format   string `json:"format"`
}

// ExportClaims counts the claims the filter matches and queues an export
// job for the worker to build and upload.
func (h *Handler) ExportClaims(c *gin.Context) {
	who, ok := h.reviewerIdentity(c)
	if !ok {
		return
	}

	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	format := model.ExportFormat(req.Format)
	switch format {
	case model.ExportFormatXLSX, model.ExportFormatCSV:
	case "":
		format = model.ExportFormatXLSX
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown export format"})
		return
	}

	filter := model.Filter{
		Status:     req.Status,
		SearchTerm: req.Search,
		Lecturer:   req.Lecturer,
	}

	count, err := h.reviews.ExportCount(c.Request.Context(), filter)
	if err != nil {
		h.renderError(c, err)
		return
	}

	job := model.ExportJob{
		Filter:      filter,
		Format:      format,
		RequestedBy: who.Name,
		RequestedAt: time.Now(),
	}
	if err := h.producer.EnqueueExportJob(c.Request.Context(), job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue export job")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue export"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": fmt.Sprintf("Export of %d claim(s) queued", count),
		"count":   count,
		"format":  format,
	})
}

func (h *Handler) bindFilter(c *gin.Context) (model.Filter, bool) {
	filter := model.Filter{
		Status:     c.DefaultQuery("status", "all"),
		SearchTerm: c.Query("search"),
		Lecturer:   c.Query("lecturer"),
		Page:       1,
	}

	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page number"})
			return model.Filter{}, false
		}
		filter.Page = page
	}

	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_from must be YYYY-MM-DD"})
			return model.Filter{}, false
		}
		filter.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_to must be YYYY-MM-DD"})
			return model.Filter{}, false
		}
		filter.DateTo = &t
	}

	return filter, true
}

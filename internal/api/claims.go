package api

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"contract-claim-system/internal/model"
)

// ListClaims returns every non-draft claim.
func (h *Handler) ListClaims(c *gin.Context) {
	claims, err := h.claims.ListVisible(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"claims": toViews(claims)})
}

// MyClaims returns the caller's own claims, optionally filtered by status.
func (h *Handler) MyClaims(c *gin.Context) {
	who, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	claims, err := h.claims.ListByLecturer(c.Request.Context(), who.ID, c.Query("status"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"claims": toViews(claims)})
}

func (h *Handler) GetClaim(c *gin.Context) {
	claim, err := h.claims.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewClaimView(*claim))
}

// SubmitClaim creates and submits a claim in one step. The request is
// multipart: claim fields plus optional supporting documents.
func (h *Handler) SubmitClaim(c *gin.Context) {
	who, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	input, ok := h.bindClaimForm(c)
	if !ok {
		return
	}

	uploads, ok := h.readUploads(c, "supporting_documents")
	if !ok {
		return
	}

	claim, err := h.claims.SubmitNew(c.Request.Context(), who, input, uploads)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Claim submitted successfully",
		"claim":   model.NewClaimView(*claim),
	})
}

// SaveDraft creates a new draft or updates an existing one, depending on
// whether the payload carries a claim id.
func (h *Handler) SaveDraft(c *gin.Context) {
	who, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	var input model.ClaimInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	claim, err := h.claims.SaveDraft(c.Request.Context(), who, input)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Claim saved as draft",
		"claim":   model.NewClaimView(*claim),
	})
}

// UpdateClaim edits the mutable fields of an existing draft.
func (h *Handler) UpdateClaim(c *gin.Context) {
	who, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	var input model.ClaimInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id := c.Param("id")
	if input.ID != "" && input.ID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Claim id in body does not match URL"})
		return
	}

	claim, err := h.claims.UpdateDraft(c.Request.Context(), who, id, input)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Claim updated successfully",
		"claim":   model.NewClaimView(*claim),
	})
}

// SubmitDraft moves an existing draft into the review queue.
func (h *Handler) SubmitDraft(c *gin.Context) {
	who, ok := h.currentIdentity(c)
	if !ok {
		return
	}

	claim, err := h.claims.SubmitDraft(c.Request.Context(), who, c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Claim submitted successfully",
		"claim":   model.NewClaimView(*claim),
	})
}

func (h *Handler) bindClaimForm(c *gin.Context) (model.ClaimInput, bool) {
	hours, err := decimal.NewFromString(c.PostForm("hours_worked"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hours_worked must be a number"})
		return model.ClaimInput{}, false
	}
	rate, err := decimal.NewFromString(c.PostForm("hourly_rate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hourly_rate must be a number"})
		return model.ClaimInput{}, false
	}

	return model.ClaimInput{
		ClaimMonth:  c.PostForm("claim_month"),
		HoursWorked: hours,
		HourlyRate:  rate,
		Description: c.PostForm("description"),
	}, true
}

func (h *Handler) readUploads(c *gin.Context, field string) ([]model.Upload, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return nil, false
	}

	files := form.File[field]
	uploads := make([]model.Upload, 0, len(files))
	for _, file := range files {
		upload, err := readUpload(file)
		if err != nil {
			h.log.Error().Err(err).Str("file", file.Filename).Msg("Failed to read upload")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
			return nil, false
		}
		uploads = append(uploads, upload)
	}
	return uploads, true
}

func readUpload(file *multipart.FileHeader) (model.Upload, error) {
	f, err := file.Open()
	if err != nil {
		return model.Upload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return model.Upload{}, err
	}

	return model.Upload{
		Data:         data,
		OriginalName: file.Filename,
		ContentType:  file.Header.Get("Content-Type"),
	}, nil
}

func toViews(claims []model.Claim) []model.ClaimView {
	views := make([]model.ClaimView, 0, len(claims))
	for _, c := range claims {
		views = append(views, model.NewClaimView(c))
	}
	return views
}

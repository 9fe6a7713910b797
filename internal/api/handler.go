package api

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"contract-claim-system/internal/claim"
	"contract-claim-system/internal/config"
	"contract-claim-system/internal/document"
	"contract-claim-system/internal/identity"
	"contract-claim-system/internal/logger"
	"contract-claim-system/internal/queue"
	"contract-claim-system/internal/review"
	"contract-claim-system/pkg/errors"
)

type Handler struct {
	claims    *claim.Service
	reviews   *review.Service
	documents *document.Service
	producer  *queue.Producer
	who       identity.Provider
	cfg       *config.Config
	log       zerolog.Logger
}

func NewHandler(
	claims *claim.Service,
	reviews *review.Service,
	documents *document.Service,
	producer *queue.Producer,
	who identity.Provider,
	cfg *config.Config,
) *Handler {
	return &Handler{
		claims:    claims,
		reviews:   reviews,
		documents: documents,
		producer:  producer,
		who:       who,
		cfg:       cfg,
		log:       logger.Get(),
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.cfg.App.Name,
		"version": h.cfg.App.Version,
	})
}

// renderError maps service errors onto HTTP statuses: validation problems
// are 400, missing records 404, illegal lifecycle transitions 409.
func (h *Handler) renderError(c *gin.Context, err error) {
	var vErr errors.ValidationError
	var tErr errors.TransitionError

	switch {
	case stderrors.As(err, &vErr):
		violations := make([]gin.H, len(vErr.Violations))
		for i, v := range vErr.Violations {
			violations[i] = gin.H{"field": v.Field, "message": v.Message}
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Validation failed",
			"violations": violations,
		})
	case stderrors.As(err, &tErr):
		c.JSON(http.StatusConflict, gin.H{"error": tErr.Error()})
	case stderrors.Is(err, errors.ErrClaimNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Claim not found"})
	case stderrors.Is(err, errors.ErrDocumentNotFound), stderrors.Is(err, errors.ErrBlobMissing):
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
	case stderrors.Is(err, errors.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case stderrors.Is(err, errors.ErrEmptyUpload):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Uploaded file is empty"})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (h *Handler) currentIdentity(c *gin.Context) (identity.Identity, bool) {
	who, err := h.who.Current(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to resolve caller identity")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return identity.Identity{}, false
	}
	return who, true
}

func (h *Handler) reviewerIdentity(c *gin.Context) (identity.Identity, bool) {
	who, err := h.who.Reviewer(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to resolve reviewer identity")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return identity.Identity{}, false
	}
	return who, true
}

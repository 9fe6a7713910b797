package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	// Health check
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		claims := v1.Group("/claims")
		{
			claims.GET("", handler.ListClaims)
			claims.GET("/my", handler.MyClaims)
			claims.GET("/:id", handler.GetClaim)
			claims.POST("", handler.SubmitClaim)
			claims.POST("/draft", handler.SaveDraft)
			claims.PUT("/:id", handler.UpdateClaim)
			claims.POST("/:id/submit", handler.SubmitDraft)
		}

		review := v1.Group("/review")
		{
			review.GET("/pending", handler.PendingClaims)
			review.GET("/claims", handler.SearchClaims)
			review.POST("/claims/approve", handler.BulkApprove)
			review.POST("/claims/reject", handler.BulkReject)
			review.POST("/claims/:id/approve", handler.ApproveClaim)
			review.POST("/claims/:id/reject", handler.RejectClaim)
			review.GET("/statistics", handler.ReviewStatistics)
			review.POST("/export", handler.ExportClaims)
		}

		documents := v1.Group("/documents")
		{
			documents.GET("", handler.ListDocuments)
			documents.POST("", handler.UploadDocuments)
			documents.GET("/:id/download", handler.DownloadDocument)
			documents.GET("/:id/view", handler.ViewDocument)
			documents.DELETE("/:id", handler.DeleteDocument)
		}
	}
}

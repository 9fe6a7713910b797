package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Filter narrows the claim population for review screens and exports.
// Status "all" (or empty) means no status restriction; date bounds are
// inclusive on the submission timestamp.
type Filter struct {
	Status     string     `json:"status"`
	SearchTerm string     `json:"search"`
	Lecturer   string     `json:"lecturer"`
	DateFrom   *time.Time `json:"date_from,omitempty"`
	DateTo     *time.Time `json:"date_to,omitempty"`
	Page       int        `json:"page"`
}

// SearchResult is one page of filtered claims plus the dashboard counters.
// The counters are computed over the whole claim population, not the
// filtered subset, matching the review dashboard's behavior.
type SearchResult struct {
	Claims      []ClaimView `json:"claims"`
	CurrentPage int         `json:"current_page"`
	PageSize    int         `json:"page_size"`
	TotalPages  int         `json:"total_pages"`
	Matched     int         `json:"matched"`

	TotalClaims         int             `json:"total_claims"`
	PendingClaims       int             `json:"pending_claims"`
	ApprovedClaims      int             `json:"approved_claims"`
	RejectedClaims      int             `json:"rejected_claims"`
	TotalApprovedAmount decimal.Decimal `json:"total_approved_amount"`

	AvailableLecturers []string `json:"available_lecturers"`
	AvailableMonths    []string `json:"available_months"`
}

type MonthlyTrend struct {
	Month          string          `json:"month"`
	SubmittedCount int             `json:"submitted_count"`
	ApprovedCount  int             `json:"approved_count"`
	RejectedCount  int             `json:"rejected_count"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

type LecturerSummary struct {
	LecturerName   string          `json:"lecturer_name"`
	TotalClaims    int             `json:"total_claims"`
	ApprovedClaims int             `json:"approved_claims"`
	RejectedClaims int             `json:"rejected_claims"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

func (s LecturerSummary) ApprovalRate() decimal.Decimal {
	if s.TotalClaims == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.ApprovedClaims)).
		Div(decimal.NewFromInt(int64(s.TotalClaims))).
		Mul(decimal.NewFromInt(100))
}

type Statistics struct {
	TotalClaims          int               `json:"total_claims"`
	ClaimsThisMonth      int               `json:"claims_this_month"`
	PendingReview        int               `json:"pending_review"`
	TotalAmountThisMonth decimal.Decimal   `json:"total_amount_this_month"`
	ClaimsProcessedToday int               `json:"claims_processed_today"`
	MostActiveReviewer   string            `json:"most_active_reviewer,omitempty"`
	ApprovalRate         decimal.Decimal   `json:"approval_rate"`
	RejectionRate        decimal.Decimal   `json:"rejection_rate"`
	MonthlyTrends        []MonthlyTrend    `json:"monthly_trends"`
	TopLecturers         []LecturerSummary `json:"top_lecturers"`
}

// ExportFormat selects the workbook type produced by the export worker.
type ExportFormat string

const (
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatCSV  ExportFormat = "csv"
)

// ExportJob is the payload queued for the export worker.
type ExportJob struct {
	Filter      Filter       `json:"filter"`
	Format      ExportFormat `json:"format"`
	RequestedBy string       `json:"requested_by"`
	RequestedAt time.Time    `json:"requested_at"`
}

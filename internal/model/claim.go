package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ClaimStatus string

const (
	ClaimStatusDraft     ClaimStatus = "DRAFT"
	ClaimStatusSubmitted ClaimStatus = "SUBMITTED"
	ClaimStatusApproved  ClaimStatus = "APPROVED"
	ClaimStatusRejected  ClaimStatus = "REJECTED"
)

// ParseClaimStatus maps the lowercase filter values used by the API
// ("draft", "submitted", ...) onto the status enum.
func ParseClaimStatus(s string) (ClaimStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(ClaimStatusDraft):
		return ClaimStatusDraft, true
	case string(ClaimStatusSubmitted):
		return ClaimStatusSubmitted, true
	case string(ClaimStatusApproved):
		return ClaimStatusApproved, true
	case string(ClaimStatusRejected):
		return ClaimStatusRejected, true
	}
	return "", false
}

// Claim is a lecturer's monthly request for payment for worked hours.
// The identifier is immutable once assigned; the total amount is always
// derived from hours and rate, never stored.
type Claim struct {
	ID             string          `json:"id"`
	ClaimMonth     string          `json:"claim_month"`
	HoursWorked    decimal.Decimal `json:"hours_worked"`
	HourlyRate     decimal.Decimal `json:"hourly_rate"`
	Description    string          `json:"description,omitempty"`
	LecturerID     string          `json:"lecturer_id"`
	LecturerName   string          `json:"lecturer_name"`
	SubmittedDate  time.Time       `json:"submitted_date"`
	Status         ClaimStatus     `json:"status"`
	Documents      []Document      `json:"documents,omitempty"`
	ReviewComments string          `json:"review_comments,omitempty"`
	ReviewedBy     string          `json:"reviewed_by,omitempty"`
	ReviewedDate   *time.Time      `json:"reviewed_date,omitempty"`
}

func (c *Claim) TotalAmount() decimal.Decimal {
	return c.HoursWorked.Mul(c.HourlyRate)
}

// ClaimView is the wire representation of a claim, with the derived total.
type ClaimView struct {
	Claim
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func NewClaimView(c Claim) ClaimView {
	return ClaimView{Claim: c, TotalAmount: c.TotalAmount()}
}

// ClaimInput carries the mutable fields of a claim as submitted by a
// lecturer. ID is empty for new claims.
type ClaimInput struct {
	ID          string          `json:"id,omitempty"`
	ClaimMonth  string          `json:"claim_month"`
	HoursWorked decimal.Decimal `json:"hours_worked"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	Description string          `json:"description"`
}

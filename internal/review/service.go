package review

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"contract-claim-system/internal/logger"
	"contract-claim-system/internal/model"
	"contract-claim-system/internal/store"
	"contract-claim-system/pkg/errors"
)

const filterStatusAll = "all"

// Service answers the read side of the review workflow: pending queues,
// filtered searches with pagination, dropdown populations, dashboard
// statistics and export scoping. It never mutates a claim.
type Service struct {
	claims   store.ClaimRepository
	pageSize int
	now      func() time.Time
	log      zerolog.Logger
}

func NewService(claims store.ClaimRepository, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Service{
		claims:   claims,
		pageSize: pageSize,
		now:      time.Now,
		log:      logger.Get(),
	}
}

// ListPending returns every claim awaiting review.
func (s *Service) ListPending(ctx context.Context) ([]model.Claim, error) {
	claims, err := s.claims.ListClaims(ctx)
	if err != nil {
		return nil, err
	}

	var pending []model.Claim
	for _, c := range claims {
		if c.Status == model.ClaimStatusSubmitted {
			pending = append(pending, c)
		}
	}
	return pending, nil
}

// Search applies the filter, pages the matches and attaches the dashboard
// counters. The counters cover the whole claim population regardless of the
// active filter; only the claim list and page math follow the filter. The
// requested page is clamped to [1, totalPages].
func (s *Service) Search(ctx context.Context, filter model.Filter) (*model.SearchResult, error) {
	status, err := parseStatusFilter(filter.Status)
	if err != nil {
		return nil, err
	}

	claims, err := s.claims.ListClaims(ctx)
	if err != nil {
		return nil, err
	}

	var matched []model.Claim
	for _, c := range claims {
		if matchesFilter(c, status, filter) {
			matched = append(matched, c)
		}
	}

	totalPages := (len(matched) + s.pageSize - 1) / s.pageSize
	page := filter.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if totalPages == 0 {
		page = 1
	}

	start := (page - 1) * s.pageSize
	end := start + s.pageSize
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	pageViews := make([]model.ClaimView, 0, end-start)
	for _, c := range matched[start:end] {
		pageViews = append(pageViews, model.NewClaimView(c))
	}

	result := &model.SearchResult{
		Claims:              pageViews,
		CurrentPage:         page,
		PageSize:            s.pageSize,
		TotalPages:          totalPages,
		Matched:             len(matched),
		TotalApprovedAmount: decimal.Zero,
		AvailableLecturers:  distinctLecturers(claims),
		AvailableMonths:     distinctMonths(claims),
	}

	// Dashboard counters over the unfiltered population.
	for _, c := range claims {
		result.TotalClaims++
		switch c.Status {
		case model.ClaimStatusSubmitted:
			result.PendingClaims++
		case model.ClaimStatusApproved:
			result.ApprovedClaims++
			result.TotalApprovedAmount = result.TotalApprovedAmount.Add(c.TotalAmount())
		case model.ClaimStatusRejected:
			result.RejectedClaims++
		}
	}

	return result, nil
}

// DistinctLecturers lists every lecturer name appearing in the claim
// population, in first-seen order.
func (s *Service) DistinctLecturers(ctx context.Context) ([]string, error) {
	claims, err := s.claims.ListClaims(ctx)
	if err != nil {
		return nil, err
	}
	return distinctLecturers(claims), nil
}

// DistinctMonths lists every claim month, most recent first.
func (s *Service) DistinctMonths(ctx context.Context) ([]string, error) {
	claims, err := s.claims.ListClaims(ctx)
	if err != nil {
		return nil, err
	}
	return distinctMonths(claims), nil
}

// ExportCount applies the export-scope predicates (status, id/lecturer
// search, lecturer) and returns how many claims an export would cover.
func (s *Service) ExportCount(ctx context.Context, filter model.Filter) (int, error) {
	claims, err := s.matchForExport(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(claims), nil
}

// SnapshotForExport returns the claims an export job should include.
func (s *Service) SnapshotForExport(ctx context.Context, filter model.Filter) ([]model.Claim, error) {
	return s.matchForExport(ctx, filter)
}

func (s *Service) matchForExport(ctx context.Context, filter model.Filter) ([]model.Claim, error) {
	status, err := parseStatusFilter(filter.Status)
	if err != nil {
		return nil, err
	}

	claims, err := s.claims.ListClaims(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(filter.SearchTerm))

	var matched []model.Claim
	for _, c := range claims {
		if status != "" && c.Status != status {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(c.ID), term) &&
			!strings.Contains(strings.ToLower(c.LecturerName), term) {
			continue
		}
		if filter.Lecturer != "" && c.LecturerName != filter.Lecturer {
			continue
		}
		matched = append(matched, c)
	}
	return matched, nil
}

// Statistics aggregates the dashboard figures over the full population.
func (s *Service) Statistics(ctx context.Context) (*model.Statistics, error) {
	claims, err := s.claims.ListClaims(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := now.Format("2006-01-02")
	stats := &model.Statistics{
		TotalClaims:          len(claims),
		TotalAmountThisMonth: decimal.Zero,
		ApprovalRate:         decimal.Zero,
		RejectionRate:        decimal.Zero,
	}

	reviewerCounts := make(map[string]int)
	approved, rejected := 0, 0

	for _, c := range claims {
		if c.SubmittedDate.Year() == now.Year() && c.SubmittedDate.Month() == now.Month() {
			stats.ClaimsThisMonth++
			stats.TotalAmountThisMonth = stats.TotalAmountThisMonth.Add(c.TotalAmount())
		}
		if c.Status == model.ClaimStatusSubmitted {
			stats.PendingReview++
		}
		if c.ReviewedDate != nil && c.ReviewedDate.Format("2006-01-02") == today {
			stats.ClaimsProcessedToday++
		}
		if c.ReviewedBy != "" {
			reviewerCounts[c.ReviewedBy]++
		}
		switch c.Status {
		case model.ClaimStatusApproved:
			approved++
		case model.ClaimStatusRejected:
			rejected++
		}
	}

	best := 0
	for reviewer, n := range reviewerCounts {
		if n > best || (n == best && reviewer < stats.MostActiveReviewer) {
			best = n
			stats.MostActiveReviewer = reviewer
		}
	}

	if reviewed := approved + rejected; reviewed > 0 {
		hundred := decimal.NewFromInt(100)
		total := decimal.NewFromInt(int64(reviewed))
		stats.ApprovalRate = decimal.NewFromInt(int64(approved)).Div(total).Mul(hundred)
		stats.RejectionRate = decimal.NewFromInt(int64(rejected)).Div(total).Mul(hundred)
	}

	stats.MonthlyTrends = monthlyTrends(claims)
	stats.TopLecturers = topLecturers(claims, 5)

	return stats, nil
}

func matchesFilter(c model.Claim, status model.ClaimStatus, filter model.Filter) bool {
	if status != "" && c.Status != status {
		return false
	}

	if term := strings.ToLower(strings.TrimSpace(filter.SearchTerm)); term != "" {
		if !strings.Contains(strings.ToLower(c.ID), term) &&
			!strings.Contains(strings.ToLower(c.LecturerName), term) &&
			!strings.Contains(strings.ToLower(c.Description), term) &&
			!strings.Contains(strings.ToLower(c.ClaimMonth), term) {
			return false
		}
	}

	if filter.Lecturer != "" && c.LecturerName != filter.Lecturer {
		return false
	}

	if filter.DateFrom != nil && c.SubmittedDate.Before(*filter.DateFrom) {
		return false
	}
	if filter.DateTo != nil && c.SubmittedDate.After(*filter.DateTo) {
		return false
	}

	return true
}

// parseStatusFilter turns the API's status value into a claim status; "all"
// and empty mean no restriction.
func parseStatusFilter(value string) (model.ClaimStatus, error) {
	if value == "" || strings.EqualFold(value, filterStatusAll) {
		return "", nil
	}
	status, ok := model.ParseClaimStatus(value)
	if !ok {
		return "", errors.NewValidationError(errors.FieldViolation{
			Field:   "status",
			Value:   value,
			Message: "unknown claim status",
		})
	}
	return status, nil
}

func distinctLecturers(claims []model.Claim) []string {
	seen := make(map[string]struct{})
	var lecturers []string
	for _, c := range claims {
		if _, ok := seen[c.LecturerName]; ok {
			continue
		}
		seen[c.LecturerName] = struct{}{}
		lecturers = append(lecturers, c.LecturerName)
	}
	return lecturers
}

func distinctMonths(claims []model.Claim) []string {
	seen := make(map[string]struct{})
	var months []string
	for _, c := range claims {
		if _, ok := seen[c.ClaimMonth]; ok {
			continue
		}
		seen[c.ClaimMonth] = struct{}{}
		months = append(months, c.ClaimMonth)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

func monthlyTrends(claims []model.Claim) []model.MonthlyTrend {
	byMonth := make(map[string]*model.MonthlyTrend)
	for _, c := range claims {
		trend, ok := byMonth[c.ClaimMonth]
		if !ok {
			trend = &model.MonthlyTrend{Month: c.ClaimMonth, TotalAmount: decimal.Zero}
			byMonth[c.ClaimMonth] = trend
		}
		switch c.Status {
		case model.ClaimStatusSubmitted:
			trend.SubmittedCount++
		case model.ClaimStatusApproved:
			trend.ApprovedCount++
		case model.ClaimStatusRejected:
			trend.RejectedCount++
		}
		trend.TotalAmount = trend.TotalAmount.Add(c.TotalAmount())
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	trends := make([]model.MonthlyTrend, 0, len(months))
	for _, m := range months {
		trends = append(trends, *byMonth[m])
	}
	return trends
}

// topLecturers ranks lecturers by the summed amount of their approved and
// pending claims, highest first.
func topLecturers(claims []model.Claim, limit int) []model.LecturerSummary {
	byName := make(map[string]*model.LecturerSummary)
	ranked := make(map[string]decimal.Decimal)
	var order []string

	for _, c := range claims {
		summary, ok := byName[c.LecturerName]
		if !ok {
			summary = &model.LecturerSummary{LecturerName: c.LecturerName, TotalAmount: decimal.Zero}
			byName[c.LecturerName] = summary
			ranked[c.LecturerName] = decimal.Zero
			order = append(order, c.LecturerName)
		}
		summary.TotalClaims++
		switch c.Status {
		case model.ClaimStatusApproved:
			summary.ApprovedClaims++
		case model.ClaimStatusRejected:
			summary.RejectedClaims++
		}
		if c.Status == model.ClaimStatusApproved || c.Status == model.ClaimStatusSubmitted {
			amount := ranked[c.LecturerName].Add(c.TotalAmount())
			ranked[c.LecturerName] = amount
			summary.TotalAmount = amount
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return ranked[order[i]].GreaterThan(ranked[order[j]])
	})

	if len(order) > limit {
		order = order[:limit]
	}

	summaries := make([]model.LecturerSummary, 0, len(order))
	for _, name := range order {
		summaries = append(summaries, *byName[name])
	}
	return summaries
}

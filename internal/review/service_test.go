package review

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-claim-system/internal/model"
	"contract-claim-system/internal/store"
	"contract-claim-system/pkg/errors"
)

func seededService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(store.NewSeededStore(), 10)
	svc.now = func() time.Time { return time.Date(2023, 11, 3, 14, 0, 0, 0, time.UTC) }
	return svc
}

func claimIDs(views []model.ClaimView) []string {
	ids := make([]string, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	return ids
}

func TestListPending(t *testing.T) {
	svc := seededService(t)

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 3)
	for _, c := range pending {
		assert.Equal(t, model.ClaimStatusSubmitted, c.Status)
	}
}

func TestSearch_StatusFilter(t *testing.T) {
	svc := seededService(t)

	result, err := svc.Search(context.Background(), model.Filter{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, []string{"CL-2023-0087"}, claimIDs(result.Claims))
	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, 1, result.TotalPages)
}

func TestSearch_StatusAllMeansNoFilter(t *testing.T) {
	svc := seededService(t)

	for _, status := range []string{"", "all", "ALL"} {
		result, err := svc.Search(context.Background(), model.Filter{Status: status})
		require.NoError(t, err)
		assert.Equal(t, 5, result.Matched, "status=%q", status)
	}
}

func TestSearch_UnknownStatus(t *testing.T) {
	svc := seededService(t)

	_, err := svc.Search(context.Background(), model.Filter{Status: "archived"})
	var vErr errors.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestSearch_TermMatchesAcrossFields(t *testing.T) {
	svc := seededService(t)

	cases := []struct {
		term string
		want []string
	}{
		{"thesis", []string{"CL-2023-0088"}},                 // description
		{"SARAH", []string{"CL-2023-0087", "CL-2023-0091"}},  // lecturer, case-insensitive
		{"0090", []string{"CL-2023-0090"}},                   // claim id
		{"2023-11", []string{"CL-2023-0091"}},                // claim month
		{"quantum", []string{}},                              // no match, empty page
	}
	for _, tc := range cases {
		result, err := svc.Search(context.Background(), model.Filter{SearchTerm: tc.term})
		require.NoError(t, err)
		assert.Equal(t, tc.want, claimIDs(result.Claims), "term=%q", tc.term)
	}
}

func TestSearch_LecturerFilter(t *testing.T) {
	svc := seededService(t)

	result, err := svc.Search(context.Background(), model.Filter{Lecturer: "Dr. Sarah Johnson"})
	require.NoError(t, err)
	assert.Equal(t, []string{"CL-2023-0087", "CL-2023-0091"}, claimIDs(result.Claims))
}

func TestSearch_DateRangeInclusive(t *testing.T) {
	svc := seededService(t)

	from := time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC)

	result, err := svc.Search(context.Background(), model.Filter{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	// Submitted 2023-11-01 and 2023-11-02; both bounds are inclusive.
	assert.Equal(t, []string{"CL-2023-0089", "CL-2023-0090"}, claimIDs(result.Claims))
}

func TestSearch_AggregatesIgnoreFilter(t *testing.T) {
	svc := seededService(t)

	// A filter matching a single claim must not shrink the dashboard
	// counters, which always describe the whole population.
	result, err := svc.Search(context.Background(), model.Filter{Status: "approved"})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, 5, result.TotalClaims)
	assert.Equal(t, 3, result.PendingClaims)
	assert.Equal(t, 1, result.ApprovedClaims)
	assert.Equal(t, 1, result.RejectedClaims)
	assert.Equal(t, "6731.25", result.TotalApprovedAmount.String())

	assert.Equal(t, []string{
		"Dr. Sarah Johnson", "Prof. Michael Brown", "Dr. Emily Chen", "Dr. Robert Wilson",
	}, result.AvailableLecturers)
	assert.Equal(t, []string{"2023-11", "2023-10"}, result.AvailableMonths)
}

func TestSearch_Pagination(t *testing.T) {
	repo := store.NewMemoryStore()
	for i := 0; i < 25; i++ {
		err := repo.InsertClaim(context.Background(), model.Claim{
			ID:            fmt.Sprintf("CL-2023-%04d", i+1),
			ClaimMonth:    "2023-11",
			HoursWorked:   decimal.NewFromInt(10),
			HourlyRate:    decimal.NewFromInt(100),
			LecturerID:    "u-1001",
			LecturerName:  "Dr. Sarah Johnson",
			Status:        model.ClaimStatusSubmitted,
			SubmittedDate: time.Date(2023, 11, 10, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}
	svc := NewService(repo, 10)

	cases := []struct {
		page     int
		wantPage int
		wantLen  int
	}{
		{0, 1, 10},
		{1, 1, 10},
		{2, 2, 10},
		{3, 3, 5},
		{7, 3, 5}, // past the end clamps to the last page
	}
	for _, tc := range cases {
		result, err := svc.Search(context.Background(), model.Filter{Page: tc.page})
		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalPages, "page=%d", tc.page)
		assert.Equal(t, tc.wantPage, result.CurrentPage, "page=%d", tc.page)
		assert.Len(t, result.Claims, tc.wantLen, "page=%d", tc.page)
	}
}

func TestSearch_EmptyMatch(t *testing.T) {
	svc := seededService(t)

	result, err := svc.Search(context.Background(), model.Filter{SearchTerm: "no such claim", Page: 4})
	require.NoError(t, err)
	assert.Empty(t, result.Claims)
	assert.Zero(t, result.TotalPages)
	assert.Equal(t, 1, result.CurrentPage)
}

func TestDistinctMonths_MostRecentFirst(t *testing.T) {
	svc := seededService(t)

	months, err := svc.DistinctMonths(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-11", "2023-10"}, months)
}

func TestExportCount_ScopeExcludesDescription(t *testing.T) {
	svc := seededService(t)

	// Export search only covers claim id and lecturer name, so a term that
	// only appears in a description matches nothing.
	count, err := svc.ExportCount(context.Background(), model.Filter{SearchTerm: "thesis"})
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = svc.ExportCount(context.Background(), model.Filter{SearchTerm: "sarah"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = svc.ExportCount(context.Background(), model.Filter{Status: "submitted"})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSnapshotForExport(t *testing.T) {
	svc := seededService(t)

	claims, err := svc.SnapshotForExport(context.Background(), model.Filter{Lecturer: "Dr. Robert Wilson"})
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, "CL-2023-0090", claims[0].ID)
}

func TestStatistics(t *testing.T) {
	svc := seededService(t) // now is 2023-11-03

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalClaims)
	// Submitted in November 2023: CL-2023-0089, -0090 and -0091.
	assert.Equal(t, 3, stats.ClaimsThisMonth)
	assert.Equal(t, "20941", stats.TotalAmountThisMonth.String())
	assert.Equal(t, 3, stats.PendingReview)
	// CL-2023-0089 was reviewed on 2023-11-03.
	assert.Equal(t, 1, stats.ClaimsProcessedToday)
	assert.Equal(t, "Academic Manager", stats.MostActiveReviewer)
	assert.True(t, stats.ApprovalRate.Equal(decimal.NewFromInt(50)), "approval rate %s", stats.ApprovalRate)
	assert.True(t, stats.RejectionRate.Equal(decimal.NewFromInt(50)), "rejection rate %s", stats.RejectionRate)
}

func TestStatistics_MonthlyTrends(t *testing.T) {
	svc := seededService(t)

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	require.Len(t, stats.MonthlyTrends, 2)

	october := stats.MonthlyTrends[0]
	assert.Equal(t, "2023-10", october.Month)
	assert.Equal(t, 2, october.SubmittedCount)
	assert.Equal(t, 1, october.ApprovedCount)
	assert.Equal(t, 1, october.RejectedCount)
	assert.Equal(t, "28482", october.TotalAmount.String())

	november := stats.MonthlyTrends[1]
	assert.Equal(t, "2023-11", november.Month)
	assert.Equal(t, 1, november.SubmittedCount)
	assert.Equal(t, "7040", november.TotalAmount.String())
}

func TestStatistics_TopLecturers(t *testing.T) {
	svc := seededService(t)

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	require.Len(t, stats.TopLecturers, 4)

	names := make([]string, len(stats.TopLecturers))
	for i, l := range stats.TopLecturers {
		names[i] = l.LecturerName
	}
	// Ranked by approved+pending amount: Sarah 13771.25, Robert 8786,
	// Michael 7849.75, Emily 0 (her only claim was rejected).
	assert.Equal(t, []string{
		"Dr. Sarah Johnson", "Dr. Robert Wilson", "Prof. Michael Brown", "Dr. Emily Chen",
	}, names)

	sarah := stats.TopLecturers[0]
	assert.Equal(t, 2, sarah.TotalClaims)
	assert.Equal(t, 1, sarah.ApprovedClaims)
	assert.Equal(t, "13771.25", sarah.TotalAmount.String())
	assert.True(t, sarah.ApprovalRate().Equal(decimal.NewFromInt(50)))

	emily := stats.TopLecturers[3]
	assert.Equal(t, 1, emily.RejectedClaims)
	assert.True(t, emily.TotalAmount.IsZero())
}

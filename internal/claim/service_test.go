package claim

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-claim-system/internal/identity"
	"contract-claim-system/internal/model"
	"contract-claim-system/internal/store"
	"contract-claim-system/pkg/errors"
)

var (
	lecturer = identity.Identity{ID: "u-1001", Name: "Dr. Sarah Johnson", Role: model.RoleLecturer}
	manager  = identity.Identity{Name: "Academic Manager", Role: model.RoleAcademicManager}

	fixedNow = time.Date(2023, 11, 10, 9, 30, 0, 0, time.UTC)
)

// fakeStorer records stored uploads without touching blob storage.
type fakeStorer struct {
	stored []model.Upload
	err    error
}

func (f *fakeStorer) Store(ctx context.Context, actor identity.Identity, upload model.Upload, claimID string) (*model.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.stored = append(f.stored, upload)
	return &model.Document{
		ID:           "doc-" + upload.OriginalName,
		OriginalName: upload.OriginalName,
		ClaimID:      claimID,
		UploadedBy:   actor.Name,
	}, nil
}

func newService(t *testing.T) (*Service, *store.MemoryStore, *fakeStorer) {
	t.Helper()
	repo := store.NewMemoryStore()
	storer := &fakeStorer{}
	svc := NewService(repo, repo, storer)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, storer
}

func validInput() model.ClaimInput {
	return model.ClaimInput{
		ClaimMonth:  "2023-11",
		HoursWorked: decimal.NewFromInt(75),
		HourlyRate:  decimal.RequireFromString("89.75"),
		Description: "Monthly teaching services",
	}
}

func TestCreateDraft(t *testing.T) {
	svc, _, _ := newService(t)

	claim, err := svc.CreateDraft(context.Background(), lecturer, validInput())
	require.NoError(t, err)

	assert.Equal(t, "CL-2023-0001", claim.ID)
	assert.Equal(t, model.ClaimStatusDraft, claim.Status)
	assert.Equal(t, "u-1001", claim.LecturerID)
	assert.Equal(t, "Dr. Sarah Johnson", claim.LecturerName)
	assert.True(t, claim.SubmittedDate.IsZero())
	assert.Equal(t, "6731.25", claim.TotalAmount().String())
}

func TestCreateDraft_ReportsEveryViolation(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.CreateDraft(context.Background(), lecturer, model.ClaimInput{
		ClaimMonth:  "November 2023",
		HoursWorked: decimal.NewFromInt(800),
		HourlyRate:  decimal.Zero,
	})
	require.Error(t, err)

	var vErr errors.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Violations, 3)

	fields := make([]string, len(vErr.Violations))
	for i, v := range vErr.Violations {
		fields[i] = v.Field
	}
	assert.ElementsMatch(t, []string{"claim_month", "hours_worked", "hourly_rate"}, fields)
}

func TestCreateDraft_HoursBounds(t *testing.T) {
	svc, _, _ := newService(t)

	for _, hours := range []int64{1, 744} {
		input := validInput()
		input.HoursWorked = decimal.NewFromInt(hours)
		_, err := svc.CreateDraft(context.Background(), lecturer, input)
		assert.NoError(t, err, "hours=%d should be accepted", hours)
	}
	for _, hours := range []int64{0, 745} {
		input := validInput()
		input.HoursWorked = decimal.NewFromInt(hours)
		_, err := svc.CreateDraft(context.Background(), lecturer, input)
		assert.Error(t, err, "hours=%d should be rejected", hours)
	}
}

func TestSubmitNew_AttachesDocuments(t *testing.T) {
	svc, repo, storer := newService(t)

	uploads := []model.Upload{
		{Data: []byte("timesheet"), OriginalName: "timesheet.pdf", ContentType: "application/pdf"},
		{Data: nil, OriginalName: "empty.pdf"}, // zero-length uploads are skipped
		{Data: []byte("contract"), OriginalName: "contract.pdf", ContentType: "application/pdf"},
	}

	claim, err := svc.SubmitNew(context.Background(), lecturer, validInput(), uploads)
	require.NoError(t, err)

	assert.Equal(t, model.ClaimStatusSubmitted, claim.Status)
	assert.Equal(t, fixedNow, claim.SubmittedDate)
	assert.Len(t, claim.Documents, 2)
	assert.Len(t, storer.stored, 2)

	stored, err := repo.GetClaim(context.Background(), claim.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ClaimStatusSubmitted, stored.Status)
}

func TestSaveDraft_CreatesWhenNoID(t *testing.T) {
	svc, _, _ := newService(t)

	claim, err := svc.SaveDraft(context.Background(), lecturer, validInput())
	require.NoError(t, err)
	assert.Equal(t, model.ClaimStatusDraft, claim.Status)
	assert.NotEmpty(t, claim.ID)
}

func TestSaveDraft_UpdatesExistingDraft(t *testing.T) {
	svc, repo, _ := newService(t)

	draft, err := svc.CreateDraft(context.Background(), lecturer, validInput())
	require.NoError(t, err)

	update := validInput()
	update.ID = draft.ID
	update.HoursWorked = decimal.NewFromInt(80)
	update.Description = "Revised hours"

	updated, err := svc.SaveDraft(context.Background(), lecturer, update)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, updated.ID)
	assert.Equal(t, "Revised hours", updated.Description)

	stored, err := repo.GetClaim(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "80", stored.HoursWorked.String())
	assert.Equal(t, stored.HoursWorked.Mul(stored.HourlyRate).String(), stored.TotalAmount().String())
}

func TestSaveDraft_UnknownIDFails(t *testing.T) {
	svc, _, _ := newService(t)

	input := validInput()
	input.ID = "CL-2023-9999"

	_, err := svc.SaveDraft(context.Background(), lecturer, input)
	assert.ErrorIs(t, err, errors.ErrClaimNotFound)
}

func TestUpdateDraft_RejectsNonDraft(t *testing.T) {
	svc, _, _ := newService(t)

	claim, err := svc.SubmitNew(context.Background(), lecturer, validInput(), nil)
	require.NoError(t, err)

	_, err = svc.UpdateDraft(context.Background(), lecturer, claim.ID, validInput())

	var tErr errors.TransitionError
	assert.ErrorAs(t, err, &tErr)
}

func TestSubmitDraft(t *testing.T) {
	svc, _, _ := newService(t)

	draft, err := svc.CreateDraft(context.Background(), lecturer, validInput())
	require.NoError(t, err)

	submitted, err := svc.SubmitDraft(context.Background(), lecturer, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ClaimStatusSubmitted, submitted.Status)
	assert.Equal(t, fixedNow, submitted.SubmittedDate)

	// Submitting twice is an illegal transition.
	_, err = svc.SubmitDraft(context.Background(), lecturer, draft.ID)
	var tErr errors.TransitionError
	assert.ErrorAs(t, err, &tErr)
}

func TestSubmitDraft_Unknown(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.SubmitDraft(context.Background(), lecturer, "CL-2023-9999")
	assert.ErrorIs(t, err, errors.ErrClaimNotFound)
}

func TestApprove(t *testing.T) {
	svc, _, _ := newService(t)

	claim, err := svc.SubmitNew(context.Background(), lecturer, validInput(), nil)
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), manager, claim.ID, "Looks good")
	require.NoError(t, err)

	assert.Equal(t, model.ClaimStatusApproved, approved.Status)
	assert.Equal(t, "Academic Manager", approved.ReviewedBy)
	assert.Equal(t, "Looks good", approved.ReviewComments)
	require.NotNil(t, approved.ReviewedDate)
	assert.Equal(t, fixedNow, *approved.ReviewedDate)
}

func TestApprove_DraftCannotSkipSubmission(t *testing.T) {
	svc, _, _ := newService(t)

	draft, err := svc.CreateDraft(context.Background(), lecturer, validInput())
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), manager, draft.ID, "")
	var tErr errors.TransitionError
	assert.ErrorAs(t, err, &tErr)
}

func TestApprove_TerminalStateIsFinal(t *testing.T) {
	svc, _, _ := newService(t)

	claim, err := svc.SubmitNew(context.Background(), lecturer, validInput(), nil)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), manager, claim.ID, "")
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), manager, claim.ID, "changed my mind")
	var tErr errors.TransitionError
	assert.ErrorAs(t, err, &tErr)
}

func TestReject_RequiresComments(t *testing.T) {
	svc, repo, _ := newService(t)

	claim, err := svc.SubmitNew(context.Background(), lecturer, validInput(), nil)
	require.NoError(t, err)

	for _, comments := range []string{"", "   ", "\t\n"} {
		_, err = svc.Reject(context.Background(), manager, claim.ID, comments)
		var vErr errors.ValidationError
		require.ErrorAs(t, err, &vErr)
	}

	// State must be untouched after the failed rejections.
	stored, err := repo.GetClaim(context.Background(), claim.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ClaimStatusSubmitted, stored.Status)
	assert.Empty(t, stored.ReviewedBy)
	assert.Nil(t, stored.ReviewedDate)
}

func TestReject(t *testing.T) {
	svc, _, _ := newService(t)

	claim, err := svc.SubmitNew(context.Background(), lecturer, validInput(), nil)
	require.NoError(t, err)

	rejected, err := svc.Reject(context.Background(), manager, claim.ID, "Missing timesheet")
	require.NoError(t, err)
	assert.Equal(t, model.ClaimStatusRejected, rejected.Status)
	assert.Equal(t, "Missing timesheet", rejected.ReviewComments)
}

func TestBulkApprove_SkipsIneligible(t *testing.T) {
	svc, repo, _ := newService(t)

	submitted1, err := svc.SubmitNew(context.Background(), lecturer, validInput(), nil)
	require.NoError(t, err)
	submitted2, err := svc.SubmitNew(context.Background(), lecturer, validInput(), nil)
	require.NoError(t, err)
	draft, err := svc.CreateDraft(context.Background(), lecturer, validInput())
	require.NoError(t, err)

	ids := []string{submitted1.ID, draft.ID, "CL-2023-9999", submitted2.ID}
	count, err := svc.BulkApprove(context.Background(), manager, ids, "batch")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// The draft was not touched.
	stored, err := repo.GetClaim(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ClaimStatusDraft, stored.Status)
}

func TestBulkReject_RequiresComments(t *testing.T) {
	svc, _, _ := newService(t)

	count, err := svc.BulkReject(context.Background(), manager, []string{"CL-2023-0001"}, "  ")
	assert.Zero(t, count)
	var vErr errors.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestBulkReject(t *testing.T) {
	svc, _, _ := newService(t)

	claim, err := svc.SubmitNew(context.Background(), lecturer, validInput(), nil)
	require.NoError(t, err)

	count, err := svc.BulkReject(context.Background(), manager, []string{claim.ID}, "incomplete")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := svc.Get(context.Background(), claim.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ClaimStatusRejected, stored.Status)
}

func TestListByLecturer(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.SubmitNew(context.Background(), lecturer, validInput(), nil)
	require.NoError(t, err)
	_, err = svc.CreateDraft(context.Background(), lecturer, validInput())
	require.NoError(t, err)

	other := identity.Identity{ID: "u-1002", Name: "Prof. Michael Brown"}
	_, err = svc.SubmitNew(context.Background(), other, validInput(), nil)
	require.NoError(t, err)

	mine, err := svc.ListByLecturer(context.Background(), lecturer.ID, "")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	drafts, err := svc.ListByLecturer(context.Background(), lecturer.ID, "draft")
	require.NoError(t, err)
	assert.Len(t, drafts, 1)

	_, err = svc.ListByLecturer(context.Background(), lecturer.ID, "bogus")
	var vErr errors.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestListVisible_ExcludesDrafts(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.CreateDraft(context.Background(), lecturer, validInput())
	require.NoError(t, err)
	_, err = svc.SubmitNew(context.Background(), lecturer, validInput(), nil)
	require.NoError(t, err)

	visible, err := svc.ListVisible(context.Background())
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, model.ClaimStatusSubmitted, visible[0].Status)
}

package claim

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"contract-claim-system/internal/identity"
	"contract-claim-system/internal/logger"
	"contract-claim-system/internal/model"
	"contract-claim-system/internal/store"
	"contract-claim-system/pkg/errors"
)

// DocumentStorer is the slice of the document service the lifecycle needs
// when a submission carries supporting files.
type DocumentStorer interface {
	Store(ctx context.Context, actor identity.Identity, upload model.Upload, claimID string) (*model.Document, error)
}

// Service owns the claim state machine:
//
//	Draft -> Submitted -> {Approved, Rejected}
//
// Draft is the only editable state; Approved and Rejected are terminal.
type Service struct {
	claims store.ClaimRepository
	docs   store.DocumentRepository
	storer DocumentStorer
	now    func() time.Time
	log    zerolog.Logger
}

func NewService(claims store.ClaimRepository, docs store.DocumentRepository, storer DocumentStorer) *Service {
	return &Service{
		claims: claims,
		docs:   docs,
		storer: storer,
		now:    time.Now,
		log:    logger.Get(),
	}
}

// CreateDraft validates the input, assigns the next sequential identifier
// and stores the claim in Draft status.
func (s *Service) CreateDraft(ctx context.Context, actor identity.Identity, input model.ClaimInput) (*model.Claim, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	id, err := s.claims.NextClaimID(ctx, s.now())
	if err != nil {
		return nil, err
	}

	claim := model.Claim{
		ID:           id,
		ClaimMonth:   input.ClaimMonth,
		HoursWorked:  input.HoursWorked,
		HourlyRate:   input.HourlyRate,
		Description:  input.Description,
		LecturerID:   actor.ID,
		LecturerName: actor.Name,
		Status:       model.ClaimStatusDraft,
	}

	if err := s.claims.InsertClaim(ctx, claim); err != nil {
		return nil, err
	}

	s.log.Info().Str("claim_id", id).Str("lecturer", actor.Name).Msg("Draft claim created")
	return &claim, nil
}

// SubmitNew creates a claim directly in Submitted status, storing any
// supporting documents first and linking them by claim id.
func (s *Service) SubmitNew(ctx context.Context, actor identity.Identity, input model.ClaimInput, uploads []model.Upload) (*model.Claim, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	id, err := s.claims.NextClaimID(ctx, s.now())
	if err != nil {
		return nil, err
	}

	claim := model.Claim{
		ID:            id,
		ClaimMonth:    input.ClaimMonth,
		HoursWorked:   input.HoursWorked,
		HourlyRate:    input.HourlyRate,
		Description:   input.Description,
		LecturerID:    actor.ID,
		LecturerName:  actor.Name,
		Status:        model.ClaimStatusSubmitted,
		SubmittedDate: s.now(),
	}

	if err := s.claims.InsertClaim(ctx, claim); err != nil {
		return nil, err
	}

	for _, upload := range uploads {
		if len(upload.Data) == 0 {
			continue
		}
		doc, err := s.storer.Store(ctx, actor, upload, id)
		if err != nil {
			s.log.Error().Err(err).Str("claim_id", id).Str("file", upload.OriginalName).Msg("Failed to store supporting document")
			return nil, err
		}
		claim.Documents = append(claim.Documents, *doc)
	}

	s.log.Info().
		Str("claim_id", id).
		Str("lecturer", actor.Name).
		Int("documents", len(claim.Documents)).
		Msg("Claim submitted")

	return &claim, nil
}

// SaveDraft creates a draft when the input has no id, otherwise updates the
// mutable fields of an existing draft. An unknown id is an error, not a
// silent no-op.
func (s *Service) SaveDraft(ctx context.Context, actor identity.Identity, input model.ClaimInput) (*model.Claim, error) {
	if input.ID == "" {
		return s.CreateDraft(ctx, actor, input)
	}
	return s.UpdateDraft(ctx, actor, input.ID, input)
}

// UpdateDraft replaces the mutable fields (month, hours, rate, description)
// of an existing Draft claim. Only drafts are editable.
func (s *Service) UpdateDraft(ctx context.Context, actor identity.Identity, id string, input model.ClaimInput) (*model.Claim, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	claim, err := s.claims.GetClaim(ctx, id)
	if err != nil {
		return nil, err
	}
	if claim.Status != model.ClaimStatusDraft {
		return nil, errors.NewTransitionError(id, string(claim.Status), "edit draft")
	}

	claim.ClaimMonth = input.ClaimMonth
	claim.HoursWorked = input.HoursWorked
	claim.HourlyRate = input.HourlyRate
	claim.Description = input.Description

	if err := s.claims.UpdateClaim(ctx, *claim); err != nil {
		return nil, err
	}

	s.log.Info().Str("claim_id", id).Msg("Draft claim updated")
	return claim, nil
}

// SubmitDraft moves a Draft claim to Submitted, stamping the submission time.
func (s *Service) SubmitDraft(ctx context.Context, actor identity.Identity, id string) (*model.Claim, error) {
	claim, err := s.claims.GetClaim(ctx, id)
	if err != nil {
		return nil, err
	}
	if claim.Status != model.ClaimStatusDraft {
		return nil, errors.NewTransitionError(id, string(claim.Status), "submit")
	}

	claim.Status = model.ClaimStatusSubmitted
	claim.SubmittedDate = s.now()

	if err := s.claims.UpdateClaim(ctx, *claim); err != nil {
		return nil, err
	}

	s.log.Info().Str("claim_id", id).Msg("Draft claim submitted")
	return claim, nil
}

// Approve moves a Submitted claim to Approved, recording the reviewer.
func (s *Service) Approve(ctx context.Context, reviewer identity.Identity, id, comments string) (*model.Claim, error) {
	return s.review(ctx, reviewer, id, comments, model.ClaimStatusApproved, false)
}

// Reject moves a Submitted claim to Rejected. Comments are mandatory: a
// lecturer must be told why the claim came back.
func (s *Service) Reject(ctx context.Context, reviewer identity.Identity, id, comments string) (*model.Claim, error) {
	return s.review(ctx, reviewer, id, comments, model.ClaimStatusRejected, true)
}

func (s *Service) review(ctx context.Context, reviewer identity.Identity, id, comments string, target model.ClaimStatus, requireComments bool) (*model.Claim, error) {
	if requireComments && isBlank(comments) {
		return nil, errors.NewValidationError(errors.FieldViolation{
			Field:   "comments",
			Value:   comments,
			Message: "comments are required when rejecting a claim",
		})
	}

	claim, err := s.claims.GetClaim(ctx, id)
	if err != nil {
		return nil, err
	}
	if claim.Status != model.ClaimStatusSubmitted {
		return nil, errors.NewTransitionError(id, string(claim.Status), "review")
	}

	now := s.now()
	claim.Status = target
	claim.ReviewComments = comments
	claim.ReviewedBy = reviewer.Name
	claim.ReviewedDate = &now

	if err := s.claims.UpdateClaim(ctx, *claim); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("claim_id", id).
		Str("status", string(target)).
		Str("reviewer", reviewer.Name).
		Msg("Claim reviewed")

	return claim, nil
}

// BulkApprove applies Approve to each id, silently skipping ids that are
// unknown or not currently Submitted. It returns the number of claims
// actually transitioned.
func (s *Service) BulkApprove(ctx context.Context, reviewer identity.Identity, ids []string, comments string) (int, error) {
	return s.bulkReview(ctx, reviewer, ids, comments, model.ClaimStatusApproved)
}

// BulkReject works like BulkApprove but requires comments.
func (s *Service) BulkReject(ctx context.Context, reviewer identity.Identity, ids []string, comments string) (int, error) {
	if isBlank(comments) {
		return 0, errors.NewValidationError(errors.FieldViolation{
			Field:   "comments",
			Value:   comments,
			Message: "comments are required when rejecting claims",
		})
	}
	return s.bulkReview(ctx, reviewer, ids, comments, model.ClaimStatusRejected)
}

func (s *Service) bulkReview(ctx context.Context, reviewer identity.Identity, ids []string, comments string, target model.ClaimStatus) (int, error) {
	count := 0
	for _, id := range ids {
		claim, err := s.claims.GetClaim(ctx, id)
		if err != nil || claim.Status != model.ClaimStatusSubmitted {
			continue
		}

		now := s.now()
		claim.Status = target
		claim.ReviewComments = comments
		claim.ReviewedBy = reviewer.Name
		claim.ReviewedDate = &now

		if err := s.claims.UpdateClaim(ctx, *claim); err != nil {
			s.log.Error().Err(err).Str("claim_id", id).Msg("Bulk review update failed")
			continue
		}
		count++
	}

	s.log.Info().
		Int("count", count).
		Int("requested", len(ids)).
		Str("status", string(target)).
		Msg("Bulk review applied")

	return count, nil
}

// Get returns a claim with its supporting documents joined by claim id.
func (s *Service) Get(ctx context.Context, id string) (*model.Claim, error) {
	claim, err := s.claims.GetClaim(ctx, id)
	if err != nil {
		return nil, err
	}

	docs, err := s.docs.ListDocumentsByClaim(ctx, id)
	if err != nil {
		return nil, err
	}
	claim.Documents = docs

	return claim, nil
}

// ListVisible returns every non-draft claim, for the shared claims index.
func (s *Service) ListVisible(ctx context.Context) ([]model.Claim, error) {
	claims, err := s.claims.ListClaims(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]model.Claim, 0, len(claims))
	for _, c := range claims {
		if c.Status != model.ClaimStatusDraft {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

// ListByLecturer returns the claims owned by one lecturer, optionally
// restricted to one status.
func (s *Service) ListByLecturer(ctx context.Context, lecturerID, status string) ([]model.Claim, error) {
	var want model.ClaimStatus
	if status != "" {
		parsed, ok := model.ParseClaimStatus(status)
		if !ok {
			return nil, errors.NewValidationError(errors.FieldViolation{
				Field:   "status",
				Value:   status,
				Message: "unknown claim status",
			})
		}
		want = parsed
	}

	claims, err := s.claims.ListClaims(ctx)
	if err != nil {
		return nil, err
	}

	var mine []model.Claim
	for _, c := range claims {
		if c.LecturerID != lecturerID {
			continue
		}
		if want != "" && c.Status != want {
			continue
		}
		mine = append(mine, c)
	}
	return mine, nil
}

var (
	minHours = decimal.NewFromInt(1)
	maxHours = decimal.NewFromInt(744)
)

func validateInput(input model.ClaimInput) error {
	var violations []errors.FieldViolation

	if !monthPattern.MatchString(input.ClaimMonth) {
		violations = append(violations, errors.FieldViolation{
			Field:   "claim_month",
			Value:   input.ClaimMonth,
			Message: "claim month is required in YYYY-MM format",
		})
	}
	if input.HoursWorked.LessThan(minHours) || input.HoursWorked.GreaterThan(maxHours) {
		violations = append(violations, errors.FieldViolation{
			Field:   "hours_worked",
			Value:   input.HoursWorked,
			Message: "hours worked must be between 1 and 744",
		})
	}
	if !input.HourlyRate.IsPositive() {
		violations = append(violations, errors.FieldViolation{
			Field:   "hourly_rate",
			Value:   input.HourlyRate,
			Message: "hourly rate must be greater than 0",
		})
	}

	if len(violations) > 0 {
		return errors.NewValidationError(violations...)
	}
	return nil
}

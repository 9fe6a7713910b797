package store

import (
	"context"
	"time"

	"contract-claim-system/internal/model"
)

// ClaimRepository is the single authoritative claim collection. Claim ids
// come from NextClaimID and are never reused; implementations must hand out
// and apply mutations atomically with respect to each other.
type ClaimRepository interface {
	InsertClaim(ctx context.Context, claim model.Claim) error
	GetClaim(ctx context.Context, id string) (*model.Claim, error)
	UpdateClaim(ctx context.Context, claim model.Claim) error
	ListClaims(ctx context.Context) ([]model.Claim, error)
	NextClaimID(ctx context.Context, now time.Time) (string, error)
}

type DocumentRepository interface {
	InsertDocument(ctx context.Context, doc model.Document) error
	GetDocument(ctx context.Context, id string) (*model.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	ListDocuments(ctx context.Context) ([]model.Document, error)
	ListDocumentsByClaim(ctx context.Context, claimID string) ([]model.Document, error)
}

type UserRepository interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

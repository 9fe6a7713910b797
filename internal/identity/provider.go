package identity

import (
	"context"

	"contract-claim-system/internal/config"
	"contract-claim-system/internal/model"
)

// Identity is the authenticated actor a claim or document operation is
// attributed to. Services take it explicitly; nothing resolves an ambient
// current user.
type Identity struct {
	ID   string
	Name string
	Role model.UserRole
}

type Provider interface {
	// Current is the actor claims and documents are attributed to.
	Current(ctx context.Context) (Identity, error)
	// Reviewer is the actor recorded on approve/reject decisions.
	Reviewer(ctx context.Context) (Identity, error)
}

// Static resolves every request to the identities fixed in configuration.
// A real deployment swaps this for a session-backed provider.
type Static struct {
	current  Identity
	reviewer Identity
}

func NewStatic(cfg *config.Config) *Static {
	role := model.UserRole(cfg.Identity.Role)
	if role == "" {
		role = model.RoleLecturer
	}
	reviewer := cfg.Identity.Reviewer
	if reviewer == "" {
		reviewer = "Academic Manager"
	}
	return &Static{
		current: Identity{
			ID:   cfg.Identity.UserID,
			Name: cfg.Identity.Name,
			Role: role,
		},
		reviewer: Identity{
			Name: reviewer,
			Role: model.RoleAcademicManager,
		},
	}
}

func (s *Static) Current(ctx context.Context) (Identity, error) {
	return s.current, nil
}

func (s *Static) Reviewer(ctx context.Context) (Identity, error) {
	return s.reviewer, nil
}

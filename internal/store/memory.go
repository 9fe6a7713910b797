package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"contract-claim-system/internal/model"
	"contract-claim-system/pkg/errors"
)

// MemoryStore implements the claim, document and user repositories over
// process-lifetime maps. All access goes through one RWMutex, including the
// claim id counter, so concurrent requests cannot lose updates or mint
// duplicate ids.
type MemoryStore struct {
	mu sync.RWMutex

	claims     map[string]model.Claim
	claimOrder []string

	documents map[string]model.Document
	docOrder  []string

	users     map[string]model.User
	userOrder []string

	claimCounter int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		claims:    make(map[string]model.Claim),
		documents: make(map[string]model.Document),
		users:     make(map[string]model.User),
	}
}

// NewSeededStore returns a store preloaded with the sample claims and users
// the review screens expect, with the id counter positioned above the
// highest seeded sequence.
func NewSeededStore() *MemoryStore {
	s := NewMemoryStore()
	s.seed()
	return s
}

func (s *MemoryStore) InsertClaim(ctx context.Context, claim model.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.claims[claim.ID]; ok {
		return fmt.Errorf("claim %s already exists", claim.ID)
	}
	s.claims[claim.ID] = cloneClaim(claim)
	s.claimOrder = append(s.claimOrder, claim.ID)
	return nil
}

func (s *MemoryStore) GetClaim(ctx context.Context, id string) (*model.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claim, ok := s.claims[id]
	if !ok {
		return nil, errors.ErrClaimNotFound
	}
	c := cloneClaim(claim)
	return &c, nil
}

func (s *MemoryStore) UpdateClaim(ctx context.Context, claim model.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.claims[claim.ID]; !ok {
		return errors.ErrClaimNotFound
	}
	s.claims[claim.ID] = cloneClaim(claim)
	return nil
}

func (s *MemoryStore) ListClaims(ctx context.Context) ([]model.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claims := make([]model.Claim, 0, len(s.claimOrder))
	for _, id := range s.claimOrder {
		claims = append(claims, cloneClaim(s.claims[id]))
	}
	return claims, nil
}

func (s *MemoryStore) NextClaimID(ctx context.Context, now time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.claimCounter++
	return fmt.Sprintf("CL-%d-%04d", now.Year(), s.claimCounter), nil
}

func (s *MemoryStore) InsertDocument(ctx context.Context, doc model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[doc.ID]; ok {
		return fmt.Errorf("document %s already exists", doc.ID)
	}
	s.documents[doc.ID] = doc
	s.docOrder = append(s.docOrder, doc.ID)
	return nil
}

func (s *MemoryStore) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[id]
	if !ok {
		return nil, errors.ErrDocumentNotFound
	}
	return &doc, nil
}

func (s *MemoryStore) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[id]; !ok {
		return errors.ErrDocumentNotFound
	}
	delete(s.documents, id)
	for i, docID := range s.docOrder {
		if docID == id {
			s.docOrder = append(s.docOrder[:i], s.docOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) ListDocuments(ctx context.Context) ([]model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]model.Document, 0, len(s.docOrder))
	for _, id := range s.docOrder {
		docs = append(docs, s.documents[id])
	}
	return docs, nil
}

func (s *MemoryStore) ListDocumentsByClaim(ctx context.Context, claimID string) ([]model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []model.Document
	for _, id := range s.docOrder {
		if s.documents[id].ClaimID == claimID {
			docs = append(docs, s.documents[id])
		}
	}
	return docs, nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	return &user, nil
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]model.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		users = append(users, s.users[id])
	}
	return users, nil
}

// cloneClaim copies the claim and its document slice so callers never share
// backing arrays with the store.
func cloneClaim(c model.Claim) model.Claim {
	if len(c.Documents) > 0 {
		docs := make([]model.Document, len(c.Documents))
		copy(docs, c.Documents)
		c.Documents = docs
	}
	return c
}

// Package session keeps the opaque identity token a signed-in client hands
// over. The token is stored, returned and cleared. It is never verified here.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Happy-Hiker-Co/HappyHiker/internal/kvstore"
)

var (
	ErrNoSession   = errors.New("session not found")
	ErrEmptyToken  = errors.New("token must not be empty")
	ErrMalformedID = errors.New("session id is not a valid uuid")
)

const keyPrefix = "session:"

type Service struct {
	store kvstore.Store
	newID func() uuid.UUID
}

func NewService(store kvstore.Store) *Service {
	return &Service{store: store, newID: uuid.New}
}

func key(id string) string {
	return keyPrefix + id
}

func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", ErrMalformedID
	}
	return parsed.String(), nil
}

// Start stores token under a fresh session id.
func (s *Service) Start(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrEmptyToken
	}

	id := s.newID().String()
	if err := s.store.Set(ctx, key(id), token); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	return id, nil
}

func (s *Service) Token(ctx context.Context, id string) (string, error) {
	id, err := parseID(id)
	if err != nil {
		return "", err
	}

	token, err := s.store.Get(ctx, key(id))
	if errors.Is(err, kvstore.ErrNotFound) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("reading session: %w", err)
	}
	return token, nil
}

// IsAuthenticated reports whether id maps to a stored token.
func (s *Service) IsAuthenticated(ctx context.Context, id string) (bool, error) {
	_, err := s.Token(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNoSession), errors.Is(err, ErrMalformedID):
		return false, nil
	default:
		return false, err
	}
}

// End clears the session. Ending an unknown session is not an error.
func (s *Service) End(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, key(id)); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

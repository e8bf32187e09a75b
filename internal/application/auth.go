package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kmdb/kmdb-cli/internal/domain"
	"github.com/kmdb/kmdb-cli/internal/ports"
)

// TokenVerifier checks a token against the backend before it is kept.
type TokenVerifier func(ctx context.Context, token string) error

type AuthService struct {
	store   ports.SecretStore
	profile string
}

type TokenStatus struct {
	Profile    string
	Key        string
	Configured bool
	Masked     string
}

func NewAuthService(store ports.SecretStore, profile string) *AuthService {
	if strings.TrimSpace(profile) == "" {
		profile = "default"
	}
	return &AuthService{store: store, profile: strings.TrimSpace(profile)}
}

// TokenKey is the secret-store key holding the bearer token of a profile.
func TokenKey(profile string) string {
	return fmt.Sprintf("kmdb/%s/token", profile)
}

func (s *AuthService) Profile() string {
	return s.profile
}

// SetToken stores the token and, when verify is given, removes it again if
// the backend refuses it.
func (s *AuthService) SetToken(ctx context.Context, token string, verify TokenVerifier) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is empty")
	}

	key := TokenKey(s.profile)
	previous, previousErr := s.store.Get(ctx, key)

	if err := s.store.Put(ctx, key, token); err != nil {
		return fmt.Errorf("store api token: %w", err)
	}
	if verify == nil {
		return nil
	}

	verifyErr := verify(ctx, token)
	if verifyErr == nil {
		return nil
	}

	var rollbackErr error
	if previousErr == nil && previous != "" {
		rollbackErr = s.store.Put(ctx, key, previous)
	} else {
		rollbackErr = s.store.Delete(ctx, key)
	}
	if rollbackErr != nil {
		return fmt.Errorf("verify api token and rollback stored token: %w", errors.Join(verifyErr, rollbackErr))
	}

	return fmt.Errorf("verify api token: %w", verifyErr)
}

func (s *AuthService) Token(ctx context.Context) (string, error) {
	token, err := s.store.Get(ctx, TokenKey(s.profile))
	if err != nil {
		return "", fmt.Errorf("profile %s: %w: %w", s.profile, domain.ErrTokenMissing, err)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("profile %s: %w", s.profile, domain.ErrTokenMissing)
	}
	return token, nil
}

func (s *AuthService) RemoveToken(ctx context.Context) error {
	if err := s.store.Delete(ctx, TokenKey(s.profile)); err != nil {
		return fmt.Errorf("delete api token: %w", err)
	}
	return nil
}

func (s *AuthService) Status(ctx context.Context) TokenStatus {
	status := TokenStatus{Profile: s.profile, Key: TokenKey(s.profile)}

	token, err := s.Token(ctx)
	if err != nil {
		return status
	}
	status.Configured = true
	status.Masked = MaskToken(token)
	return status
}

func MaskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

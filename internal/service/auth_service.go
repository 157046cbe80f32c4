package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"todoapp/internal/auth"
	apperrors "todoapp/internal/errors"
	"todoapp/internal/model"
)

// AuthResult is returned by a successful signup or signin.
type AuthResult struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}

// Principal is the authenticated caller behind a bearer token.
type Principal struct {
	User      *model.User
	TokenID   string
	ExpiresAt time.Time
}

// AuthService handles authentication operations.
type AuthService interface {
	Signup(ctx context.Context, email, password, confirmPassword string) (*AuthResult, error)
	Signin(ctx context.Context, email, password string) (*AuthResult, error)
	Resolve(ctx context.Context, token string) (*Principal, error)
	Signout(ctx context.Context, principal *Principal) error
}

type authService struct {
	users      UserService
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	tokenTTL   time.Duration
	now        func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(users UserService, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface, tokenTTL time.Duration) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		tokenStore: tokenStore,
		tokenTTL:   tokenTTL,
		now:        time.Now,
	}
}

// Signup registers an account and signs it in.
func (s *authService) Signup(ctx context.Context, email, password, confirmPassword string) (*AuthResult, error) {
	if password != confirmPassword {
		return nil, apperrors.NewValidationError("passwords do not match")
	}

	user, err := s.users.CreateUser(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Signin authenticates an account and issues a fresh token.
func (s *authService) Signin(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Resolve turns a bearer token into the caller it was issued for. Every failure,
// including revoked tokens and deleted users, is reported as ErrUnauthenticated.
func (s *authService) Resolve(ctx context.Context, token string) (*Principal, error) {
	claims, err := s.jwtService.Verify(token)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	if s.tokenStore != nil {
		if revoked, _ := s.tokenStore.IsRevoked(ctx, claims.ID); revoked {
			return nil, apperrors.ErrUnauthenticated
		}
	}

	user, err := s.users.FindUserByID(ctx, claims.UserID())
	if err != nil {
		log.Printf("resolve token: %v", err)
		return nil, apperrors.ErrUnauthenticated
	}
	if user == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	return &Principal{User: user, TokenID: claims.ID, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Signout revokes the caller's token until it would have expired.
func (s *authService) Signout(ctx context.Context, principal *Principal) error {
	if principal == nil || s.tokenStore == nil {
		return nil
	}
	ttl := principal.ExpiresAt.Sub(s.now())
	if err := s.tokenStore.Revoke(ctx, principal.TokenID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *authService) issue(user *model.User) (*AuthResult, error) {
	token, claims, err := s.jwtService.IssueToken(user.ID, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

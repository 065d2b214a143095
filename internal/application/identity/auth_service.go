// Package identity implements login, session and user administration use cases.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	appshared "github.com/iletigo/mutabakat/internal/application/shared"
	"github.com/iletigo/mutabakat/internal/domain/audit"
	"github.com/iletigo/mutabakat/internal/domain/identity"
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"github.com/iletigo/mutabakat/internal/infrastructure/auth"
	"go.uber.org/zap"
)

var (
	// ErrInvalidCredentials hides whether the email or the password was wrong
	ErrInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "invalid credentials")
	// ErrAccountInactive is only returned once the password has been verified
	ErrAccountInactive = shared.NewDomainError(shared.CodeUnauthorized, "account is inactive")
)

// LoginInput contains login credentials
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is the authenticated user and a signed access token
type LoginResult struct {
	User  *identity.User
	Token *auth.Token
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	txScope    appshared.TransactionScope
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	clock      shared.Clock
	logger     *zap.Logger
	// rejectUnknown equalizes login timing for unknown emails
	rejectUnknown func(password string) bool
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	txScope appshared.TransactionScope,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	clock shared.Clock,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		txScope:    txScope,
		jwtService: jwtService,
		blacklist:  blacklist,
		clock:      clock,
		logger:     logger,

		rejectUnknown: identity.RejectPassword,
	}
}

// Login verifies credentials, stamps last_login and records a LOGIN entry
// in one transaction, then issues a token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := identity.NormalizeEmail(input.Email)
	if email == "" {
		return nil, shared.NewRequiredError("email")
	}
	if input.Password == "" {
		return nil, shared.NewRequiredError("password")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.rejectUnknown(input.Password)
			s.logger.Warn("Login attempt for unknown email", zap.String("email", email))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		s.logger.Warn("Login attempt for inactive account", zap.String("user_id", user.ID.String()))
		return nil, ErrAccountInactive
	}

	now := s.clock.Now()
	err = s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		if err := repos.Users().UpdateLastLogin(ctx, user.ID, now); err != nil {
			return fmt.Errorf("update last login: %w", err)
		}
		return appendUserActivity(ctx, repos, user, audit.ActionLogin, now)
	})
	if err != nil {
		return nil, err
	}
	user.RecordLogin(now)

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)
	return &LoginResult{User: user, Token: token}, nil
}

// Me returns the authenticated user. A user that no longer resolves or
// was deactivated is treated as unauthenticated.
func (s *AuthService) Me(ctx context.Context, actor identity.Actor) (*identity.User, error) {
	if actor.IsZero() {
		return nil, shared.ErrUnauthorized
	}
	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}
	return user, nil
}

// Logout revokes the presented token for the rest of its lifetime and
// records a LOGOUT entry.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || strings.TrimSpace(claims.ID) == "" {
		return shared.ErrUnauthorized
	}
	actor := claims.Actor()
	if actor.IsZero() {
		return shared.ErrUnauthorized
	}

	now := s.clock.Now()
	if ttl := claims.GetRemainingTTL(now); ttl > 0 {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
			return fmt.Errorf("revoke token: %w", err)
		}
	}

	err := s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		entry, err := audit.NewEntry(ctx, actor.UserID, audit.ActionLogout, audit.TableUsers, actor.UserID, nil, now)
		if err != nil {
			return err
		}
		return repos.Activities().Append(ctx, entry)
	})
	if err != nil {
		return err
	}

	s.logger.Info("User logged out", zap.String("user_id", actor.UserID.String()))
	return nil
}

func appendUserActivity(ctx context.Context, repos appshared.TransactionalRepositories, user *identity.User, action audit.Action, now time.Time) error {
	entry, err := audit.NewEntry(ctx, user.ID, action, audit.TableUsers, user.ID, nil, now)
	if err != nil {
		return fmt.Errorf("build activity entry: %w", err)
	}
	return repos.Activities().Append(ctx, entry)
}

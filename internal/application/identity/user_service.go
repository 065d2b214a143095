package identity

import (
	"context"
	"fmt"

	"github.com/iletigo/mutabakat/internal/domain/identity"
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"go.uber.org/zap"
)

// CreateUserInput holds a new operator account
type CreateUserInput struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Role       identity.Role
	Department string
	Phone      string
}

// UserService provisions operator accounts. There is no HTTP surface for
// it; accounts are created from the command line.
type UserService struct {
	userRepo identity.UserRepository
	clock    shared.Clock
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, clock shared.Clock, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, clock: clock, logger: logger}
}

// CreateUser validates and stores a new active user
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*identity.User, error) {
	user, err := identity.NewUser(input.Email, input.Password, input.FirstName, input.LastName, input.Role, s.clock.Now())
	if err != nil {
		return nil, err
	}
	user.Department = input.Department
	user.Phone = input.Phone

	exists, err := s.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "email already registered")
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}

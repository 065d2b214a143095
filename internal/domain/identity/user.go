package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role is the coarse permission level of a user
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// UnknownUserName is shown wherever a user reference does not resolve
const UnknownUserName = "-"

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is an operator of the back office. Users are never hard-deleted;
// IsActive governs whether they can log in or be assigned work.
type User struct {
	shared.BaseEntity
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	Department   string
	Phone        string
	IsActive     bool
	LastLogin    *time.Time
}

// NewUser creates an active user with a bcrypt password hash
func NewUser(email, password, firstName, lastName string, role Role, now time.Time) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, shared.NewRequiredError("email")
	}
	if !emailRegex.MatchString(email) {
		return nil, shared.NewValidationError("invalid email format")
	}
	if len(password) < 8 {
		return nil, shared.NewValidationError("password must be at least 8 characters")
	}
	if strings.TrimSpace(firstName) == "" {
		return nil, shared.NewRequiredError("first_name")
	}
	if role == "" {
		role = RoleStaff
	}
	if !role.IsValid() {
		return nil, shared.NewValidationError("invalid role")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(now),
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Role:         role,
		IsActive:     true,
	}, nil
}

// NormalizeEmail trims and lower-cases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// decoyHash has the cost of a real hash and matches no password in practice
var decoyHash, _ = bcrypt.GenerateFromPassword([]byte("mutabakat-decoy-password"), bcrypt.DefaultCost)

// RejectPassword spends the same bcrypt work as VerifyPassword and always
// fails. Login calls it when no account matches the email.
func RejectPassword(password string) bool {
	_ = bcrypt.CompareHashAndPassword(decoyHash, []byte(password))
	return false
}

// VerifyPassword checks password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// DisplayName joins first and last name
func (u *User) DisplayName() string {
	return DisplayName(u.FirstName, u.LastName)
}

// DisplayName builds the human-readable name for a user reference,
// falling back to UnknownUserName when nothing resolves.
func DisplayName(firstName, lastName string) string {
	name := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if name == "" {
		return UnknownUserName
	}
	return name
}

// RecordLogin stamps the last login time
func (u *User) RecordLogin(at time.Time) {
	at = at.UTC()
	u.LastLogin = &at
	u.Touch(at)
}

// Deactivate hides the user from login and assignment
func (u *User) Deactivate(now time.Time) {
	u.IsActive = false
	u.Touch(now)
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Actor is the authenticated caller of a mutating operation
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

// IsZero reports whether no identity was resolved
func (a Actor) IsZero() bool {
	return a.UserID == uuid.Nil
}

// IsAdmin reports whether the actor has the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

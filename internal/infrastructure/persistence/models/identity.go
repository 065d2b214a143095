package models

import (
	"time"

	"github.com/iletigo/mutabakat/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	Email        string        `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string        `gorm:"type:varchar(255);not null"`
	FirstName    string        `gorm:"type:varchar(100);not null"`
	LastName     string        `gorm:"type:varchar(100)"`
	Role         identity.Role `gorm:"type:varchar(20);not null;default:'staff'"`
	Department   string        `gorm:"type:varchar(100)"`
	Phone        string        `gorm:"type:varchar(50)"`
	IsActive     bool          `gorm:"not null"`
	LastLogin    *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Role:         m.Role,
		Department:   m.Department,
		Phone:        m.Phone,
		IsActive:     m.IsActive,
		LastLogin:    m.LastLogin,
	}
}

// UserModelFromDomain creates a persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		Department:   u.Department,
		Phone:        u.Phone,
		IsActive:     u.IsActive,
		LastLogin:    u.LastLogin,
	}
	m.BaseModel = newBaseModel(u.BaseEntity)
	return m
}

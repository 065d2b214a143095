package models

import (
	"github.com/iletigo/mutabakat/internal/domain/partner"
)

// CompanyModel is the persistence model for the Company domain entity.
type CompanyModel struct {
	BaseModel
	Code          string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string `gorm:"type:varchar(255);not null"`
	ContactPerson string `gorm:"type:varchar(255)"`
	Email         string `gorm:"type:varchar(255)"`
	Phone         string `gorm:"type:varchar(50)"`
	MobilePhone   string `gorm:"type:varchar(50)"`
	TaxNumber     string `gorm:"type:varchar(50)"`
	IsActive      bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company entity.
func (m *CompanyModel) ToDomain() *partner.Company {
	return &partner.Company{
		BaseEntity:    m.BaseModel.ToDomain(),
		Code:          m.Code,
		Name:          m.Name,
		ContactPerson: m.ContactPerson,
		Email:         m.Email,
		Phone:         m.Phone,
		MobilePhone:   m.MobilePhone,
		TaxNumber:     m.TaxNumber,
		IsActive:      m.IsActive,
	}
}

// CompanyModelFromDomain creates a persistence model from a domain Company entity.
func CompanyModelFromDomain(c *partner.Company) *CompanyModel {
	m := &CompanyModel{
		Code:          c.Code,
		Name:          c.Name,
		ContactPerson: c.ContactPerson,
		Email:         c.Email,
		Phone:         c.Phone,
		MobilePhone:   c.MobilePhone,
		TaxNumber:     c.TaxNumber,
		IsActive:      c.IsActive,
	}
	m.BaseModel = newBaseModel(c.BaseEntity)
	return m
}

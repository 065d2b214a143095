package partner

import (
	"strings"
	"time"

	"github.com/iletigo/mutabakat/internal/domain/shared"
)

// Company is a counterparty identified by its code
type Company struct {
	shared.BaseEntity
	Code          string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	MobilePhone   string
	TaxNumber     string
	IsActive      bool
}

// NormalizeCode trims and upper-cases a company code
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CompanyInput carries the company fields submitted with a reconciliation
type CompanyInput struct {
	Code          string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	MobilePhone   string
}

// NewCompany builds a company from submitted fields
func NewCompany(in CompanyInput, now time.Time) (*Company, error) {
	code := NormalizeCode(in.Code)
	if code == "" {
		return nil, shared.NewRequiredError("company_code")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, shared.NewRequiredError("company_name")
	}
	return &Company{
		BaseEntity:    shared.NewBaseEntity(now),
		Code:          code,
		Name:          name,
		ContactPerson: strings.TrimSpace(in.ContactPerson),
		Email:         strings.TrimSpace(in.Email),
		Phone:         strings.TrimSpace(in.Phone),
		MobilePhone:   strings.TrimSpace(in.MobilePhone),
		IsActive:      true,
	}, nil
}

// Merge applies a newer submission for the same code. Name, email and
// phone always take the new value; contact person and mobile phone only
// when the submission carries one.
func (c *Company) Merge(newer *Company, now time.Time) {
	c.Name = newer.Name
	c.Email = newer.Email
	c.Phone = newer.Phone
	if newer.ContactPerson != "" {
		c.ContactPerson = newer.ContactPerson
	}
	if newer.MobilePhone != "" {
		c.MobilePhone = newer.MobilePhone
	}
	c.Touch(now)
}

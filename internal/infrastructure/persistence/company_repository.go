package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/iletigo/mutabakat/internal/domain/partner"
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"github.com/iletigo/mutabakat/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCompanyRepository implements CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// companyUpsert mirrors Company.Merge in SQL so concurrent submissions for
// one code converge on a single row.
var companyUpsert = clause.OnConflict{
	Columns: []clause.Column{{Name: "code"}},
	DoUpdates: append(
		clause.AssignmentColumns([]string{"name", "email", "phone", "updated_at"}),
		clause.Assignment{
			Column: clause.Column{Name: "contact_person"},
			Value:  gorm.Expr("CASE WHEN excluded.contact_person = '' THEN companies.contact_person ELSE excluded.contact_person END"),
		},
		clause.Assignment{
			Column: clause.Column{Name: "mobile_phone"},
			Value:  gorm.Expr("CASE WHEN excluded.mobile_phone = '' THEN companies.mobile_phone ELSE excluded.mobile_phone END"),
		},
	),
}

// Upsert inserts or merges by code and returns the stored row
func (r *GormCompanyRepository) Upsert(ctx context.Context, company *partner.Company) (*partner.Company, error) {
	model := models.CompanyModelFromDomain(company)
	if err := r.db.WithContext(ctx).Clauses(companyUpsert).Create(model).Error; err != nil {
		return nil, err
	}
	return r.FindByCode(ctx, company.Code)
}

// FindByID finds a company by ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a company by its normalized code
func (r *GormCompanyRepository) FindByCode(ctx context.Context, code string) (*partner.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", partner.NormalizeCode(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Ensure GormCompanyRepository implements CompanyRepository
var _ partner.CompanyRepository = (*GormCompanyRepository)(nil)

package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iletigo/mutabakat/internal/domain/identity"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"github.com/iletigo/mutabakat/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReconciliationRepository implements reconciliation.Repository using GORM
type GormReconciliationRepository struct {
	db *gorm.DB
}

// NewGormReconciliationRepository creates a new GormReconciliationRepository
func NewGormReconciliationRepository(db *gorm.DB) *GormReconciliationRepository {
	return &GormReconciliationRepository{db: db}
}

const reconciliationViewColumns = `r.*,
	c.name AS company_name, c.code AS company_code, c.tax_number AS company_tax_number,
	p.name AS period_name, p.start_date AS period_start, p.end_date AS period_end,
	au.first_name AS assigned_first_name, au.last_name AS assigned_last_name,
	cu.first_name AS creator_first_name, cu.last_name AS creator_last_name`

// reconciliationViewRow is the scan target of the joined header query
type reconciliationViewRow struct {
	models.ReconciliationModel
	CompanyName       string
	CompanyCode       string
	CompanyTaxNumber  *string
	PeriodName        *string
	PeriodStart       *time.Time
	PeriodEnd         *time.Time
	AssignedFirstName *string
	AssignedLastName  *string
	CreatorFirstName  *string
	CreatorLastName   *string
}

func (row *reconciliationViewRow) toView() reconciliation.View {
	v := reconciliation.View{
		Reconciliation:   *row.ReconciliationModel.ToDomain(),
		CompanyName:      row.CompanyName,
		CompanyCode:      row.CompanyCode,
		CompanyTaxNumber: deref(row.CompanyTaxNumber),
		PeriodName:       deref(row.PeriodName),
		PeriodStart:      row.PeriodStart,
		PeriodEnd:        row.PeriodEnd,
		CreatedByName:    identity.DisplayName(deref(row.CreatorFirstName), deref(row.CreatorLastName)),
	}
	if row.AssignedTo != nil {
		v.AssignedToName = identity.DisplayName(deref(row.AssignedFirstName), deref(row.AssignedLastName))
	}
	return v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// viewQuery joins the header with company, period and both user references
func (r *GormReconciliationRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("reconciliations AS r").
		Joins("JOIN companies c ON c.id = r.company_id").
		Joins("LEFT JOIN reconciliation_periods p ON p.id = r.period_id").
		Joins("LEFT JOIN users au ON au.id = r.assigned_to").
		Joins("LEFT JOIN users cu ON cu.id = r.created_by")
}

// Create inserts a new reconciliation
func (r *GormReconciliationRepository) Create(ctx context.Context, rec *reconciliation.Reconciliation) error {
	model := models.ReconciliationModelFromDomain(rec)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update writes the mutable columns (status, assigned_to, updated_at) if
// the row still carries rec.Version, then bumps the version. A stale
// version yields ErrConcurrentUpdate.
func (r *GormReconciliationRepository) Update(ctx context.Context, rec *reconciliation.Reconciliation) error {
	next := rec.Version + 1
	result := r.db.WithContext(ctx).
		Model(&models.ReconciliationModel{}).
		Where("id = ? AND version = ?", rec.ID, rec.Version).
		Updates(map[string]any{
			"status":      rec.Status,
			"assigned_to": rec.AssignedTo,
			"updated_at":  rec.UpdatedAt,
			"version":     next,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		exists, err := r.Exists(ctx, rec.ID)
		if err != nil {
			return err
		}
		if exists {
			return shared.ErrConcurrentUpdate
		}
		return shared.ErrNotFound
	}
	rec.Version = next
	return nil
}

// FindByID finds a reconciliation by ID
func (r *GormReconciliationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reconciliation.Reconciliation, error) {
	var model models.ReconciliationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Exists reports whether the reconciliation exists
func (r *GormReconciliationRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ReconciliationModel{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// FindView loads the header with its joined names
func (r *GormReconciliationRepository) FindView(ctx context.Context, id uuid.UUID) (*reconciliation.View, error) {
	var rows []reconciliationViewRow
	if err := r.viewQuery(ctx).
		Select(reconciliationViewColumns).
		Where("r.id = ?", id).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, shared.ErrNotFound
	}
	v := rows[0].toView()
	return &v, nil
}

// List returns one page of matches and the total match count
func (r *GormReconciliationRepository) List(ctx context.Context, filter reconciliation.ListFilter) ([]reconciliation.View, int64, error) {
	var total int64
	if err := r.applyFilter(r.viewQuery(ctx), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []reconciliationViewRow
	query := r.applyFilter(r.viewQuery(ctx), filter).Select(reconciliationViewColumns)
	if err := r.applySort(query, filter).
		Offset(filter.Page.Offset()).
		Limit(filter.Page.PageSize).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toViews(rows), total, nil
}

// ListAll returns up to limit matches in list order
func (r *GormReconciliationRepository) ListAll(ctx context.Context, filter reconciliation.ListFilter, limit int) ([]reconciliation.View, error) {
	var rows []reconciliationViewRow
	query := r.applyFilter(r.viewQuery(ctx), filter).Select(reconciliationViewColumns)
	if err := r.applySort(query, filter).Limit(limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toViews(rows), nil
}

func toViews(rows []reconciliationViewRow) []reconciliation.View {
	views := make([]reconciliation.View, len(rows))
	for i := range rows {
		views[i] = rows[i].toView()
	}
	return views
}

// applyFilter applies status, priority and search. Search is a
// case-insensitive substring match over title, company name and reference.
func (r *GormReconciliationRepository) applyFilter(query *gorm.DB, filter reconciliation.ListFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("r.status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("r.priority = ?", filter.Priority)
	}
	if filter.Search != "" {
		pattern := "%" + EscapeLike(strings.ToLower(filter.Search)) + "%"
		query = query.Where(
			`(LOWER(r.title) LIKE ? ESCAPE '\' OR LOWER(c.name) LIKE ? ESCAPE '\' OR LOWER(r.reference_number) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern,
		)
	}
	return query
}

func (r *GormReconciliationRepository) applySort(query *gorm.DB, filter reconciliation.ListFilter) *gorm.DB {
	field := ValidateSortField(filter.SortBy, ReconciliationSortColumns, DefaultReconciliationSort)
	order := ValidateSortOrder(filter.SortOrder)
	return query.Order(ReconciliationSortColumns[field] + " " + order).Order("r.id " + order)
}

// Ensure GormReconciliationRepository implements Repository
var _ reconciliation.Repository = (*GormReconciliationRepository)(nil)

// Package reconciliation implements the reconciliation record store use cases.
package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	appshared "github.com/iletigo/mutabakat/internal/application/shared"
	"github.com/iletigo/mutabakat/internal/domain/audit"
	"github.com/iletigo/mutabakat/internal/domain/identity"
	"github.com/iletigo/mutabakat/internal/domain/partner"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"github.com/iletigo/mutabakat/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DefaultExportMaxRows caps an unpaginated export
const DefaultExportMaxRows = 5000

// Config holds record store settings
type Config struct {
	Policy        reconciliation.TransitionPolicy
	ExportMaxRows int
}

// Repositories are the read-side repositories used outside transactions
type Repositories struct {
	Reconciliations reconciliation.Repository
	Details         reconciliation.DetailRepository
	Attachments     reconciliation.AttachmentRepository
	Comments        reconciliation.CommentRepository
}

// Option configures optional collaborators of the service
type Option func(*Service)

// WithStorage sets the attachment object store
func WithStorage(storage ObjectStorage) Option {
	return func(s *Service) { s.storage = storage }
}

// WithRenderer sets the HTML report renderer
func WithRenderer(renderer ReportRenderer) Option {
	return func(s *Service) { s.renderer = renderer }
}

// WithPDFConverter enables PDF output; without it reports are HTML
func WithPDFConverter(pdf PDFConverter) Option {
	return func(s *Service) { s.pdf = pdf }
}

// WithExporter sets the list exporter
func WithExporter(exporter Exporter) Option {
	return func(s *Service) { s.exporter = exporter }
}

// WithMetrics sets the business counters
func WithMetrics(metrics Metrics) Option {
	return func(s *Service) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// Service is the reconciliation record store
type Service struct {
	repos    Repositories
	txScope  appshared.TransactionScope
	storage  ObjectStorage
	renderer ReportRenderer
	pdf      PDFConverter
	exporter Exporter
	metrics  Metrics
	clock    shared.Clock
	config   Config
	logger   *zap.Logger
}

// NewService creates the record store service
func NewService(
	repos Repositories,
	txScope appshared.TransactionScope,
	clock shared.Clock,
	cfg Config,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	if cfg.Policy == "" {
		cfg.Policy = reconciliation.PolicyStrict
	}
	if cfg.ExportMaxRows <= 0 {
		cfg.ExportMaxRows = DefaultExportMaxRows
	}
	s := &Service{
		repos:   repos,
		txScope: txScope,
		metrics: noopMetrics{},
		clock:   clock,
		config:  cfg,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// validateCreate reports the first missing required field, in submission order
func validateCreate(in CreateInput) error {
	required := []struct {
		field string
		value string
	}{
		{"company_code", in.CompanyCode},
		{"company_name", in.CompanyName},
		{"email", in.Email},
		{"phone", in.Phone},
		{"type", in.Type},
		{"debt_credit", in.DebtCredit},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return shared.NewRequiredError(r.field)
		}
	}
	if in.Amount == nil {
		return shared.NewRequiredError("amount")
	}
	if !in.Amount.IsPositive() {
		return shared.NewValidationError("amount must be greater than 0")
	}
	if in.ReconciliationDate == nil || in.ReconciliationDate.IsZero() {
		return shared.NewRequiredError("reconciliation_date")
	}
	if in.Month < 0 || in.Month > 12 {
		return shared.NewValidationError("month must be between 1 and 12")
	}
	if in.Year < 0 {
		return shared.NewValidationError("year must be positive")
	}
	return nil
}

// resolvePriority keeps a valid override and otherwise derives from the amount
func resolvePriority(raw string) reconciliation.Priority {
	if raw == "" {
		return ""
	}
	p, err := reconciliation.ParsePriority(raw)
	if err != nil {
		return ""
	}
	return p
}

// Create records a new reconciliation together with its company upsert,
// reference allocation and CREATE activity entry in one transaction.
func (s *Service) Create(ctx context.Context, actor identity.Actor, in CreateInput) (result *CreateResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "reconciliation", "create",
		attribute.String("company_code", partner.NormalizeCode(in.CompanyCode)))
	defer func() { telemetry.EndSpan(span, err) }()

	if actor.IsZero() {
		return nil, shared.ErrUnauthorized
	}
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	company, err := partner.NewCompany(partner.CompanyInput{
		Code:          in.CompanyCode,
		Name:          in.CompanyName,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		MobilePhone:   in.MobilePhone,
	}, now)
	if err != nil {
		return nil, err
	}

	var rec *reconciliation.Reconciliation
	err = s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		stored, err := repos.Companies().Upsert(ctx, company)
		if err != nil {
			return fmt.Errorf("upsert company: %w", err)
		}
		company = stored

		year := now.Year()
		seq, err := repos.Sequences().Next(ctx, reconciliation.SequenceName(year))
		if err != nil {
			return fmt.Errorf("allocate reference number: %w", err)
		}

		var periodID *uuid.UUID
		period, err := repos.Periods().FindActiveContaining(ctx, *in.ReconciliationDate)
		if err != nil {
			return fmt.Errorf("resolve period: %w", err)
		}
		if period != nil {
			periodID = &period.ID
		}

		rec, err = reconciliation.New(reconciliation.NewParams{
			ReferenceNumber:    reconciliation.FormatReference(year, seq),
			CompanyID:          company.ID,
			CompanyName:        company.Name,
			PeriodID:           periodID,
			Type:               strings.TrimSpace(in.Type),
			DebtCredit:         strings.TrimSpace(in.DebtCredit),
			Amount:             *in.Amount,
			ReconciliationDate: *in.ReconciliationDate,
			Year:               in.Year,
			Month:              in.Month,
			DueDate:            in.DueDate,
			Description:        in.Description,
			Priority:           resolvePriority(in.Priority),
			CreatedBy:          actor.UserID,
		}, now)
		if err != nil {
			return err
		}
		if err := repos.Reconciliations().Create(ctx, rec); err != nil {
			return fmt.Errorf("create reconciliation: %w", err)
		}

		return appendActivity(ctx, repos, actor, audit.ActionCreate, rec.ID, map[string]any{
			"reference_number": rec.ReferenceNumber,
			"company_code":     company.Code,
			"amount":           rec.OurAmount.StringFixed(2),
			"priority":         rec.Priority,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordCreated(ctx, rec.Priority)
	s.logger.Info("Reconciliation created",
		zap.String("reference_number", rec.ReferenceNumber),
		zap.String("company_code", company.Code),
		zap.String("user_id", actor.UserID.String()),
	)
	return &CreateResult{Reconciliation: rec, Company: company}, nil
}

// Get returns one reconciliation. With includeRelated the details,
// attachments and comments are loaded too.
func (s *Service) Get(ctx context.Context, id uuid.UUID, includeRelated bool) (*reconciliation.FullView, error) {
	view, err := s.repos.Reconciliations.FindView(ctx, id)
	if err != nil {
		return nil, err
	}
	full := &reconciliation.FullView{View: *view}
	if !includeRelated {
		return full, nil
	}

	if full.Details, err = s.repos.Details.ListByReconciliation(ctx, id); err != nil {
		return nil, fmt.Errorf("list details: %w", err)
	}
	if full.Attachments, err = s.repos.Attachments.ListByReconciliation(ctx, id); err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}
	if full.Comments, err = s.repos.Comments.ListByReconciliation(ctx, id); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if full.Details == nil {
		full.Details = []reconciliation.Detail{}
	}
	if full.Attachments == nil {
		full.Attachments = []reconciliation.AttachmentView{}
	}
	if full.Comments == nil {
		full.Comments = []reconciliation.CommentView{}
	}
	return full, nil
}

// List returns one page of reconciliations matching filter
func (s *Service) List(ctx context.Context, filter reconciliation.ListFilter) (*shared.Paginated[reconciliation.View], error) {
	rows, total, err := s.repos.Reconciliations.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list reconciliations: %w", err)
	}
	if rows == nil {
		rows = []reconciliation.View{}
	}
	page := shared.NewPaginated(rows, total, filter.Page.Page, filter.Page.PageSize)
	return &page, nil
}

// UpdatePartial applies a status change and/or assignment. The raw patch
// is recorded in the UPDATE activity entry.
func (s *Service) UpdatePartial(ctx context.Context, actor identity.Actor, id uuid.UUID, patch Patch) (view *reconciliation.View, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "reconciliation", "update",
		attribute.String("reconciliation_id", id.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	if patch.Empty() {
		return nil, shared.NewValidationError("no field to update")
	}
	if actor.IsZero() {
		return nil, shared.ErrUnauthorized
	}

	var newStatus reconciliation.Status
	if patch.StatusSet {
		if patch.Status == nil {
			return nil, shared.NewValidationError("invalid status: null")
		}
		if newStatus, err = reconciliation.ParseStatus(*patch.Status); err != nil {
			return nil, err
		}
	}
	var assignee *uuid.UUID
	if patch.AssignedToSet && patch.AssignedTo != nil {
		uid, err := uuid.Parse(*patch.AssignedTo)
		if err != nil {
			return nil, shared.NewValidationError("invalid assigned_to")
		}
		assignee = &uid
	}

	now := s.clock.Now()
	var from reconciliation.Status
	err = s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		rec, err := repos.Reconciliations().FindByID(ctx, id)
		if err != nil {
			return err
		}
		from = rec.Status

		if patch.StatusSet {
			if err := rec.ChangeStatus(newStatus, s.config.Policy, actor, now); err != nil {
				return err
			}
		}
		if patch.AssignedToSet {
			if assignee != nil {
				user, err := repos.Users().FindByID(ctx, *assignee)
				if err != nil && !errors.Is(err, shared.ErrNotFound) {
					return fmt.Errorf("load assignee: %w", err)
				}
				if user == nil || !user.IsActive {
					return shared.NewValidationError("assigned user not found or inactive")
				}
			}
			rec.Assign(assignee, now)
		}

		if err := repos.Reconciliations().Update(ctx, rec); err != nil {
			return fmt.Errorf("update reconciliation: %w", err)
		}
		return appendActivity(ctx, repos, actor, audit.ActionUpdate, rec.ID, patch.Raw, now)
	})
	if err != nil {
		return nil, err
	}

	if patch.StatusSet {
		s.metrics.RecordStatusChange(ctx, from, newStatus)
	}
	s.logger.Info("Reconciliation updated",
		zap.String("reconciliation_id", id.String()),
		zap.String("user_id", actor.UserID.String()),
	)
	return s.repos.Reconciliations.FindView(ctx, id)
}

// ensureExists returns ErrNotFound when the reconciliation is absent
func (s *Service) ensureExists(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repos.Reconciliations.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check reconciliation: %w", err)
	}
	if !ok {
		return shared.ErrNotFound
	}
	return nil
}

func appendActivity(ctx context.Context, repos appshared.TransactionalRepositories, actor identity.Actor, action audit.Action, recordID uuid.UUID, values any, now time.Time) error {
	entry, err := audit.NewEntry(ctx, actor.UserID, action, audit.TableReconciliations, recordID, values, now)
	if err != nil {
		return fmt.Errorf("build activity entry: %w", err)
	}
	if err := repos.Activities().Append(ctx, entry); err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

package reconciliation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	appshared "github.com/iletigo/mutabakat/internal/application/shared"
	"github.com/iletigo/mutabakat/internal/domain/audit"
	"github.com/iletigo/mutabakat/internal/domain/identity"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"github.com/iletigo/mutabakat/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeHTML = "text/html; charset=utf-8"
)

// ReportFileName is the download name of a reconciliation report
func ReportFileName(referenceNumber, format string) string {
	return fmt.Sprintf("mutabakat_%s.%s", referenceNumber, format)
}

// GenerateReport renders the printable report of one reconciliation, as
// PDF when a converter is configured and as HTML otherwise.
func (s *Service) GenerateReport(ctx context.Context, actor identity.Actor, id uuid.UUID) (doc *Document, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "reconciliation", "generate_report",
		attribute.String("reconciliation_id", id.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	if actor.IsZero() {
		return nil, shared.ErrUnauthorized
	}
	if s.renderer == nil {
		return nil, errors.New("report renderer is not configured")
	}

	view, err := s.repos.Reconciliations.FindView(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := s.repos.Details.ListByReconciliation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list details: %w", err)
	}

	html, err := s.renderer.Render(view, details, reportStamp(view, details))
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	doc = &Document{
		FileName:    ReportFileName(view.ReferenceNumber, FormatHTML),
		ContentType: contentTypeHTML,
		Body:        html,
	}
	format := FormatHTML
	if s.pdf != nil {
		pdf, err := s.pdf.Convert(ctx, html)
		if err != nil {
			return nil, fmt.Errorf("convert report to pdf: %w", err)
		}
		format = FormatPDF
		doc = &Document{
			FileName:    ReportFileName(view.ReferenceNumber, FormatPDF),
			ContentType: contentTypePDF,
			Body:        pdf,
		}
	}
	span.SetAttributes(attribute.String("format", format))

	now := s.clock.Now()
	err = s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		return appendActivity(ctx, repos, actor, audit.ActionGeneratePDF, id, map[string]any{
			"reference_number": view.ReferenceNumber,
		}, now)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordReport(ctx, format)
	s.logger.Info("Reconciliation report generated",
		zap.String("reference_number", view.ReferenceNumber),
		zap.String("format", format),
		zap.Int("bytes", len(doc.Body)),
	)
	return doc, nil
}

// reportStamp is the last change to the reported data. Downloads of an
// unchanged record are byte-identical.
func reportStamp(view *reconciliation.View, details []reconciliation.Detail) time.Time {
	stamp := view.UpdatedAt
	for _, d := range details {
		if d.CreatedAt.After(stamp) {
			stamp = d.CreatedAt
		}
	}
	return stamp
}

// Export writes every reconciliation matching filter, ignoring
// pagination, up to the configured row cap.
func (s *Service) Export(ctx context.Context, actor identity.Actor, filter reconciliation.ListFilter) (*Document, error) {
	if actor.IsZero() {
		return nil, shared.ErrUnauthorized
	}
	if s.exporter == nil {
		return nil, errors.New("exporter is not configured")
	}

	rows, err := s.repos.Reconciliations.ListAll(ctx, filter, s.config.ExportMaxRows)
	if err != nil {
		return nil, fmt.Errorf("list reconciliations: %w", err)
	}

	var buf bytes.Buffer
	if err := s.exporter.Write(&buf, rows); err != nil {
		return nil, fmt.Errorf("write export: %w", err)
	}

	now := s.clock.Now()
	err = s.txScope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		entry, err := audit.NewEntry(ctx, actor.UserID, audit.ActionExport, audit.TableReconciliations, uuid.Nil, map[string]any{
			"rows":     len(rows),
			"status":   filter.Status,
			"priority": filter.Priority,
			"search":   filter.Search,
		}, now)
		if err != nil {
			return fmt.Errorf("build activity entry: %w", err)
		}
		return repos.Activities().Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordExport(ctx, len(rows))
	return &Document{
		FileName:    fmt.Sprintf("mutabakatlar_%s.%s", now.Format("20060102_150405"), s.exporter.FileExtension()),
		ContentType: s.exporter.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

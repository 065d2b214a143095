package telemetry

import (
	"context"
	"fmt"

	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ReconciliationMetrics counts business events of the record store
type ReconciliationMetrics struct {
	created       metric.Int64Counter
	statusChanges metric.Int64Counter
	reports       metric.Int64Counter
	attachments   metric.Int64Counter
	uploadBytes   metric.Int64Histogram
	exportRows    metric.Int64Histogram
}

// NewReconciliationMetrics registers the instruments on meter
func NewReconciliationMetrics(meter metric.Meter) (*ReconciliationMetrics, error) {
	m := &ReconciliationMetrics{}
	var err error

	if m.created, err = meter.Int64Counter("reconciliation.created",
		metric.WithDescription("Reconciliations created"), metric.WithUnit("{reconciliation}")); err != nil {
		return nil, fmt.Errorf("reconciliation.created: %w", err)
	}
	if m.statusChanges, err = meter.Int64Counter("reconciliation.status_changes",
		metric.WithDescription("Status transitions applied"), metric.WithUnit("{transition}")); err != nil {
		return nil, fmt.Errorf("reconciliation.status_changes: %w", err)
	}
	if m.reports, err = meter.Int64Counter("reconciliation.reports",
		metric.WithDescription("Reports generated"), metric.WithUnit("{report}")); err != nil {
		return nil, fmt.Errorf("reconciliation.reports: %w", err)
	}
	if m.attachments, err = meter.Int64Counter("reconciliation.attachments",
		metric.WithDescription("Attachments uploaded"), metric.WithUnit("{file}")); err != nil {
		return nil, fmt.Errorf("reconciliation.attachments: %w", err)
	}
	if m.uploadBytes, err = meter.Int64Histogram("reconciliation.attachment.size",
		metric.WithDescription("Uploaded attachment size"), metric.WithUnit("By")); err != nil {
		return nil, fmt.Errorf("reconciliation.attachment.size: %w", err)
	}
	if m.exportRows, err = meter.Int64Histogram("reconciliation.export.rows",
		metric.WithDescription("Rows per spreadsheet export"), metric.WithUnit("{row}")); err != nil {
		return nil, fmt.Errorf("reconciliation.export.rows: %w", err)
	}
	return m, nil
}

// RecordCreated counts a new reconciliation by priority
func (m *ReconciliationMetrics) RecordCreated(ctx context.Context, priority reconciliation.Priority) {
	m.created.Add(ctx, 1, metric.WithAttributes(attribute.String("priority", string(priority))))
}

// RecordStatusChange counts a transition; rewrites of the same status are skipped
func (m *ReconciliationMetrics) RecordStatusChange(ctx context.Context, from, to reconciliation.Status) {
	if from == to {
		return
	}
	m.statusChanges.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", string(from)),
		attribute.String("to", string(to)),
	))
}

// RecordReport counts a generated report by format (pdf or html)
func (m *ReconciliationMetrics) RecordReport(ctx context.Context, format string) {
	m.reports.Add(ctx, 1, metric.WithAttributes(attribute.String("format", format)))
}

// RecordAttachment counts an upload and records its size
func (m *ReconciliationMetrics) RecordAttachment(ctx context.Context, kind reconciliation.AttachmentKind, size int64) {
	attrs := metric.WithAttributes(attribute.String("kind", string(kind)))
	m.attachments.Add(ctx, 1, attrs)
	m.uploadBytes.Record(ctx, size, attrs)
}

// RecordExport records the row count of an export
func (m *ReconciliationMetrics) RecordExport(ctx context.Context, rows int) {
	m.exportRows.Record(ctx, int64(rows))
}

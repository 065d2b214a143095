package reconciliation

import (
	"context"
	"io"
	"time"

	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
)

// ObjectStorage stores attachment bytes under a key
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// ReportRenderer produces the HTML report of one reconciliation
type ReportRenderer interface {
	Render(view *reconciliation.View, details []reconciliation.Detail, generatedAt time.Time) ([]byte, error)
}

// PDFConverter turns rendered HTML into a PDF document
type PDFConverter interface {
	Convert(ctx context.Context, html []byte) ([]byte, error)
}

// Exporter writes a list of reconciliations as a downloadable file
type Exporter interface {
	Write(w io.Writer, rows []reconciliation.View) error
	ContentType() string
	FileExtension() string
}

// Metrics receives business counters. A nil Metrics records nothing.
type Metrics interface {
	RecordCreated(ctx context.Context, priority reconciliation.Priority)
	RecordStatusChange(ctx context.Context, from, to reconciliation.Status)
	RecordReport(ctx context.Context, format string)
	RecordAttachment(ctx context.Context, kind reconciliation.AttachmentKind, size int64)
	RecordExport(ctx context.Context, rows int)
}

type noopMetrics struct{}

func (noopMetrics) RecordCreated(context.Context, reconciliation.Priority) {}
func (noopMetrics) RecordStatusChange(context.Context, reconciliation.Status, reconciliation.Status) {}
func (noopMetrics) RecordReport(context.Context, string) {}
func (noopMetrics) RecordAttachment(context.Context, reconciliation.AttachmentKind, int64) {}
func (noopMetrics) RecordExport(context.Context, int) {}

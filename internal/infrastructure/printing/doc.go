// Package printing renders reconciliation reports.
//
// ReportRenderer produces a self-contained HTML document from a
// reconciliation and its detail lines. ChromedpRenderer turns that HTML
// into an A4 PDF through the Chrome DevTools Protocol, either by launching
// a local headless Chrome or by attaching to a remote one.
//
//	renderer, err := NewReportRenderer()
//	if err != nil {
//	    return err
//	}
//	html, err := renderer.Render(view, details, time.Now())
package printing

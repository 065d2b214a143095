package printing

import (
	"bytes"
	"cmp"
	"embed"
	"fmt"
	"html/template"
	"slices"
	"strings"
	"time"

	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed templates/*.html
var templateFS embed.FS

const reportTemplate = "reconciliation_report.html"

// Turkish date layouts
const (
	dateLayout     = "02.01.2006"
	dateTimeLayout = "02.01.2006 15:04:05"
)

var statusLabels = map[reconciliation.Status]string{
	reconciliation.StatusPending:   "Beklemede",
	reconciliation.StatusMatched:   "Eşleşti",
	reconciliation.StatusDisputed:  "Uyuşmazlık",
	reconciliation.StatusResolved:  "Çözüldü",
	reconciliation.StatusCancelled: "İptal Edildi",
}

// StatusLabel returns the Turkish label of a status; unknown values pass through
func StatusLabel(s reconciliation.Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// DifferenceClass is "neutral" for a zero difference, "negative" otherwise
func DifferenceClass(d decimal.Decimal) string {
	if d.IsZero() {
		return "neutral"
	}
	return "negative"
}

var (
	trUpper            = cases.Upper(language.Turkish)
	trGroup, trDecimal = separators(language.Turkish)
)

// separators reads the grouping and decimal symbols of tag from CLDR
func separators(tag language.Tag) (group, dec string) {
	sample := message.NewPrinter(tag).Sprint(number.Decimal(1234.5, number.Scale(1)))
	return sample[1:2], sample[5:6]
}

// FormatAmount renders an amount with tr-TR grouping and two decimals
// (1.234,50). Digits come from the decimal itself, never from a float.
func FormatAmount(d decimal.Decimal) string {
	digits := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	whole, frac, _ := strings.Cut(digits, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i := range len(whole) {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(trGroup)
		}
		b.WriteByte(whole[i])
	}
	b.WriteString(trDecimal)
	b.WriteString(frac)
	return b.String()
}

// reportRow is one rendered detail line
type reportRow struct {
	LineNumber      int
	Description     string
	OurAmount       string
	TheirAmount     string
	Difference      string
	DifferenceClass string
	Notes           string
}

// reportData is the template model; every value is preformatted
type reportData struct {
	ReferenceNumber string
	Title           string
	Description     string
	CompanyName     string
	CompanyUpper    string
	TaxNumber       string
	PeriodName      string
	PeriodRange     string
	Status          string
	StatusLabel     string
	CreatedAt       string
	AssignedToName  string
	CreatedByName   string
	Currency        string
	OurAmount       string
	TheirAmount     string
	Difference      string
	DifferenceClass string
	Rows            []reportRow
	TotalOur        string
	TotalTheir      string
	TotalDifference string
	TotalDiffClass  string
	GeneratedDate   string
	GeneratedAt     string
}

// ReportRenderer renders the reconciliation report HTML
type ReportRenderer struct {
	tmpl *template.Template
}

// NewReportRenderer parses the embedded report template
func NewReportRenderer() (*ReportRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}
	return &ReportRenderer{tmpl: tmpl}, nil
}

// Render produces the report document. The output depends only on its
// arguments, so identical inputs give byte-identical HTML.
func (r *ReportRenderer) Render(view *reconciliation.View, details []reconciliation.Detail, generatedAt time.Time) ([]byte, error) {
	if view == nil {
		return nil, fmt.Errorf("report requires a reconciliation")
	}
	data := buildReportData(view, details, generatedAt)

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, reportTemplate, data); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

func buildReportData(view *reconciliation.View, details []reconciliation.Detail, generatedAt time.Time) reportData {
	diff := view.Difference()
	d := reportData{
		ReferenceNumber: view.ReferenceNumber,
		Title:           view.Title,
		Description:     view.Description,
		CompanyName:     view.CompanyName,
		CompanyUpper:    trUpper.String(view.CompanyName),
		TaxNumber:       orDash(view.CompanyTaxNumber),
		PeriodName:      orDash(view.PeriodName),
		PeriodRange:     "-",
		Status:          string(view.Status),
		StatusLabel:     StatusLabel(view.Status),
		CreatedAt:       view.CreatedAt.Format(dateLayout),
		AssignedToName:  view.AssignedToName,
		CreatedByName:   orDash(view.CreatedByName),
		Currency:        view.Currency,
		OurAmount:       FormatAmount(view.OurAmount),
		TheirAmount:     FormatAmount(view.TheirAmount),
		Difference:      FormatAmount(diff),
		DifferenceClass: DifferenceClass(diff),
		GeneratedDate:   generatedAt.Format(dateLayout),
		GeneratedAt:     generatedAt.Format(dateTimeLayout),
	}
	if view.PeriodStart != nil && view.PeriodEnd != nil {
		d.PeriodRange = view.PeriodStart.Format(dateLayout) + " - " + view.PeriodEnd.Format(dateLayout)
	}

	if len(details) > 0 {
		lines := slices.Clone(details)
		slices.SortStableFunc(lines, func(a, b reconciliation.Detail) int {
			return cmp.Compare(a.LineNumber, b.LineNumber)
		})
		for _, line := range lines {
			d.Rows = append(d.Rows, reportRow{
				LineNumber:      line.LineNumber,
				Description:     line.Description,
				OurAmount:       FormatAmount(line.OurAmount),
				TheirAmount:     FormatAmount(line.TheirAmount),
				Difference:      FormatAmount(line.Difference()),
				DifferenceClass: DifferenceClass(line.Difference()),
				Notes:           orDash(line.Notes),
			})
		}
		totals := reconciliation.SumDetails(details)
		d.TotalOur = FormatAmount(totals.OurAmount)
		d.TotalTheir = FormatAmount(totals.TheirAmount)
		d.TotalDifference = FormatAmount(totals.Difference)
		d.TotalDiffClass = DifferenceClass(totals.Difference)
	}
	return d
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

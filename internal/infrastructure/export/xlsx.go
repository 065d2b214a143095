// Package export writes reconciliation lists as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/infrastructure/printing"
	"github.com/xuri/excelize/v2"
)

// SheetName is the single worksheet of an export
const SheetName = "Mutabakatlar"

// ContentType is the MIME type of the generated workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const dateLayout = "02.01.2006"

// excel built-in number format "#,##0.00"
const amountNumFmt = 4

var headings = []string{
	"Referans No", "Başlık", "Şirket Kodu", "Şirket", "Tür", "Borç/Alacak",
	"Mutabakat Tarihi", "Bizim Tutar", "Onların Tutarı", "Fark", "Para Birimi",
	"Durum", "Öncelik", "Vade Tarihi", "Sorumlu", "Oluşturan", "Oluşturulma",
}

// amount columns H..J
const (
	firstAmountCol = 8
	lastAmountCol  = 10
)

// XLSXExporter writes reconciliation views into an XLSX workbook
type XLSXExporter struct{}

// NewXLSXExporter creates an exporter
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// ContentType returns the workbook MIME type
func (e *XLSXExporter) ContentType() string {
	return ContentType
}

// FileExtension returns the workbook file extension
func (e *XLSXExporter) FileExtension() string {
	return ".xlsx"
}

// Write renders one header row and one row per reconciliation
func (e *XLSXExporter) Write(w io.Writer, rows []reconciliation.View) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(headings))
	for i, h := range headings {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(headings))
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F8F9FA"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := rowValues(&rows[i])
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if len(rows) > 0 {
		amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: amountNumFmt})
		if err != nil {
			return fmt.Errorf("failed to create amount style: %w", err)
		}
		from, _ := excelize.CoordinatesToCellName(firstAmountCol, 2)
		to, _ := excelize.CoordinatesToCellName(lastAmountCol, len(rows)+1)
		if err := f.SetCellStyle(SheetName, from, to, amountStyle); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(SheetName, "A", lastCol, 18); err != nil {
		return err
	}
	if err := f.AutoFilter(SheetName, "A1:"+lastCol+"1", nil); err != nil {
		return fmt.Errorf("failed to add filter: %w", err)
	}

	return f.Write(w)
}

func rowValues(v *reconciliation.View) []any {
	due := ""
	if v.DueDate != nil {
		due = v.DueDate.Format(dateLayout)
	}
	return []any{
		v.ReferenceNumber,
		v.Title,
		v.CompanyCode,
		v.CompanyName,
		v.Type,
		v.DebtCredit,
		v.ReconciliationDate.Format(dateLayout),
		v.OurAmount.InexactFloat64(),
		v.TheirAmount.InexactFloat64(),
		v.Difference().InexactFloat64(),
		v.Currency,
		printing.StatusLabel(v.Status),
		string(v.Priority),
		due,
		v.AssignedToName,
		v.CreatedByName,
		v.CreatedAt.Format("02.01.2006 15:04"),
	}
}

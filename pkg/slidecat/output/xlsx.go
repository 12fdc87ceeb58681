package output

import (
	"fmt"

	"github.com/ukaji3/slidecat-go/pkg/slidecat/models"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	slidesSheet  = "Slides"
)

var slideHeader = []interface{}{"Slide", "Shapes", "Has Title", "Title", "Error"}

// WriteXLSX writes report to an XLSX workbook at path with a Summary sheet
// of key/value rows and a Slides sheet with one row per slide.
func WriteXLSX(report *models.VerificationReport, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(slidesSheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	summary := summaryRows(report)
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(summary)), bold); err != nil {
		return err
	}

	if err := f.SetSheetRow(slidesSheet, "A1", &slideHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(slidesSheet, "A1", "E1", bold); err != nil {
		return err
	}
	for i, d := range report.SlideDetails {
		row := []interface{}{d.Number, d.Shapes, d.HasTitle, d.Title, d.Error}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(slidesSheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(slidesSheet, "D", "E", 40); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func summaryRows(report *models.VerificationReport) [][]interface{} {
	rows := [][]interface{}{
		{"File", report.File},
		{"Valid", report.Valid},
		{"Error", report.Error},
		{"Slides", report.Slides},
		{"Layouts", report.Layouts},
		{"Masters", report.Masters},
	}
	if report.SlideWidth != nil && report.SlideHeight != nil {
		rows = append(rows,
			[]interface{}{"Slide Width (px)", *report.SlideWidth},
			[]interface{}{"Slide Height (px)", *report.SlideHeight})
	}
	return rows
}

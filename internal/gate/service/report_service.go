package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/razan-ali/petrolube-guardpass/internal/gate/repository"
)

var entryExitReportHeaders = []string{
	"Visitor Name", "ID Number", "Company", "Department", "Purpose",
	"Vehicle Type", "Plate Number", "Entry Time", "Exit Time", "Notes",
}

// ReportService builds xlsx exports from entry/exit logs.
type ReportService struct {
	entryLogs *repository.EntryLogRepository
}

// NewReportService creates a report service.
func NewReportService(entryLogs *repository.EntryLogRepository) *ReportService {
	return &ReportService{entryLogs: entryLogs}
}

// ExportEntryExit builds an xlsx of all entry/exit logs whose entry falls in
// [from, to). Security-admin only.
func (s *ReportService) ExportEntryExit(ctx context.Context, actor Actor, from, to time.Time) (*excelize.File, string, error) {
	if !actor.IsSecurityAdmin() {
		return nil, "", fmt.Errorf("%w: entry/exit reports require security admin", ErrForbidden)
	}
	if !to.After(from) {
		return nil, "", fmt.Errorf("%w: report range end must be after start", ErrValidation)
	}

	logs, err := s.entryLogs.ListBetween(ctx, "", from, to)
	if err != nil {
		return nil, "", fmt.Errorf("list logs: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Entry Exit"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range entryExitReportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, log := range logs {
		row := rowIdx + 2
		if log.Request != nil {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), log.Request.FullName)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), log.Request.IDNumber)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), log.Request.CompanyName)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), log.Request.DepartmentToVisit)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), log.Request.PurposeOfVisit)
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), log.Request.VehicleType)
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), log.Request.PlateNumber)
		}
		if log.EntryTime != nil {
			f.SetCellValue(sheet, fmt.Sprintf("H%d", row), log.EntryTime.Format("2006-01-02 15:04"))
		}
		if log.ExitTime != nil {
			f.SetCellValue(sheet, fmt.Sprintf("I%d", row), log.ExitTime.Format("2006-01-02 15:04"))
		}
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), log.Notes)
	}

	colWidths := []float64{22, 16, 22, 14, 28, 12, 14, 18, 18, 28}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("entry_exit_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	return f, filename, nil
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/razan-ali/petrolube-guardpass/internal/gate/entity"
	"github.com/razan-ali/petrolube-guardpass/internal/gate/repository"
	"github.com/razan-ali/petrolube-guardpass/internal/gate/testutil"
	"gorm.io/gorm"
)

func setupReportTest(t *testing.T) (*ReportService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return NewReportService(repos.EntryLog), db
}

func TestExportEntryExitRequiresSecurityAdmin(t *testing.T) {
	svc, _ := setupReportTest(t)

	from := time.Now().Add(-24 * time.Hour)
	_, _, err := svc.ExportEntryExit(context.Background(), deptAdmin(entity.DepartmentShipping), from, time.Now())
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for department admin, got %v", err)
	}
}

func TestExportEntryExitRejectsEmptyRange(t *testing.T) {
	svc, _ := setupReportTest(t)

	at := time.Now()
	_, _, err := svc.ExportEntryExit(context.Background(), securityAdmin(), at, at)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation when range end is not after start, got %v", err)
	}

	_, _, err = svc.ExportEntryExit(context.Background(), securityAdmin(), at, at.Add(-time.Hour))
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for inverted range, got %v", err)
	}
}

func TestExportEntryExit(t *testing.T) {
	svc, db := setupReportTest(t)
	ctx := context.Background()

	approved := testutil.SeedRequest(t, db, entity.DepartmentShipping, entity.StatusApproved)

	now := time.Now()
	exited := now.Add(-time.Hour)
	seedEntryLog(t, db, approved.ID, now.Add(-2*time.Hour), &exited)
	// Outside the export range, must not appear.
	seedEntryLog(t, db, approved.ID, now.Add(-72*time.Hour), nil)

	from := now.Add(-24 * time.Hour)
	to := now.Add(time.Hour)
	f, filename, err := svc.ExportEntryExit(ctx, securityAdmin(), from, to)
	if err != nil {
		t.Fatalf("ExportEntryExit failed: %v", err)
	}
	wantName := "entry_exit_" + from.Format("20060102") + "_" + to.Format("20060102") + ".xlsx"
	if filename != wantName {
		t.Errorf("Expected filename %q, got %q", wantName, filename)
	}

	sheet := "Entry Exit"
	header, err := f.GetCellValue(sheet, "A1")
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if header != "Visitor Name" {
		t.Errorf("Expected header 'Visitor Name', got %q", header)
	}

	name, _ := f.GetCellValue(sheet, "A2")
	if name != approved.FullName {
		t.Errorf("Expected visitor name %q in row 2, got %q", approved.FullName, name)
	}
	dept, _ := f.GetCellValue(sheet, "D2")
	if dept != entity.DepartmentShipping {
		t.Errorf("Expected department %q in row 2, got %q", entity.DepartmentShipping, dept)
	}
	entryCell, _ := f.GetCellValue(sheet, "H2")
	if entryCell == "" {
		t.Error("Expected entry time in row 2")
	}
	exitCell, _ := f.GetCellValue(sheet, "I2")
	if exitCell == "" {
		t.Error("Expected exit time in row 2")
	}

	extra, _ := f.GetCellValue(sheet, "A3")
	if extra != "" {
		t.Errorf("Expected a single data row, found %q in row 3", extra)
	}
}

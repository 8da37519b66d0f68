package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/razan-ali/petrolube-guardpass/internal/gate/entity"
	"github.com/razan-ali/petrolube-guardpass/internal/gate/repository"
	"github.com/razan-ali/petrolube-guardpass/internal/gate/testutil"
	"gorm.io/gorm"
)

func setupLogTest(t *testing.T) (*LogService, *repository.Repositories, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return NewLogService(repos, nil, "guardpass-test"), repos, db
}

func TestOpenEntryRequiresApprovedRequest(t *testing.T) {
	svc, _, db := setupLogTest(t)
	ctx := context.Background()

	pending := testutil.SeedRequest(t, db, entity.DepartmentShipping, entity.StatusPendingDepartment)
	_, err := svc.OpenEntry(ctx, securityAdmin(), pending.ID, "")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for pending request, got %v", err)
	}

	approved := testutil.SeedRequest(t, db, entity.DepartmentShipping, entity.StatusApproved)
	log, err := svc.OpenEntry(ctx, securityAdmin(), approved.ID, "gate 1, escorted")
	if err != nil {
		t.Fatalf("OpenEntry failed: %v", err)
	}
	if log.EntryTime == nil {
		t.Error("Expected entry_time to be set")
	}
	if !log.Active() {
		t.Error("Expected a fresh log to be active")
	}
	if log.LoggedBy != "sec-admin-001" {
		t.Errorf("Expected logger id recorded, got %q", log.LoggedBy)
	}

	// Entry logging is a security duty.
	_, err = svc.OpenEntry(ctx, deptAdmin(entity.DepartmentShipping), approved.ID, "")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for department admin, got %v", err)
	}
}

func TestCloseExit(t *testing.T) {
	svc, _, db := setupLogTest(t)
	ctx := context.Background()

	approved := testutil.SeedRequest(t, db, entity.DepartmentShipping, entity.StatusApproved)
	log, err := svc.OpenEntry(ctx, securityAdmin(), approved.ID, "")
	if err != nil {
		t.Fatalf("OpenEntry failed: %v", err)
	}

	closed, err := svc.CloseExit(ctx, securityAdmin(), log.ID)
	if err != nil {
		t.Fatalf("CloseExit failed: %v", err)
	}
	if closed.ExitTime == nil {
		t.Error("Expected exit_time to be set")
	}
	if closed.Active() {
		t.Error("Expected a closed log to be inactive")
	}

	// A closed log stays closed.
	_, err = svc.CloseExit(ctx, securityAdmin(), log.ID)
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState on second close, got %v", err)
	}

	_, err = svc.CloseExit(ctx, securityAdmin(), "no-such-log")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUploadDeliveryNoteGate(t *testing.T) {
	svc, repos, db := setupLogTest(t)
	ctx := context.Background()
	body := bytes.NewReader([]byte("pdf-bytes"))

	// Only loading (or both) trucks accept delivery notes.
	carReq := testutil.SeedRequest(t, db, entity.DepartmentShipping, entity.StatusApproved)
	_, err := svc.UploadDeliveryNote(ctx, deptAdmin(entity.DepartmentShipping), carReq.ID, "", "note.pdf", body, 9, "application/pdf")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for non-truck request, got %v", err)
	}

	unloading := testutil.SeedTruckRequest(t, db, entity.DepartmentShipping, entity.StatusApproved, entity.TruckOperationUnloading)
	_, err = svc.UploadDeliveryNote(ctx, deptAdmin(entity.DepartmentShipping), unloading.ID, "", "note.pdf", body, 9, "application/pdf")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for unloading truck, got %v", err)
	}

	loading := testutil.SeedTruckRequest(t, db, entity.DepartmentShipping, entity.StatusApproved, entity.TruckOperationLoading)

	// A security admin cannot upload delivery notes.
	_, err = svc.UploadDeliveryNote(ctx, securityAdmin(), loading.ID, "", "note.pdf", body, 9, "application/pdf")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for security admin, got %v", err)
	}

	// Nor can a foreign department admin.
	_, err = svc.UploadDeliveryNote(ctx, deptAdmin(entity.DepartmentLab), loading.ID, "", "note.pdf", body, 9, "application/pdf")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for foreign department, got %v", err)
	}

	note, err := svc.UploadDeliveryNote(ctx, deptAdmin(entity.DepartmentShipping), loading.ID, "", "note.pdf", bytes.NewReader([]byte("pdf-bytes")), 9, "application/pdf")
	if err != nil {
		t.Fatalf("UploadDeliveryNote failed: %v", err)
	}
	if note.FileURL == "" {
		t.Error("Expected an object path to be recorded")
	}

	notes, err := repos.DeliveryNote.ListByRequest(ctx, loading.ID)
	if err != nil {
		t.Fatalf("ListByRequest failed: %v", err)
	}
	if len(notes) != 1 {
		t.Errorf("Expected 1 note, got %d", len(notes))
	}
}

func TestUploadDeliveryNoteValidatesExitLog(t *testing.T) {
	svc, _, db := setupLogTest(t)
	ctx := context.Background()

	loading := testutil.SeedTruckRequest(t, db, entity.DepartmentShipping, entity.StatusApproved, entity.TruckOperationBoth)
	other := testutil.SeedRequest(t, db, entity.DepartmentShipping, entity.StatusApproved)

	otherLog, err := svc.OpenEntry(ctx, securityAdmin(), other.ID, "")
	if err != nil {
		t.Fatalf("OpenEntry failed: %v", err)
	}

	// An exit log from another request is rejected.
	_, err = svc.UploadDeliveryNote(ctx, deptAdmin(entity.DepartmentShipping), loading.ID, otherLog.ID, "note.pdf", bytes.NewReader(nil), 0, "application/pdf")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for foreign exit log, got %v", err)
	}

	_, err = svc.UploadDeliveryNote(ctx, deptAdmin(entity.DepartmentShipping), loading.ID, "no-such-log", "note.pdf", bytes.NewReader(nil), 0, "application/pdf")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown exit log, got %v", err)
	}

	ownLog, err := svc.OpenEntry(ctx, securityAdmin(), loading.ID, "")
	if err != nil {
		t.Fatalf("OpenEntry failed: %v", err)
	}
	if _, err := svc.UploadDeliveryNote(ctx, deptAdmin(entity.DepartmentShipping), loading.ID, ownLog.ID, "note.pdf", bytes.NewReader(nil), 0, "application/pdf"); err != nil {
		t.Fatalf("UploadDeliveryNote with own log failed: %v", err)
	}
}

func TestAttachDocument(t *testing.T) {
	svc, repos, db := setupLogTest(t)
	ctx := context.Background()

	pending := testutil.SeedRequest(t, db, entity.DepartmentShipping, entity.StatusPendingDepartment)

	_, err := svc.AttachDocument(ctx, pending.ID, "passport", "scan.jpg", bytes.NewReader(nil), 0, "image/jpeg")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for unknown document type, got %v", err)
	}

	doc, err := svc.AttachDocument(ctx, pending.ID, entity.DocumentTypeIDIqama, "scan.jpg", bytes.NewReader(nil), 0, "image/jpeg")
	if err != nil {
		t.Fatalf("AttachDocument failed: %v", err)
	}
	if doc.DocumentType != entity.DocumentTypeIDIqama {
		t.Errorf("Expected document type recorded, got %s", doc.DocumentType)
	}

	docs, err := repos.Document.ListByRequest(ctx, pending.ID)
	if err != nil {
		t.Fatalf("ListByRequest failed: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("Expected 1 document, got %d", len(docs))
	}

	// Terminal requests no longer accept documents.
	rejected := testutil.SeedRequest(t, db, entity.DepartmentShipping, entity.StatusRejected)
	_, err = svc.AttachDocument(ctx, rejected.ID, entity.DocumentTypeDriverPhoto, "photo.jpg", bytes.NewReader(nil), 0, "image/jpeg")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState for rejected request, got %v", err)
	}
}

func TestListLogsScope(t *testing.T) {
	svc, _, db := setupLogTest(t)
	ctx := context.Background()

	approved := testutil.SeedRequest(t, db, entity.DepartmentShipping, entity.StatusApproved)
	if _, err := svc.OpenEntry(ctx, securityAdmin(), approved.ID, ""); err != nil {
		t.Fatalf("OpenEntry failed: %v", err)
	}

	logs, err := svc.ListLogs(ctx, deptAdmin(entity.DepartmentShipping), approved.ID)
	if err != nil {
		t.Fatalf("ListLogs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("Expected 1 log, got %d", len(logs))
	}

	if _, err := svc.ListLogs(ctx, deptAdmin(entity.DepartmentLab), approved.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for foreign department, got %v", err)
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/razan-ali/petrolube-guardpass/internal/gate/entity"
	"github.com/razan-ali/petrolube-guardpass/internal/gate/repository"
	"github.com/razan-ali/petrolube-guardpass/internal/gate/testutil"
	"gorm.io/gorm"
)

func setupStatsTest(t *testing.T) (*StatsService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	// No redis in tests; counts are computed on every call.
	return NewStatsService(repos, nil, nil), db
}

func seedEntryLog(t *testing.T, db *gorm.DB, requestID string, entry time.Time, exit *time.Time) {
	t.Helper()
	log := &entity.EntryExitLog{
		ID:        uuid.NewString(),
		RequestID: requestID,
		EntryTime: &entry,
		ExitTime:  exit,
		CreatedAt: entry,
	}
	if err := db.Create(log).Error; err != nil {
		t.Fatalf("Failed to seed entry log: %v", err)
	}
}

func TestOverviewCounts(t *testing.T) {
	svc, db := setupStatsTest(t)
	ctx := context.Background()

	testutil.SeedRequest(t, db, entity.DepartmentShipping, entity.StatusPendingDepartment)
	testutil.SeedRequest(t, db, entity.DepartmentShipping, entity.StatusPendingDepartment)
	testutil.SeedRequest(t, db, entity.DepartmentLab, entity.StatusPendingDepartment)
	approved := testutil.SeedRequest(t, db, entity.DepartmentShipping, entity.StatusApproved)
	testutil.SeedRequest(t, db, entity.DepartmentLab, entity.StatusRejected)

	now := time.Now()
	exited := now.Add(-time.Hour)
	seedEntryLog(t, db, approved.ID, now.Add(-2*time.Hour), &exited)
	seedEntryLog(t, db, approved.ID, now.Add(-30*time.Minute), nil)
	// Yesterday's log should not count toward today.
	seedEntryLog(t, db, approved.ID, now.Add(-30*time.Hour), nil)

	overview, err := svc.GetOverview(ctx, securityAdmin())
	if err != nil {
		t.Fatalf("GetOverview failed: %v", err)
	}
	if overview.PendingCount != 3 {
		t.Errorf("Expected 3 pending facility-wide, got %d", overview.PendingCount)
	}
	if overview.ApprovedCount != 1 {
		t.Errorf("Expected 1 approved, got %d", overview.ApprovedCount)
	}
	if overview.RejectedCount != 1 {
		t.Errorf("Expected 1 rejected, got %d", overview.RejectedCount)
	}
	if overview.EntriesToday != 2 {
		t.Errorf("Expected 2 entries today, got %d", overview.EntriesToday)
	}
	if overview.ExitsToday != 1 {
		t.Errorf("Expected 1 exit today, got %d", overview.ExitsToday)
	}
}

func TestOverviewDepartmentScope(t *testing.T) {
	svc, db := setupStatsTest(t)
	ctx := context.Background()

	testutil.SeedRequest(t, db, entity.DepartmentShipping, entity.StatusPendingDepartment)
	testutil.SeedRequest(t, db, entity.DepartmentLab, entity.StatusPendingDepartment)
	testutil.SeedRequest(t, db, entity.DepartmentLab, entity.StatusPendingDepartment)

	overview, err := svc.GetOverview(ctx, deptAdmin(entity.DepartmentLab))
	if err != nil {
		t.Fatalf("GetOverview failed: %v", err)
	}
	if overview.PendingCount != 2 {
		t.Errorf("Expected 2 pending in lab scope, got %d", overview.PendingCount)
	}
}

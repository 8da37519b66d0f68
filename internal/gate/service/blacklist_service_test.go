package service

import (
	"context"
	"errors"
	"testing"

	"github.com/razan-ali/petrolube-guardpass/internal/gate/repository"
	"github.com/razan-ali/petrolube-guardpass/internal/gate/testutil"
)

func setupBlacklistTest(t *testing.T) *BlacklistService {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return NewBlacklistService(repos.Blacklist)
}

func TestBlacklistAdd(t *testing.T) {
	svc := setupBlacklistTest(t)
	ctx := context.Background()

	// Security only.
	_, err := svc.Add(ctx, deptAdmin("shipping"), &AddEntryRequest{IDNumber: "111", Reason: "x"})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for department admin, got %v", err)
	}

	// A reason is mandatory.
	_, err = svc.Add(ctx, securityAdmin(), &AddEntryRequest{IDNumber: "111", Reason: "  "})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for blank reason, got %v", err)
	}

	// At least one identifier is mandatory.
	_, err = svc.Add(ctx, securityAdmin(), &AddEntryRequest{Reason: "tailgating"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation without identifiers, got %v", err)
	}

	entry, err := svc.Add(ctx, securityAdmin(), &AddEntryRequest{
		IDNumber:    "1112223334",
		VisitorName: "Repeat Offender",
		Reason:      "attempted entry without clearance",
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if !entry.Active() {
		t.Error("Expected a new entry to be active")
	}
	if entry.BlacklistedBy != "sec-admin-001" {
		t.Errorf("Expected adder recorded, got %q", entry.BlacklistedBy)
	}

	blocked, err := svc.IsBlacklisted(ctx, "1112223334", "")
	if err != nil {
		t.Fatalf("IsBlacklisted failed: %v", err)
	}
	if !blocked {
		t.Error("Expected id number to be blocked")
	}
}

func TestBlacklistRemoveIsSoftDelete(t *testing.T) {
	svc := setupBlacklistTest(t)
	ctx := context.Background()

	entry, err := svc.Add(ctx, securityAdmin(), &AddEntryRequest{
		PlateNumber: "TRK 4521",
		Reason:      "expired insurance",
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	removed, err := svc.Remove(ctx, securityAdmin(), entry.ID)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed.RemovedAt == nil {
		t.Error("Expected removed_at to be set")
	}

	// The row survives for audit, but no longer blocks.
	blocked, err := svc.IsBlacklisted(ctx, "", "TRK 4521")
	if err != nil {
		t.Fatalf("IsBlacklisted failed: %v", err)
	}
	if blocked {
		t.Error("Expected removed entry to stop blocking")
	}

	// Removing twice is a state error.
	_, err = svc.Remove(ctx, securityAdmin(), entry.ID)
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState on second remove, got %v", err)
	}

	_, err = svc.Remove(ctx, securityAdmin(), "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestBlacklistList(t *testing.T) {
	svc := setupBlacklistTest(t)
	ctx := context.Background()

	a, _ := svc.Add(ctx, securityAdmin(), &AddEntryRequest{IDNumber: "100", Reason: "r1"})
	if _, err := svc.Add(ctx, securityAdmin(), &AddEntryRequest{IDNumber: "200", Reason: "r2"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := svc.Remove(ctx, securityAdmin(), a.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	active, err := svc.List(ctx, securityAdmin(), true)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(active) != 1 {
		t.Errorf("Expected 1 active entry, got %d", len(active))
	}

	all, err := svc.List(ctx, securityAdmin(), false)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 entries including removed, got %d", len(all))
	}

	if _, err := svc.List(ctx, deptAdmin("shipping"), true); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for department admin, got %v", err)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/razan-ali/petrolube-guardpass/internal/gate/entity"
	"github.com/razan-ali/petrolube-guardpass/internal/gate/repository"
)

// BlacklistService manages the submission deny-list.
type BlacklistService struct {
	repo *repository.BlacklistRepository
}

// NewBlacklistService creates a blacklist service.
func NewBlacklistService(repo *repository.BlacklistRepository) *BlacklistService {
	return &BlacklistService{repo: repo}
}

// AddEntryRequest is the payload for a new blacklist entry.
type AddEntryRequest struct {
	IDNumber    string `json:"id_number"`
	PlateNumber string `json:"plate_number"`
	VisitorName string `json:"visitor_name"`
	Reason      string `json:"reason" binding:"required"`
}

// Add bars an id number and/or plate number. Security admins only; a reason
// is mandatory and at least one identifier must be given.
func (s *BlacklistService) Add(ctx context.Context, actor Actor, req *AddEntryRequest) (*entity.BlacklistEntry, error) {
	if !actor.IsSecurityAdmin() {
		return nil, fmt.Errorf("%w: blacklist is managed by security admins", ErrForbidden)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("%w: reason required", ErrValidation)
	}
	if strings.TrimSpace(req.IDNumber) == "" && strings.TrimSpace(req.PlateNumber) == "" {
		return nil, fmt.Errorf("%w: id_number or plate_number required", ErrValidation)
	}

	entry := &entity.BlacklistEntry{
		ID:            uuid.New().String(),
		IDNumber:      strings.TrimSpace(req.IDNumber),
		PlateNumber:   strings.TrimSpace(req.PlateNumber),
		VisitorName:   req.VisitorName,
		Reason:        req.Reason,
		BlacklistedBy: actor.ID,
		BlacklistedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create blacklist entry: %w", err)
	}
	return entry, nil
}

// Remove soft-deletes an entry by stamping removed_at. The row is retained
// as audit trail.
func (s *BlacklistService) Remove(ctx context.Context, actor Actor, entryID string) (*entity.BlacklistEntry, error) {
	if !actor.IsSecurityAdmin() {
		return nil, fmt.Errorf("%w: blacklist is managed by security admins", ErrForbidden)
	}

	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !entry.Active() {
		return nil, fmt.Errorf("%w: entry is already removed", ErrInvalidState)
	}

	now := time.Now()
	ok, err := s.repo.Remove(ctx, entryID, now)
	if err != nil {
		return nil, fmt.Errorf("remove blacklist entry: %w", err)
	}
	if !ok {
		return nil, ErrInvalidState
	}
	entry.RemovedAt = &now
	return entry, nil
}

// List returns blacklist entries, optionally only active ones.
func (s *BlacklistService) List(ctx context.Context, actor Actor, activeOnly bool) ([]entity.BlacklistEntry, error) {
	if !actor.IsSecurityAdmin() {
		return nil, fmt.Errorf("%w: blacklist is managed by security admins", ErrForbidden)
	}
	return s.repo.List(ctx, activeOnly)
}

// IsBlacklisted exposes the submission gate lookup.
func (s *BlacklistService) IsBlacklisted(ctx context.Context, idNumber, plateNumber string) (bool, error) {
	return s.repo.IsBlacklisted(ctx, idNumber, plateNumber)
}

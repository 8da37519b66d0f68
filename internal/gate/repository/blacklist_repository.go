package repository

import (
	"context"
	"errors"
	"time"

	"github.com/razan-ali/petrolube-guardpass/internal/gate/entity"
	"gorm.io/gorm"
)

// BlacklistRepository persists blacklist entries.
type BlacklistRepository struct {
	db *gorm.DB
}

// NewBlacklistRepository creates a blacklist repository.
func NewBlacklistRepository(db *gorm.DB) *BlacklistRepository {
	return &BlacklistRepository{db: db}
}

// Create inserts a new entry.
func (r *BlacklistRepository) Create(ctx context.Context, entry *entity.BlacklistEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByID loads an entry.
func (r *BlacklistRepository) FindByID(ctx context.Context, id string) (*entity.BlacklistEntry, error) {
	var entry entity.BlacklistEntry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// IsBlacklisted reports whether an active entry (removed_at null) matches the
// given id number or plate number. Empty arguments never match.
func (r *BlacklistRepository) IsBlacklisted(ctx context.Context, idNumber, plateNumber string) (bool, error) {
	if idNumber == "" && plateNumber == "" {
		return false, nil
	}

	query := r.db.WithContext(ctx).
		Model(&entity.BlacklistEntry{}).
		Where("removed_at IS NULL")

	switch {
	case idNumber != "" && plateNumber != "":
		query = query.Where("id_number = ? OR plate_number = ?", idNumber, plateNumber)
	case idNumber != "":
		query = query.Where("id_number = ?", idNumber)
	default:
		query = query.Where("plate_number = ?", plateNumber)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Remove soft-deletes an entry by stamping removed_at. Returns false if the
// entry was already removed.
func (r *BlacklistRepository) Remove(ctx context.Context, id string, removedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.BlacklistEntry{}).
		Where("id = ? AND removed_at IS NULL", id).
		Update("removed_at", removedAt)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// List returns entries, active ones first, newest first.
func (r *BlacklistRepository) List(ctx context.Context, activeOnly bool) ([]entity.BlacklistEntry, error) {
	query := r.db.WithContext(ctx).Model(&entity.BlacklistEntry{})
	if activeOnly {
		query = query.Where("removed_at IS NULL")
	}

	var entries []entity.BlacklistEntry
	if err := query.Order("blacklisted_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

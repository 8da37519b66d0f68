package repository

import (
	"context"
	"errors"
	"time"

	"github.com/razan-ali/petrolube-guardpass/internal/gate/entity"
	"gorm.io/gorm"
)

// EntryLogRepository persists entry/exit logs.
type EntryLogRepository struct {
	db *gorm.DB
}

// NewEntryLogRepository creates an entry log repository.
func NewEntryLogRepository(db *gorm.DB) *EntryLogRepository {
	return &EntryLogRepository{db: db}
}

// Create inserts a new log.
func (r *EntryLogRepository) Create(ctx context.Context, log *entity.EntryExitLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindByID loads a log.
func (r *EntryLogRepository) FindByID(ctx context.Context, id string) (*entity.EntryExitLog, error) {
	var log entity.EntryExitLog
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// CloseGuarded sets exit_time on a still-open log. Returns false if the log
// was already closed by another writer.
func (r *EntryLogRepository) CloseGuarded(ctx context.Context, id string, exitTime time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.EntryExitLog{}).
		Where("id = ? AND exit_time IS NULL", id).
		Update("exit_time", exitTime)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByRequest returns all logs for one request, newest entry first.
func (r *EntryLogRepository) ListByRequest(ctx context.Context, requestID string) ([]entity.EntryExitLog, error) {
	var logs []entity.EntryExitLog
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("entry_time DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// ListBetween returns logs whose entry falls inside [from, to), joined with
// their requests, optionally department-scoped.
func (r *EntryLogRepository) ListBetween(ctx context.Context, department string, from, to time.Time) ([]entity.EntryExitLog, error) {
	query := r.db.WithContext(ctx).
		Preload("Request").
		Joins("JOIN visitor_requests ON visitor_requests.id = entry_exit_logs.request_id").
		Where("entry_exit_logs.entry_time >= ? AND entry_exit_logs.entry_time < ?", from, to)
	if department != "" {
		query = query.Where("visitor_requests.department_to_visit = ?", department)
	}

	var logs []entity.EntryExitLog
	if err := query.Order("entry_exit_logs.entry_time ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// CountEntriesBetween counts logs with entry_time in [from, to).
func (r *EntryLogRepository) CountEntriesBetween(ctx context.Context, department string, from, to time.Time) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.EntryExitLog{}).
		Joins("JOIN visitor_requests ON visitor_requests.id = entry_exit_logs.request_id").
		Where("entry_exit_logs.entry_time >= ? AND entry_exit_logs.entry_time < ?", from, to)
	if department != "" {
		query = query.Where("visitor_requests.department_to_visit = ?", department)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountExitsBetween counts logs with exit_time in [from, to).
func (r *EntryLogRepository) CountExitsBetween(ctx context.Context, department string, from, to time.Time) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.EntryExitLog{}).
		Joins("JOIN visitor_requests ON visitor_requests.id = entry_exit_logs.request_id").
		Where("entry_exit_logs.exit_time IS NOT NULL").
		Where("entry_exit_logs.exit_time >= ? AND entry_exit_logs.exit_time < ?", from, to)
	if department != "" {
		query = query.Where("visitor_requests.department_to_visit = ?", department)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeliveryNoteRepository persists delivery notes.
type DeliveryNoteRepository struct {
	db *gorm.DB
}

// NewDeliveryNoteRepository creates a delivery note repository.
func NewDeliveryNoteRepository(db *gorm.DB) *DeliveryNoteRepository {
	return &DeliveryNoteRepository{db: db}
}

// Create inserts a new note.
func (r *DeliveryNoteRepository) Create(ctx context.Context, note *entity.DeliveryNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// ListByRequest returns all notes for one request, newest first.
func (r *DeliveryNoteRepository) ListByRequest(ctx context.Context, requestID string) ([]entity.DeliveryNote, error) {
	var notes []entity.DeliveryNote
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("uploaded_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// DocumentRepository persists request documents.
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a document repository.
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts a new document.
func (r *DocumentRepository) Create(ctx context.Context, doc *entity.RequestDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// ListByRequest returns all documents for one request.
func (r *DocumentRepository) ListByRequest(ctx context.Context, requestID string) ([]entity.RequestDocument, error) {
	var docs []entity.RequestDocument
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("uploaded_at ASC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

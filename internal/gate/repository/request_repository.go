package repository

import (
	"context"
	"errors"

	"github.com/razan-ali/petrolube-guardpass/internal/gate/entity"
	"gorm.io/gorm"
)

// RequestRepository persists visitor requests.
type RequestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates a request repository.
func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create inserts a new request.
func (r *RequestRepository) Create(ctx context.Context, req *entity.VisitorRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// FindByID loads a request without relations.
func (r *RequestRepository) FindByID(ctx context.Context, id string) (*entity.VisitorRequest, error) {
	var req entity.VisitorRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// FindByIDWithChildren loads a request with its entry/exit logs, delivery
// notes and documents.
func (r *RequestRepository) FindByIDWithChildren(ctx context.Context, id string) (*entity.VisitorRequest, error) {
	var req entity.VisitorRequest
	err := r.db.WithContext(ctx).
		Preload("EntryExitLogs").
		Preload("DeliveryNotes").
		Preload("Documents").
		Where("id = ?", id).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// ListFilter scopes a request listing. An empty Department means unscoped
// (security admins).
type ListFilter struct {
	Department   string
	Status       string
	OrderBy      string
	WithChildren bool
}

// List returns a point-in-time snapshot of requests matching the filter.
func (r *RequestRepository) List(ctx context.Context, f ListFilter) ([]entity.VisitorRequest, error) {
	query := r.db.WithContext(ctx).Model(&entity.VisitorRequest{})

	if f.Department != "" {
		query = query.Where("department_to_visit = ?", f.Department)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.WithChildren {
		query = query.
			Preload("EntryExitLogs").
			Preload("DeliveryNotes").
			Preload("Documents")
	}

	orderBy := f.OrderBy
	if orderBy == "" {
		orderBy = "submitted_at DESC"
	}

	var requests []entity.VisitorRequest
	if err := query.Order(orderBy).Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateStatusGuarded applies a transition as a single conditional update.
// The WHERE clause on the expected status serializes concurrent transition
// attempts: the second writer affects zero rows and must be treated as stale.
func (r *RequestRepository) UpdateStatusGuarded(ctx context.Context, id, expectedStatus string, updates map[string]interface{}) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.VisitorRequest{}).
		Where("id = ? AND status = ?", id, expectedStatus).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountByStatus counts requests in one status, optionally department-scoped.
func (r *RequestRepository) CountByStatus(ctx context.Context, department, status string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.VisitorRequest{}).
		Where("status = ?", status)
	if department != "" {
		query = query.Where("department_to_visit = ?", department)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

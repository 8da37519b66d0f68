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
	"github.com/razan-ali/petrolube-guardpass/internal/gate/sse"
)

// RequestService is the request lifecycle engine: submission, the two-stage
// approval state machine, rejection, and the derived views.
type RequestService struct {
	repos *repository.Repositories
	stats *StatsService
}

// NewRequestService creates the lifecycle engine.
func NewRequestService(repos *repository.Repositories) *RequestService {
	return &RequestService{repos: repos}
}

// SetStatsService wires the statistics cache for invalidation on transitions.
func (s *RequestService) SetStatsService(stats *StatsService) {
	s.stats = stats
}

// SubmitRequest is the submission form payload.
type SubmitRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	IDNumber    string `json:"id_number" binding:"required"`
	Nationality string `json:"nationality" binding:"required"`
	CompanyName string `json:"company_name" binding:"required"`

	DepartmentToVisit string `json:"department_to_visit" binding:"required"`
	PurposeOfVisit    string `json:"purpose_of_visit" binding:"required"`
	PlantLocation     string `json:"plant_location"`

	HasVehicle           bool   `json:"has_vehicle"`
	VehicleType          string `json:"vehicle_type"`
	PlateNumber          string `json:"plate_number"`
	TruckOperation       string `json:"truck_operation"`
	ParkingSlotAvailable *bool  `json:"parking_slot_available"`

	VisitStartDate *time.Time `json:"visit_start_date"`
	VisitEndDate   *time.Time `json:"visit_end_date"`
}

// nullableString maps a blank string to NULL for the audit columns.
func nullableString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func (s *RequestService) validateSubmission(req *SubmitRequest) error {
	if strings.TrimSpace(req.FullName) == "" ||
		strings.TrimSpace(req.IDNumber) == "" ||
		strings.TrimSpace(req.Nationality) == "" ||
		strings.TrimSpace(req.CompanyName) == "" ||
		strings.TrimSpace(req.PurposeOfVisit) == "" {
		return fmt.Errorf("%w: all visitor fields are required", ErrValidation)
	}
	if !entity.IsValidDepartment(req.DepartmentToVisit) {
		return fmt.Errorf("%w: unknown department %q", ErrValidation, req.DepartmentToVisit)
	}
	if req.PlantLocation != "" && !entity.IsValidPlantLocation(req.PlantLocation) {
		return fmt.Errorf("%w: unknown plant location %q", ErrValidation, req.PlantLocation)
	}

	// Vehicle sub-fields are required iff a vehicle is arriving; truck
	// sub-fields are required iff the vehicle is a truck.
	if !req.HasVehicle {
		if req.VehicleType != "" && req.VehicleType != entity.VehicleTypeNone {
			return fmt.Errorf("%w: vehicle_type must be none without a vehicle", ErrValidation)
		}
		if strings.TrimSpace(req.PlateNumber) != "" {
			return fmt.Errorf("%w: plate_number only applies to vehicles", ErrValidation)
		}
		if req.TruckOperation != "" {
			return fmt.Errorf("%w: truck_operation only applies to trucks", ErrValidation)
		}
		return nil
	}

	if !entity.IsValidVehicleType(req.VehicleType) || req.VehicleType == entity.VehicleTypeNone {
		return fmt.Errorf("%w: vehicle_type is required", ErrValidation)
	}
	if strings.TrimSpace(req.PlateNumber) == "" {
		return fmt.Errorf("%w: plate_number is required", ErrValidation)
	}
	if req.VehicleType == entity.VehicleTypeTruck {
		if !entity.IsValidTruckOperation(req.TruckOperation) {
			return fmt.Errorf("%w: truck_operation is required", ErrValidation)
		}
	} else if req.TruckOperation != "" {
		return fmt.Errorf("%w: truck_operation only applies to trucks", ErrValidation)
	}
	return nil
}

// Submit creates a new request in pending_department. The blacklist gate is
// enforced here, before the insert; it is not a UI concern.
func (s *RequestService) Submit(ctx context.Context, req *SubmitRequest) (*entity.VisitorRequest, error) {
	if err := s.validateSubmission(req); err != nil {
		return nil, err
	}

	plate := ""
	if req.HasVehicle {
		plate = req.PlateNumber
	}
	blocked, err := s.repos.Blacklist.IsBlacklisted(ctx, req.IDNumber, plate)
	if err != nil {
		return nil, fmt.Errorf("blacklist lookup: %w", err)
	}
	if blocked {
		return nil, ErrBlacklisted
	}

	vehicleType := req.VehicleType
	if !req.HasVehicle {
		vehicleType = entity.VehicleTypeNone
	}

	now := time.Now()
	request := &entity.VisitorRequest{
		ID:                   uuid.New().String(),
		FullName:             req.FullName,
		IDNumber:             req.IDNumber,
		Nationality:          req.Nationality,
		CompanyName:          req.CompanyName,
		DepartmentToVisit:    req.DepartmentToVisit,
		PurposeOfVisit:       req.PurposeOfVisit,
		PlantLocation:        req.PlantLocation,
		HasVehicle:           req.HasVehicle,
		VehicleType:          vehicleType,
		PlateNumber:          plate,
		TruckOperation:       req.TruckOperation,
		ParkingSlotAvailable: req.ParkingSlotAvailable,
		VisitStartDate:       req.VisitStartDate,
		VisitEndDate:         req.VisitEndDate,
		Status:               entity.StatusPendingDepartment,
		SubmittedAt:          now,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.repos.Request.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	s.afterTransition(request.DepartmentToVisit, request.ID, "submitted")
	return request, nil
}

// DepartmentApprove moves pending_department -> pending_security. Only the
// admin of the request's own department may trigger it.
func (s *RequestService) DepartmentApprove(ctx context.Context, actor Actor, requestID, remarks string) (*entity.VisitorRequest, error) {
	if !actor.IsDepartmentAdmin() {
		return nil, fmt.Errorf("%w: department approval requires a department admin", ErrForbidden)
	}

	request, err := s.repos.Request.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if request.DepartmentToVisit != actor.Department {
		return nil, fmt.Errorf("%w: request belongs to department %s", ErrForbidden, request.DepartmentToVisit)
	}

	now := time.Now()
	ok, err := s.repos.Request.UpdateStatusGuarded(ctx, requestID, entity.StatusPendingDepartment, map[string]interface{}{
		"status":                 entity.StatusPendingSecurity,
		"department_approved_by": actor.ID,
		"department_approved_at": now,
		"department_remarks":     nullableString(remarks),
		"updated_at":             now,
	})
	if err != nil {
		return nil, fmt.Errorf("department approve: %w", err)
	}
	if !ok {
		// The row exists but the guard did not match: a concurrent
		// transition won.
		return nil, ErrInvalidState
	}

	s.afterTransition(request.DepartmentToVisit, requestID, "department_approved")
	return s.repos.Request.FindByID(ctx, requestID)
}

// SecurityApprove moves pending_security -> approved. Security admins have
// facility-wide scope.
func (s *RequestService) SecurityApprove(ctx context.Context, actor Actor, requestID, remarks string) (*entity.VisitorRequest, error) {
	if !actor.IsSecurityAdmin() {
		return nil, fmt.Errorf("%w: security approval requires a security admin", ErrForbidden)
	}

	request, err := s.repos.Request.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	ok, err := s.repos.Request.UpdateStatusGuarded(ctx, requestID, entity.StatusPendingSecurity, map[string]interface{}{
		"status":               entity.StatusApproved,
		"security_approved_by": actor.ID,
		"security_approved_at": now,
		"security_remarks":     nullableString(remarks),
		"updated_at":           now,
	})
	if err != nil {
		return nil, fmt.Errorf("security approve: %w", err)
	}
	if !ok {
		return nil, ErrInvalidState
	}

	s.afterTransition(request.DepartmentToVisit, requestID, "approved")
	return s.repos.Request.FindByID(ctx, requestID)
}

// Reject moves a non-terminal request to rejected. Department admins reject
// from pending_department within their own department; security admins from
// pending_security. A non-empty reason is mandatory.
func (s *RequestService) Reject(ctx context.Context, actor Actor, requestID, reason string) (*entity.VisitorRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason required", ErrValidation)
	}

	var expectedStatus string
	switch {
	case actor.IsDepartmentAdmin():
		expectedStatus = entity.StatusPendingDepartment
	case actor.IsSecurityAdmin():
		expectedStatus = entity.StatusPendingSecurity
	default:
		return nil, fmt.Errorf("%w: rejection requires an admin role", ErrForbidden)
	}

	request, err := s.repos.Request.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if actor.IsDepartmentAdmin() && request.DepartmentToVisit != actor.Department {
		return nil, fmt.Errorf("%w: request belongs to department %s", ErrForbidden, request.DepartmentToVisit)
	}

	now := time.Now()
	ok, err := s.repos.Request.UpdateStatusGuarded(ctx, requestID, expectedStatus, map[string]interface{}{
		"status":           entity.StatusRejected,
		"rejected_by":      actor.ID,
		"rejected_at":      now,
		"rejection_reason": reason,
		"updated_at":       now,
	})
	if err != nil {
		return nil, fmt.Errorf("reject: %w", err)
	}
	if !ok {
		return nil, ErrInvalidState
	}

	s.afterTransition(request.DepartmentToVisit, requestID, "rejected")
	return s.repos.Request.FindByID(ctx, requestID)
}

// ListPending is the pending view: pending_department, actor-scoped, newest
// submissions first.
func (s *RequestService) ListPending(ctx context.Context, actor Actor) ([]entity.VisitorRequest, error) {
	return s.repos.Request.List(ctx, repository.ListFilter{
		Department: actor.Scope(),
		Status:     entity.StatusPendingDepartment,
		OrderBy:    "submitted_at DESC",
	})
}

// ListPendingSecurity lists requests awaiting security clearance.
func (s *RequestService) ListPendingSecurity(ctx context.Context, actor Actor) ([]entity.VisitorRequest, error) {
	if !actor.IsSecurityAdmin() {
		return nil, fmt.Errorf("%w: security queue is restricted to security admins", ErrForbidden)
	}
	return s.repos.Request.List(ctx, repository.ListFilter{
		Status:  entity.StatusPendingSecurity,
		OrderBy: "department_approved_at DESC",
	})
}

// ListApproved is the approved view with entry/exit and delivery note
// children, ordered by security approval time.
func (s *RequestService) ListApproved(ctx context.Context, actor Actor) ([]entity.VisitorRequest, error) {
	return s.repos.Request.List(ctx, repository.ListFilter{
		Department:   actor.Scope(),
		Status:       entity.StatusApproved,
		OrderBy:      "security_approved_at DESC",
		WithChildren: true,
	})
}

// ListRejected is the rejected view, ordered by rejection time.
func (s *RequestService) ListRejected(ctx context.Context, actor Actor) ([]entity.VisitorRequest, error) {
	return s.repos.Request.List(ctx, repository.ListFilter{
		Department: actor.Scope(),
		Status:     entity.StatusRejected,
		OrderBy:    "rejected_at DESC",
	})
}

// Get loads one request with children, enforcing department scope.
func (s *RequestService) Get(ctx context.Context, actor Actor, requestID string) (*entity.VisitorRequest, error) {
	request, err := s.repos.Request.FindByIDWithChildren(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if actor.IsDepartmentAdmin() && request.DepartmentToVisit != actor.Department {
		return nil, fmt.Errorf("%w: request belongs to department %s", ErrForbidden, request.DepartmentToVisit)
	}
	return request, nil
}

func (s *RequestService) afterTransition(department, requestID, action string) {
	if s.stats != nil {
		s.stats.Invalidate(department)
	}
	go sse.PublishRequestUpdate(department, requestID, action)
}

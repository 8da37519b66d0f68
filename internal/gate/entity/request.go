package entity

import (
	"time"
)

// Approval status. The state machine is:
// pending_department -> pending_security -> approved, with any non-terminal
// state -> rejected. approved and rejected are terminal.
const (
	StatusPendingDepartment = "pending_department"
	StatusPendingSecurity   = "pending_security"
	StatusApproved          = "approved"
	StatusRejected          = "rejected"
)

// Departments a visitor may request access to.
const (
	DepartmentShipping    = "shipping"
	DepartmentRawMaterial = "raw_material"
	DepartmentLab         = "lab"
	DepartmentCoordinator = "coordinator"
	DepartmentBulkOil     = "bulk_oil"
)

// Vehicle types
const (
	VehicleTypeTruck = "truck"
	VehicleTypeCar   = "car"
	VehicleTypeNone  = "none"
)

// Truck operations
const (
	TruckOperationLoading   = "loading"
	TruckOperationUnloading = "unloading"
	TruckOperationBoth      = "both"
)

// Plant locations
const (
	PlantLocationJeddah = "jeddah"
	PlantLocationRiyadh = "riyadh"
)

// IsValidDepartment reports whether s is a known department.
func IsValidDepartment(s string) bool {
	switch s {
	case DepartmentShipping, DepartmentRawMaterial, DepartmentLab,
		DepartmentCoordinator, DepartmentBulkOil:
		return true
	}
	return false
}

// IsValidVehicleType reports whether s is a known vehicle type.
func IsValidVehicleType(s string) bool {
	switch s {
	case VehicleTypeTruck, VehicleTypeCar, VehicleTypeNone:
		return true
	}
	return false
}

// IsValidTruckOperation reports whether s is a known truck operation.
func IsValidTruckOperation(s string) bool {
	switch s {
	case TruckOperationLoading, TruckOperationUnloading, TruckOperationBoth:
		return true
	}
	return false
}

// IsValidPlantLocation reports whether s is a known plant location.
func IsValidPlantLocation(s string) bool {
	switch s {
	case PlantLocationJeddah, PlantLocationRiyadh:
		return true
	}
	return false
}

// IsTerminalStatus reports whether status permits no further transitions.
func IsTerminalStatus(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

// VisitorRequest is one visitor permission request. Column names and enum
// values are the stored contract and must not change.
type VisitorRequest struct {
	ID          string `json:"id" gorm:"primaryKey;size:36"`
	FullName    string `json:"full_name" gorm:"size:200;not null"`
	IDNumber    string `json:"id_number" gorm:"size:64;not null;index"`
	Nationality string `json:"nationality" gorm:"size:100;not null"`
	CompanyName string `json:"company_name" gorm:"size:200;not null"`

	DepartmentToVisit string `json:"department_to_visit" gorm:"size:32;not null;index:idx_visitor_requests_dept_status"`
	PurposeOfVisit    string `json:"purpose_of_visit" gorm:"type:text;not null"`
	PlantLocation     string `json:"plant_location" gorm:"size:32"`

	HasVehicle           bool   `json:"has_vehicle" gorm:"not null;default:false"`
	VehicleType          string `json:"vehicle_type" gorm:"size:16;default:'none'"`
	PlateNumber          string `json:"plate_number" gorm:"size:32"`
	TruckOperation       string `json:"truck_operation" gorm:"size:16"`
	ParkingSlotAvailable *bool  `json:"parking_slot_available"`

	VisitStartDate *time.Time `json:"visit_start_date"`
	VisitEndDate   *time.Time `json:"visit_end_date"`

	Status      string    `json:"status" gorm:"size:32;not null;default:'pending_department';index:idx_visitor_requests_dept_status"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"not null;index"`

	// Audit triples, each written exactly once by its transition.
	// Nullable until that transition runs.
	DepartmentApprovedBy *string    `json:"department_approved_by" gorm:"size:36"`
	DepartmentApprovedAt *time.Time `json:"department_approved_at"`
	DepartmentRemarks    *string    `json:"department_remarks" gorm:"type:text"`

	SecurityApprovedBy *string    `json:"security_approved_by" gorm:"size:36"`
	SecurityApprovedAt *time.Time `json:"security_approved_at"`
	SecurityRemarks    *string    `json:"security_remarks" gorm:"type:text"`

	RejectedBy      *string    `json:"rejected_by" gorm:"size:36"`
	RejectedAt      *time.Time `json:"rejected_at"`
	RejectionReason *string    `json:"rejection_reason" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	EntryExitLogs []EntryExitLog    `json:"entry_exit_logs,omitempty" gorm:"foreignKey:RequestID"`
	DeliveryNotes []DeliveryNote    `json:"delivery_notes,omitempty" gorm:"foreignKey:RequestID"`
	Documents     []RequestDocument `json:"documents,omitempty" gorm:"foreignKey:RequestID"`
}

func (VisitorRequest) TableName() string {
	return "visitor_requests"
}

// AcceptsDeliveryNotes reports whether the request's vehicle profile permits
// delivery note uploads (truck doing loading or both).
func (r *VisitorRequest) AcceptsDeliveryNotes() bool {
	if r.VehicleType != VehicleTypeTruck {
		return false
	}
	return r.TruckOperation == TruckOperationLoading || r.TruckOperation == TruckOperationBoth
}

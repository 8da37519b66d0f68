package entity

import (
	"time"
)

// EntryExitLog records one physical visit occurrence. A log with entry_time
// set and exit_time null is "active" (visitor on site).
type EntryExitLog struct {
	ID        string     `json:"id" gorm:"primaryKey;size:36"`
	RequestID string     `json:"request_id" gorm:"size:36;not null;index"`
	EntryTime *time.Time `json:"entry_time" gorm:"index"`
	ExitTime  *time.Time `json:"exit_time" gorm:"index"`
	Notes     string     `json:"notes" gorm:"type:text"`
	LoggedBy  string     `json:"logged_by" gorm:"size:36"`
	CreatedAt time.Time  `json:"created_at"`

	Request *VisitorRequest `json:"request,omitempty" gorm:"foreignKey:RequestID"`
}

func (EntryExitLog) TableName() string {
	return "entry_exit_logs"
}

// Active reports whether the visitor is still on site.
func (l *EntryExitLog) Active() bool {
	return l.EntryTime != nil && l.ExitTime == nil
}

// DeliveryNote is a document attached to a truck request doing loading.
type DeliveryNote struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	RequestID  string    `json:"request_id" gorm:"size:36;not null;index"`
	ExitLogID  string    `json:"exit_log_id" gorm:"size:36"`
	FileName   string    `json:"file_name" gorm:"size:255;not null"`
	FileURL    string    `json:"file_url" gorm:"size:512;not null"`
	UploadedBy string    `json:"uploaded_by" gorm:"size:36"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func (DeliveryNote) TableName() string {
	return "delivery_notes"
}

// Document types accepted at submission.
const (
	DocumentTypeIDIqama             = "id_iqama"
	DocumentTypeDriversLicense      = "drivers_license"
	DocumentTypeDriverPhoto         = "driver_photo"
	DocumentTypeTruckPhoto          = "truck_photo"
	DocumentTypeSafetyEquipment     = "safety_equipment"
	DocumentTypeVehicleRegistration = "vehicle_registration"
)

// IsValidDocumentType reports whether s is a known document type.
func IsValidDocumentType(s string) bool {
	switch s {
	case DocumentTypeIDIqama, DocumentTypeDriversLicense, DocumentTypeDriverPhoto,
		DocumentTypeTruckPhoto, DocumentTypeSafetyEquipment, DocumentTypeVehicleRegistration:
		return true
	}
	return false
}

// RequestDocument is a file attached to a request by the submitter.
type RequestDocument struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	RequestID    string    `json:"request_id" gorm:"size:36;not null;index"`
	DocumentType string    `json:"document_type" gorm:"size:32;not null"`
	FileName     string    `json:"file_name" gorm:"size:255;not null"`
	FileURL      string    `json:"file_url" gorm:"size:512;not null"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

func (RequestDocument) TableName() string {
	return "request_documents"
}

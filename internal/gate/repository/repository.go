package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories is the data access collection.
type Repositories struct {
	Request      *RequestRepository
	EntryLog     *EntryLogRepository
	DeliveryNote *DeliveryNoteRepository
	Document     *DocumentRepository
	Blacklist    *BlacklistRepository
	Profile      *ProfileRepository
}

// NewRepositories creates the repository collection.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Request:      NewRequestRepository(db),
		EntryLog:     NewEntryLogRepository(db),
		DeliveryNote: NewDeliveryNoteRepository(db),
		Document:     NewDocumentRepository(db),
		Blacklist:    NewBlacklistRepository(db),
		Profile:      NewProfileRepository(db),
	}
}

package entity

import (
	"time"
)

// BlacklistEntry bars an id number and/or plate number from submitting new
// requests while removed_at is null. Removal is a soft delete.
type BlacklistEntry struct {
	ID            string     `json:"id" gorm:"primaryKey;size:36"`
	IDNumber      string     `json:"id_number" gorm:"size:64;index"`
	PlateNumber   string     `json:"plate_number" gorm:"size:32;index"`
	VisitorName   string     `json:"visitor_name" gorm:"size:200"`
	Reason        string     `json:"reason" gorm:"type:text;not null"`
	BlacklistedBy string     `json:"blacklisted_by" gorm:"size:36"`
	BlacklistedAt time.Time  `json:"blacklisted_at"`
	RemovedAt     *time.Time `json:"removed_at"`
}

func (BlacklistEntry) TableName() string {
	return "blacklist"
}

// Active reports whether the entry still blocks submissions.
func (b *BlacklistEntry) Active() bool {
	return b.RemovedAt == nil
}

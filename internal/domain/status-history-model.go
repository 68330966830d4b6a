package domain

import "time"

// StatusHistory is append-only. FromStatus is nil only for the creation
// event; rows are never updated or deleted.
type StatusHistory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReportID   uint      `gorm:"not null;index" json:"report_id"`
	FromStatus *Status   `gorm:"type:varchar(20)" json:"from_status,omitempty"`
	ToStatus   Status    `gorm:"type:varchar(20);not null" json:"to_status"`
	ActorID    uint      `gorm:"not null" json:"actor_id"`
	Note       *string   `gorm:"type:text" json:"note,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

package domain

import "time"

const (
	AuditActionCreate       = "CREATE"
	AuditActionUpdate       = "UPDATE"
	AuditActionStatusChange = "STATUS_CHANGE"
	AuditActionArchive      = "ARCHIVE"
	AuditActionImportCreate = "IMPORT_CREATE"
	AuditActionImportUpdate = "IMPORT_UPDATE"
	AuditActionDeactivate   = "DEACTIVATE"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ActorID   uint      `gorm:"not null;index" json:"actor_id"` // admin/staff
	Action    string    `gorm:"type:varchar(100);not null" json:"action"`
	Entity    string    `gorm:"type:varchar(100);not null" json:"entity"`
	EntityID  uint      `gorm:"not null;index" json:"entity_id"`
	Detail    *string   `gorm:"type:text" json:"detail,omitempty"`
	ClientIP  string    `gorm:"type:varchar(45)" json:"client_ip"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

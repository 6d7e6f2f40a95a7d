package model

import (
	"time"

	"github.com/google/uuid"
)

// ResumeVersion is one labeled resume. FilePath is nil until a document is
// uploaded; application count and interview rate are derived, never stored.
type ResumeVersion struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	FilePath  *string   `json:"file_path"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *ResumeVersion) TableName() string {
	return "resume_versions"
}

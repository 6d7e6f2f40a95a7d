package model

import (
	"time"

	"github.com/google/uuid"
)

// Source channels for an application.
const (
	SourceLinkedIn       = "LinkedIn"
	SourceIndeed         = "Indeed"
	SourceCompanyWebsite = "Company Website"
	SourceReferral       = "Referral"
	SourceOther          = "Other"
)

// Application is one job application row. Company name and job role are
// required. DateApplied and FollowUpDate are calendar dates (YYYY-MM-DD),
// compared as dates, never as timestamps.
type Application struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	CompanyName     string     `gorm:"not null" json:"company_name"`
	JobRole         string     `gorm:"not null" json:"job_role"`
	Location        string     `json:"location"`
	JobSource       string     `json:"job_source"`
	DateApplied     string     `gorm:"type:date" json:"date_applied"`
	ResumeVersionID *uuid.UUID `gorm:"type:uuid" json:"resume_version_id"`
	// Association carries the FK constraint; deleting a resume version
	// nulls the reference instead of cascading.
	ResumeVersion *ResumeVersion `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Notes         string         `gorm:"type:text" json:"notes"`
	Status        Status         `gorm:"type:varchar(20);not null;default:'Applied'" json:"status"`
	FollowUpDate  *string        `gorm:"type:date" json:"follow_up_date"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (a *Application) TableName() string {
	return "applications"
}

package dto

type CreateApplicationRequest struct {
	CompanyName     string  `json:"company_name"`
	JobRole         string  `json:"job_role"`
	Location        string  `json:"location"`
	JobSource       string  `json:"job_source"`
	DateApplied     string  `json:"date_applied"`
	ResumeVersionID *string `json:"resume_version_id"`
	Notes           string  `json:"notes"`
	FollowUpDate    *string `json:"follow_up_date"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

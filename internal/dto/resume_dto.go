package dto

type CreateResumeRequest struct {
	Name string `json:"name"`
}

type DownloadURLDTO struct {
	SignedURL string `json:"signed_url"`
}

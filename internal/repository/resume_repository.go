package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobtrackr/jobtrackr/internal/model"
	"github.com/jobtrackr/jobtrackr/internal/util"
)

type ResumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{db}
}

// ListByUser returns the user's resume versions, newest first.
func (r *ResumeRepository) ListByUser(userID string) ([]model.ResumeVersion, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	resumes := make([]model.ResumeVersion, 0)
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&resumes).Error
	if err != nil {
		return nil, util.NewPersistenceError("listResumes", err)
	}
	return resumes, nil
}

func (r *ResumeRepository) Create(resume *model.ResumeVersion) error {
	if resume.UserID == uuid.Nil {
		return ErrMissingUserID
	}
	if strings.TrimSpace(resume.Name) == "" {
		return util.NewPersistenceError("createResume", errors.New("name must not be empty"))
	}
	if err := r.db.Create(resume).Error; err != nil {
		return util.NewPersistenceError("createResume", err)
	}
	return nil
}

// FindByID fetches one resume version, validating ownership.
func (r *ResumeRepository) FindByID(userID, resumeID string) (*model.ResumeVersion, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	var resume model.ResumeVersion
	err := r.db.First(&resume, "id = ? AND user_id = ?", resumeID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewNotFoundError("resume version")
	}
	if err != nil {
		return nil, util.NewPersistenceError("findResume", err)
	}
	return &resume, nil
}

func (r *ResumeRepository) SetFilePath(userID, resumeID, filePath string) error {
	if userID == "" {
		return ErrMissingUserID
	}
	res := r.db.Model(&model.ResumeVersion{}).
		Where("id = ? AND user_id = ?", resumeID, userID).
		Update("file_path", filePath)
	if res.Error != nil {
		return util.NewPersistenceError("setResumeFile", res.Error)
	}
	if res.RowsAffected == 0 {
		return util.NewPersistenceError("setResumeFile", gorm.ErrRecordNotFound)
	}
	return nil
}

// Package repository wraps all database access. Every query on user-owned
// tables carries an explicit user_id filter; callers without a resolved user
// identifier are rejected before any query is issued.
package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobtrackr/jobtrackr/internal/model"
	"github.com/jobtrackr/jobtrackr/internal/util"
)

// ErrMissingUserID marks a call made before a user identifier was resolved.
var ErrMissingUserID = errors.New("user id is required")

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db}
}

// ListByUser returns the user's applications, newest first. statuses narrows
// the result when non-empty. A user with no rows yields an empty slice.
func (r *ApplicationRepository) ListByUser(userID string, statuses []model.Status) ([]model.Application, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	apps := make([]model.Application, 0)
	if err := query.Find(&apps).Error; err != nil {
		return nil, util.NewPersistenceError("listApplications", err)
	}
	return apps, nil
}

func (r *ApplicationRepository) Create(app *model.Application) error {
	if app.UserID == uuid.Nil {
		return ErrMissingUserID
	}
	if err := r.db.Create(app).Error; err != nil {
		return util.NewPersistenceError("createApplication", err)
	}
	return nil
}

// FindByID fetches one application, validating ownership.
func (r *ApplicationRepository) FindByID(userID, appID string) (*model.Application, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	var app model.Application
	err := r.db.First(&app, "id = ? AND user_id = ?", appID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewNotFoundError("application")
	}
	if err != nil {
		return nil, util.NewPersistenceError("findApplication", err)
	}
	return &app, nil
}

// UpdateStatus sets the status on exactly one owned row. A zero-row update is
// reported as a persistence error so a foreign-owned or missing id never
// succeeds silently.
func (r *ApplicationRepository) UpdateStatus(userID, appID string, status model.Status) error {
	if userID == "" {
		return ErrMissingUserID
	}
	res := r.db.Model(&model.Application{}).
		Where("id = ? AND user_id = ?", appID, userID).
		Update("status", status)
	if res.Error != nil {
		return util.NewPersistenceError("updateApplicationStatus", res.Error)
	}
	if res.RowsAffected == 0 {
		return util.NewPersistenceError("updateApplicationStatus", gorm.ErrRecordNotFound)
	}
	return nil
}

// ListDueFollowUps returns open applications across all users whose follow-up
// date is on or before today. Used by the reminder scheduler.
func (r *ApplicationRepository) ListDueFollowUps(today string) ([]model.Application, error) {
	apps := make([]model.Application, 0)
	err := r.db.
		Where("follow_up_date IS NOT NULL AND follow_up_date <= ?", today).
		Where("status NOT IN ?", []model.Status{model.StatusRejected, model.StatusGhosted}).
		Find(&apps).Error
	if err != nil {
		return nil, util.NewPersistenceError("listDueFollowUps", err)
	}
	return apps, nil
}

// Package usecase wires the record access layer to the aggregation routines.
// Handlers stay thin; every contract rule (status forced to Applied on create,
// filter semantics, silent signed-url failures) lives here.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jobtrackr/jobtrackr/internal/events"
	"github.com/jobtrackr/jobtrackr/internal/model"
	"github.com/jobtrackr/jobtrackr/internal/stats"
	"github.com/jobtrackr/jobtrackr/internal/storage"
	"github.com/jobtrackr/jobtrackr/internal/util"
)

// List filters accepted by ListApplications.
const (
	FilterAll    = "All"
	FilterActive = "Active"
)

const leaderboardSize = 3

type ApplicationStore interface {
	ListByUser(userID string, statuses []model.Status) ([]model.Application, error)
	Create(app *model.Application) error
	FindByID(userID, appID string) (*model.Application, error)
	UpdateStatus(userID, appID string, status model.Status) error
}

type ResumeStore interface {
	ListByUser(userID string) ([]model.ResumeVersion, error)
	Create(resume *model.ResumeVersion) error
	FindByID(userID, resumeID string) (*model.ResumeVersion, error)
	SetFilePath(userID, resumeID, filePath string) error
}

type TrackerUsecase struct {
	apps    ApplicationStore
	resumes ResumeStore
	events  events.Publisher
	signer  *storage.Signer
}

func NewTrackerUsecase(apps ApplicationStore, resumes ResumeStore, publisher events.Publisher, signer *storage.Signer) *TrackerUsecase {
	return &TrackerUsecase{apps: apps, resumes: resumes, events: publisher, signer: signer}
}

// ListApplications returns the user's applications newest first. filter is
// "All" (or empty), "Active" (Applied and Interview), or an exact status.
func (uc *TrackerUsecase) ListApplications(userID, filter string) ([]model.Application, error) {
	var statuses []model.Status
	switch filter {
	case "", FilterAll:
	case FilterActive:
		statuses = model.ActiveStatuses
	default:
		status, err := model.ParseStatus(filter)
		if err != nil {
			return nil, util.NewValidationError(err.Error())
		}
		statuses = []model.Status{status}
	}
	return uc.apps.ListByUser(userID, statuses)
}

// CreateApplication inserts one row. Status is always forced to Applied at
// creation, whatever the caller passed; a missing date-applied defaults to
// today.
func (uc *TrackerUsecase) CreateApplication(app *model.Application) error {
	if strings.TrimSpace(app.CompanyName) == "" {
		return util.NewValidationError("Company name is required")
	}
	if strings.TrimSpace(app.JobRole) == "" {
		return util.NewValidationError("Job title is required")
	}
	if app.DateApplied == "" {
		app.DateApplied = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", app.DateApplied); err != nil {
		return util.NewValidationError("Date applied must be a valid date (YYYY-MM-DD)")
	}
	if app.FollowUpDate != nil {
		if _, err := time.Parse("2006-01-02", *app.FollowUpDate); err != nil {
			return util.NewValidationError("Follow-up date must be a valid date (YYYY-MM-DD)")
		}
	}

	app.Status = model.StatusApplied
	return uc.apps.Create(app)
}

// UpdateApplicationStatus moves one owned application to newStatus. Any value
// in the enum is accepted; there is no transition graph. A status-changed
// event is published after a successful write (non-fatal).
func (uc *TrackerUsecase) UpdateApplicationStatus(ctx context.Context, userID, appID, newStatus string) (*model.Application, error) {
	status, err := model.ParseStatus(newStatus)
	if err != nil {
		return nil, util.NewValidationError(err.Error())
	}

	app, err := uc.apps.FindByID(userID, appID)
	if err != nil {
		return nil, err
	}
	from := app.Status

	if err := uc.apps.UpdateStatus(userID, appID, status); err != nil {
		return nil, err
	}
	app.Status = status

	payload, _ := json.Marshal(events.StatusChanged{
		Type:          "EVENT_STATUS_CHANGED",
		ApplicationID: appID,
		UserID:        userID,
		From:          string(from),
		To:            string(status),
	})
	if err := uc.events.Publish(ctx, events.ChannelStatusChanged, payload); err != nil {
		log.Printf("[tracker] publish status change for %s: %v", appID, err)
	}

	return app, nil
}

// ResumeWithStats is a resume row plus its derived counters.
type ResumeWithStats struct {
	model.ResumeVersion
	Applications int     `json:"applications"`
	Rate         float64 `json:"rate"`
	IsBest       bool    `json:"is_best"`
}

// ListResumes returns the user's resume versions newest first, with derived
// application counts, one-decimal interview rates, and the best flag set on
// the top-rated qualifying resume.
func (uc *TrackerUsecase) ListResumes(userID string) ([]ResumeWithStats, error) {
	resumes, err := uc.resumes.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	apps, err := uc.apps.ListByUser(userID, nil)
	if err != nil {
		return nil, err
	}

	derived := stats.ResumeStats(resumes, apps)
	out := make([]ResumeWithStats, len(resumes))
	for i, r := range resumes {
		out[i] = ResumeWithStats{
			ResumeVersion: r,
			Applications:  derived[i].Applications,
			Rate:          derived[i].Rate,
			IsBest:        derived[i].IsBest,
		}
	}
	return out, nil
}

func (uc *TrackerUsecase) CreateResume(resume *model.ResumeVersion) error {
	return uc.resumes.Create(resume)
}

// AttachResumeFile records the stored file path after an upload.
func (uc *TrackerUsecase) AttachResumeFile(userID, resumeID, filePath string) error {
	return uc.resumes.SetFilePath(userID, resumeID, filePath)
}

// ResumeDownloadURL issues a 60-second signed URL for the resume's stored
// file. A resume without a file yields NotFoundError; the caller logs it and
// shows nothing; "no file" is not a user-facing error.
func (uc *TrackerUsecase) ResumeDownloadURL(userID, resumeID string) (string, error) {
	resume, err := uc.resumes.FindByID(userID, resumeID)
	if err != nil {
		return "", err
	}
	if resume.FilePath == nil || *resume.FilePath == "" {
		return "", util.NewNotFoundError("resume file")
	}
	return uc.signer.SignedURL(*resume.FilePath, storage.SignedURLTTL), nil
}

// DashboardStats is the aggregation snapshot behind the dashboard screen.
type DashboardStats struct {
	AppsToday         int                `json:"apps_today"`
	PendingFollowUps  int                `json:"pending_follow_ups"`
	Ghosted           int                `json:"ghosted"`
	TotalApplications int                `json:"total_applications"`
	TotalInterviews   int                `json:"total_interviews"`
	TotalRejections   int                `json:"total_rejections"`
	InterviewRate     string             `json:"interview_rate"`
	ResumeLeaderboard []stats.ResumeStat `json:"resume_leaderboard"`
}

// Dashboard recomputes every stat from a fresh snapshot of the user's
// applications and resumes.
func (uc *TrackerUsecase) Dashboard(userID string, now time.Time) (*DashboardStats, error) {
	apps, err := uc.apps.ListByUser(userID, nil)
	if err != nil {
		return nil, err
	}
	resumes, err := uc.resumes.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	leaderboard := stats.Leaderboard(stats.ResumeStats(resumes, apps), leaderboardSize)

	return &DashboardStats{
		AppsToday:         stats.AppsToday(apps, now.Format("2006-01-02")),
		PendingFollowUps:  stats.PendingFollowUps(apps, now),
		Ghosted:           stats.CountByStatus(apps, model.StatusGhosted),
		TotalApplications: len(apps),
		TotalInterviews:   stats.CountPositive(apps),
		TotalRejections:   stats.CountByStatus(apps, model.StatusRejected),
		InterviewRate:     fmt.Sprintf("%d%%", stats.InterviewRate(apps)),
		ResumeLeaderboard: leaderboard,
	}, nil
}

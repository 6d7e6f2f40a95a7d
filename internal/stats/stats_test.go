package stats_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jobtrackr/jobtrackr/internal/model"
	"github.com/jobtrackr/jobtrackr/internal/stats"
)

func app(status model.Status, dateApplied string) model.Application {
	return model.Application{ID: uuid.New(), Status: status, DateApplied: dateApplied}
}

func withFollowUp(a model.Application, date string) model.Application {
	a.FollowUpDate = &date
	return a
}

func withResume(a model.Application, resumeID uuid.UUID) model.Application {
	a.ResumeVersionID = &resumeID
	return a
}

func TestCountByStatus(t *testing.T) {
	apps := []model.Application{
		app(model.StatusApplied, "2024-05-01"),
		app(model.StatusInterview, "2024-05-01"),
		app(model.StatusApplied, "2024-04-30"),
	}
	assert.Equal(t, 2, stats.CountByStatus(apps, model.StatusApplied))
	assert.Equal(t, 1, stats.CountByStatus(apps, model.StatusInterview))
	assert.Equal(t, 0, stats.CountByStatus(apps, model.StatusGhosted))
}

func TestCountPositive(t *testing.T) {
	apps := []model.Application{
		app(model.StatusApplied, "2024-05-01"),
		app(model.StatusInterview, "2024-05-01"),
		app(model.StatusOffer, "2024-04-30"),
		app(model.StatusRejected, "2024-04-29"),
	}
	assert.Equal(t, 2, stats.CountPositive(apps))
	assert.Equal(t, 0, stats.CountPositive(nil))
}

func TestAppsToday(t *testing.T) {
	apps := []model.Application{
		app(model.StatusApplied, "2024-05-01"),
		app(model.StatusInterview, "2024-05-01"),
		app(model.StatusApplied, "2024-04-30"),
	}
	assert.Equal(t, 2, stats.AppsToday(apps, "2024-05-01"))
	assert.Equal(t, 1, stats.AppsToday(apps, "2024-04-30"))
	assert.Equal(t, 0, stats.AppsToday(apps, "2024-05-02"))
}

func TestPendingFollowUps(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	apps := []model.Application{
		withFollowUp(app(model.StatusApplied, "2024-05-01"), "2024-05-09"),   // overdue, counted
		withFollowUp(app(model.StatusInterview, "2024-05-01"), "2024-05-10"), // due today, counted
		withFollowUp(app(model.StatusApplied, "2024-05-01"), "2024-05-20"),   // future
		withFollowUp(app(model.StatusRejected, "2024-05-01"), "2024-05-01"),  // closed, excluded
		withFollowUp(app(model.StatusGhosted, "2024-05-01"), "2024-05-01"),   // closed, excluded
		app(model.StatusApplied, "2024-05-01"),                               // no follow-up date
	}
	assert.Equal(t, 2, stats.PendingFollowUps(apps, now))
}

func TestPendingFollowUps_ClosedExcludedEvenWhenOverdue(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	apps := []model.Application{
		withFollowUp(app(model.StatusRejected, "2024-01-01"), "2024-01-02"),
		withFollowUp(app(model.StatusGhosted, "2024-01-01"), "2024-01-02"),
	}
	assert.Equal(t, 0, stats.PendingFollowUps(apps, now))
}

func TestInterviewRate(t *testing.T) {
	tests := []struct {
		name     string
		statuses []model.Status
		want     int
	}{
		{"empty list", nil, 0},
		{"no interviews", []model.Status{model.StatusApplied, model.StatusRejected}, 0},
		{"half interview", []model.Status{model.StatusApplied, model.StatusInterview}, 50},
		{"offer counts", []model.Status{model.StatusOffer, model.StatusApplied, model.StatusApplied}, 33},
		{"all positive", []model.Status{model.StatusInterview, model.StatusOffer}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apps := make([]model.Application, 0, len(tt.statuses))
			for _, s := range tt.statuses {
				apps = append(apps, app(s, "2024-05-01"))
			}
			assert.Equal(t, tt.want, stats.InterviewRate(apps))
		})
	}
}

func TestInterviewRate_Bounds(t *testing.T) {
	apps := []model.Application{
		app(model.StatusInterview, "2024-05-01"),
		app(model.StatusApplied, "2024-05-01"),
		app(model.StatusRejected, "2024-05-01"),
	}
	rate := stats.InterviewRate(apps)
	assert.GreaterOrEqual(t, rate, 0)
	assert.LessOrEqual(t, rate, 100)
}

func TestResumeStats_RatesAndBestFlag(t *testing.T) {
	strong := model.ResumeVersion{ID: uuid.New(), Name: "Backend v2"}
	weak := model.ResumeVersion{ID: uuid.New(), Name: "Backend v1"}
	unused := model.ResumeVersion{ID: uuid.New(), Name: "Draft"}

	apps := []model.Application{
		withResume(app(model.StatusInterview, "2024-05-01"), strong.ID),
		withResume(app(model.StatusOffer, "2024-05-01"), strong.ID),
		withResume(app(model.StatusApplied, "2024-05-01"), weak.ID),
		withResume(app(model.StatusInterview, "2024-05-01"), weak.ID),
		withResume(app(model.StatusRejected, "2024-05-01"), weak.ID),
	}

	got := stats.ResumeStats([]model.ResumeVersion{strong, weak, unused}, apps)

	assert.Len(t, got, 3)
	assert.Equal(t, 2, got[0].Applications)
	assert.InDelta(t, 100.0, got[0].Rate, 0.001)
	assert.True(t, got[0].IsBest)

	assert.Equal(t, 3, got[1].Applications)
	assert.InDelta(t, 33.3, got[1].Rate, 0.001)
	assert.False(t, got[1].IsBest)

	assert.Equal(t, 0, got[2].Applications)
	assert.Zero(t, got[2].Rate)
	assert.False(t, got[2].IsBest)
}

func TestLeaderboard_TopNOrdering(t *testing.T) {
	entries := []stats.ResumeStat{
		{Name: "A", Applications: 5, Rate: 80},
		{Name: "B", Applications: 2, Rate: 50},
		{Name: "C", Applications: 0, Rate: 0},
	}

	top := stats.Leaderboard(entries, 2)

	assert.Len(t, top, 2)
	assert.Equal(t, "A", top[0].Name)
	assert.Equal(t, "B", top[1].Name)
}

func TestLeaderboard_StableOnEqualRates(t *testing.T) {
	// Input order is newest-first; equal rates must keep it.
	entries := []stats.ResumeStat{
		{Name: "newer", Applications: 1, Rate: 50},
		{Name: "older", Applications: 2, Rate: 50},
	}

	top := stats.Leaderboard(entries, 3)

	assert.Equal(t, "newer", top[0].Name)
	assert.Equal(t, "older", top[1].Name)
}

func TestBestResume_NoneQualifies(t *testing.T) {
	entries := []stats.ResumeStat{
		{Name: "unused", Applications: 0, Rate: 0},
		{Name: "all rejected", Applications: 3, Rate: 0},
	}

	_, ok := stats.BestResume(entries)
	assert.False(t, ok)
}

func TestBestResume_TieGoesToFirstInInputOrder(t *testing.T) {
	entries := []stats.ResumeStat{
		{Name: "newer", Applications: 2, Rate: 50},
		{Name: "older", Applications: 4, Rate: 50},
	}

	idx, ok := stats.BestResume(entries)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}

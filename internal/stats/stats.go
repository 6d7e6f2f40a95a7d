// Package stats contains the pure aggregation routines behind the dashboard
// and the resume leaderboard. Every function recomputes from a full in-memory
// snapshot; nothing here touches the database.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jobtrackr/jobtrackr/internal/model"
)

// CountByStatus returns the exact number of applications with the given status.
func CountByStatus(apps []model.Application, status model.Status) int {
	n := 0
	for _, a := range apps {
		if a.Status == status {
			n++
		}
	}
	return n
}

// AppsToday counts applications whose date-applied equals today. Calendar
// equality on the YYYY-MM-DD string, not timestamp comparison.
func AppsToday(apps []model.Application, today string) int {
	n := 0
	for _, a := range apps {
		if a.DateApplied == today {
			n++
		}
	}
	return n
}

// PendingFollowUps counts applications with a follow-up date on or before now,
// excluding Rejected and Ghosted even when overdue.
func PendingFollowUps(apps []model.Application, now time.Time) int {
	n := 0
	for _, a := range apps {
		if a.FollowUpDate == nil || model.IsClosed(a.Status) {
			continue
		}
		due, err := time.Parse("2006-01-02", *a.FollowUpDate)
		if err != nil {
			continue
		}
		if !due.After(now) {
			n++
		}
	}
	return n
}

// CountPositive returns the number of applications at Interview or Offer.
// The dashboard's interview counter and the interview rate share it, so the
// two can never disagree.
func CountPositive(apps []model.Application) int {
	n := 0
	for _, a := range apps {
		if model.IsPositive(a.Status) {
			n++
		}
	}
	return n
}

// InterviewRate returns the share of applications at Interview or Offer as a
// whole percentage. An empty list yields 0, never a division by zero.
func InterviewRate(apps []model.Application) int {
	if len(apps) == 0 {
		return 0
	}
	return int(math.Round(float64(CountPositive(apps)) / float64(len(apps)) * 100))
}

// ResumeStat is one leaderboard entry: a resume with its derived counters.
// Rate is a percentage rounded to one decimal.
type ResumeStat struct {
	ResumeID     uuid.UUID `json:"resume_id"`
	Name         string    `json:"name"`
	Applications int       `json:"applications"`
	Rate         float64   `json:"rate"`
	IsBest       bool      `json:"is_best"`
}

// ResumeStats derives the per-resume counters from the full application list,
// preserving the order of resumes (callers fetch newest first). The resume
// with the highest nonzero rate among those with at least one application is
// flagged as best; ties go to the first entry in input order, i.e. the most
// recently created resume.
func ResumeStats(resumes []model.ResumeVersion, apps []model.Application) []ResumeStat {
	out := make([]ResumeStat, 0, len(resumes))
	for _, r := range resumes {
		total, positive := 0, 0
		for _, a := range apps {
			if a.ResumeVersionID == nil || *a.ResumeVersionID != r.ID {
				continue
			}
			total++
			if model.IsPositive(a.Status) {
				positive++
			}
		}
		rate := 0.0
		if total > 0 {
			rate = math.Round(float64(positive)/float64(total)*1000) / 10
		}
		out = append(out, ResumeStat{
			ResumeID:     r.ID,
			Name:         r.Name,
			Applications: total,
			Rate:         rate,
		})
	}

	if best, ok := BestResume(out); ok {
		out[best].IsBest = true
	}
	return out
}

// Leaderboard sorts resume stats by descending rate and returns the first
// topN. The sort is stable, so equal rates keep their input order.
func Leaderboard(entries []ResumeStat, topN int) []ResumeStat {
	ranked := make([]ResumeStat, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rate > ranked[j].Rate
	})
	if topN >= 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// BestResume returns the index of the entry with the strictly highest rate
// among those with at least one application and a nonzero rate. ok is false
// when no resume qualifies.
func BestResume(entries []ResumeStat) (int, bool) {
	best, found := -1, false
	for i, e := range entries {
		if e.Applications == 0 || e.Rate <= 0 {
			continue
		}
		if !found || e.Rate > entries[best].Rate {
			best, found = i, true
		}
	}
	return best, found
}

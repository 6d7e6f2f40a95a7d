package handler

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jobtrackr/jobtrackr/internal/middleware"
	"github.com/jobtrackr/jobtrackr/internal/session"
	"github.com/jobtrackr/jobtrackr/internal/stats"
	"github.com/jobtrackr/jobtrackr/internal/usecase"
	"github.com/jobtrackr/jobtrackr/internal/util"
)

type DashboardHandler struct {
	uc      *usecase.TrackerUsecase
	manager *session.Manager
}

func NewDashboardHandler(uc *usecase.TrackerUsecase, manager *session.Manager) *DashboardHandler {
	return &DashboardHandler{uc: uc, manager: manager}
}

func (h *DashboardHandler) RegisterRoutes(app *fiber.App) {
	dashboard := app.Group("/dashboard", middleware.RequireSession(h.manager))
	dashboard.Get("/stats", h.Stats)
}

// Stats recomputes the dashboard aggregates from a fresh snapshot. A failed
// fetch is logged and rendered as a zeroed snapshot so the screen still loads.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)

	snapshot, err := h.uc.Dashboard(userID, time.Now())
	if err != nil {
		log.Printf("[dashboard] stats for user %s: %v", userID, err)
		snapshot = &usecase.DashboardStats{
			InterviewRate:     "0%",
			ResumeLeaderboard: []stats.ResumeStat{},
		}
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Dashboard stats",
		Data:    snapshot,
	})
}

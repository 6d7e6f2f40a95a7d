package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jobtrackr/jobtrackr/internal/dto"
	"github.com/jobtrackr/jobtrackr/internal/middleware"
	"github.com/jobtrackr/jobtrackr/internal/model"
	"github.com/jobtrackr/jobtrackr/internal/session"
	"github.com/jobtrackr/jobtrackr/internal/usecase"
	"github.com/jobtrackr/jobtrackr/internal/util"
)

type ApplicationHandler struct {
	uc      *usecase.TrackerUsecase
	manager *session.Manager
}

func NewApplicationHandler(uc *usecase.TrackerUsecase, manager *session.Manager) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, manager: manager}
}

func (h *ApplicationHandler) RegisterRoutes(app *fiber.App) {
	requireSession := middleware.RequireSession(h.manager)
	apps := app.Group("/applications", requireSession)
	apps.Get("/", h.List)
	apps.Post("/", h.Create)
	apps.Patch("/:id/status", h.UpdateStatus)
}

// List returns the user's applications, filtered by ?filter=All|Active|<status>.
// A failed fetch is logged and rendered as an empty list, not an error banner.
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)
	filter := c.Query("filter", usecase.FilterAll)

	apps, err := h.uc.ListApplications(userID, filter)
	var validationErr *util.ValidationError
	if errors.As(err, &validationErr) {
		return respondError(c, err)
	}
	if err != nil {
		log.Printf("[applications] list for user %s: %v", userID, err)
		apps = []model.Application{}
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Applications",
		Data:    apps,
	})
}

func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)

	var req dto.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid request body",
		}, err)
	}

	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return respondError(c, util.NewValidationError("Invalid user id"))
	}

	app := &model.Application{
		UserID:       ownerID,
		CompanyName:  req.CompanyName,
		JobRole:      req.JobRole,
		Location:     req.Location,
		JobSource:    req.JobSource,
		DateApplied:  req.DateApplied,
		Notes:        req.Notes,
		FollowUpDate: req.FollowUpDate,
	}
	if req.ResumeVersionID != nil && *req.ResumeVersionID != "" {
		resumeID, err := uuid.Parse(*req.ResumeVersionID)
		if err != nil {
			return respondError(c, util.NewValidationError("Invalid resume version id"))
		}
		app.ResumeVersionID = &resumeID
	}

	if err := h.uc.CreateApplication(app); err != nil {
		return respondError(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Application saved",
		Data:    app,
	})
}

func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)
	appID := c.Params("id")

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Body must contain status",
		}, err)
	}

	app, err := h.uc.UpdateApplicationStatus(c.Context(), userID, appID, req.Status)
	if err != nil {
		return respondError(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Status updated",
		Data:    app,
	})
}

package handler

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jobtrackr/jobtrackr/internal/dto"
	"github.com/jobtrackr/jobtrackr/internal/middleware"
	"github.com/jobtrackr/jobtrackr/internal/model"
	"github.com/jobtrackr/jobtrackr/internal/session"
	"github.com/jobtrackr/jobtrackr/internal/storage"
	"github.com/jobtrackr/jobtrackr/internal/usecase"
	"github.com/jobtrackr/jobtrackr/internal/util"
)

const maxResumeFileSize = 5 * 1024 * 1024

type ResumeHandler struct {
	uc        *usecase.TrackerUsecase
	manager   *session.Manager
	signer    *storage.Signer
	uploadDir string
}

func NewResumeHandler(uc *usecase.TrackerUsecase, manager *session.Manager, signer *storage.Signer, uploadDir string) *ResumeHandler {
	return &ResumeHandler{uc: uc, manager: manager, signer: signer, uploadDir: uploadDir}
}

func (h *ResumeHandler) RegisterRoutes(app *fiber.App) {
	requireSession := middleware.RequireSession(h.manager)
	resumes := app.Group("/resumes", requireSession)
	resumes.Get("/", h.List)
	resumes.Post("/", h.Create)
	resumes.Get("/:id/download-url", h.DownloadURL)

	// Signed-URL redemption carries its own auth in the signature.
	app.Get("/files/resumes/*", h.ServeFile)
}

// List returns the user's resume versions with derived stats. A failed fetch
// is logged and rendered as an empty list.
func (h *ResumeHandler) List(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)

	resumes, err := h.uc.ListResumes(userID)
	if err != nil {
		log.Printf("[resumes] list for user %s: %v", userID, err)
		resumes = []usecase.ResumeWithStats{}
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resume versions",
		Data:    resumes,
	})
}

// Create adds a resume version. Plain JSON gives a name-only version;
// multipart form data may attach a document under the "file" field.
func (h *ResumeHandler) Create(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return respondError(c, util.NewValidationError("Invalid user id"))
	}

	name := ""
	isMultipart := strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
	if isMultipart {
		name = c.FormValue("name")
	} else {
		var req dto.CreateResumeRequest
		if err := c.BodyParser(&req); err != nil {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "Invalid request body",
			}, err)
		}
		name = req.Name
	}
	if strings.TrimSpace(name) == "" {
		return respondError(c, util.NewValidationError("Version name is required"))
	}

	resume := &model.ResumeVersion{ID: uuid.New(), UserID: ownerID, Name: name}
	if err := h.uc.CreateResume(resume); err != nil {
		return respondError(c, err)
	}

	if isMultipart {
		if file, err := c.FormFile("file"); err == nil {
			if file.Size > maxResumeFileSize {
				return respondError(c, util.NewValidationError("Resume file is too large (max 5MB)"))
			}
			storedPath := fmt.Sprintf("%s/%s%s", userID, resume.ID, filepath.Ext(file.Filename))
			if err := c.SaveFile(file, filepath.Join(h.uploadDir, storedPath)); err != nil {
				return respondError(c, util.NewPersistenceError("saveResumeFile", err))
			}
			if err := h.uc.AttachResumeFile(userID, resume.ID.String(), storedPath); err != nil {
				return respondError(c, err)
			}
			resume.FilePath = &storedPath
		}
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Resume version saved",
		Data:    resume,
	})
}

// DownloadURL hands out a 60-second signed link. A resume without a stored
// file is not an error: logged, and the response carries no URL.
func (h *ResumeHandler) DownloadURL(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.LocalUserID).(string)
	resumeID := c.Params("id")

	signedURL, err := h.uc.ResumeDownloadURL(userID, resumeID)
	var notFound *util.NotFoundError
	if errors.As(err, &notFound) {
		log.Printf("[resumes] download url for %s: %v", resumeID, err)
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Message: "No download available",
		})
	}
	if err != nil {
		return respondError(c, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Download link ready",
		Data:    dto.DownloadURLDTO{SignedURL: signedURL},
	})
}

// ServeFile redeems a signed URL and streams the stored document.
func (h *ResumeHandler) ServeFile(c *fiber.Ctx) error {
	rawPath := c.Params("*")
	path, err := url.PathUnescape(rawPath)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid file path",
		}, err)
	}

	if err := h.signer.Verify(path, c.Query("expires"), c.Query("signature")); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusForbidden,
			Message: "Download link is invalid or expired",
		}, err)
	}

	// The signature covers the exact stored path; keep traversal out anyway.
	clean := filepath.Clean("/" + path)
	return c.SendFile(filepath.Join(h.uploadDir, clean))
}

package applications

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/authz"
	"jobboard-backend/internal/shared/apperr"
	"jobboard-backend/internal/shared/paging"
	"jobboard-backend/internal/shared/server/middleware"
	"jobboard-backend/internal/shared/server/respond"
)

const defaultMaxUploadBytes = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches application routes to an authenticated router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/applications", h.list)
	rg.POST("/applications", h.apply)
	rg.GET("/applications/:id", h.get)
	rg.PATCH("/applications/:id/status", h.updateStatus)
}

func (h *Handler) apply(c *gin.Context) {
	acct, _ := middleware.AccountFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	var in ApplyInput
	fileHeader, err := c.FormFile("resume")
	switch {
	case err == nil:
		file, openErr := fileHeader.Open()
		if openErr != nil {
			respond.Error(c, apperr.Validation(apperr.FieldError{Field: "resume", Message: "Unable to read resume."}))
			return
		}
		defer file.Close()
		in.ResumeName = fileHeader.Filename
		in.Resume = file
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, apperr.Validation(apperr.FieldError{Field: "resume", Message: ResumeTooLargeMessage}))
			return
		}
		respond.Error(c, apperr.Validation(apperr.FieldError{Message: "Invalid request body"}))
		return
	}

	in.JobID = c.PostForm("job")
	in.CoverLetter = c.PostForm("cover_letter")
	c.Set(middleware.JobIDKey, in.JobID)

	app, err := h.Svc.Apply(c.Request.Context(), acct, in)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.Set(middleware.ApplicationIDKey, app.ID)
	respond.Created(c, "Application submitted successfully", toResponse(app))
}

func (h *Handler) list(c *gin.Context) {
	acct, _ := middleware.AccountFromContext(c)
	page, err := paging.Parse(c.Query("page"))
	if err != nil {
		if authErr := authz.Authorize(acct, authz.ActionApplicationList, nil); authErr != nil {
			err = authErr
		}
		respond.Error(c, err)
		return
	}
	result, err := h.Svc.List(c.Request.Context(), acct, c.Query("job"), page)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Page(c, "Applications retrieved successfully", result, toResponse)
}

func (h *Handler) get(c *gin.Context) {
	acct, _ := middleware.AccountFromContext(c)
	applicationID := c.Param("id")
	c.Set(middleware.ApplicationIDKey, applicationID)

	app, err := h.Svc.Get(c.Request.Context(), acct, applicationID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Application retrieved successfully", toResponse(app))
}

func (h *Handler) updateStatus(c *gin.Context) {
	acct, _ := middleware.AccountFromContext(c)
	applicationID := c.Param("id")
	c.Set(middleware.ApplicationIDKey, applicationID)

	// an unreadable body leaves the status empty, which fails validation
	// only after the permission checks
	var req statusRequest
	_ = c.ShouldBind(&req)
	app, previous, err := h.Svc.UpdateStatus(c.Request.Context(), acct, applicationID, req.Status)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.Set(middleware.JobIDKey, app.JobID)
	c.Set(middleware.StatusTransitionKey, string(previous)+"->"+string(app.Status))
	respond.OK(c, "Application status updated", toResponse(app))
}

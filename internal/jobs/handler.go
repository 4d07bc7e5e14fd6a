package jobs

import (
	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/authz"
	"jobboard-backend/internal/shared/apperr"
	"jobboard-backend/internal/shared/identity"
	"jobboard-backend/internal/shared/paging"
	"jobboard-backend/internal/shared/server/middleware"
	"jobboard-backend/internal/shared/server/respond"
	"jobboard-backend/internal/validate"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job routes to an authenticated router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs", h.list)
	rg.POST("/jobs", h.create)
	rg.GET("/jobs/mine", h.listOwn)
	rg.GET("/jobs/:id", h.get)
	rg.PUT("/jobs/:id", h.update)
	rg.PATCH("/jobs/:id", h.update)
	rg.DELETE("/jobs/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	acct, _ := middleware.AccountFromContext(c)
	var req jobRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, bindError(acct, authz.ActionJobCreate))
		return
	}
	job, err := h.Svc.Create(c.Request.Context(), acct, validate.JobInput{
		Title:       deref(req.Title),
		Description: deref(req.Description),
		Location:    deref(req.Location),
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.Set(middleware.JobIDKey, job.ID)
	respond.Created(c, "Job created successfully", toResponse(job))
}

func (h *Handler) update(c *gin.Context) {
	acct, _ := middleware.AccountFromContext(c)
	jobID := c.Param("id")
	c.Set(middleware.JobIDKey, jobID)

	var req jobRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, bindError(acct, authz.ActionJobUpdate))
		return
	}
	job, err := h.Svc.Update(c.Request.Context(), acct, jobID, Patch{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Job updated successfully", toResponse(job))
}

func (h *Handler) delete(c *gin.Context) {
	acct, _ := middleware.AccountFromContext(c)
	jobID := c.Param("id")
	c.Set(middleware.JobIDKey, jobID)

	if err := h.Svc.Delete(c.Request.Context(), acct, jobID); err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Job deleted successfully", nil)
}

func (h *Handler) get(c *gin.Context) {
	acct, _ := middleware.AccountFromContext(c)
	jobID := c.Param("id")
	c.Set(middleware.JobIDKey, jobID)

	job, err := h.Svc.Get(c.Request.Context(), acct, jobID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "Job retrieved successfully", toResponse(job))
}

func (h *Handler) list(c *gin.Context) {
	acct, _ := middleware.AccountFromContext(c)
	page, err := parsePage(c, acct, authz.ActionJobList)
	if err != nil {
		respond.Error(c, err)
		return
	}
	filter := Filter{
		TitleContains:     c.Query("title"),
		Location:          c.Query("location"),
		LocationContains:  c.Query("location__icontains"),
		OwnerNameContains: c.Query("created_by__name"),
	}
	result, err := h.Svc.List(c.Request.Context(), acct, filter, page)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Page(c, "Jobs retrieved successfully", result, toResponse)
}

func (h *Handler) listOwn(c *gin.Context) {
	acct, _ := middleware.AccountFromContext(c)
	page, err := parsePage(c, acct, authz.ActionJobListOwn)
	if err != nil {
		respond.Error(c, err)
		return
	}
	result, err := h.Svc.ListOwn(c.Request.Context(), acct, page)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Page(c, "Jobs retrieved successfully", result, toResponse)
}

// parsePage reads the page query. A role denial wins over a bad page number.
func parsePage(c *gin.Context, acct identity.Account, action authz.Action) (paging.Request, error) {
	page, err := paging.Parse(c.Query("page"))
	if err != nil {
		if authErr := authz.Authorize(acct, action, nil); authErr != nil {
			return paging.Request{}, authErr
		}
		return paging.Request{}, err
	}
	return page, nil
}

// bindError reports an unreadable body. A role denial wins over it.
func bindError(acct identity.Account, action authz.Action) error {
	if err := authz.Authorize(acct, action, nil); err != nil {
		return err
	}
	return apperr.Validation(apperr.FieldError{Message: "Invalid request body"})
}

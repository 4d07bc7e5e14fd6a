package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/shared/apperr"
	"jobboard-backend/internal/shared/server/middleware"
	"jobboard-backend/internal/shared/server/respond"
	"jobboard-backend/internal/validate"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches the unauthenticated signup and token routes.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/users", h.signup)
	rg.POST("/auth/token", h.token)
	rg.POST("/auth/token/refresh", h.refresh)
}

// RegisterRoutes attaches routes that need an authenticated account.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/me", h.me)
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, invalidBody())
		return
	}
	acct, err := h.Svc.Signup(c.Request.Context(), validate.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, "User created successfully", toResponse(acct))
}

func (h *Handler) token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, invalidBody())
		return
	}
	pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, pair)
}

func (h *Handler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.Error(c, invalidBody())
		return
	}
	access, err := h.Svc.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"access": access})
}

func (h *Handler) me(c *gin.Context) {
	acct, ok := middleware.AccountFromContext(c)
	if !ok {
		respond.Error(c, apperr.Unauthenticated(middleware.MissingCredentialsMessage))
		return
	}
	respond.OK(c, "User retrieved successfully", toResponse(acct))
}

func invalidBody() error {
	return apperr.Validation(apperr.FieldError{Message: "Invalid request body"})
}

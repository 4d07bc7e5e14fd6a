package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/shared/apperr"
	"jobboard-backend/internal/shared/paging"
)

// Envelope is the uniform wrapper around every API result.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Object  any                 `json:"object"`
	Errors  []apperr.FieldError `json:"errors"`
}

// PageEnvelope adds page metadata for list endpoints.
type PageEnvelope struct {
	Envelope
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalSize  int `json:"totalSize"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 success envelope.
func OK(c *gin.Context, message string, object any) {
	JSON(c, http.StatusOK, Envelope{Success: true, Message: message, Object: object})
}

// Created writes a 201 success envelope.
func Created(c *gin.Context, message string, object any) {
	JSON(c, http.StatusCreated, Envelope{Success: true, Message: message, Object: object})
}

// Page writes a 200 list envelope. Items are converted with view.
func Page[T any, V any](c *gin.Context, message string, page paging.Result[T], view func(T) V) {
	items := make([]V, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, view(item))
	}
	JSON(c, http.StatusOK, PageEnvelope{
		Envelope:   Envelope{Success: true, Message: message, Object: items},
		PageNumber: page.Number,
		PageSize:   page.Size,
		TotalSize:  page.Total,
	})
}

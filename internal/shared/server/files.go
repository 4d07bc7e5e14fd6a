package server

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"jobboard-backend/internal/shared/apperr"
	"jobboard-backend/internal/shared/server/respond"
	"jobboard-backend/internal/shared/storage/object"
)

const fileNotFoundMessage = "File not found"

// registerFileRoutes serves stored resumes by storage key.
func registerFileRoutes(rg *gin.RouterGroup, store object.ObjectStore) {
	rg.GET("/files/*key", func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("key"), "/")
		if key == "" {
			respond.Error(c, apperr.NotFound(fileNotFoundMessage))
			return
		}
		rc, err := store.Open(c.Request.Context(), key)
		if err != nil {
			respond.Error(c, apperr.NotFound(fileNotFoundMessage))
			return
		}
		defer rc.Close()

		c.Header("Content-Disposition", `inline; filename="`+path.Base(key)+`"`)
		c.DataFromReader(http.StatusOK, -1, contentType(key), rc, nil)
	})
}

func contentType(key string) string {
	if strings.HasSuffix(strings.ToLower(key), ".pdf") {
		return "application/pdf"
	}
	return "application/octet-stream"
}

// healthservice reports whether the process is serving.
package healthservice

import (
	"net/http"

	"github.com/database-playground/account-eraser/httpapi"
	"github.com/gin-gonic/gin"
)

type HealthService struct{}

func NewHealthService() *HealthService {
	return &HealthService{}
}

func (s *HealthService) Register(router gin.IRouter) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

var _ httpapi.Service = (*HealthService)(nil)

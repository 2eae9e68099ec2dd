package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"servicemap/internal/logger"
)

// NewRouter builds the gin engine. When servicesFile is set the raw dataset
// is also served at /data/services.json.
func NewRouter(h *Handler, log *logger.Logger, servicesFile string) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(log))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if servicesFile != "" {
		engine.StaticFile("/data/services.json", servicesFile)
	}

	h.RegisterRoutes(engine.Group("/api"))
	return engine
}

package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-registration/internal/container"
	"github.com/oksasatya/go-user-registration/internal/interface/middleware"
)

// NewEngine builds the gin engine with global middleware and every module
// registered. Components are read from the container, so it must be filled first.
func NewEngine() *gin.Engine {
	cfg := container.GetConfig()

	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxMultipartMemory()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())

	var accessLogger logrus.FieldLogger
	if cfg.HTTPLogEnabled {
		accessLogger = container.GetLogger()
	}
	r.Use(middleware.AccessLog(accessLogger, container.GetMetrics()))

	// CORS; cors.New rejects an empty origin list
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	reg := NewRegistry(r)
	InitModules(reg)
	reg.RegisterAll()
	return r
}

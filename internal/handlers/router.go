// Package handlers exposes the appointment request operations over HTTP.
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Version is reported by GET /.
const Version = "1.0.0"

// RouterConfig groups dependencies for the HTTP router.
type RouterConfig struct {
	Requests RequestService
	Logger   logrus.FieldLogger
	Started  time.Time // uptime origin; zero means now
}

// NewRouter builds the gin engine serving the API.
func NewRouter(cfg RouterConfig) *gin.Engine {
	started := cfg.Started
	if started.IsZero() {
		started = time.Now()
	}

	r := gin.New()
	r.Use(accessLogger(cfg.Logger))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "HEAD", "OPTIONS", "POST", "PUT", "DELETE"},
		AllowHeaders:    []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, APIResponse{
			Success: true,
			Message: "Serverless Express API",
			Data: gin.H{
				"version":   Version,
				"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
				"uptime":    time.Since(started).Seconds(),
				"endpoints": gin.H{"appointmentRequests": "/appointment-request"},
			},
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, APIResponse{
			Success: true,
			Message: "Service is healthy",
			Data: gin.H{
				"status":    "OK",
				"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
				"uptime":    time.Since(started).Seconds(),
			},
		})
	})

	RegisterAppointmentRequestRoutes(r, cfg.Requests, cfg.Logger)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, APIResponse{
			Error: fmt.Sprintf("Route %s %s not found", c.Request.Method, c.Request.URL.RequestURI()),
		})
	})
	return r
}

func accessLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		entry := logger.WithFields(logrus.Fields{
			"status":  c.Writer.Status(),
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"latency": time.Since(start).String(),
		})
		if len(c.Errors) > 0 {
			entry.Error(c.Errors.String())
			return
		}
		entry.Info("request")
	}
}

//go:build !js && !wasm

package main

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/echofp/echofp/pkg/echofp"
)

// server holds the collaborators every handler needs.
type server struct {
	svc echofp.Service
	log requestLogger
}

// requestLogger is the minimal subset of pkg/logger.Logger the server
// uses; kept as an interface so another logger can be substituted.
type requestLogger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

func (s *server) registerRoutes(r *gin.Engine) {
	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	{
		api.GET("/recordings", s.handleListRecordings)
		api.POST("/recordings", s.handleAddRecording)
		api.DELETE("/recordings/:rid", s.handleDeleteRecording)
		api.POST("/recognize", s.handleRecognize)
		api.POST("/recognize/hashes", s.handleRecognizeHashes)
	}
}

// loggingMiddleware mirrors the teacher's hand-rolled logging
// middleware, reimplemented as a gin middleware function.
func (s *server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Infof("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

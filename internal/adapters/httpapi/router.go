// Package httpapi exposes the roster, ledger and notification use cases
// over HTTP.
package httpapi

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"admitd/internal/application"
	"admitd/internal/ports/input"
	"admitd/internal/ports/output"
)

type Server struct {
	roster        input.RosterUseCase
	events        input.EventUseCase
	ledger        input.LedgerUseCase
	notifications input.NotificationUseCase
	hub           *application.FeedHub
	translator    output.T
	timeout       time.Duration
	tracer        trace.Tracer
}

func NewServer(
	roster input.RosterUseCase,
	events input.EventUseCase,
	ledger input.LedgerUseCase,
	notifications input.NotificationUseCase,
	hub *application.FeedHub,
	translator output.T,
	timeout time.Duration,
) *Server {
	return &Server{
		roster:        roster,
		events:        events,
		ledger:        ledger,
		notifications: notifications,
		hub:           hub,
		translator:    translator,
		timeout:       timeout,
		tracer:        otel.Tracer("admitd/httpapi"),
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), s.spanMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Long-lived stream, registered outside the request timeout.
	r.GET("/v1/events/:id/notifications/stream", s.streamGroupedNotifications)

	v1 := r.Group("/v1")
	v1.Use(s.timeoutMiddleware())

	v1.POST("/events", s.createEvent)
	v1.GET("/events/:id", s.getEvent)
	v1.PUT("/events/:id", s.updateEvent)
	v1.DELETE("/events/:id", s.deleteEvent)
	v1.GET("/organizers/:id/events", s.eventsByOrganizer)

	v1.POST("/events/:id/waitlist", s.joinWaitlist)
	v1.DELETE("/events/:id/waitlist/:userID", s.leaveWaitlist)
	v1.POST("/events/:id/waitlist/:userID/accept", s.acceptFromWaitlist)
	v1.POST("/events/:id/waitlist/:userID/decline", s.declineFromWaitlist)
	v1.POST("/events/:id/register", s.registerUser)
	v1.POST("/events/:id/cancel", s.cancel)

	v1.GET("/events/:id/roster/:status", s.rosterByStatus)
	v1.GET("/events/:id/signup-count", s.signupCount)
	v1.GET("/events/:id/members/:userID", s.memberStatus)

	v1.POST("/events/:id/notifications", s.sendNotification)
	v1.GET("/events/:id/notifications/grouped", s.groupedNotifications)

	v1.GET("/users/:id/notifications", s.userNotifications)
	v1.GET("/users/:id/events", s.userEvents)
	v1.POST("/users/:id/reconcile", s.reconcileUser)

	return r
}

// timeoutMiddleware bounds every request so a stuck store surfaces as a
// timeout instead of a hung connection.
func (s *Server) timeoutMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (s *Server) spanMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := s.tracer.Start(c.Request.Context(), c.Request.Method+" "+c.FullPath())
		defer span.End()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// localeFrom picks the first language tag off the Accept-Language header.
func localeFrom(c *gin.Context) string {
	header := c.GetHeader("Accept-Language")
	if header == "" {
		return ""
	}
	first := strings.SplitN(header, ",", 2)[0]
	return strings.TrimSpace(strings.SplitN(first, ";", 2)[0])
}

package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /v1/users/:id/events
func (s *Server) userEvents(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("id")

	waitlisted, err := s.ledger.WaitlistedEventIDs(ctx, userID)
	if err != nil {
		s.fail(c, err)
		return
	}
	accepted, err := s.ledger.AcceptedEventIDs(ctx, userID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"waitlisted_event_ids": waitlisted,
		"accepted_event_ids":   accepted,
	})
}

// POST /v1/users/:id/reconcile
func (s *Server) reconcileUser(c *gin.Context) {
	if err := s.ledger.Reconcile(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reconciled": true})
}

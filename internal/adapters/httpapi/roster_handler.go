package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"admitd/internal/domain"
	"admitd/internal/ports/input"
)

// POST /v1/events/:id/waitlist
func (s *Server) joinWaitlist(c *gin.Context) {
	var in struct {
		UserID    string   `json:"user_id" binding:"required"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		s.badRequest(c, err)
		return
	}
	var geo *input.Geo
	if in.Latitude != nil && in.Longitude != nil {
		geo = &input.Geo{Latitude: *in.Latitude, Longitude: *in.Longitude}
	}
	if err := s.roster.JoinWaitlist(c.Request.Context(), c.Param("id"), in.UserID, geo); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": domain.StatusWaiting})
}

// DELETE /v1/events/:id/waitlist/:userID
func (s *Server) leaveWaitlist(c *gin.Context) {
	if err := s.roster.LeaveWaitlist(c.Request.Context(), c.Param("id"), c.Param("userID")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /v1/events/:id/waitlist/:userID/accept
func (s *Server) acceptFromWaitlist(c *gin.Context) {
	if err := s.roster.AcceptFromWaitlist(c.Request.Context(), c.Param("id"), c.Param("userID")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": domain.StatusAccepted})
}

// POST /v1/events/:id/waitlist/:userID/decline
func (s *Server) declineFromWaitlist(c *gin.Context) {
	if err := s.roster.DeclineFromWaitlist(c.Request.Context(), c.Param("id"), c.Param("userID")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": domain.StatusRemoved})
}

// POST /v1/events/:id/register
func (s *Server) registerUser(c *gin.Context) {
	var in struct {
		UserID            string `json:"user_id" binding:"required"`
		OrganizerOverride bool   `json:"organizer_override"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		s.badRequest(c, err)
		return
	}
	if err := s.roster.RegisterUser(c.Request.Context(), c.Param("id"), in.UserID, in.OrganizerOverride); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registered": true})
}

// POST /v1/events/:id/cancel
func (s *Server) cancel(c *gin.Context) {
	var in struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		s.badRequest(c, err)
		return
	}
	if err := s.roster.Cancel(c.Request.Context(), c.Param("id"), in.UserID); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": domain.StatusCancelled})
}

// GET /v1/events/:id/roster/:status
func (s *Server) rosterByStatus(c *gin.Context) {
	eventID := c.Param("id")
	ctx := c.Request.Context()

	var list func() (any, error)
	switch c.Param("status") {
	case domain.StatusWaiting:
		list = func() (any, error) {
			entries, err := s.roster.WaitingEntrants(ctx, eventID)
			return toEntryResponses(entries), err
		}
	case domain.StatusAccepted:
		list = func() (any, error) {
			entries, err := s.roster.AcceptedEntrants(ctx, eventID)
			return toEntryResponses(entries), err
		}
	case domain.StatusCancelled:
		list = func() (any, error) {
			entries, err := s.roster.CancelledEntrants(ctx, eventID)
			return toEntryResponses(entries), err
		}
	default:
		s.badRequest(c, fmt.Errorf("unknown roster status %q", c.Param("status")))
		return
	}

	entries, err := list()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// GET /v1/events/:id/signup-count
func (s *Server) signupCount(c *gin.Context) {
	count, err := s.roster.GetSignupCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"signup_count": count})
}

// GET /v1/events/:id/members/:userID
func (s *Server) memberStatus(c *gin.Context) {
	ctx := c.Request.Context()
	eventID, userID := c.Param("id"), c.Param("userID")

	waiting, err := s.roster.IsOnWaitingList(ctx, eventID, userID)
	if err != nil {
		s.fail(c, err)
		return
	}
	accepted, err := s.roster.HasAcceptedFromWaitlist(ctx, eventID, userID)
	if err != nil {
		s.fail(c, err)
		return
	}
	registered, err := s.roster.IsRegistered(ctx, eventID, userID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"waiting":    waiting,
		"accepted":   accepted,
		"registered": registered,
	})
}

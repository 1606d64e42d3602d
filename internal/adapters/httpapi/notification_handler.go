package httpapi

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// POST /v1/events/:id/notifications
func (s *Server) sendNotification(c *gin.Context) {
	var in struct {
		Message    string   `json:"message" binding:"required"`
		SentBy     string   `json:"sent_by" binding:"required"`
		Recipients []string `json:"recipients" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		s.badRequest(c, err)
		return
	}
	count, err := s.notifications.Send(c.Request.Context(), c.Param("id"), in.SentBy, in.Message, in.Recipients)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"delivered": count})
}

// GET /v1/events/:id/notifications/grouped
func (s *Server) groupedNotifications(c *gin.Context) {
	groups, err := s.notifications.GroupForEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": toGroupedResponses(groups)})
}

// GET /v1/events/:id/notifications/stream
//
// Server-sent events: the client receives the current grouped view on
// connect and a fresh snapshot on every change announcement.
func (s *Server) streamGroupedNotifications(c *gin.Context) {
	feed := s.hub.Feed(c.Param("id"))
	client := feed.RegisterClient(c.Request.Context())
	defer feed.UnregisterClient(client)

	c.Stream(func(w io.Writer) bool {
		select {
		case groups, ok := <-client.Chan():
			if !ok {
				return false
			}
			c.SSEvent("groups", toGroupedResponses(groups))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// GET /v1/users/:id/notifications
func (s *Server) userNotifications(c *gin.Context) {
	records, err := s.notifications.HistoryForUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": toRecordResponses(records)})
}

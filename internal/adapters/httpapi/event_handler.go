package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"admitd/internal/domain/entities"
	"admitd/pkg/when"
)

// POST /v1/events
func (s *Server) createEvent(c *gin.Context) {
	var in eventRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		s.badRequest(c, err)
		return
	}
	if err := validateDates(&in); err != nil {
		s.badRequest(c, err)
		return
	}
	event := &entities.Event{
		Name:               in.Name,
		EventDate:          in.EventDate,
		RegistrationOpens:  in.RegistrationOpens,
		RegistrationCloses: in.RegistrationCloses,
		MaxSpots:           in.MaxSpots,
		Cost:               in.Cost,
		GeolocationEnabled: in.GeolocationEnabled,
		ImagePaths:         in.ImagePaths,
		OrganizerID:        in.OrganizerID,
	}
	if err := s.events.CreateEvent(c.Request.Context(), event); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEventResponse(event))
}

// GET /v1/events/:id
func (s *Server) getEvent(c *gin.Context) {
	event, err := s.events.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toEventResponse(event))
}

// PUT /v1/events/:id
func (s *Server) updateEvent(c *gin.Context) {
	var in eventRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		s.badRequest(c, err)
		return
	}
	if err := validateDates(&in); err != nil {
		s.badRequest(c, err)
		return
	}
	event := &entities.Event{
		EventID:            c.Param("id"),
		Name:               in.Name,
		EventDate:          in.EventDate,
		RegistrationOpens:  in.RegistrationOpens,
		RegistrationCloses: in.RegistrationCloses,
		MaxSpots:           in.MaxSpots,
		Cost:               in.Cost,
		GeolocationEnabled: in.GeolocationEnabled,
		ImagePaths:         in.ImagePaths,
	}
	if err := s.events.UpdateEvent(c.Request.Context(), event); err != nil {
		s.fail(c, err)
		return
	}
	updated, err := s.events.GetEvent(c.Request.Context(), event.EventID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toEventResponse(updated))
}

// DELETE /v1/events/:id
func (s *Server) deleteEvent(c *gin.Context) {
	callerID := c.GetHeader("X-User-ID")
	if callerID == "" {
		s.badRequest(c, fmt.Errorf("X-User-ID header required"))
		return
	}
	if err := s.events.DeleteEvent(c.Request.Context(), c.Param("id"), callerID); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /v1/organizers/:id/events
func (s *Server) eventsByOrganizer(c *gin.Context) {
	events, err := s.events.EventsByOrganizer(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]eventResponse, len(events))
	for i := range events {
		out[i] = toEventResponse(&events[i])
	}
	c.JSON(http.StatusOK, gin.H{"events": out})
}

func validateDates(in *eventRequest) error {
	for _, field := range []struct {
		name  string
		value string
	}{
		{"event_date", in.EventDate},
		{"registration_opens", in.RegistrationOpens},
		{"registration_closes", in.RegistrationCloses},
	} {
		if !when.Valid(field.value) {
			return fmt.Errorf("%s: invalid date %q", field.name, field.value)
		}
	}
	return nil
}

package httpapi

import (
	"time"

	"admitd/internal/domain/entities"
)

type eventRequest struct {
	Name               string   `json:"name" binding:"required"`
	EventDate          string   `json:"event_date"`
	RegistrationOpens  string   `json:"registration_opens"`
	RegistrationCloses string   `json:"registration_closes"`
	MaxSpots           string   `json:"max_spots"`
	Cost               string   `json:"cost"`
	GeolocationEnabled bool     `json:"geolocation_enabled"`
	ImagePaths         []string `json:"image_paths"`
	OrganizerID        string   `json:"organizer_id"`
}

type eventResponse struct {
	EventID            string   `json:"event_id"`
	Name               string   `json:"name"`
	EventDate          string   `json:"event_date"`
	RegistrationOpens  string   `json:"registration_opens"`
	RegistrationCloses string   `json:"registration_closes"`
	MaxSpots           string   `json:"max_spots"`
	Cost               string   `json:"cost"`
	GeolocationEnabled bool     `json:"geolocation_enabled"`
	ImagePaths         []string `json:"image_paths"`
	OrganizerID        string   `json:"organizer_id"`
	WaitingCount       int      `json:"waiting_count"`
	AcceptedCount      int      `json:"accepted_count"`
	SignupCount        int      `json:"signup_count"`
}

func toEventResponse(e *entities.Event) eventResponse {
	return eventResponse{
		EventID:            e.EventID,
		Name:               e.Name,
		EventDate:          e.EventDate,
		RegistrationOpens:  e.RegistrationOpens,
		RegistrationCloses: e.RegistrationCloses,
		MaxSpots:           e.MaxSpots,
		Cost:               e.Cost,
		GeolocationEnabled: e.GeolocationEnabled,
		ImagePaths:         e.ImagePaths,
		OrganizerID:        e.OrganizerID,
		WaitingCount:       len(e.WaitingList),
		AcceptedCount:      len(e.AcceptedFromWaitlist),
		SignupCount:        e.SignupCount,
	}
}

type entryResponse struct {
	UserID     string     `json:"user_id"`
	UserName   string     `json:"user_name,omitempty"`
	Status     string     `json:"status"`
	JoinedAt   time.Time  `json:"joined_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	Latitude   *float64   `json:"latitude,omitempty"`
	Longitude  *float64   `json:"longitude,omitempty"`
}

func toEntryResponses(entries []entities.WaitlistEntry) []entryResponse {
	out := make([]entryResponse, len(entries))
	for i, e := range entries {
		out[i] = entryResponse{
			UserID:     e.UserID,
			UserName:   e.UserName,
			Status:     e.Status,
			JoinedAt:   e.JoinedAt,
			AcceptedAt: e.AcceptedAt,
			Latitude:   e.Latitude,
			Longitude:  e.Longitude,
		}
	}
	return out
}

type groupedResponse struct {
	Title            string              `json:"title"`
	OrganizerDisplay string              `json:"organizer_display"`
	SentBy           string              `json:"sent_by"`
	Timestamp        time.Time           `json:"timestamp"`
	Recipients       []recipientResponse `json:"recipients"`
}

type recipientResponse struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

func toGroupedResponses(groups []entities.GroupedNotification) []groupedResponse {
	out := make([]groupedResponse, len(groups))
	for i, g := range groups {
		recipients := make([]recipientResponse, len(g.Recipients))
		for j, r := range g.Recipients {
			recipients[j] = recipientResponse{UserID: r.UserID, DisplayName: r.DisplayName}
		}
		out[i] = groupedResponse{
			Title:            g.Title,
			OrganizerDisplay: g.OrganizerDisplay,
			SentBy:           g.SentBy,
			Timestamp:        g.Timestamp,
			Recipients:       recipients,
		}
	}
	return out
}

type recordResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Message   string    `json:"message"`
	SentBy    string    `json:"sent_by"`
	Timestamp time.Time `json:"timestamp"`
}

func toRecordResponses(records []entities.NotificationRecord) []recordResponse {
	out := make([]recordResponse, len(records))
	for i, r := range records {
		out[i] = recordResponse{
			ID:        r.ID,
			EventID:   r.EventID,
			Message:   r.Message,
			SentBy:    r.SentBy,
			Timestamp: r.Timestamp,
		}
	}
	return out
}

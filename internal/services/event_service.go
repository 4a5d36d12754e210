package services

import (
	"github.com/cribnhq/cribn-backend/internal/models"
	repo "github.com/cribnhq/cribn-backend/internal/repository"
)

type EventService struct{ r repo.Events }

func NewEventService(r repo.Events) *EventService { return &EventService{r: r} }

func (s *EventService) Create(organizerID, title, venue string, ticketPrice int64) (models.Event, error) {
	ev := models.Event{
		OrganizerID: organizerID,
		Title:       title,
		Venue:       venue,
		TicketPrice: ticketPrice,
		Status:      models.EventPublished,
	}
	return s.r.Create(ev)
}

func (s *EventService) List(limit, offset int) ([]models.Event, error) {
	return s.r.ListPublished(limit, offset)
}

func (s *EventService) GetByID(id string) (models.Event, error) { return s.r.GetByID(id) }

package event

import (
	"context"
	"log"

	"github.com/google/uuid"

	"eventhub/internal/auditlog"
	"eventhub/internal/bus"
)

// Service wraps business logic for events. Referenced user and
// location ids are stored as-is; existence is not checked at write
// time.
type Service struct {
	Repo     *Repository
	Bus      bus.Bus
	AuditSvc auditlog.Service
}

func NewService(r *Repository, b bus.Bus, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, Bus: b, AuditSvc: auditSvc}
}

func (s *Service) List() []Event {
	return s.Repo.List()
}

func (s *Service) Get(id string) (Event, error) {
	return s.Repo.FindByID(id)
}

// ===========================
// 🎯 Create Event — returns the created record, not the collection
func (s *Service) Create(ctx context.Context, req CreateEventRequest, ip string) (Event, error) {
	e := Event{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Desc:       req.Desc,
		Date:       req.Date,
		From:       req.From,
		To:         req.To,
		LocationID: req.LocationID,
		UserID:     req.UserID,
	}
	s.Repo.Insert(e)
	s.notify(ctx, TopicCreated, e)
	s.AuditSvc.LogAction(ctx, "EVENT_CREATED", "event", e.ID, ip)
	return e, nil
}

// ===========================
// 🛠 Update Event
func (s *Service) Update(ctx context.Context, id string, req UpdateEventRequest, ip string) (Event, error) {
	updated, err := s.Repo.Update(id, func(e Event) Event {
		if req.Title != nil {
			e.Title = *req.Title
		}
		if req.Desc != nil {
			e.Desc = *req.Desc
		}
		if req.Date != nil {
			e.Date = *req.Date
		}
		if req.From != nil {
			e.From = *req.From
		}
		if req.To != nil {
			e.To = *req.To
		}
		if req.LocationID != nil {
			e.LocationID = *req.LocationID
		}
		if req.UserID != nil {
			e.UserID = *req.UserID
		}
		return e
	})
	if err != nil {
		return Event{}, err
	}
	s.notify(ctx, TopicUpdated, updated)
	s.AuditSvc.LogAction(ctx, "EVENT_UPDATED", "event", id, ip)
	return updated, nil
}

// ===========================
// ❌ Delete Event — participants of the event are not cascaded
func (s *Service) Delete(ctx context.Context, id string, ip string) (Event, error) {
	removed, err := s.Repo.Remove(id)
	if err != nil {
		return Event{}, err
	}
	s.AuditSvc.LogAction(ctx, "EVENT_DELETED", "event", id, ip)
	return removed, nil
}

// ===========================
// 🧹 Delete All Events
func (s *Service) DeleteAll(ctx context.Context, ip string) int {
	count := s.Repo.Clear()
	s.AuditSvc.LogAction(ctx, "EVENT_DELETED_ALL", "event", "", ip)
	return count
}

func (s *Service) notify(ctx context.Context, topic string, e Event) {
	if err := s.Bus.Publish(ctx, topic, e); err != nil {
		log.Printf("⚠️ event: publish %s failed: %v", topic, err)
	}
}

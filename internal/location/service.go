package location

import (
	"context"
	"log"

	"github.com/google/uuid"

	"eventhub/internal/auditlog"
	"eventhub/internal/bus"
)

// Service wraps business logic for locations.
type Service struct {
	Repo     *Repository
	Bus      bus.Bus
	AuditSvc auditlog.Service
}

func NewService(r *Repository, b bus.Bus, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, Bus: b, AuditSvc: auditSvc}
}

func (s *Service) List() []Location {
	return s.Repo.List()
}

func (s *Service) Get(id string) (Location, error) {
	return s.Repo.FindByID(id)
}

// ===========================
// 🎯 Create Location — returns the created record, not the collection
func (s *Service) Create(ctx context.Context, req CreateLocationRequest, ip string) (Location, error) {
	l := Location{
		ID:   uuid.NewString(),
		Name: req.Name,
		Desc: req.Desc,
		Lat:  req.Lat,
		Lng:  req.Lng,
	}
	s.Repo.Insert(l)
	s.notify(ctx, TopicCreated, l)
	s.AuditSvc.LogAction(ctx, "LOCATION_CREATED", "location", l.ID, ip)
	return l, nil
}

// ===========================
// 🛠 Update Location
func (s *Service) Update(ctx context.Context, id string, req UpdateLocationRequest, ip string) (Location, error) {
	updated, err := s.Repo.Update(id, func(l Location) Location {
		if req.Name != nil {
			l.Name = *req.Name
		}
		if req.Desc != nil {
			l.Desc = *req.Desc
		}
		if req.Lat != nil {
			l.Lat = *req.Lat
		}
		if req.Lng != nil {
			l.Lng = *req.Lng
		}
		return l
	})
	if err != nil {
		return Location{}, err
	}
	s.notify(ctx, TopicUpdated, updated)
	s.AuditSvc.LogAction(ctx, "LOCATION_UPDATED", "location", id, ip)
	return updated, nil
}

// ===========================
// ❌ Delete Location — no notification, no cascading delete of events
// that reference it; their location resolves to null afterwards.
func (s *Service) Delete(ctx context.Context, id string, ip string) (Location, error) {
	removed, err := s.Repo.Remove(id)
	if err != nil {
		return Location{}, err
	}
	s.AuditSvc.LogAction(ctx, "LOCATION_DELETED", "location", id, ip)
	return removed, nil
}

// ===========================
// 🧹 Delete All Locations
func (s *Service) DeleteAll(ctx context.Context, ip string) int {
	count := s.Repo.Clear()
	s.AuditSvc.LogAction(ctx, "LOCATION_DELETED_ALL", "location", "", ip)
	return count
}

func (s *Service) notify(ctx context.Context, topic string, l Location) {
	if err := s.Bus.Publish(ctx, topic, l); err != nil {
		log.Printf("⚠️ location: publish %s failed: %v", topic, err)
	}
}

package participant

import (
	"context"
	"log"

	"github.com/google/uuid"

	"eventhub/internal/auditlog"
	"eventhub/internal/bus"
)

// Service wraps business logic for participants.
type Service struct {
	Repo     *Repository
	Bus      bus.Bus
	AuditSvc auditlog.Service
}

func NewService(r *Repository, b bus.Bus, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, Bus: b, AuditSvc: auditSvc}
}

func (s *Service) List() []Participant {
	return s.Repo.List()
}

func (s *Service) Get(id string) (Participant, error) {
	return s.Repo.FindByID(id)
}

func (s *Service) ListByEvent(eventID string) []Participant {
	return s.Repo.ListByEvent(eventID)
}

// ===========================
// 🎯 Create Participant
func (s *Service) Create(ctx context.Context, req CreateParticipantRequest, ip string) (Participant, error) {
	p := Participant{
		ID:      uuid.NewString(),
		UserID:  req.UserID,
		EventID: req.EventID,
	}
	s.Repo.Insert(p)
	s.notify(ctx, TopicCreated, p)
	s.AuditSvc.LogAction(ctx, "PARTICIPANT_CREATED", "participant", p.ID, ip)
	return p, nil
}

// ===========================
// 🛠 Update Participant
func (s *Service) Update(ctx context.Context, id string, req UpdateParticipantRequest, ip string) (Participant, error) {
	updated, err := s.Repo.Update(id, func(p Participant) Participant {
		if req.UserID != nil {
			p.UserID = *req.UserID
		}
		if req.EventID != nil {
			p.EventID = *req.EventID
		}
		return p
	})
	if err != nil {
		return Participant{}, err
	}
	s.notify(ctx, TopicUpdated, updated)
	s.AuditSvc.LogAction(ctx, "PARTICIPANT_UPDATED", "participant", id, ip)
	return updated, nil
}

// ===========================
// ❌ Delete Participant
func (s *Service) Delete(ctx context.Context, id string, ip string) (Participant, error) {
	removed, err := s.Repo.Remove(id)
	if err != nil {
		return Participant{}, err
	}
	s.AuditSvc.LogAction(ctx, "PARTICIPANT_DELETED", "participant", id, ip)
	return removed, nil
}

// ===========================
// 🧹 Delete All Participants
func (s *Service) DeleteAll(ctx context.Context, ip string) int {
	count := s.Repo.Clear()
	s.AuditSvc.LogAction(ctx, "PARTICIPANT_DELETED_ALL", "participant", "", ip)
	return count
}

func (s *Service) notify(ctx context.Context, topic string, p Participant) {
	if err := s.Bus.Publish(ctx, topic, p); err != nil {
		log.Printf("⚠️ participant: publish %s failed: %v", topic, err)
	}
}

package user

import (
	"context"
	"log"

	"github.com/google/uuid"

	"eventhub/internal/auditlog"
	"eventhub/internal/bus"
)

// Service wraps business logic for users.
type Service struct {
	Repo     *Repository
	Bus      bus.Bus
	AuditSvc auditlog.Service
}

func NewService(r *Repository, b bus.Bus, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, Bus: b, AuditSvc: auditSvc}
}

func (s *Service) List() []User {
	return s.Repo.List()
}

func (s *Service) Get(id string) (User, error) {
	return s.Repo.FindByID(id)
}

// ===========================
// 🎯 Create User
func (s *Service) Create(ctx context.Context, req CreateUserRequest, ip string) (User, error) {
	u := User{
		ID:       uuid.NewString(),
		Username: req.Username,
		Email:    req.Email,
	}
	s.Repo.Insert(u)
	s.notify(ctx, TopicCreated, u)
	s.AuditSvc.LogAction(ctx, "USER_CREATED", "user", u.ID, ip)
	return u, nil
}

// ===========================
// 🛠 Update User — partial merge, absent fields untouched
func (s *Service) Update(ctx context.Context, id string, req UpdateUserRequest, ip string) (User, error) {
	updated, err := s.Repo.Update(id, func(u User) User {
		if req.Username != nil {
			u.Username = *req.Username
		}
		if req.Email != nil {
			u.Email = *req.Email
		}
		return u
	})
	if err != nil {
		return User{}, err
	}
	s.notify(ctx, TopicUpdated, updated)
	s.AuditSvc.LogAction(ctx, "USER_UPDATED", "user", id, ip)
	return updated, nil
}

// ===========================
// ❌ Delete User — returns the pre-removal snapshot. Deletes publish
// no notification; only create and update do.
func (s *Service) Delete(ctx context.Context, id string, ip string) (User, error) {
	removed, err := s.Repo.Remove(id)
	if err != nil {
		return User{}, err
	}
	s.AuditSvc.LogAction(ctx, "USER_DELETED", "user", id, ip)
	return removed, nil
}

// ===========================
// 🧹 Delete All Users — never fails, no notifications
func (s *Service) DeleteAll(ctx context.Context, ip string) int {
	count := s.Repo.Clear()
	s.AuditSvc.LogAction(ctx, "USER_DELETED_ALL", "user", "", ip)
	return count
}

// notify publishes after the store write committed. A publish failure
// is logged and swallowed so it can never fail the mutation.
func (s *Service) notify(ctx context.Context, topic string, u User) {
	if err := s.Bus.Publish(ctx, topic, u); err != nil {
		log.Printf("⚠️ user: publish %s failed: %v", topic, err)
	}
}

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mrezende/gymtotem/internal/plan"
	"github.com/mrezende/gymtotem/internal/profile"
	"github.com/mrezende/gymtotem/internal/workout"
)

// MemoryStore implements workout.Store in process memory. It backs tests and
// kiosks running without a writable database path. Data is lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[string]profile.UserProfile
	plans   map[string]plan.WeeklyPlan
	history map[string][]workout.HistoryRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]profile.UserProfile),
		plans:   make(map[string]plan.WeeklyPlan),
		history: make(map[string][]workout.HistoryRecord),
	}
}

func planKey(cpf, weekKey string) string {
	return cpf + "/" + weekKey
}

func (s *MemoryStore) CreateUser(_ context.Context, p profile.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[p.CPF]; ok {
		return workout.ErrDuplicateUser
	}
	s.users[p.CPF] = p
	return nil
}

func (s *MemoryStore) GetUser(_ context.Context, cpf string) (profile.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.users[cpf]
	if !ok {
		return profile.UserProfile{}, workout.ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) UpdateUser(_ context.Context, p profile.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[p.CPF]; !ok {
		return workout.ErrNotFound
	}
	s.users[p.CPF] = p
	return nil
}

func (s *MemoryStore) TouchLastLogin(_ context.Context, cpf string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.users[cpf]
	if !ok {
		return workout.ErrNotFound
	}
	p.LastLogin = at
	s.users[cpf] = p
	return nil
}

func (s *MemoryStore) SaveWeeklyPlan(_ context.Context, cpf, weekKey string, wp plan.WeeklyPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[planKey(cpf, weekKey)] = wp
	return nil
}

func (s *MemoryStore) GetWeeklyPlan(_ context.Context, cpf, weekKey string) (plan.WeeklyPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wp, ok := s.plans[planKey(cpf, weekKey)]
	if !ok {
		return nil, workout.ErrNotFound
	}
	return wp, nil
}

func (s *MemoryStore) DeleteWeeklyPlan(_ context.Context, cpf, weekKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := planKey(cpf, weekKey)
	if _, ok := s.plans[key]; !ok {
		return workout.ErrNotFound
	}
	delete(s.plans, key)
	return nil
}

func (s *MemoryStore) SaveHistoryRecord(_ context.Context, rec workout.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[rec.UserCPF] = append(s.history[rec.UserCPF], rec)
	return nil
}

func (s *MemoryStore) ListHistory(_ context.Context, cpf string) ([]workout.HistoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]workout.HistoryRecord, len(s.history[cpf]))
	copy(records, s.history[cpf])
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CompletedAt.After(records[j].CompletedAt)
	})
	return records, nil
}

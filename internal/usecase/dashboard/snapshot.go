package dashboard

import (
	"context"
	"log"
	"sync"

	"github.com/serenitymassage/clinic-scheduler/internal/dto"
)

// Snapshot caches the unfiltered dashboard payload between change events.
// The refresher rebuilds it when rows change; requests in between read the
// cached copy instead of re-querying the store.
type Snapshot struct {
	refresh *Refresh

	mu   sync.RWMutex
	data *dto.DashboardData
}

func NewSnapshot(refresh *Refresh) *Snapshot {
	return &Snapshot{refresh: refresh}
}

// Get returns the cached payload, building it on first use.
func (s *Snapshot) Get(ctx context.Context) (*dto.DashboardData, error) {
	s.mu.RLock()
	data := s.data
	s.mu.RUnlock()

	if data != nil {
		return data, nil
	}
	return s.rebuild(ctx)
}

// Rebuild refreshes the cache. A failed rebuild keeps the previous payload,
// so a store blip never blanks a dashboard that was already loaded.
func (s *Snapshot) Rebuild(ctx context.Context) {
	if _, err := s.rebuild(ctx); err != nil {
		log.Printf("dashboard: snapshot rebuild failed: %v", err)
	}
}

func (s *Snapshot) rebuild(ctx context.Context) (*dto.DashboardData, error) {
	data, err := s.refresh.Execute(ctx, "")
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return data, nil
}

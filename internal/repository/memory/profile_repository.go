package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/alliyn/alliyn-backend/internal/domain"
	"github.com/alliyn/alliyn-backend/internal/repository"
)

type profileRepository struct {
	mu       sync.RWMutex
	profiles map[int]*domain.Profile
	nextID   int
}

// NewProfileRepository returns an in-memory pool holding the given profiles.
func NewProfileRepository(seed []domain.Profile) repository.ProfileRepository {
	r := &profileRepository{profiles: make(map[int]*domain.Profile), nextID: 1}
	for i := range seed {
		p := seed[i]
		r.profiles[p.ID] = &p
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	profile.ID = r.nextID
	profile.CreatedAt = now
	profile.UpdatedAt = now
	r.nextID++

	cp := *profile
	r.profiles[cp.ID] = &cp
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id int) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *profileRepository) List(ctx context.Context, limit, offset int) ([]*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	if offset >= len(ids) {
		return []*domain.Profile{}, nil
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}

	out := make([]*domain.Profile, 0, len(ids))
	for _, id := range ids {
		cp := *r.profiles[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.ID]; !ok {
		return domain.ErrProfileNotFound
	}
	profile.UpdatedAt = time.Now()
	cp := *profile
	r.profiles[cp.ID] = &cp
	return nil
}

func (r *profileRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[id]; !ok {
		return domain.ErrProfileNotFound
	}
	delete(r.profiles, id)
	return nil
}

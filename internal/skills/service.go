package skills

import (
	"context"
	"log"
)

// Lister is the store the cache falls back to on a miss.
type Lister interface {
	GetAll(ctx context.Context) ([]Skill, error)
}

// Service serves the skills reference list cache-aside: Redis first,
// Postgres on a miss. A nil cache disables caching (tests, local dev).
type Service struct {
	repo  Lister
	cache *Cache
}

func NewService(repo Lister, cache *Cache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

func (s *Service) GetAll(ctx context.Context) ([]Skill, error) {
	if s.cache != nil {
		list, ok, err := s.cache.Get(ctx)
		if err != nil {
			// Cache trouble must not take the endpoint down.
			log.Printf("skills cache read failed: %v", err)
		} else if ok {
			return list, nil
		}
	}

	list, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, list); err != nil {
			log.Printf("skills cache write failed: %v", err)
		}
	}
	return list, nil
}

// Refresh rebuilds the cache from Postgres. Called by the nightly cron.
func (s *Service) Refresh(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	list, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, list)
}

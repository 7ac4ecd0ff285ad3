package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/freela-market/freela-backend/internal/projects/domain"
)

// MemoryRepo keeps projects in process memory with the same optimistic
// version discipline as the pgx repo. Used by tests and local development
// without a database.
type MemoryRepo struct {
	mu       sync.Mutex
	nextID   int64
	projects map[int64]domain.Project
	comments map[int64][]domain.Comment
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		nextID:   1,
		projects: make(map[int64]domain.Project),
		comments: make(map[int64][]domain.Comment),
	}
}

func (r *MemoryRepo) GetAll(_ context.Context, query string) ([]domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := strings.ToLower(query)
	out := make([]domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *MemoryRepo) GetByID(_ context.Context, id int64) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(id)
}

func (r *MemoryRepo) GetDetailsByID(ctx context.Context, id int64) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.getLocked(id)
	if err != nil {
		return nil, err
	}
	p.Comments = append([]domain.Comment(nil), r.comments[id]...)
	return p, nil
}

func (r *MemoryRepo) Add(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextID
	r.nextID++
	p.Version = 1
	r.projects[p.ID] = *p
	return nil
}

func (r *MemoryRepo) AddComment(_ context.Context, c *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[c.ProjectID]; !ok {
		return domain.ErrNotFound
	}
	r.comments[c.ProjectID] = append(r.comments[c.ProjectID], *c)
	return nil
}

func (r *MemoryRepo) Update(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.projects[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != p.Version {
		return domain.ErrConflict
	}

	p.Version++
	saved := *p
	saved.Comments = nil
	r.projects[p.ID] = saved
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.projects, id)
	delete(r.comments, id)
	return nil
}

func (r *MemoryRepo) getLocked(id int64) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := p
	return &cp, nil
}

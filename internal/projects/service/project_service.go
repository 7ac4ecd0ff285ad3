package service

import (
	"context"
	"time"

	"github.com/freela-market/freela-backend/internal/projects"
	"github.com/freela-market/freela-backend/internal/projects/domain"
)

// ProjectRepository is the persistence contract the handlers depend on.
// Update must fail with domain.ErrConflict when a concurrent save won.
type ProjectRepository interface {
	GetAll(ctx context.Context, query string) ([]domain.Project, error)
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	GetDetailsByID(ctx context.Context, id int64) (*domain.Project, error)
	Add(ctx context.Context, p *domain.Project) error
	AddComment(ctx context.Context, c *domain.Comment) error
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int64) error
}

// ProjectService implements one handler per command/query. Each mutation
// loads the aggregate fresh, applies exactly one domain operation and
// persists with a single save.
type ProjectService struct {
	repo ProjectRepository
	now  func() time.Time
}

func NewProjectService(repo ProjectRepository) *ProjectService {
	return &ProjectService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, cmd projects.CreateProject) (int64, error) {
	p, err := domain.New(cmd.Title, cmd.Description, cmd.ClientID, s.now().UTC())
	if err != nil {
		return 0, err
	}

	if err := s.repo.Add(ctx, p); err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, cmd projects.UpdateProject) error {
	p, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return err
	}

	if err := p.UpdateDetails(cmd.Title, cmd.Description); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

func (s *ProjectService) DeleteProject(ctx context.Context, cmd projects.DeleteProject) error {
	p, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return err
	}

	if err := p.EnsureDeletable(); err != nil {
		return err
	}
	return s.repo.Delete(ctx, p.ID)
}

func (s *ProjectService) StartProject(ctx context.Context, cmd projects.StartProject) error {
	p, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return err
	}

	if cmd.FreelancerID > 0 {
		if err := p.AssignFreelancer(cmd.FreelancerID); err != nil {
			return err
		}
	}
	if err := p.Start(s.now().UTC()); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

func (s *ProjectService) FinishProject(ctx context.Context, cmd projects.FinishProject) error {
	p, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return err
	}

	if err := p.Finish(s.now().UTC()); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

func (s *ProjectService) CreateComment(ctx context.Context, cmd projects.CreateComment) error {
	p, err := s.repo.GetByID(ctx, cmd.ProjectID)
	if err != nil {
		return err
	}

	c, err := p.NewComment(cmd.AuthorID, cmd.AuthorRole, cmd.Text, s.now().UTC())
	if err != nil {
		return err
	}
	return s.repo.AddComment(ctx, c)
}

func (s *ProjectService) GetAllProjects(ctx context.Context, q projects.GetAllProjects) ([]domain.Project, error) {
	return s.repo.GetAll(ctx, q.Query)
}

func (s *ProjectService) GetProjectByID(ctx context.Context, q projects.GetProjectByID) (*domain.Project, error) {
	return s.repo.GetDetailsByID(ctx, q.ID)
}

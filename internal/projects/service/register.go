package service

import (
	"context"

	"github.com/freela-market/freela-backend/internal/auth"
	"github.com/freela-market/freela-backend/internal/dispatch"
	"github.com/freela-market/freela-backend/internal/projects"
)

// RegisterHandlers binds every project command and query to its handler.
// Called once at startup; any registration error aborts the process.
func (s *ProjectService) RegisterHandlers(d *dispatch.Dispatcher) error {
	table := map[string]dispatch.Handler{
		projects.CreateProject{}.RequestName(): func(ctx context.Context, _ auth.Principal, req dispatch.Request) (any, error) {
			return s.CreateProject(ctx, req.(projects.CreateProject))
		},
		projects.UpdateProject{}.RequestName(): func(ctx context.Context, _ auth.Principal, req dispatch.Request) (any, error) {
			return nil, s.UpdateProject(ctx, req.(projects.UpdateProject))
		},
		projects.DeleteProject{}.RequestName(): func(ctx context.Context, _ auth.Principal, req dispatch.Request) (any, error) {
			return nil, s.DeleteProject(ctx, req.(projects.DeleteProject))
		},
		projects.StartProject{}.RequestName(): func(ctx context.Context, _ auth.Principal, req dispatch.Request) (any, error) {
			return nil, s.StartProject(ctx, req.(projects.StartProject))
		},
		projects.FinishProject{}.RequestName(): func(ctx context.Context, _ auth.Principal, req dispatch.Request) (any, error) {
			return nil, s.FinishProject(ctx, req.(projects.FinishProject))
		},
		projects.CreateComment{}.RequestName(): func(ctx context.Context, _ auth.Principal, req dispatch.Request) (any, error) {
			return nil, s.CreateComment(ctx, req.(projects.CreateComment))
		},
		projects.GetAllProjects{}.RequestName(): func(ctx context.Context, _ auth.Principal, req dispatch.Request) (any, error) {
			return s.GetAllProjects(ctx, req.(projects.GetAllProjects))
		},
		projects.GetProjectByID{}.RequestName(): func(ctx context.Context, _ auth.Principal, req dispatch.Request) (any, error) {
			return s.GetProjectByID(ctx, req.(projects.GetProjectByID))
		},
	}

	for name, h := range table {
		if err := d.Register(name, h); err != nil {
			return err
		}
	}
	return nil
}

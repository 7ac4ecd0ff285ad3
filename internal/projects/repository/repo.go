package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freela-market/freela-backend/internal/projects/domain"
)

// Repo provides project persistence over pgx. Update carries the
// optimistic version check: at most one concurrent transition per save
// succeeds, the loser sees domain.ErrConflict.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const projectColumns = `id, title, description, client_id, freelancer_id, status, version, created_at, started_at, finished_at`

// GetAll returns every project, optionally filtered by a free-text query
// over title and description.
func (r *Repo) GetAll(ctx context.Context, query string) ([]domain.Project, error) {
	const q = `
select ` + projectColumns + `
from projects
where $1 = '' or title ilike '%' || $1 || '%' or description ilike '%' || $1 || '%'
order by created_at desc, id desc;
`
	rows, err := r.db.Query(ctx, q, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// GetByID loads a project without its comments.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	const q = `
select ` + projectColumns + `
from projects
where id = $1;
`
	p, err := scanProject(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// GetDetailsByID loads a project with its comments in insertion order.
func (r *Repo) GetDetailsByID(ctx context.Context, id int64) (*domain.Project, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	const q = `
select id, project_id, author_id, author_role, text, created_at
from project_comments
where project_id = $1
order by created_at asc, id asc;
`
	rows, err := r.db.Query(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.AuthorID, &c.AuthorRole, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		p.Comments = append(p.Comments, c)
	}
	return p, rows.Err()
}

// Add inserts a new project and fills in the assigned id and version.
func (r *Repo) Add(ctx context.Context, p *domain.Project) error {
	const q = `
insert into projects (title, description, client_id, status, version, created_at)
values ($1, $2, $3, $4, 1, $5)
returning id, version;
`
	err := r.db.QueryRow(ctx, q, p.Title, p.Description, p.ClientID, p.Status, p.CreatedAt).
		Scan(&p.ID, &p.Version)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// AddComment appends a comment to its project.
func (r *Repo) AddComment(ctx context.Context, c *domain.Comment) error {
	const q = `
insert into project_comments (id, project_id, author_id, author_role, text, created_at)
values ($1, $2, $3, $4, $5, $6);
`
	_, err := r.db.Exec(ctx, q, c.ID, c.ProjectID, c.AuthorID, c.AuthorRole, c.Text, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// Update persists a single transition guarded by the version the aggregate
// was loaded with. A lost race surfaces as domain.ErrConflict.
func (r *Repo) Update(ctx context.Context, p *domain.Project) error {
	const q = `
update projects
set title = $3, description = $4, freelancer_id = $5, status = $6,
    started_at = $7, finished_at = $8, version = version + 1
where id = $1 and version = $2;
`
	ct, err := r.db.Exec(ctx, q,
		p.ID, p.Version,
		p.Title, p.Description, p.FreelancerID, p.Status, p.StartedAt, p.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if ct.RowsAffected() > 0 {
		p.Version++
		return nil
	}

	// Zero rows: either the project is gone or another request saved first.
	var exists bool
	if err := r.db.QueryRow(ctx, `select exists(select 1 from projects where id = $1)`, p.ID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}

// Delete removes the project permanently; comments go with it via the
// foreign key cascade.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `delete from projects where id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.ClientID, &p.FreelancerID,
		&p.Status, &p.Version, &p.CreatedAt, &p.StartedAt, &p.FinishedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

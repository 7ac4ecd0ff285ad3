package skills

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Skill struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) GetAll(ctx context.Context) ([]Skill, error) {
	const q = `
select id, name
from skills
order by name asc;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Skill, 0, 32)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

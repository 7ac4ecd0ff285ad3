package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freela-market/freela-backend/internal/projects/domain"
)

// setupTestPool connects to the migrated test database.
// Skips the test if TEST_DB_DSN is not set.
func setupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping PostgreSQL integration test")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(context.Background()))

	t.Cleanup(pool.Close)
	return pool
}

func insertTestUser(t *testing.T, pool *pgxpool.Pool, role string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(), `
insert into users (name, email, password_hash, role)
values ($1, $2, 'x', $3)
returning id;
`, "test user", fmt.Sprintf("user-%d@test.local", time.Now().UnixNano()), role).Scan(&id)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `delete from users where id = $1`, id)
	})
	return id
}

func addTestProject(t *testing.T, repo *Repo, clientID int64) *domain.Project {
	t.Helper()

	p, err := domain.New("Website", "Build site", clientID, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Add(context.Background(), p))

	t.Cleanup(func() {
		_, _ = repo.db.Exec(context.Background(), `delete from projects where id = $1`, p.ID)
	})
	return p
}

func TestRepoRoundTrip(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewRepo(pool)
	clientID := insertTestUser(t, pool, "client")

	p := addTestProject(t, repo, clientID)
	require.Greater(t, p.ID, int64(0))
	assert.Equal(t, int32(1), p.Version)

	loaded, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Website", loaded.Title)
	assert.Equal(t, domain.StatusCreated, loaded.Status)
	assert.Equal(t, clientID, loaded.ClientID)
}

func TestRepoGetByIDNotFound(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewRepo(pool)

	_, err := repo.GetByID(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepoUpdateConflict(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewRepo(pool)
	clientID := insertTestUser(t, pool, "client")

	p := addTestProject(t, repo, clientID)

	first, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)

	require.NoError(t, first.Start(time.Now().UTC()))
	require.NoError(t, repo.Update(context.Background(), first))

	require.NoError(t, second.Start(time.Now().UTC()))
	err = repo.Update(context.Background(), second)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRepoCommentsOrder(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewRepo(pool)
	clientID := insertTestUser(t, pool, "client")

	p := addTestProject(t, repo, clientID)

	base := time.Now().UTC()
	for i, text := range []string{"first", "second", "third"} {
		c, err := p.NewComment(clientID, "client", text, base.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		require.NoError(t, repo.AddComment(context.Background(), c))
	}

	details, err := repo.GetDetailsByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, details.Comments, 3)
	assert.Equal(t, "first", details.Comments[0].Text)
	assert.Equal(t, "third", details.Comments[2].Text)
}

func TestRepoDelete(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewRepo(pool)
	clientID := insertTestUser(t, pool, "client")

	p := addTestProject(t, repo, clientID)

	require.NoError(t, repo.Delete(context.Background(), p.ID))

	_, err := repo.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(context.Background(), p.ID), domain.ErrNotFound)
}

func TestRepoGetAllFilter(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewRepo(pool)
	clientID := insertTestUser(t, pool, "client")

	p, err := domain.New("Marker title xq1", "plain", clientID, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Add(context.Background(), p))
	t.Cleanup(func() {
		_, _ = repo.db.Exec(context.Background(), `delete from projects where id = $1`, p.ID)
	})

	list, err := repo.GetAll(context.Background(), "xq1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)
}

package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freela-market/freela-backend/internal/auth"
)

type memoryUserRepo struct {
	nextID int64
	byID   map[int64]User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{nextID: 1, byID: make(map[int64]User)}
}

func (r *memoryUserRepo) Create(_ context.Context, u *User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	r.byID[u.ID] = *u
	return nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepo) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := u
	return &cp, nil
}

func newTestService() *Service {
	return NewService(newMemoryUserRepo(), "test-secret", time.Hour)
}

func TestRegister(t *testing.T) {
	t.Run("creates a user and returns its id", func(t *testing.T) {
		s := newTestService()
		id, err := s.Register(context.Background(), "Ana", "ana@example.com", "password123", auth.RoleClient)
		require.NoError(t, err)
		assert.Greater(t, id, int64(0))
	})

	t.Run("duplicate email fails", func(t *testing.T) {
		s := newTestService()
		_, err := s.Register(context.Background(), "Ana", "ana@example.com", "password123", auth.RoleClient)
		require.NoError(t, err)

		_, err = s.Register(context.Background(), "Other", "ana@example.com", "password123", auth.RoleFreelancer)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("short password fails", func(t *testing.T) {
		s := newTestService()
		_, err := s.Register(context.Background(), "Ana", "ana@example.com", "short", auth.RoleClient)
		assert.Error(t, err)
	})

	t.Run("unknown role fails", func(t *testing.T) {
		s := newTestService()
		_, err := s.Register(context.Background(), "Ana", "ana@example.com", "password123", "admin")
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	t.Run("issues a token carrying the role", func(t *testing.T) {
		s := newTestService()
		_, err := s.Register(context.Background(), "Ana", "ana@example.com", "password123", auth.RoleFreelancer)
		require.NoError(t, err)

		token, err := s.Login(context.Background(), "Ana@Example.com", "password123")
		require.NoError(t, err)

		p, err := auth.ParseToken("test-secret", token)
		require.NoError(t, err)
		assert.Equal(t, auth.RoleFreelancer, p.Role)
		assert.Equal(t, "ana@example.com", p.Email)
	})

	t.Run("wrong password fails with ErrInvalidCredentials", func(t *testing.T) {
		s := newTestService()
		_, err := s.Register(context.Background(), "Ana", "ana@example.com", "password123", auth.RoleClient)
		require.NoError(t, err)

		_, err = s.Login(context.Background(), "ana@example.com", "nope-nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email fails with ErrInvalidCredentials", func(t *testing.T) {
		s := newTestService()
		_, err := s.Login(context.Background(), "ghost@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

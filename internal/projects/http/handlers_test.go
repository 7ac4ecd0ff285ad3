package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freela-market/freela-backend/internal/auth"
	"github.com/freela-market/freela-backend/internal/dispatch"
	"github.com/freela-market/freela-backend/internal/projects"
	"github.com/freela-market/freela-backend/internal/projects/repository"
	"github.com/freela-market/freela-backend/internal/projects/service"
)

// withPrincipal stands in for the JWT middleware in tests.
func withPrincipal(p auth.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p.UserID != 0 {
			c.Set(auth.CtxPrincipal, p)
		}
		c.Next()
	}
}

func newTestRouter(t *testing.T, p auth.Principal) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	d := dispatch.New(
		dispatch.AuthorizationGate(projects.Permissions()),
		dispatch.ValidateRequests(),
	)
	svc := service.NewProjectService(repository.NewMemoryRepo())
	require.NoError(t, svc.RegisterHandlers(d))

	r := gin.New()
	rg := r.Group("/projects", withPrincipal(p))
	Register(rg, d)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createViaAPI(t *testing.T, r *gin.Engine) int64 {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/projects", gin.H{"title": "Website", "description": "Build site"})
	require.Equal(t, http.StatusCreated, w.Code)

	var res struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res.ID
}

func TestCreateProjectEndpoint(t *testing.T) {
	client := auth.Principal{UserID: 1, Email: "c@example.com", Role: auth.RoleClient}

	t.Run("client creates a project", func(t *testing.T) {
		r := newTestRouter(t, client)
		id := createViaAPI(t, r)
		assert.Greater(t, id, int64(0))
	})

	t.Run("validation failure reports all violations", func(t *testing.T) {
		r := newTestRouter(t, client)
		w := doJSON(r, http.MethodPost, "/projects", gin.H{
			"title":       strings.Repeat("t", 40),
			"description": strings.Repeat("d", 400),
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var res struct {
			Violations []dispatch.FieldViolation `json:"violations"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Len(t, res.Violations, 2)
	})

	t.Run("freelancer may not create", func(t *testing.T) {
		r := newTestRouter(t, auth.Principal{UserID: 7, Role: auth.RoleFreelancer})
		w := doJSON(r, http.MethodPost, "/projects", gin.H{"title": "x", "description": "y"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("anonymous request is unauthorized", func(t *testing.T) {
		r := newTestRouter(t, auth.Principal{})
		w := doJSON(r, http.MethodPost, "/projects", gin.H{"title": "x", "description": "y"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestLifecycleEndpoints(t *testing.T) {
	client := auth.Principal{UserID: 1, Role: auth.RoleClient}

	t.Run("start and finish return 204", func(t *testing.T) {
		r := newTestRouter(t, client)
		id := createViaAPI(t, r)

		w := doJSON(r, http.MethodPut, fmt.Sprintf("/projects/%d/start", id), gin.H{"freelancer_id": 7})
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(r, http.MethodPut, fmt.Sprintf("/projects/%d/finish", id), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("second start is a 400", func(t *testing.T) {
		r := newTestRouter(t, client)
		id := createViaAPI(t, r)

		doJSON(r, http.MethodPut, fmt.Sprintf("/projects/%d/start", id), nil)
		w := doJSON(r, http.MethodPut, fmt.Sprintf("/projects/%d/start", id), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown project is a 404", func(t *testing.T) {
		r := newTestRouter(t, client)
		w := doJSON(r, http.MethodPut, "/projects/999/start", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCommentEndpoint(t *testing.T) {
	client := auth.Principal{UserID: 1, Role: auth.RoleClient}

	t.Run("owner comments and reads them back in order", func(t *testing.T) {
		r := newTestRouter(t, client)
		id := createViaAPI(t, r)

		for _, text := range []string{"first", "second"} {
			w := doJSON(r, http.MethodPost, fmt.Sprintf("/projects/%d/comments", id), gin.H{"text": text})
			require.Equal(t, http.StatusNoContent, w.Code)
		}

		w := doJSON(r, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var res struct {
			Project struct {
				Comments []struct {
					Text string `json:"text"`
				} `json:"comments"`
			} `json:"project"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Len(t, res.Project.Comments, 2)
		assert.Equal(t, "first", res.Project.Comments[0].Text)
		assert.Equal(t, "second", res.Project.Comments[1].Text)
	})
}

func TestDeleteEndpoint(t *testing.T) {
	client := auth.Principal{UserID: 1, Role: auth.RoleClient}

	t.Run("delete then 404 on lookup", func(t *testing.T) {
		r := newTestRouter(t, client)
		id := createViaAPI(t, r)

		w := doJSON(r, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(r, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete after start is a 400", func(t *testing.T) {
		r := newTestRouter(t, client)
		id := createViaAPI(t, r)
		doJSON(r, http.MethodPut, fmt.Sprintf("/projects/%d/start", id), nil)

		w := doJSON(r, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListEndpoint(t *testing.T) {
	client := auth.Principal{UserID: 1, Role: auth.RoleClient}

	t.Run("query filters the listing", func(t *testing.T) {
		r := newTestRouter(t, client)

		doJSON(r, http.MethodPost, "/projects", gin.H{"title": "Website", "description": "Build site"})
		doJSON(r, http.MethodPost, "/projects", gin.H{"title": "Logo", "description": "Design a logo"})

		w := doJSON(r, http.MethodGet, "/projects?query=logo", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var res struct {
			Projects []struct {
				Title string `json:"title"`
			} `json:"projects"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Len(t, res.Projects, 1)
		assert.Equal(t, "Logo", res.Projects[0].Title)
	})
}

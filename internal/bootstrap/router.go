package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	httpapi "github.com/freela-market/freela-backend/internal/api/http"
	"github.com/freela-market/freela-backend/internal/api/http/middleware"
	"github.com/freela-market/freela-backend/internal/auth"
	"github.com/freela-market/freela-backend/internal/dispatch"
	"github.com/freela-market/freela-backend/internal/projects"
	projecthttp "github.com/freela-market/freela-backend/internal/projects/http"
	projectrepo "github.com/freela-market/freela-backend/internal/projects/repository"
	projectsvc "github.com/freela-market/freela-backend/internal/projects/service"
	"github.com/freela-market/freela-backend/internal/skills"
	"github.com/freela-market/freela-backend/internal/users"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	JWTSecret   string
	TokenTTL    time.Duration
	DB          *pgxpool.Pool
	Redis       *redis.Client
}

// BuildRouter wires the whole service with explicit constructors: the
// dispatcher's handler table and role table are built right here, once,
// so a bad registration aborts startup instead of surfacing mid-request.
func BuildRouter(dep RouterDeps) (*gin.Engine, error) {
	r := gin.Default()
	r.Use(cors.Default())
	r.Use(middleware.RequestID())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	d := dispatch.New(
		dispatch.AuthorizationGate(projects.Permissions()),
		dispatch.ValidateRequests(),
	)

	projectService := projectsvc.NewProjectService(projectrepo.NewRepo(dep.DB))
	if err := projectService.RegisterHandlers(d); err != nil {
		return nil, err
	}

	userService := users.NewService(users.NewRepo(dep.DB), dep.JWTSecret, dep.TokenTTL)

	var skillCache *skills.Cache
	if dep.Redis != nil {
		skillCache = skills.NewCache(dep.Redis)
	}
	skillService := skills.NewService(skills.NewRepo(dep.DB), skillCache)
	skills.NewRefresher(skillService).Start()

	api := r.Group("/api/v1")

	// 5 login attempts per minute per client IP.
	loginLimiter := middleware.RateLimit(rate.Every(12*time.Second), 5)
	users.Register(api, userService, loginLimiter)

	authed := api.Group("")
	authed.Use(auth.RequireAuth(dep.JWTSecret))

	projecthttp.Register(authed.Group("/projects"), d)
	skills.Register(authed, skillService)

	return r, nil
}

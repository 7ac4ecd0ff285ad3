package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/freela-market/freela-backend/internal/auth"
	"github.com/freela-market/freela-backend/internal/dispatch"
	"github.com/freela-market/freela-backend/internal/projects"
)

// Handler maps the /projects routes 1:1 onto dispatcher requests.
type Handler struct {
	d *dispatch.Dispatcher
}

func Register(rg *gin.RouterGroup, d *dispatch.Dispatcher) {
	h := &Handler{d: d}

	rg.GET("", h.list)
	rg.GET("/:id", h.getByID)
	rg.POST("", h.create)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
	rg.POST("/:id/comments", h.comment)
	rg.PUT("/:id/start", h.start)
	rg.PUT("/:id/finish", h.finish)
}

func (h *Handler) list(c *gin.Context) {
	var q projects.GetAllProjects
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}

	res, err := h.d.Send(c.Request.Context(), auth.CurrentPrincipal(c), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": res})
}

func (h *Handler) getByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.d.Send(c.Request.Context(), auth.CurrentPrincipal(c), projects.GetProjectByID{ID: id})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": res})
}

func (h *Handler) create(c *gin.Context) {
	var body createReq
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	p := auth.CurrentPrincipal(c)
	cmd := projects.CreateProject{
		Title:       body.Title,
		Description: body.Description,
		ClientID:    p.UserID,
	}

	res, err := h.d.Send(c.Request.Context(), p, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": res})
}

func (h *Handler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var body updateReq
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	cmd := projects.UpdateProject{ID: id, Title: body.Title, Description: body.Description}
	if _, err := h.d.Send(c.Request.Context(), auth.CurrentPrincipal(c), cmd); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.d.Send(c.Request.Context(), auth.CurrentPrincipal(c), projects.DeleteProject{ID: id}); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) comment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var body commentReq
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	p := auth.CurrentPrincipal(c)
	cmd := projects.CreateComment{
		ProjectID:  id,
		AuthorID:   p.UserID,
		AuthorRole: p.Role,
		Text:       body.Text,
	}

	if _, err := h.d.Send(c.Request.Context(), p, cmd); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) start(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	// Body is optional: {"freelancer_id": N} assigns before starting.
	var body startReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
	}

	cmd := projects.StartProject{ID: id, FreelancerID: body.FreelancerID}
	if _, err := h.d.Send(c.Request.Context(), auth.CurrentPrincipal(c), cmd); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) finish(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.d.Send(c.Request.Context(), auth.CurrentPrincipal(c), projects.FinishProject{ID: id}); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return 0, false
	}
	return id, true
}

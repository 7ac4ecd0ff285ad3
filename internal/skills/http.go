package skills

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func Register(rg *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}

	rg.GET("/skills", h.list)
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list skills"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": list})
}

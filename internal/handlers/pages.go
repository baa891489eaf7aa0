package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) About(c *gin.Context) {
	Render(c, http.StatusOK, "pages/about.html", gin.H{"Title": "About"})
}

func (h *PageHandler) Rules(c *gin.Context) {
	Render(c, http.StatusOK, "pages/rules.html", gin.H{"Title": "Rules"})
}

// NotFound handles every unmatched route.
func (h *PageHandler) NotFound(c *gin.Context) {
	RenderNotFound(c)
}

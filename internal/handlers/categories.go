package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"inkwell/internal/services"
)

type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// Show lists the published posts of one category. An unpublished category
// renders the same not-found page as a missing slug.
func (h *CategoryHandler) Show(c *gin.Context) {
	slug := c.Param("slug")
	page := parsePage(c)

	category, listing, err := services.CategoryListing(slug, time.Now(), page)
	if err != nil {
		RenderNotFound(c)
		return
	}

	Render(c, http.StatusOK, "posts/list.html", gin.H{
		"Title":       category.Title,
		"Category":    category,
		"Posts":       listing.Posts,
		"CurrentPage": listing.Page,
		"TotalPages":  listing.TotalPages,
	})
}

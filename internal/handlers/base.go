package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/utils"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	// Always set, so a cached render map never carries another request's
	// user.
	obj["CurrentUser"] = currentUser(c)
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderNotFound is the single not-found outcome. Absent resources and
// resources the caller may not see go through here so they are
// indistinguishable.
func RenderNotFound(c *gin.Context) {
	Render(c, http.StatusNotFound, "error.html", gin.H{
		"Title": "Page not found",
		"Error": "The page you requested does not exist.",
	})
}

// RenderError renders the generic failure page.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Title": "Error", "Error": message})
}

// RecoverServerError is plugged into gin's recovery middleware so a panic
// renders the error page instead of a bare 500.
func RecoverServerError(c *gin.Context, _ interface{}) {
	RenderError(c, http.StatusInternalServerError, "Something went wrong on our side.")
}

// currentUser returns the logged-in user, nil when anonymous.
func currentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}

// currentUserID returns the logged-in user's id, 0 when anonymous.
func currentUserID(c *gin.Context) uint {
	if user := currentUser(c); user != nil {
		return user.ID
	}
	return 0
}

// parsePage reads the ?page= query parameter, defaulting to 1.
func parsePage(c *gin.Context) int {
	if page := utils.StringToInt(c.Query("page")); page > 0 {
		return page
	}
	return 1
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"inkwell/internal/db"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/services"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile lists a user's posts. The owner sees drafts and scheduled posts,
// everyone else only published ones.
func (h *UserHandler) Profile(c *gin.Context) {
	username := c.Param("username")
	page := parsePage(c)

	profile, listing, err := services.ProfileListing(username, currentUserID(c), time.Now(), page)
	if err != nil {
		RenderNotFound(c)
		return
	}

	Render(c, http.StatusOK, "user/profile.html", gin.H{
		"Title":       profile.Name(),
		"Profile":     profile,
		"IsOwner":     currentUserID(c) == profile.ID,
		"Posts":       listing.Posts,
		"CurrentPage": listing.Page,
		"TotalPages":  listing.TotalPages,
	})
}

func (h *UserHandler) ShowEdit(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	Render(c, http.StatusOK, "user/edit.html", gin.H{
		"Title": "Edit profile",
		"User":  user,
	})
}

// Update edits the caller's own profile; there is no way to address anyone
// else's.
func (h *UserHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	displayName := c.PostForm("display_name")
	email := c.PostForm("email")

	if email == "" {
		Render(c, http.StatusBadRequest, "user/edit.html", gin.H{
			"Title": "Edit profile",
			"Error": "Email must not be empty",
			"User":  user,
		})
		return
	}

	err := db.DB.Model(user).Updates(map[string]interface{}{
		"display_name": displayName,
		"email":        email,
	}).Error
	if err != nil {
		Render(c, http.StatusConflict, "user/edit.html", gin.H{
			"Title": "Edit profile",
			"Error": "Email is already in use",
			"User":  user,
		})
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+user.Username)
}

package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"inkwell/internal/db"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/policy"
	"inkwell/internal/services"
	"inkwell/internal/utils"
)

const (
	homeCacheKey = "posts:home:page:1"
	homeCacheTTL = 1 * time.Minute
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

// Index renders the home listing: published posts, newest publish date first.
func (h *PostHandler) Index(c *gin.Context) {
	page := parsePage(c)

	// Only the first page is cached. Render writes per-request keys into
	// the map it is given, so the cached copy is never passed in directly.
	if page == 1 {
		if cached := utils.GetCache().Get(homeCacheKey); cached != nil {
			if hData, ok := cached.(gin.H); ok {
				Render(c, http.StatusOK, "posts/list.html", cloneH(hData))
				return
			}
		}
	}

	listing, err := services.HomeListing(time.Now(), page)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load posts.")
		return
	}

	renderData := gin.H{
		"Title":       "Latest posts",
		"Posts":       listing.Posts,
		"CurrentPage": listing.Page,
		"TotalPages":  listing.TotalPages,
	}
	if page == 1 {
		utils.GetCache().Set(homeCacheKey, renderData, homeCacheTTL)
	}

	Render(c, http.StatusOK, "posts/list.html", cloneH(renderData))
}

// Detail shows one post with its comments, subject to the visibility policy.
func (h *PostHandler) Detail(c *gin.Context) {
	postID := utils.StringToUint(c.Param("post_id"))

	post, comments, err := services.PostDetail(postID, currentUserID(c), time.Now())
	if err != nil {
		RenderNotFound(c)
		return
	}

	type renderedComment struct {
		models.Comment
		TextHTML template.HTML
	}
	rendered := make([]renderedComment, len(comments))
	for i, comment := range comments {
		rendered[i] = renderedComment{
			Comment:  comment,
			TextHTML: utils.RenderMarkdown(comment.Text),
		}
	}

	Render(c, http.StatusOK, "posts/detail.html", gin.H{
		"Title":    post.Title,
		"Post":     post,
		"PostText": utils.RenderMarkdown(post.Text),
		"Comments": rendered,
		"IsOwner":  policy.CanModify(currentUserID(c), post),
	})
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	categories, locations := formOptions()
	Render(c, http.StatusOK, "posts/form.html", gin.H{
		"Title":      "New post",
		"Categories": categories,
		"Locations":  locations,
		"Action":     "/posts/create",
	})
}

func (h *PostHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	input, formErr := parsePostInput(c)
	if formErr != "" {
		categories, locations := formOptions()
		Render(c, http.StatusBadRequest, "posts/form.html", gin.H{
			"Title":      "New post",
			"Error":      formErr,
			"Categories": categories,
			"Locations":  locations,
			"Action":     "/posts/create",
		})
		return
	}

	if _, err := services.CreatePost(user.ID, input); err != nil {
		categories, locations := formOptions()
		Render(c, http.StatusInternalServerError, "posts/form.html", gin.H{
			"Title":      "New post",
			"Error":      "Could not save the post.",
			"Categories": categories,
			"Locations":  locations,
			"Action":     "/posts/create",
		})
		return
	}

	invalidateHomeCache()
	c.Redirect(http.StatusFound, "/profile/"+user.Username)
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	postID := utils.StringToUint(c.Param("post_id"))

	post, err := services.GetPost(postID)
	if err != nil {
		RenderNotFound(c)
		return
	}

	if !policy.CanModify(user.ID, post) {
		c.Redirect(http.StatusFound, policy.DenialRedirect(post))
		return
	}

	categories, locations := formOptions()
	Render(c, http.StatusOK, "posts/form.html", gin.H{
		"Title":      "Edit post",
		"Post":       post,
		"Categories": categories,
		"Locations":  locations,
		"Action":     fmt.Sprintf("/posts/%d/edit", post.ID),
	})
}

func (h *PostHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	postID := utils.StringToUint(c.Param("post_id"))

	post, err := services.GetPost(postID)
	if err != nil {
		RenderNotFound(c)
		return
	}

	// Ownership is checked against the stored author, never form data.
	if !policy.CanModify(user.ID, post) {
		c.Redirect(http.StatusFound, policy.DenialRedirect(post))
		return
	}

	input, formErr := parsePostInput(c)
	if formErr != "" {
		categories, locations := formOptions()
		Render(c, http.StatusBadRequest, "posts/form.html", gin.H{
			"Title":      "Edit post",
			"Error":      formErr,
			"Post":       post,
			"Categories": categories,
			"Locations":  locations,
			"Action":     fmt.Sprintf("/posts/%d/edit", post.ID),
		})
		return
	}

	if err := services.UpdatePost(post, input); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not save the post.")
		return
	}

	invalidateHomeCache()
	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
}

func (h *PostHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	postID := utils.StringToUint(c.Param("post_id"))

	post, err := services.GetPost(postID)
	if err != nil {
		RenderNotFound(c)
		return
	}

	if !policy.CanModify(user.ID, post) {
		c.Redirect(http.StatusFound, policy.DenialRedirect(post))
		return
	}

	if err := services.DeletePost(post); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not delete the post.")
		return
	}

	invalidateHomeCache()
	c.Redirect(http.StatusFound, "/")
}

// parsePostInput reads the post form. It returns a message for the first
// validation problem, empty when the input is fine.
func parsePostInput(c *gin.Context) (services.PostInput, string) {
	var input services.PostInput

	input.Title = c.PostForm("title")
	input.Text = c.PostForm("text")
	input.IsPublished = c.PostForm("is_published") != ""

	if input.Title == "" {
		return input, "Title must not be empty"
	}
	if len(input.Title) > 50 {
		return input, "Title must be at most 50 characters"
	}
	if input.Text == "" {
		return input, "Text must not be empty"
	}

	input.PubDate = time.Now()
	if raw := c.PostForm("pub_date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02T15:04", raw, time.Local)
		if err != nil {
			parsed, err = time.ParseInLocation("2006-01-02", raw, time.Local)
		}
		if err != nil {
			return input, "Publish date is not a valid date"
		}
		input.PubDate = parsed
	}

	if id := utils.StringToUint(c.PostForm("category_id")); id != 0 {
		input.CategoryID = &id
	}
	if id := utils.StringToUint(c.PostForm("location_id")); id != 0 {
		input.LocationID = &id
	}

	if path, err := savePostImage(c); err != nil {
		return input, err.Error()
	} else if path != "" {
		input.Image = path
	}

	return input, ""
}

// formOptions loads the category and location choices for the post form.
func formOptions() ([]models.Category, []models.Location) {
	var categories []models.Category
	db.DB.Order("title ASC").Find(&categories)
	var locations []models.Location
	db.DB.Order("name ASC").Find(&locations)
	return categories, locations
}

func cloneH(src gin.H) gin.H {
	dst := make(gin.H, len(src)+2)
	for key, value := range src {
		dst[key] = value
	}
	return dst
}

func invalidateHomeCache() {
	utils.GetCache().Delete(homeCacheKey)
}

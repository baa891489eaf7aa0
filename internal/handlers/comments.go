package handlers

import (
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/policy"
	"inkwell/internal/services"
	"inkwell/internal/utils"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

// Create adds a comment to a post. The post must be visible to the
// commenter; commenting does not reveal hidden posts either.
func (h *CommentHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	postID := utils.StringToUint(c.Param("post_id"))

	post, err := services.GetPost(postID)
	if err != nil {
		RenderNotFound(c)
		return
	}
	if err := policy.ResolveForViewer(post, user.ID, time.Now()); err != nil {
		RenderNotFound(c)
		return
	}

	text := c.PostForm("text")
	if msg := validateCommentText(text); msg != "" {
		RenderError(c, http.StatusBadRequest, msg)
		return
	}

	if _, err := services.CreateComment(user.ID, post.ID, text); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not save the comment.")
		return
	}

	// Comment counts show up on the cached home listing.
	invalidateHomeCache()
	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
}

func (h *CommentHandler) ShowEdit(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	postID := utils.StringToUint(c.Param("post_id"))
	commentID := utils.StringToUint(c.Param("comment_id"))

	comment, err := services.GetComment(postID, commentID)
	if err != nil {
		RenderNotFound(c)
		return
	}

	if !policy.CanModify(user.ID, comment) {
		c.Redirect(http.StatusFound, policy.DenialRedirect(comment))
		return
	}

	Render(c, http.StatusOK, "posts/comment_form.html", gin.H{
		"Title":   "Edit comment",
		"Comment": comment,
		"Action":  fmt.Sprintf("/posts/%d/edit_comment/%d", comment.PostID, comment.ID),
	})
}

func (h *CommentHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	postID := utils.StringToUint(c.Param("post_id"))
	commentID := utils.StringToUint(c.Param("comment_id"))

	comment, err := services.GetComment(postID, commentID)
	if err != nil {
		RenderNotFound(c)
		return
	}

	if !policy.CanModify(user.ID, comment) {
		c.Redirect(http.StatusFound, policy.DenialRedirect(comment))
		return
	}

	text := c.PostForm("text")
	if msg := validateCommentText(text); msg != "" {
		Render(c, http.StatusBadRequest, "posts/comment_form.html", gin.H{
			"Title":   "Edit comment",
			"Error":   msg,
			"Comment": comment,
			"Action":  fmt.Sprintf("/posts/%d/edit_comment/%d", comment.PostID, comment.ID),
		})
		return
	}

	if err := services.UpdateComment(comment, text); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not save the comment.")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", comment.PostID))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	postID := utils.StringToUint(c.Param("post_id"))
	commentID := utils.StringToUint(c.Param("comment_id"))

	comment, err := services.GetComment(postID, commentID)
	if err != nil {
		RenderNotFound(c)
		return
	}

	if !policy.CanModify(user.ID, comment) {
		c.Redirect(http.StatusFound, policy.DenialRedirect(comment))
		return
	}

	if err := services.DeleteComment(comment); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not delete the comment.")
		return
	}

	invalidateHomeCache()
	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", comment.PostID))
}

func validateCommentText(text string) string {
	if text == "" {
		return "Comment must not be empty"
	}
	if utf8.RuneCountInString(text) > 256 {
		return "Comment must be at most 256 characters"
	}
	return ""
}

package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"inkwell/internal/db"
	"inkwell/internal/models"
	"inkwell/internal/policy"
)

// PostInput carries the user-editable fields of a post. The author is never
// part of it: it is taken from the session at creation time and immutable
// afterwards, whatever a client submits.
type PostInput struct {
	Title       string
	Text        string
	PubDate     time.Time
	IsPublished bool
	CategoryID  *uint
	LocationID  *uint
	Image       string
}

// CreatePost stores a new post owned by authorID.
func CreatePost(authorID uint, in PostInput) (*models.Post, error) {
	post := models.Post{
		Title:       in.Title,
		Text:        in.Text,
		PubDate:     in.PubDate,
		IsPublished: in.IsPublished,
		CategoryID:  in.CategoryID,
		LocationID:  in.LocationID,
		Image:       in.Image,
		UserID:      authorID,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost applies the editable fields. UserID is deliberately not in the
// column list.
func UpdatePost(post *models.Post, in PostInput) error {
	image := post.Image
	if in.Image != "" {
		image = in.Image
	}
	return db.DB.Model(post).
		Updates(map[string]interface{}{
			"title":        in.Title,
			"text":         in.Text,
			"pub_date":     in.PubDate,
			"is_published": in.IsPublished,
			"category_id":  in.CategoryID,
			"location_id":  in.LocationID,
			"image":        image,
		}).Error
}

// DeletePost removes a post and its comments in one transaction. The cascade
// is explicit rather than left to driver-level foreign key handling.
func DeletePost(post *models.Post) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
}

// GetPost loads a bare post by id, mapping a missing row to ErrNotFound.
func GetPost(postID uint) (*models.Post, error) {
	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policy.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// CreateComment stores a comment by authorID under postID.
func CreateComment(authorID, postID uint, text string) (*models.Comment, error) {
	comment := models.Comment{
		Text:   text,
		PostID: postID,
		UserID: authorID,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetComment loads a comment scoped to its post; a comment id paired with
// the wrong post id is a not-found, same as a missing one.
func GetComment(postID, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := db.DB.Where("id = ? AND post_id = ?", commentID, postID).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policy.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// UpdateComment replaces the comment text, the only editable field.
func UpdateComment(comment *models.Comment, text string) error {
	return db.DB.Model(comment).Update("text", text).Error
}

// DeleteComment removes a single comment.
func DeleteComment(comment *models.Comment) error {
	return db.DB.Delete(comment).Error
}

// Package policy holds the visibility and ownership rules for posts and
// comments. Everything here is a pure function of its arguments; handlers
// and the listing service are the only callers.
package policy

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"inkwell/internal/models"
)

// ErrNotFound covers both "does not exist" and "exists but you may not see
// it". Callers must not be able to tell the two apart.
var ErrNotFound = errors.New("not found")

// IsPubliclyVisible reports whether a post is visible to anyone who is not
// its author: the post is flagged published, its publish date has passed,
// and its category (when it has one) is published too.
func IsPubliclyVisible(post *models.Post, now time.Time) bool {
	if !post.IsPublished {
		return false
	}
	if post.PubDate.After(now) {
		return false
	}
	if post.Category != nil && !post.Category.IsPublished {
		return false
	}
	return true
}

// ResolveForViewer decides whether viewerID may see post. The author always
// may, published flags and scheduling notwithstanding, so they can preview
// their own drafts and scheduled posts. Everyone else gets ErrNotFound when
// the public predicate fails.
func ResolveForViewer(post *models.Post, viewerID uint, now time.Time) error {
	if viewerID != 0 && viewerID == post.UserID {
		return nil
	}
	if IsPubliclyVisible(post, now) {
		return nil
	}
	return ErrNotFound
}

// PublishedScope is the query form of IsPubliclyVisible, used for every
// public listing. now is explicit so listings stay deterministic under test.
func PublishedScope(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("LEFT JOIN categories ON categories.id = posts.category_id").
			Where("posts.is_published = ?", true).
			Where("posts.pub_date <= ?", now).
			Where("posts.category_id IS NULL OR categories.is_published = ?", true)
	}
}

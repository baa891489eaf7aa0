package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"inkwell/internal/db"
	"inkwell/internal/models"
	"inkwell/internal/policy"
)

// PageSize is the default number of posts per listing page.
const PageSize = 10

// PostPage is one page of a listing.
type PostPage struct {
	Posts      []models.Post
	Total      int64
	Page       int
	TotalPages int
}

// fillCommentCounts annotates posts with their live comment counts using a
// single grouped query.
func fillCommentCounts(posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	db.DB.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}

	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
}

func paginate(base *gorm.DB, page, perPage int) (*PostPage, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	var posts []models.Post
	err := base.Session(&gorm.Session{}).
		Preload("User").Preload("Category").Preload("Location").
		Order("posts.pub_date DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	fillCommentCounts(posts)

	return &PostPage{
		Posts:      posts,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// HomeListing returns the published posts for the front page.
func HomeListing(now time.Time, page int) (*PostPage, error) {
	base := db.DB.Model(&models.Post{}).Scopes(policy.PublishedScope(now))
	return paginate(base, page, PageSize)
}

// CategoryListing resolves a category by slug and lists its published posts.
// An unpublished category is indistinguishable from a missing one.
func CategoryListing(slug string, now time.Time, page int) (*models.Category, *PostPage, error) {
	var category models.Category
	err := db.DB.Where("slug = ? AND is_published = ?", slug, true).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, policy.ErrNotFound
		}
		return nil, nil, err
	}

	base := db.DB.Model(&models.Post{}).
		Scopes(policy.PublishedScope(now)).
		Where("posts.category_id = ?", category.ID)
	pageData, err := paginate(base, page, PageSize)
	if err != nil {
		return nil, nil, err
	}
	return &category, pageData, nil
}

// ProfileListing lists a user's posts. The owner sees everything they wrote,
// drafts and scheduled posts included; everyone else gets the published
// filter. This is the one listing that branches on identity.
func ProfileListing(username string, viewerID uint, now time.Time, page int) (*models.User, *PostPage, error) {
	var user models.User
	err := db.DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, policy.ErrNotFound
		}
		return nil, nil, err
	}

	base := db.DB.Model(&models.Post{}).Where("posts.user_id = ?", user.ID)
	if viewerID != user.ID {
		base = base.Scopes(policy.PublishedScope(now))
	}

	pageData, err := paginate(base, page, PageSize)
	if err != nil {
		return nil, nil, err
	}
	return &user, pageData, nil
}

// PostDetail loads a post for a viewer, applying the visibility policy, and
// returns its comments oldest first with authors attached.
func PostDetail(postID, viewerID uint, now time.Time) (*models.Post, []models.Comment, error) {
	var post models.Post
	err := db.DB.Preload("User").Preload("Category").Preload("Location").
		First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, policy.ErrNotFound
		}
		return nil, nil, err
	}

	if err := policy.ResolveForViewer(&post, viewerID, now); err != nil {
		return nil, nil, err
	}

	var comments []models.Comment
	err = db.DB.Preload("User").
		Where("post_id = ?", post.ID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, nil, err
	}

	post.CommentCount = len(comments)
	return &post, comments, nil
}

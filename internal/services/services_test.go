package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inkwell/internal/db"
	"inkwell/internal/models"
)

// setupTestDB points the package-global connection at a fresh in-memory
// database for the duration of one test.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	prev := db.DB
	db.DB = gdb
	t.Cleanup(func() { db.DB = prev })
}

func mustCreate(t *testing.T, value interface{}) {
	t.Helper()
	if err := db.DB.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

func newUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	mustCreate(t, user)
	return user
}

func newCategory(t *testing.T, slug string, published bool) *models.Category {
	t.Helper()
	category := &models.Category{
		Title:       slug,
		Slug:        slug,
		IsPublished: published,
	}
	mustCreate(t, category)
	return category
}

type postSpec struct {
	author    *models.User
	category  *models.Category
	title     string
	published bool
	pubDate   time.Time
}

func newPost(t *testing.T, spec postSpec) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       spec.title,
		Text:        "body of " + spec.title,
		PubDate:     spec.pubDate,
		IsPublished: spec.published,
		UserID:      spec.author.ID,
	}
	if spec.category != nil {
		post.CategoryID = &spec.category.ID
	}
	mustCreate(t, post)
	return post
}

func newComment(t *testing.T, author *models.User, post *models.Post, text string) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		Text:   text,
		PostID: post.ID,
		UserID: author.ID,
	}
	mustCreate(t, comment)
	return comment
}

func titles(posts []models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Title
	}
	return out
}

func containsTitle(posts []models.Post, title string) bool {
	for _, p := range posts {
		if p.Title == title {
			return true
		}
	}
	return false
}

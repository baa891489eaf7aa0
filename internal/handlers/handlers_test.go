package handlers_test

import (
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inkwell/internal/db"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/router"
)

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

// newTestRouter builds the real route table with stub templates. A non-nil
// user is injected into the context the way LoadUser would after a login.
func newTestRouter(t *testing.T, user *models.User) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	tmpl := template.New("views")
	for _, name := range []string{
		"posts/list.html", "posts/detail.html", "posts/form.html",
		"posts/comment_form.html", "auth/login.html", "auth/register.html",
		"user/profile.html", "user/edit.html",
		"pages/about.html", "pages/rules.html", "error.html",
	} {
		template.Must(tmpl.New(name).Parse(name))
	}
	r.SetHTMLTemplate(tmpl)

	if user != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.CheckUserKey, user)
			c.Next()
		})
	}
	router.RegisterRoutes(r)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func mustCreate(t *testing.T, value interface{}) {
	t.Helper()
	if err := db.DB.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

func newUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "x"}
	mustCreate(t, user)
	return user
}

func newPost(t *testing.T, author *models.User, title string, published bool, pubDate time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       title,
		Text:        "body",
		PubDate:     pubDate,
		IsPublished: published,
		UserID:      author.ID,
	}
	mustCreate(t, post)
	return post
}

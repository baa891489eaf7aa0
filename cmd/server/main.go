package main

import (
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"inkwell/internal/db"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/router"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}

	// Initialize Database
	db.Init()

	// Initialize Gin
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(handlers.RecoverServerError))

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("inkwell_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets
	r.Static("/static", "./web/static")

	// Middleware
	r.Use(middleware.LoadUser())

	// Routes
	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Inkwell server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble layout + includes + view
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"deref": func(p *uint) uint {
			if p == nil {
				return 0
			}
			return *p
		},
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006 15:04")
		},
		"formatDateInput": func(t time.Time) string {
			return t.Format("2006-01-02T15:04")
		},
	}

	// Manual registration to ensure keys match handler expectation
	r.AddFromFilesFuncs("posts/list.html", funcMap, assemble(templatesDir+"/views/posts/list.html")...)
	r.AddFromFilesFuncs("posts/detail.html", funcMap, assemble(templatesDir+"/views/posts/detail.html")...)
	r.AddFromFilesFuncs("posts/form.html", funcMap, assemble(templatesDir+"/views/posts/form.html")...)
	r.AddFromFilesFuncs("posts/comment_form.html", funcMap, assemble(templatesDir+"/views/posts/comment_form.html")...)

	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/register.html", funcMap, assemble(templatesDir+"/views/auth/register.html")...)

	r.AddFromFilesFuncs("user/profile.html", funcMap, assemble(templatesDir+"/views/user/profile.html")...)
	r.AddFromFilesFuncs("user/edit.html", funcMap, assemble(templatesDir+"/views/user/edit.html")...)

	r.AddFromFilesFuncs("pages/about.html", funcMap, assemble(templatesDir+"/views/pages/about.html")...)
	r.AddFromFilesFuncs("pages/rules.html", funcMap, assemble(templatesDir+"/views/pages/rules.html")...)

	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}

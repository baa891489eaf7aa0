package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"inkwell/internal/db"
	"inkwell/internal/models"
)

func TestProfileNotFoundForMissingUser(t *testing.T) {
	setupTestDB(t)

	anonymous := newTestRouter(t, nil)
	w := get(anonymous, "/profile/nobody")
	if w.Code != http.StatusNotFound {
		t.Errorf("code = %d, want 404", w.Code)
	}
}

func TestProfileEditOnlyTouchesSessionUser(t *testing.T) {
	setupTestDB(t)
	alice := newUser(t, "alice")
	newUser(t, "bob")

	asAlice := newTestRouter(t, alice)
	w := postForm(asAlice, "/profile/edit", url.Values{
		"display_name": {"Alice L."},
		"email":        {"alice@new.example.com"},
	})

	if w.Code != http.StatusFound {
		t.Fatalf("code = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/profile/alice" {
		t.Errorf("redirect = %q, want /profile/alice", loc)
	}

	var storedAlice, storedBob models.User
	db.DB.Where("username = ?", "alice").First(&storedAlice)
	db.DB.Where("username = ?", "bob").First(&storedBob)
	if storedAlice.DisplayName != "Alice L." {
		t.Errorf("display name = %q, want %q", storedAlice.DisplayName, "Alice L.")
	}
	if storedBob.Email != "bob@example.com" {
		t.Error("another user's record changed")
	}
}

func TestProfileEditRequiresLogin(t *testing.T) {
	setupTestDB(t)

	anonymous := newTestRouter(t, nil)
	w := get(anonymous, "/profile/edit")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Errorf("code = %d loc = %q, want redirect to /login", w.Code, w.Header().Get("Location"))
	}
}

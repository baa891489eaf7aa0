package handlers_test

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"inkwell/internal/db"
	"inkwell/internal/models"
)

func newComment(t *testing.T, author *models.User, post *models.Post, text string) *models.Comment {
	t.Helper()
	comment := &models.Comment{Text: text, PostID: post.ID, UserID: author.ID}
	mustCreate(t, comment)
	return comment
}

func TestCreateComment(t *testing.T) {
	setupTestDB(t)
	alice := newUser(t, "alice")
	bob := newUser(t, "bob")
	post := newPost(t, alice, "post", true, time.Now().Add(-time.Hour))

	asBob := newTestRouter(t, bob)
	w := postForm(asBob, fmt.Sprintf("/posts/%d/comment", post.ID), url.Values{
		"text": {"nice one"},
	})

	if w.Code != http.StatusFound {
		t.Fatalf("code = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != fmt.Sprintf("/posts/%d", post.ID) {
		t.Errorf("redirect = %q, want the post detail page", loc)
	}

	var stored models.Comment
	if err := db.DB.Where("post_id = ?", post.ID).First(&stored).Error; err != nil {
		t.Fatalf("comment not stored: %v", err)
	}
	if stored.UserID != bob.ID {
		t.Errorf("comment author = %d, want the session user %d", stored.UserID, bob.ID)
	}
}

func TestCreateCommentOnHiddenPostIsNotFound(t *testing.T) {
	setupTestDB(t)
	alice := newUser(t, "alice")
	bob := newUser(t, "bob")
	draft := newPost(t, alice, "draft", false, time.Now().Add(-time.Hour))

	asBob := newTestRouter(t, bob)
	w := postForm(asBob, fmt.Sprintf("/posts/%d/comment", draft.ID), url.Values{
		"text": {"peeking"},
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("code = %d, want 404", w.Code)
	}

	var count int64
	db.DB.Model(&models.Comment{}).Where("post_id = ?", draft.ID).Count(&count)
	if count != 0 {
		t.Error("comment stored on a post the commenter may not see")
	}
}

func TestCreateCommentRejectsOverlongText(t *testing.T) {
	setupTestDB(t)
	alice := newUser(t, "alice")
	post := newPost(t, alice, "post", true, time.Now().Add(-time.Hour))

	asAlice := newTestRouter(t, alice)
	w := postForm(asAlice, fmt.Sprintf("/posts/%d/comment", post.ID), url.Values{
		"text": {strings.Repeat("a", 257)},
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("code = %d, want 400", w.Code)
	}
}

func TestEditCommentByNonOwnerRedirects(t *testing.T) {
	setupTestDB(t)
	alice := newUser(t, "alice")
	bob := newUser(t, "bob")
	post := newPost(t, alice, "post", true, time.Now().Add(-time.Hour))
	comment := newComment(t, bob, post, "bob's words")

	// Alice owns the post but not the comment.
	asAlice := newTestRouter(t, alice)
	w := postForm(asAlice, fmt.Sprintf("/posts/%d/edit_comment/%d", post.ID, comment.ID), url.Values{
		"text": {"rewritten"},
	})

	if w.Code != http.StatusFound {
		t.Fatalf("code = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != fmt.Sprintf("/posts/%d", post.ID) {
		t.Errorf("redirect = %q, want the post detail page", loc)
	}

	var stored models.Comment
	if err := db.DB.First(&stored, comment.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Text != "bob's words" {
		t.Errorf("text = %q, non-owner edit must not persist", stored.Text)
	}
}

func TestDeleteCommentByOwner(t *testing.T) {
	setupTestDB(t)
	alice := newUser(t, "alice")
	bob := newUser(t, "bob")
	post := newPost(t, alice, "post", true, time.Now().Add(-time.Hour))
	comment := newComment(t, bob, post, "going away")

	asBob := newTestRouter(t, bob)
	w := postForm(asBob, fmt.Sprintf("/posts/%d/delete_comment/%d", post.ID, comment.ID), url.Values{})

	if w.Code != http.StatusFound {
		t.Fatalf("code = %d, want 302", w.Code)
	}

	var count int64
	db.DB.Model(&models.Comment{}).Where("id = ?", comment.ID).Count(&count)
	if count != 0 {
		t.Error("comment still present after owner delete")
	}
}

func TestCommentUnderWrongPostIsNotFound(t *testing.T) {
	setupTestDB(t)
	alice := newUser(t, "alice")
	postA := newPost(t, alice, "a", true, time.Now().Add(-time.Hour))
	postB := newPost(t, alice, "b", true, time.Now().Add(-time.Hour))
	comment := newComment(t, alice, postA, "on a")

	asAlice := newTestRouter(t, alice)
	w := postForm(asAlice, fmt.Sprintf("/posts/%d/delete_comment/%d", postB.ID, comment.ID), url.Values{})

	if w.Code != http.StatusNotFound {
		t.Errorf("code = %d, want 404", w.Code)
	}
}

func TestCommentLengthCountsCharactersNotBytes(t *testing.T) {
	setupTestDB(t)
	alice := newUser(t, "alice")
	post := newPost(t, alice, "post", true, time.Now().Add(-time.Hour))

	// 256 two-byte characters are within the limit.
	asAlice := newTestRouter(t, alice)
	w := postForm(asAlice, fmt.Sprintf("/posts/%d/comment", post.ID), url.Values{
		"text": {strings.Repeat("ж", 256)},
	})

	if w.Code != http.StatusFound {
		t.Errorf("code = %d, want 302", w.Code)
	}

	var count int64
	db.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count)
	if count != 1 {
		t.Error("comment within the character limit was not stored")
	}
}

package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func createComment(t *testing.T, router *gin.Engine, token, postID, authorID, authorName, content string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/comments", map[string]interface{}{
		"content":   content,
		"author":    map[string]string{"_id": authorID, "name": authorName},
		"createdAt": "2024-01-15T11:00:00Z",
		"post_id":   postID,
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("create comment: status %d body %s", w.Code, w.Body.String())
	}
	var resp struct {
		ID string `json:"id"`
	}
	decode(t, w, &resp)
	return resp.ID
}

func TestCreateCommentRequiresPostID(t *testing.T) {
	router := newTestRouter()

	aliceID := registerUser(t, router, "alice", "a@x.com", "pw")
	token := loginUser(t, router, "alice", "pw")

	w := doJSON(t, router, http.MethodPost, "/comments", map[string]interface{}{
		"content":   "orphan",
		"author":    map[string]string{"_id": aliceID, "name": "Alice"},
		"createdAt": "2024-01-15T11:00:00Z",
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without post_id, got %d body %s", w.Code, w.Body.String())
	}
}

func TestListCommentsByPostAndUser(t *testing.T) {
	router := newTestRouter()

	aliceID := registerUser(t, router, "alice", "a@x.com", "pw")
	bobID := registerUser(t, router, "bob", "b@x.com", "pw")
	aliceToken := loginUser(t, router, "alice", "pw")
	bobToken := loginUser(t, router, "bob", "pw")

	postID := createPost(t, router, aliceToken, aliceID, "Alice", "Thread")
	otherPost := createPost(t, router, aliceToken, aliceID, "Alice", "Other thread")

	createComment(t, router, aliceToken, postID, aliceID, "Alice", "first")
	createComment(t, router, bobToken, postID, bobID, "Bob", "second")
	createComment(t, router, bobToken, otherPost, bobID, "Bob", "elsewhere")

	w := doJSON(t, router, http.MethodGet, "/comments/post/"+postID, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list by post: status %d", w.Code)
	}
	var byPost []struct {
		Content string `json:"content"`
		PostID  string `json:"post_id"`
		Likes   []string
	}
	decode(t, w, &byPost)
	if len(byPost) != 2 {
		t.Fatalf("expected 2 comments on post, got %d", len(byPost))
	}
	for _, cm := range byPost {
		if cm.PostID != postID {
			t.Errorf("comment from wrong post: %+v", cm)
		}
		if cm.Likes == nil {
			t.Errorf("likes should decode as an empty array, got null for %+v", cm)
		}
	}

	w = doJSON(t, router, http.MethodGet, "/comments/user/"+bobID, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list by user: status %d", w.Code)
	}
	var byUser []struct {
		Content string `json:"content"`
	}
	decode(t, w, &byUser)
	if len(byUser) != 2 {
		t.Errorf("expected 2 comments by bob, got %d", len(byUser))
	}

	// Unknown references return empty lists, not errors.
	w = doJSON(t, router, http.MethodGet, "/comments/post/no-such-post", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("list by unknown post: status %d", w.Code)
	}
	var empty []struct{}
	decode(t, w, &empty)
	if len(empty) != 0 {
		t.Errorf("expected no comments for unknown post, got %d", len(empty))
	}
}

func TestCommentOwnership(t *testing.T) {
	router := newTestRouter()

	aliceID := registerUser(t, router, "alice", "a@x.com", "pw")
	registerUser(t, router, "bob", "b@x.com", "pw")
	aliceToken := loginUser(t, router, "alice", "pw")
	bobToken := loginUser(t, router, "bob", "pw")

	postID := createPost(t, router, aliceToken, aliceID, "Alice", "Thread")
	commentID := createComment(t, router, aliceToken, postID, aliceID, "Alice", "mine")

	w := doJSON(t, router, http.MethodPut, "/comments/"+commentID, map[string]string{"content": "stolen"}, bobToken)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-author update, got %d", w.Code)
	}
	w = doJSON(t, router, http.MethodDelete, "/comments/"+commentID, nil, bobToken)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-author delete, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPut, "/comments/"+commentID, map[string]string{"content": "edited"}, aliceToken)
	if w.Code != http.StatusOK {
		t.Fatalf("author update: status %d body %s", w.Code, w.Body.String())
	}
	var updated struct {
		Content string `json:"content"`
	}
	decode(t, w, &updated)
	if updated.Content != "edited" {
		t.Errorf("content not updated: %+v", updated)
	}

	w = doJSON(t, router, http.MethodDelete, "/comments/"+commentID, nil, aliceToken)
	if w.Code != http.StatusOK {
		t.Fatalf("author delete: status %d body %s", w.Code, w.Body.String())
	}
	w = doJSON(t, router, http.MethodDelete, "/comments/"+commentID, nil, aliceToken)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting twice, got %d", w.Code)
	}
}

func TestCommentLikeToggle(t *testing.T) {
	router := newTestRouter()

	aliceID := registerUser(t, router, "alice", "a@x.com", "pw")
	token := loginUser(t, router, "alice", "pw")

	postID := createPost(t, router, token, aliceID, "Alice", "Thread")
	commentID := createComment(t, router, token, postID, aliceID, "Alice", "like me")

	var resp struct {
		Likes []string `json:"likes"`
	}

	w := doJSON(t, router, http.MethodPost, "/comments/"+commentID+"/like", map[string]string{"user_id": aliceID}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("like: status %d body %s", w.Code, w.Body.String())
	}
	decode(t, w, &resp)
	if len(resp.Likes) != 1 || resp.Likes[0] != aliceID {
		t.Fatalf("expected likes [%s], got %v", aliceID, resp.Likes)
	}

	w = doJSON(t, router, http.MethodPost, "/comments/"+commentID+"/like", map[string]string{"user_id": aliceID}, token)
	decode(t, w, &resp)
	if len(resp.Likes) != 0 {
		t.Fatalf("expected empty likes after second toggle, got %v", resp.Likes)
	}

	w = doJSON(t, router, http.MethodPost, "/comments/000000000000000000000000/like", map[string]string{"user_id": aliceID}, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing comment, got %d", w.Code)
	}
}

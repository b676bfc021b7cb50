package store

import (
	"context"
	"errors"
	"testing"

	"campushub/models"
)

func TestToggle(t *testing.T) {
	set := toggle(nil, "a")
	if len(set) != 1 || set[0] != "a" {
		t.Fatalf("expected [a], got %v", set)
	}
	set = toggle(set, "b")
	set = toggle(set, "a")
	if len(set) != 1 || set[0] != "b" {
		t.Fatalf("expected [b] after removing a, got %v", set)
	}
	set = toggle(set, "b")
	if set == nil || len(set) != 0 {
		t.Fatalf("expected non-nil empty set, got %v", set)
	}
}

func TestMemoryPostOwnership(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	post := &models.Post{
		Title:    "t",
		Content:  "c",
		Category: "notes",
		Author:   models.Author{ID: "owner", Name: "Owner"},
	}
	if err := s.CreatePost(ctx, post); err != nil {
		t.Fatal(err)
	}
	id := post.ID.Hex()

	title := "hijacked"
	if _, err := s.UpdatePost(ctx, id, "intruder", &models.PostUpdate{Title: &title}); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for foreign update, got %v", err)
	}
	if err := s.DeletePost(ctx, id, "intruder"); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for foreign delete, got %v", err)
	}
	if _, err := s.UpdatePost(ctx, "missing", "owner", &models.PostUpdate{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing post, got %v", err)
	}

	updated, err := s.UpdatePost(ctx, id, "owner", &models.PostUpdate{Title: &title})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "hijacked" || updated.Content != "c" {
		t.Errorf("partial update went wrong: %+v", updated)
	}

	if err := s.DeletePost(ctx, id, "owner"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.PostByID(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryToggleLikeIsSelfInverse(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	post := &models.Post{Title: "t", Content: "c", Category: "notes", Author: models.Author{ID: "a"}}
	if err := s.CreatePost(ctx, post); err != nil {
		t.Fatal(err)
	}
	id := post.ID.Hex()

	likes, err := s.TogglePostLike(ctx, id, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(likes) != 1 || likes[0] != "u1" {
		t.Fatalf("expected [u1], got %v", likes)
	}
	likes, err = s.TogglePostLike(ctx, id, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(likes) != 0 {
		t.Fatalf("expected empty likes, got %v", likes)
	}

	if _, err := s.TogglePostSave(ctx, "missing", "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryCommentCounts(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	for i := 0; i < 3; i++ {
		if err := s.CreateComment(ctx, &models.Comment{Content: "c", PostID: "p1", Author: models.Author{ID: "a"}}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.CreateComment(ctx, &models.Comment{Content: "c", PostID: "p2", Author: models.Author{ID: "a"}}); err != nil {
		t.Fatal(err)
	}
	// Comment for a post outside the requested set.
	if err := s.CreateComment(ctx, &models.Comment{Content: "c", PostID: "other", Author: models.Author{ID: "a"}}); err != nil {
		t.Fatal(err)
	}

	counts, err := s.CommentCounts(ctx, []string{"p1", "p2", "p3"})
	if err != nil {
		t.Fatal(err)
	}
	if counts["p1"] != 3 || counts["p2"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
	// Posts without comments are absent, callers treat that as zero.
	if _, ok := counts["p3"]; ok {
		t.Errorf("p3 should be absent from counts: %v", counts)
	}
	if _, ok := counts["other"]; ok {
		t.Errorf("unrequested post leaked into counts: %v", counts)
	}

	n, err := s.CommentCount(ctx, "p1")
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("expected 3, got %d", n)
	}
}

func TestMemoryEmailExistsExcludesSelf(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	u := &models.User{Username: "alice", Email: "a@x.com", Password: "h"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatal(err)
	}

	exists, err := s.EmailExists(ctx, "a@x.com", "")
	if err != nil || !exists {
		t.Errorf("expected email to exist, got %v %v", exists, err)
	}
	exists, err = s.EmailExists(ctx, "a@x.com", u.ID.Hex())
	if err != nil || exists {
		t.Errorf("own email should be excluded, got %v %v", exists, err)
	}
}

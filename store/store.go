package store

import (
	"context"
	"errors"

	"campushub/models"
)

var (
	// ErrNotFound means the document id matched nothing.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the document exists but is owned by someone else.
	ErrForbidden = errors.New("forbidden")
)

// Store is the persistence boundary. The server runs it on MongoDB; tests
// run the same interface against an in-memory implementation.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u *models.User) error
	UserByID(ctx context.Context, id string) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	// EmailExists ignores the user with excludeID when it is non-empty, so a
	// profile update does not collide with the caller's own record.
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
	Users(ctx context.Context) ([]models.User, error)
	SearchUsers(ctx context.Context, query string, limit int64) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, upd *models.UserUpdate) (*models.User, error)
	SetPassword(ctx context.Context, id, hash string) error
	DeleteUser(ctx context.Context, id string) error

	// Posts
	Posts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, p *models.Post) error
	PostByID(ctx context.Context, id string) (*models.Post, error)
	// UpdatePost and DeletePost apply the ownership predicate inside the
	// write itself: the mutation only happens when author._id == authorID.
	UpdatePost(ctx context.Context, id, authorID string, upd *models.PostUpdate) (*models.Post, error)
	DeletePost(ctx context.Context, id, authorID string) error
	TogglePostLike(ctx context.Context, id, userID string) ([]string, error)
	TogglePostSave(ctx context.Context, id, userID string) ([]string, error)

	// Comments
	CommentsByPost(ctx context.Context, postID string) ([]models.Comment, error)
	CommentsByUser(ctx context.Context, userID string) ([]models.Comment, error)
	CreateComment(ctx context.Context, c *models.Comment) error
	UpdateComment(ctx context.Context, id, authorID string, upd *models.CommentUpdate) (*models.Comment, error)
	DeleteComment(ctx context.Context, id, authorID string) error
	ToggleCommentLike(ctx context.Context, id, userID string) ([]string, error)
	// CommentCounts groups comments by post_id for the given post ids.
	// Posts without comments are simply absent from the map.
	CommentCounts(ctx context.Context, postIDs []string) (map[string]int64, error)
	CommentCount(ctx context.Context, postID string) (int64, error)

	CollectionNames(ctx context.Context) ([]string, error)
}

// toggle flips membership of id in the list-as-set: present gets removed,
// absent gets appended. Always returns a non-nil slice.
func toggle(set []string, id string) []string {
	for i, v := range set {
		if v == id {
			out := make([]string, 0, len(set)-1)
			out = append(out, set[:i]...)
			out = append(out, set[i+1:]...)
			return out
		}
	}
	return append(append([]string{}, set...), id)
}

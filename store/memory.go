package store

import (
	"context"
	"strings"
	"sync"

	"campushub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process Store used by the handler tests and handy for
// hacking without a MongoDB around. Maps are keyed by the hex id.
type Memory struct {
	mu       sync.RWMutex
	users    map[string]models.User
	posts    map[string]models.Post
	comments map[string]models.Comment
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[string]models.User),
		posts:    make(map[string]models.Post),
		comments: make(map[string]models.Comment),
	}
}

func (s *Memory) CollectionNames(ctx context.Context) ([]string, error) {
	return []string{"users", "posts", "comments"}, nil
}

// ----- users -----

func (s *Memory) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID.Hex()] = *u
	return nil
}

func (s *Memory) UserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *Memory) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := s.UserByUsername(ctx, username)
	if err == ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (s *Memory) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, u := range s.users {
		if u.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Memory) Users(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users, nil
}

func (s *Memory) SearchUsers(ctx context.Context, query string, limit int64) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(query)

	var users []models.User
	for _, u := range s.users {
		if int64(len(users)) >= limit {
			break
		}
		fullName := ""
		if u.FullName != nil {
			fullName = *u.FullName
		}
		if strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(fullName), q) {
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *Memory) UpdateUser(ctx context.Context, id string, upd *models.UserUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Password != nil {
		u.Password = *upd.Password
	}
	if upd.FullName != nil {
		u.FullName = upd.FullName
	}
	if upd.Bio != nil {
		u.Bio = upd.Bio
	}
	if upd.Department != nil {
		u.Department = upd.Department
	}
	if upd.Linkedin != nil {
		u.Linkedin = upd.Linkedin
	}
	if upd.Github != nil {
		u.Github = upd.Github
	}
	if upd.College != nil {
		u.College = upd.College
	}
	if upd.Joined != nil {
		u.Joined = upd.Joined
	}

	s.users[id] = u
	return &u, nil
}

func (s *Memory) SetPassword(ctx context.Context, id, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Password = hash
	s.users[id] = u
	return nil
}

func (s *Memory) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// ----- posts -----

func (s *Memory) Posts(ctx context.Context) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, p)
	}
	return posts, nil
}

func (s *Memory) CreatePost(ctx context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.posts[p.ID.Hex()] = *p
	return nil
}

func (s *Memory) PostByID(ctx context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *Memory) UpdatePost(ctx context.Context, id, authorID string, upd *models.PostUpdate) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	if p.Author.ID != authorID {
		return nil, ErrForbidden
	}

	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Content != nil {
		p.Content = *upd.Content
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Link != nil {
		p.Link = upd.Link
	}
	if upd.Attachments != nil {
		p.Attachments = *upd.Attachments
	}
	if upd.Tags != nil {
		p.Tags = *upd.Tags
	}
	if upd.Author != nil {
		p.Author = *upd.Author
	}
	if upd.CreatedAt != nil {
		p.CreatedAt = *upd.CreatedAt
	}
	if upd.Likes != nil {
		p.Likes = *upd.Likes
	}
	if upd.Saves != nil {
		p.Saves = *upd.Saves
	}

	s.posts[id] = p
	return &p, nil
}

func (s *Memory) DeletePost(ctx context.Context, id, authorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return ErrNotFound
	}
	if p.Author.ID != authorID {
		return ErrForbidden
	}
	delete(s.posts, id)
	return nil
}

func (s *Memory) TogglePostLike(ctx context.Context, id, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.Likes = toggle(p.Likes, userID)
	s.posts[id] = p
	return p.Likes, nil
}

func (s *Memory) TogglePostSave(ctx context.Context, id, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.Saves = toggle(p.Saves, userID)
	s.posts[id] = p
	return p.Saves, nil
}

// ----- comments -----

func (s *Memory) CommentsByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var comments []models.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func (s *Memory) CommentsByUser(ctx context.Context, userID string) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var comments []models.Comment
	for _, c := range s.comments {
		if c.Author.ID == userID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func (s *Memory) CreateComment(ctx context.Context, c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	s.comments[c.ID.Hex()] = *c
	return nil
}

func (s *Memory) UpdateComment(ctx context.Context, id, authorID string, upd *models.CommentUpdate) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, ErrNotFound
	}
	if c.Author.ID != authorID {
		return nil, ErrForbidden
	}

	if upd.Content != nil {
		c.Content = *upd.Content
	}
	if upd.Author != nil {
		c.Author = *upd.Author
	}
	if upd.CreatedAt != nil {
		c.CreatedAt = *upd.CreatedAt
	}
	if upd.Likes != nil {
		c.Likes = *upd.Likes
	}
	if upd.Replies != nil {
		c.Replies = *upd.Replies
	}
	if upd.PostID != nil {
		c.PostID = *upd.PostID
	}

	s.comments[id] = c
	return &c, nil
}

func (s *Memory) DeleteComment(ctx context.Context, id, authorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return ErrNotFound
	}
	if c.Author.ID != authorID {
		return ErrForbidden
	}
	delete(s.comments, id)
	return nil
}

func (s *Memory) ToggleCommentLike(ctx context.Context, id, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, ErrNotFound
	}
	c.Likes = toggle(c.Likes, userID)
	s.comments[id] = c
	return c.Likes, nil
}

func (s *Memory) CommentCounts(ctx context.Context, postIDs []string) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[string]bool, len(postIDs))
	for _, id := range postIDs {
		wanted[id] = true
	}

	counts := make(map[string]int64)
	for _, c := range s.comments {
		if wanted[c.PostID] {
			counts[c.PostID]++
		}
	}
	return counts, nil
}

func (s *Memory) CommentCount(ctx context.Context, postID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, c := range s.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n, nil
}

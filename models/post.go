package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Author is a denormalized {_id, name} snapshot of a user, embedded in posts,
// tags and comments. It is copied at creation time and never synced with
// later profile edits.
type Author struct {
	ID   string `bson:"_id" json:"_id"`
	Name string `bson:"name" json:"name"`
}

// Post is a forum post (notes / jobs / threads). Likes and saves are lists
// used as sets of user ids. CommentsCount is computed at read time from the
// comments collection and never stored.
type Post struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title" binding:"required"`
	Content       string             `bson:"content" json:"content" binding:"required"`
	Category      string             `bson:"category" json:"category" binding:"required"`
	Link          *string            `bson:"link,omitempty" json:"link,omitempty"`
	Attachments   []string           `bson:"attachments,omitempty" json:"attachments"`
	Tags          []Author           `bson:"tags,omitempty" json:"tags"`
	Author        Author             `bson:"author" json:"author" binding:"required"`
	CreatedAt     string             `bson:"createdAt" json:"createdAt" binding:"required"`
	Likes         []string           `bson:"likes,omitempty" json:"likes"`
	Saves         []string           `bson:"saves,omitempty" json:"saves"`
	CommentsCount int64              `bson:"-" json:"commentsCount"`
}

// Normalize replaces nil list fields with empty slices so responses carry
// [] instead of null.
func (p *Post) Normalize() {
	if p.Attachments == nil {
		p.Attachments = []string{}
	}
	if p.Tags == nil {
		p.Tags = []Author{}
	}
	if p.Likes == nil {
		p.Likes = []string{}
	}
	if p.Saves == nil {
		p.Saves = []string{}
	}
}

// PostUpdate carries a partial post update. Nil means "not supplied".
type PostUpdate struct {
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
	Category    *string   `json:"category"`
	Link        *string   `json:"link"`
	Attachments *[]string `json:"attachments"`
	Tags        *[]Author `json:"tags"`
	Author      *Author   `json:"author"`
	CreatedAt   *string   `json:"createdAt"`
	Likes       *[]string `json:"likes"`
	Saves       *[]string `json:"saves"`
}

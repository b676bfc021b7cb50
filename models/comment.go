package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Reply lives embedded inside its comment and is never queried on its own.
type Reply struct {
	ID        string   `bson:"_id,omitempty" json:"_id,omitempty"`
	Content   string   `bson:"content" json:"content"`
	Author    Author   `bson:"author" json:"author"`
	CreatedAt string   `bson:"createdAt" json:"createdAt"`
	Likes     []string `bson:"likes,omitempty" json:"likes"`
}

// Comment belongs to a post via PostID (stored as a string).
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content   string             `bson:"content" json:"content" binding:"required"`
	Author    Author             `bson:"author" json:"author" binding:"required"`
	CreatedAt string             `bson:"createdAt" json:"createdAt" binding:"required"`
	Likes     []string           `bson:"likes,omitempty" json:"likes"`
	Replies   []Reply            `bson:"replies,omitempty" json:"replies"`
	PostID    string             `bson:"post_id" json:"post_id"`
}

func (c *Comment) Normalize() {
	if c.Likes == nil {
		c.Likes = []string{}
	}
	if c.Replies == nil {
		c.Replies = []Reply{}
	}
	for i := range c.Replies {
		if c.Replies[i].Likes == nil {
			c.Replies[i].Likes = []string{}
		}
	}
}

// CommentUpdate carries a partial comment update. Nil means "not supplied".
type CommentUpdate struct {
	Content   *string   `json:"content"`
	Author    *Author   `json:"author"`
	CreatedAt *string   `json:"createdAt"`
	Likes     *[]string `json:"likes"`
	Replies   *[]Reply  `json:"replies"`
	PostID    *string   `json:"post_id"`
}

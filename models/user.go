package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is the stored user document. Optional profile fields are pointers so
// that an absent field never makes it into the document.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username   string             `bson:"username" json:"username"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"` // bcrypt hash, never serialized
	FullName   *string            `bson:"full_name,omitempty" json:"full_name,omitempty"`
	Bio        *string            `bson:"bio,omitempty" json:"bio,omitempty"`
	Department *string            `bson:"department,omitempty" json:"department,omitempty"`
	Linkedin   *string            `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Github     *string            `bson:"github,omitempty" json:"github,omitempty"`
	College    *string            `bson:"college,omitempty" json:"college,omitempty"`
	Joined     *string            `bson:"joined,omitempty" json:"joined,omitempty"`
}

// AuthUser is the public profile returned by the auth endpoints.
type AuthUser struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	FullName   *string `json:"full_name"`
	Bio        *string `json:"bio"`
	Department *string `json:"department"`
	Linkedin   *string `json:"linkedin"`
	Github     *string `json:"github"`
	College    *string `json:"college"`
	Joined     *string `json:"joined"`
}

// Public strips the password hash and renders the id as hex.
func (u *User) Public() AuthUser {
	return AuthUser{
		ID:         u.ID.Hex(),
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Bio:        u.Bio,
		Department: u.Department,
		Linkedin:   u.Linkedin,
		Github:     u.Github,
		College:    u.College,
		Joined:     u.Joined,
	}
}

// UserSummary is the short record the /users listing endpoints return.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID.Hex(), Username: u.Username, Email: u.Email}
}

// DisplayName is the name shown in user search results: full name when the
// user has one, username otherwise.
func (u *User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Username
}

// UserUpdate carries a partial user update. Nil means "not supplied".
type UserUpdate struct {
	Username   *string `json:"username"`
	Email      *string `json:"email"`
	Password   *string `json:"password"`
	FullName   *string `json:"full_name"`
	Bio        *string `json:"bio"`
	Department *string `json:"department"`
	Linkedin   *string `json:"linkedin"`
	Github     *string `json:"github"`
	College    *string `json:"college"`
	Joined     *string `json:"joined"`
}

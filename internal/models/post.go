package models

import (
	"time"
)

// PostStatus is the lifecycle state of a post.
type PostStatus string

const (
	// PostStatusDraft is the initial state; only the owning author may edit.
	PostStatusDraft PostStatus = "draft"
	// PostStatusPublished is terminal; the only exit is a hard delete.
	PostStatusPublished PostStatus = "published"
)

// Post represents a content entry moving through draft → published.
// PublishedAt is nil exactly while the post is a draft. AuthorID is immutable
// after creation; ownership checks compare against it, not object identity.
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	Image       string     `json:"image,omitempty"`
	Status      PostStatus `gorm:"type:varchar(16);not null;default:draft;index" json:"status"`
	AuthorID    uint       `gorm:"not null;index" json:"author_id"`
	Author      User       `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// OwnerID returns the owning user's ID for ownership authorization.
func (p *Post) OwnerID() uint {
	return p.AuthorID
}

package models

import (
	"time"
)

// CommentStatus is the moderation state of a comment.
type CommentStatus string

const (
	// CommentStatusPending is the initial state for every new comment.
	CommentStatusPending CommentStatus = "pending"
	// CommentStatusApproved is terminal; there is no rejection state.
	CommentStatusApproved CommentStatus = "approved"
)

// Comment represents reader feedback on a post, held for moderation. Author
// is a free-text label supplied by the commenter, not a User reference.
type Comment struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	PostID    uint          `gorm:"not null;index" json:"post_id"`
	Post      Post          `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Author    string        `gorm:"not null" json:"author"`
	Text      string        `gorm:"type:text;not null" json:"text"`
	Status    CommentStatus `gorm:"type:varchar(16);not null;default:pending;index" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"pressroom/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumAuthors      int
	NumReaders      int
	PostsPerAuthor  int
	CommentsPerPost int
	ShouldClean     bool
}

// DefaultOptions returns a seed profile sized for local development.
func DefaultOptions() Options {
	return Options{
		NumAuthors:      5,
		NumReaders:      10,
		PostsPerAuthor:  4,
		CommentsPerPost: 3,
		ShouldClean:     false,
	}
}

// DemoPassword is the shared password for all seeded accounts.
const DemoPassword = "password123"

// Run populates the database with demo users, posts, and comments.
// All accounts share DemoPassword so any of them can be logged into.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return fmt.Errorf("cleaning database: %w", err)
		}
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}
	hash := string(digest)

	admin, err := createUser(db, "admin@pressroom.local", hash, models.RoleAdmin)
	if err != nil {
		return err
	}
	editor, err := createUser(db, "editor@pressroom.local", hash, models.RoleEditor)
	if err != nil {
		return err
	}
	log.Printf("seeded admin %s and editor %s", admin.Email, editor.Email)

	authors := make([]*models.User, 0, opts.NumAuthors)
	for i := 0; i < opts.NumAuthors; i++ {
		author, err := createUser(db, fakeEmail(), hash, models.RoleAuthor)
		if err != nil {
			return err
		}
		authors = append(authors, author)
	}

	for i := 0; i < opts.NumReaders; i++ {
		if _, err := createUser(db, fakeEmail(), hash, models.RoleReader); err != nil {
			return err
		}
	}

	for _, author := range authors {
		for i := 0; i < opts.PostsPerAuthor; i++ {
			post, err := createPost(db, author)
			if err != nil {
				return err
			}
			if post.Status != models.PostStatusPublished {
				continue
			}
			for j := 0; j < opts.CommentsPerPost; j++ {
				if err := createComment(db, post); err != nil {
					return err
				}
			}
		}
	}

	log.Printf("seeded %d authors, %d readers, %d posts per author",
		opts.NumAuthors, opts.NumReaders, opts.PostsPerAuthor)
	return nil
}

// Clean removes all seeded rows. Comments go first so FK constraints hold
// even without ON DELETE CASCADE (sqlite in tests).
func Clean(db *gorm.DB) error {
	for _, model := range []interface{}{&models.Comment{}, &models.Post{}, &models.User{}} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUser(db *gorm.DB, email, passwordHash string, role models.Role) (*models.User, error) {
	user := &models.User{
		Email:    email,
		Password: passwordHash,
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("creating user %s: %w", email, err)
	}
	return user, nil
}

// createPost persists a post for the author. Roughly two thirds of seeded
// posts are published so the public feed has content, the rest stay drafts.
func createPost(db *gorm.DB, author *models.User) (*models.Post, error) {
	post := &models.Post{
		Title:    strings.TrimSuffix(gofakeit.Sentence(6), "."),
		Body:     gofakeit.Paragraph(3, 4, 12, "\n\n"),
		AuthorID: author.ID,
		Status:   models.PostStatusDraft,
	}
	if rand.Intn(3) < 2 {
		publishedAt := gofakeit.DateRange(time.Now().AddDate(0, -6, 0), time.Now())
		post.Status = models.PostStatusPublished
		post.PublishedAt = &publishedAt
	}
	if err := db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("creating post for author %d: %w", author.ID, err)
	}
	return post, nil
}

// createComment attaches a comment to a published post. About half are left
// pending so the moderation queue is never empty in a fresh environment.
func createComment(db *gorm.DB, post *models.Post) error {
	comment := &models.Comment{
		PostID: post.ID,
		Author: gofakeit.Name(),
		Text:   gofakeit.Sentence(gofakeit.Number(5, 20)),
		Status: models.CommentStatusPending,
	}
	if rand.Intn(2) == 0 {
		comment.Status = models.CommentStatusApproved
	}
	if err := db.Create(comment).Error; err != nil {
		return fmt.Errorf("creating comment on post %d: %w", post.ID, err)
	}
	return nil
}

func fakeEmail() string {
	return strings.ToLower(fmt.Sprintf("%s.%s@%s",
		gofakeit.FirstName(), gofakeit.LastName(), gofakeit.DomainName()))
}

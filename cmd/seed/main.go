// Command seed populates the database with demo users, posts, and comments.
package main

import (
	"flag"
	"log"

	"pressroom/internal/config"
	"pressroom/internal/database"
	"pressroom/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.NumAuthors, "authors", opts.NumAuthors, "Number of author accounts to create")
	flag.IntVar(&opts.NumReaders, "readers", opts.NumReaders, "Number of reader accounts to create")
	flag.IntVar(&opts.PostsPerAuthor, "posts", opts.PostsPerAuthor, "Posts to create per author")
	flag.IntVar(&opts.CommentsPerPost, "comments", opts.CommentsPerPost, "Comments to create per published post")
	flag.BoolVar(&opts.ShouldClean, "clean", opts.ShouldClean, "Delete existing rows before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeding complete. All accounts use password %q.", seed.DemoPassword)
}

// Command seed loads the demo dataset into the configured storage backend.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"photogram/internal/config"
	"photogram/internal/observability"
	"photogram/internal/repository"
	"photogram/internal/seed"
	"photogram/internal/storage"

	"gopkg.in/yaml.v3"
)

func main() {
	reset := flag.Bool("reset", false, "Overwrite stored collections with the seed data")
	fakeUsers := flag.Int("fake-users", 0, "Number of generated users to add on top of the seed data")
	postsPerUser := flag.Int("posts-per-user", 2, "Posts generated for each fake user")
	commentsPerPost := flag.Int("comments-per-post", 2, "Comments generated for each fake post")
	stories := flag.Bool("stories", true, "Generate a story for each fake user")
	randSeed := flag.Int64("seed", 42, "Random seed for generated content")
	from := flag.String("from", "", "Load the base dataset from this YAML file instead of the built-in one")
	export := flag.String("export", "", "Write the stored dataset to this YAML file after seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	observability.InitLogger(cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageBackend, err)
	}
	defer backend.Close()

	data := seed.Default()
	if *from != "" {
		raw, err := os.ReadFile(*from)
		if err != nil {
			log.Fatalf("Reading %s failed: %v", *from, err)
		}
		if data, err = seed.Parse(raw); err != nil {
			log.Fatalf("Parsing %s failed: %v", *from, err)
		}
	}
	if *fakeUsers > 0 {
		f := seed.NewFactory(*randSeed, seed.Options{
			NumUsers:        *fakeUsers,
			PostsPerUser:    *postsPerUser,
			CommentsPerPost: *commentsPerPost,
			WithStories:     *stories,
		})
		data = f.Extend(data)
		log.Printf("Generated %d users, %d posts, %d comments", len(data.Users), len(data.Posts), len(data.Comments))
	}

	store := repository.NewStore(backend, cfg.StorageNamespace, data, observability.Logger)
	switch {
	case *fakeUsers > 0 || *from != "":
		if err := store.Import(ctx, data); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		log.Printf("Wrote every collection to %s storage", backend.Name())
	case *reset:
		if err := store.Reset(ctx); err != nil {
			log.Fatalf("Reset failed: %v", err)
		}
		if err := store.Initialize(ctx); err != nil {
			log.Fatalf("Initialization failed: %v", err)
		}
		log.Printf("Reset %s storage to the seed data", backend.Name())
	default:
		if err := store.Initialize(ctx); err != nil {
			log.Fatalf("Initialization failed: %v", err)
		}
		log.Printf("Initialized missing collections in %s storage", backend.Name())
	}

	if *export != "" {
		snap, err := store.Snapshot(ctx)
		if err != nil {
			log.Fatalf("Snapshot failed: %v", err)
		}
		out, err := yaml.Marshal(snap)
		if err != nil {
			log.Fatalf("Encoding snapshot failed: %v", err)
		}
		if err := os.WriteFile(*export, out, 0o644); err != nil {
			log.Fatalf("Writing %s failed: %v", *export, err)
		}
		log.Printf("Exported dataset to %s", *export)
	}
}

// Command stories plays the stories tray in the terminal.
//
// While playing, type a command and press enter:
//
//	n  next story
//	p  previous story
//	s  pause or resume
//	q  close the viewer
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"photogram/internal/config"
	"photogram/internal/models"
	"photogram/internal/observability"
	"photogram/internal/repository"
	"photogram/internal/seed"
	"photogram/internal/service"
	"photogram/internal/storage"
	"photogram/internal/story"
)

func main() {
	activeOnly := flag.Bool("active", true, "Only play stories that have not been viewed")
	autoMark := flag.Bool("auto-mark", false, "Mark each story as viewed once playback moves past it")
	interval := flag.Duration("interval", story.DefaultInterval, "Time between progress steps")
	steps := flag.Int("steps", story.DefaultSteps, "Progress steps per story")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	observability.InitLogger(cfg.Env, "error")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageBackend, err)
	}
	defer backend.Close()

	store := repository.NewStore(backend, cfg.StorageNamespace, seed.Default(), observability.Logger)
	svcs := service.New(service.NewDeps(store))

	stories, err := svcs.Stories.Stories(ctx, *activeOnly)
	if err != nil {
		log.Fatalf("Loading stories failed: %v", err)
	}
	if len(stories) == 0 {
		fmt.Println("No stories to show.")
		return
	}
	users, err := svcs.Users.Users(ctx)
	if err != nil {
		log.Fatalf("Loading users failed: %v", err)
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}

	player := story.NewPlayer(stories, story.Options{
		Steps:          *steps,
		Interval:       *interval,
		AutoMarkViewed: *autoMark,
		OnAdvance: func(s models.Story) {
			fmt.Printf("\n▶ %s  %s\n", names[s.UserID], s.ImageURL)
		},
		OnViewed: func(s models.Story) {
			if err := svcs.Stories.MarkStoryAsViewed(context.WithoutCancel(ctx), s.ID); err != nil {
				log.Printf("Marking %s viewed failed: %v", s.ID, err)
			}
		},
		OnClose: stop,
	})

	go readCommands(player)
	go drawProgress(ctx, player, *interval)

	if err := player.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
	fmt.Println("\nDone.")
}

func readCommands(p *story.Player) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		switch strings.TrimSpace(sc.Text()) {
		case "n":
			p.Next()
		case "p":
			p.Previous()
		case "s":
			if p.State() == story.Paused {
				p.Resume()
			} else {
				p.Pause()
			}
		case "q":
			p.Close()
			return
		}
	}
}

func drawProgress(ctx context.Context, p *story.Player, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if p.State() == story.Ended {
				return
			}
			progress := p.Progress()
			fmt.Printf("\r[%-20s] %3.0f%% %s", strings.Repeat("=", int(progress*20)), progress*100, p.State())
		}
	}
}

package main

import (
	"context"
	"flag"
	"log"

	"taskhub/internal/config"
	"taskhub/internal/logger"
	"taskhub/internal/repository"
	"taskhub/internal/service"
	"taskhub/internal/storage"
	"taskhub/internal/view"
)

// seed_tasks writes a couple of demo tasks into the configured store.
func main() {
	reset := flag.Bool("reset", false, "clear the list before seeding")
	flag.Parse()

	cfg := config.LoadTaskBoard()
	ctx := context.Background()

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("open store", "error", err)
	}
	defer store.Close()

	model := repository.NewTaskModel(store, cfg.TasksKey)
	if *reset {
		if res := model.SaveAll(ctx, nil); !res.Success {
			log.Fatalf("reset failed: %s", res.Error)
		}
	}

	ctrl := service.NewTaskController(model, service.NewBoard(), service.ControllerOptions{})
	if _, err := ctrl.Load(ctx); err != nil {
		log.Fatalf("load: %v", err)
	}

	for _, seed := range []struct{ title, desc string }{
		{"Write spec", "Outline the task board API"},
		{"Review spec", ""},
	} {
		if _, err := ctrl.Add(ctx, seed.title, seed.desc); err != nil {
			log.Fatalf("add %q: %v", seed.title, err)
		}
	}

	for _, t := range view.Sorted(ctrl.Board().Tasks()) {
		log.Printf("id=%d completed=%t created_at=%s title=%s\n", t.ID, t.Completed, t.CreatedAt, t.Title)
	}
}

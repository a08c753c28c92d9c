package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"taskhub/internal/db"
	"taskhub/internal/logger"
	"taskhub/internal/migrations"
)

func main() {
	apply := flag.Bool("apply", false, "apply migrations")
	flag.Parse()

	if !*apply {
		names, err := migrations.Names()
		if err != nil {
			logger.Fatal("list migrations", "error", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	pool := db.MustConnect(os.Getenv("DATABASE_URL"))
	defer pool.Close()

	err := migrations.Apply(context.Background(), pool, func(name string) {
		fmt.Printf("applied %s\n", name)
	})
	if err != nil {
		logger.Fatal("migration failed", "error", err)
	}
}

package main

import (
	"context"
	"flag"
	"os"

	"campstead/internal/config"
	"campstead/internal/database"
	"campstead/internal/middleware"
	"campstead/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Users, "users", opts.Users, "number of users to create")
	flag.IntVar(&opts.Campgrounds, "campgrounds", opts.Campgrounds, "number of campgrounds to create")
	flag.IntVar(&opts.MaxReviews, "max-reviews", opts.MaxReviews, "maximum reviews per campground")
	flag.StringVar(&opts.Password, "password", opts.Password, "password for all generated accounts")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		middleware.Logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		middleware.Logger.Error("refusing to seed a production database")
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		middleware.Logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := seed.Run(context.Background(), db, opts); err != nil {
		middleware.Logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

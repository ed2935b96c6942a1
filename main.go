package main

import (
	"context"
	"time"

	"github.com/weatherfit/backend/config"
	"github.com/weatherfit/backend/feed"
	"github.com/weatherfit/backend/models"
	"github.com/weatherfit/backend/routes"
	"github.com/weatherfit/backend/store"
	"github.com/weatherfit/backend/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Post{}, &models.Comment{}, &models.Like{})

	postStore := store.NewGormStore(db)
	notifier := feed.NewNotifier(utils.GetRedis(), utils.Sugar)
	defer notifier.Close()

	svc := feed.NewService(postStore, feed.NewCache(), notifier, utils.Sugar)

	// Warm the feed cache before taking traffic. A failed warm-up is not
	// fatal; the first list request retries it.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := svc.LoadAll(ctx); err != nil {
		utils.Sugar.Warnf("initial feed load failed: %v", err)
	}
	cancel()

	r := routes.SetupRouter(db, svc, notifier)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Abdullah-Baher/social-app-back/auth"
	"github.com/Abdullah-Baher/social-app-back/cache"
	"github.com/Abdullah-Baher/social-app-back/config"
	"github.com/Abdullah-Baher/social-app-back/controllers"
	"github.com/Abdullah-Baher/social-app-back/database"
	"github.com/Abdullah-Baher/social-app-back/engine"
	"github.com/Abdullah-Baher/social-app-back/middlewares"
	"github.com/Abdullah-Baher/social-app-back/routes"
	"github.com/Abdullah-Baher/social-app-back/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	client, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("mongo disconnect: %v", err)
		}
	}()
	db := client.Database(cfg.Mongo.DBName)

	userStore, err := store.NewMongoUserStore(ctx, db)
	if err != nil {
		log.Fatalf("user store: %v", err)
	}
	postStore := store.NewMongoPostStore(db)

	blobs, err := database.NewBlobs(db)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	var feeds *cache.FeedCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Fatalf("redis ping: %v", err)
		}
		defer rdb.Close()
		feeds = cache.NewFeedCache(rdb, cfg.Redis.FeedTTL)
	} else {
		log.Println("REDIS_ADDR not set, feed cache disabled")
	}

	tokens := auth.New([]byte(cfg.Auth.SecretKey), cfg.Auth.TokenTTL)
	graph := engine.NewGraph(userStore)
	engagement := engine.NewEngagement(postStore, userStore)
	cascade := engine.NewCascade(userStore, postStore, blobs)
	credentials := engine.NewCredentials(userStore)

	userController := controllers.NewUserController(userStore, credentials, cascade, tokens, feeds)
	connectionController := controllers.NewConnectionController(graph, feeds)
	postController := controllers.NewPostController(postStore, userStore, engagement, blobs, feeds, cfg.App.HostName)

	requireAuth := middlewares.RequireAuth(tokens, userStore)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://127.0.0.1:5500", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.HomeRoutes(router)
	routes.AuthRouter(router, userController)
	routes.UserRouter(router, userController, requireAuth)
	routes.ConnectionRouter(router, connectionController, requireAuth)
	routes.PostRouter(router, postController, requireAuth)

	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}

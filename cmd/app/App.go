package app

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"

	"socketBoard/configs"
	"socketBoard/internal/handlers"
	"socketBoard/internal/repositories"
	"socketBoard/internal/servers/database"
	"socketBoard/internal/servers/http"
	"socketBoard/internal/services"
)

var (
	app  *App
	once sync.Once
)

type App struct {
	redis   *redis.Client
	ctx     context.Context
	configs *configs.Config
}

func GetApp() *App {
	once.Do(func() {
		app = &App{}
	})
	return app
}

func (app *App) LetsGo() {
	app.ctx = context.Background()
	app.initializeConfigs()
	app.initializeRedis()

	db := database.GetDB(app.configs)
	whiteboardRepo := repositories.NewWhiteboardRepository(db)
	whiteboardService := services.NewWhiteboardService(whiteboardRepo)
	presenceService := services.NewPresenceService(app.redis, app.configs.Viper.GetDuration("presence.ttl"))

	maxUploadBytes := app.configs.Viper.GetInt64("upload.max_bytes")
	minioService := services.NewMinioService(app.ctx, app.configs)
	fileManagerService := services.NewFileManagerService(minioService, maxUploadBytes)

	restHandler := handlers.NewRestHandler(
		whiteboardService,
		presenceService,
		fileManagerService,
		maxUploadBytes,
		handlers.HealthCheck{Name: "database", Ping: func(ctx context.Context) error { return database.Ping(ctx, db) }},
		handlers.HealthCheck{Name: "redis", Ping: func(ctx context.Context) error { return app.redis.Ping(ctx).Err() }},
		handlers.HealthCheck{Name: "storage", Ping: minioService.Ping},
	)
	socketWhiteboardHandler := handlers.NewSocketWhiteboardHandler(app.redis, app.ctx, whiteboardService, presenceService)

	http.NewHttpServer(
		app.ctx,
		app.configs.Viper.GetString("server.addr"),
		restHandler,
		socketWhiteboardHandler,
	).Run()
}

func (app *App) initializeRedis() {
	app.redis = redis.NewClient(&redis.Options{
		Addr:     app.configs.Viper.GetString("redis.addr"),
		Password: app.configs.Viper.GetString("redis.password"),
		DB:       app.configs.Viper.GetInt("redis.db"),
	})
}

func (app *App) initializeConfigs() {
	app.configs = configs.GetConfig()
}

package main

import (
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	log "github.com/sirupsen/logrus"

	"feedback-board-server/config"
	"feedback-board-server/routes"
	"feedback-board-server/storage"
	"feedback-board-server/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config load failed")
	}

	if cfg.Production() {
		log.SetFormatter(&log.JSONFormatter{})
	}

	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET environment variable is required")
	}

	store, err := storage.Connect(cfg.DatabaseURL, log.StandardLogger())
	if err != nil {
		log.WithError(err).Fatal("store connect failed")
	}
	defer store.Close()

	sessions := utils.NewSessions(cfg.SessionSecret, storage.NewRedisSessions(cfg.RedisURL))

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Setup-Token, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	server := routes.NewServer(store, sessions, cfg.AdminSetupToken, log.StandardLogger())
	server.Attach(app)

	addr := "0.0.0.0:" + cfg.Port
	log.WithField("addr", addr).Info("server starting")
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}

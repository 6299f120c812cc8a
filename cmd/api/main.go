package main

import (
	"github.com/gin-gonic/gin"

	"github.com/medidesk/hospital-api/internal/config"
	"github.com/medidesk/hospital-api/internal/db"
	"github.com/medidesk/hospital-api/internal/logging"
	"github.com/medidesk/hospital-api/internal/middleware"
	"github.com/medidesk/hospital-api/internal/payment"
	"github.com/medidesk/hospital-api/internal/redislock"
	"github.com/medidesk/hospital-api/internal/routes"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.Env)

	database := db.NewDB(cfg)

	// Without Redis the per-slot lock degrades to an in-process mutex,
	// which is enough for a single instance. Run Redis when scaling out.
	locker := redislock.NewLocal()
	if cfg.RedisAddr != "" {
		client, err := redislock.NewClient(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis connection failed")
		}
		locker = redislock.New(client, cfg.LockTTL)
		log.Info().Str("addr", cfg.RedisAddr).Msg("distributed slot locking enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, using in-process slot locking")
	}

	var gateway payment.Gateway = payment.Disabled{}
	if cfg.MPAccessToken != "" {
		mp, err := payment.NewMercadoPago(cfg.MPAccessToken)
		if err != nil {
			log.Fatal().Err(err).Msg("payment gateway setup failed")
		}
		gateway = mp
	} else {
		log.Warn().Msg("MP_ACCESS_TOKEN not set, online payment disabled")
	}

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, database, cfg, log, locker, gateway)

	log.Info().Str("port", cfg.ServerPort).Msg("server listening")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

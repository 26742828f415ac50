package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/firstcreditunion/loan-status-hub-sub000/internal/config"
	httpx "github.com/firstcreditunion/loan-status-hub-sub000/internal/http"
	"github.com/firstcreditunion/loan-status-hub-sub000/internal/http/handlers"
	"github.com/firstcreditunion/loan-status-hub-sub000/internal/http/middleware"
	"github.com/firstcreditunion/loan-status-hub-sub000/internal/logging"
)

func Run(cfg *config.Config) error {
	logging.Setup(logging.Options{
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	container, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.RedisClient.Ping(context.Background()).Err(); err != nil {
		log.Printf("redis unreachable at startup, rate limiting will fail open: %v", err)
	}

	vh := handlers.NewVerificationHandlers(container.VerificationSvc)
	edge := middleware.NewIPLimiter(10, 20)
	r := httpx.BuildRouter(vh, edge)

	addr := ":" + cfg.Port
	log.Printf("environment=%s listening on %s", cfg.Environment, addr)
	return http.ListenAndServe(addr, r)
}

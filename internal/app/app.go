package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tarzan-1984/odyssea-beckend-sub001/internal/config"
	httpx "github.com/tarzan-1984/odyssea-beckend-sub001/internal/http"
	"github.com/tarzan-1984/odyssea-beckend-sub001/internal/http/handlers"
	"github.com/tarzan-1984/odyssea-beckend-sub001/internal/http/middleware"
)

// Run wires the container, builds the router and serves until the
// listener fails.
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	container, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(container.AuthSvc, container.UserRepo)
	jwtMW := middleware.NewAuthMW(container.TokenSvc)

	r := httpx.BuildRouter(authH, jwtMW)

	addr := ":" + cfg.Port
	slog.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, r)
}

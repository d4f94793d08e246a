package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const pingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db  Pinger
	log *slog.Logger
}

func NewHealthController(db Pinger, log *slog.Logger) *HealthController {
	return &HealthController{db: db, log: log}
}

// Health reports 200 while the database answers a ping.
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.health.Health"

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if err := c.db.Ping(ctx); err != nil {
		c.log.Error(ErrUnhealthy.Error(), slog.String("operation", op), slog.String("error", err.Error()))
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(ErrUnhealthy.Error()))
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

package http

import (
	"context"

	"github.com/clinicore/clinic-registry/internal/logger"
	"github.com/clinicore/clinic-registry/internal/service"
)

// Pinger reports whether the backing store is reachable. Satisfied by
// store.Storages.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	services *service.Services
	pinger   Pinger

	logger *logger.Logger
}

func NewHandler(services *service.Services, pinger Pinger, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		pinger:   pinger,
		logger:   logger,
	}
}

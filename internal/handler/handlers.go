package handler

import (
	"github.com/clinicore/clinic-registry/internal/config"
	"github.com/clinicore/clinic-registry/internal/handler/http"
	"github.com/clinicore/clinic-registry/internal/logger"
	"github.com/clinicore/clinic-registry/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, pinger http.Pinger, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, pinger, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}

// Package service contains the business rules of the registry: account
// registration, credential verification, token issuance, the admin
// bootstrap policy, and the ownership rules around patient intake records.
//
// Services validate input and decide outcomes; persistence details live in
// the store package, transport details in the handler package.
package service

import (
	"github.com/clinicore/clinic-registry/internal/config"
	"github.com/clinicore/clinic-registry/internal/logger"
	"github.com/clinicore/clinic-registry/internal/store"
	"github.com/clinicore/clinic-registry/internal/utils"
)

// Services aggregates every business-logic service of the registry.
type Services struct {
	AuthService
	PatientService
}

// NewServices wires the service layer to the given storages using the
// application security parameters from cfg.
func NewServices(storages *store.Storages, cfg config.App, log *logger.Logger) *Services {
	idGenerator := utils.NewUUIDGenerator()

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, idGenerator, cfg, log),
		PatientService: NewPatientService(storages.PatientRepository, idGenerator, log),
	}
}

package http

import (
	"github.com/MKhiriev/go-build-keeper/internal/logger"
	"github.com/MKhiriev/go-build-keeper/internal/service"
	"github.com/MKhiriev/go-build-keeper/internal/utils"
)

type Handler struct {
	services *service.Services

	// signer checks the HashSHA256 header; nil disables the check.
	signer *utils.Signer

	logger *logger.Logger
}

func NewHandler(services *service.Services, hashKey string, logger *logger.Logger) *Handler {
	logger.Info().Bool("integrity_check", hashKey != "").Msg("http handler created")
	return &Handler{
		services: services,
		signer:   utils.NewSigner(hashKey),
		logger:   logger,
	}
}

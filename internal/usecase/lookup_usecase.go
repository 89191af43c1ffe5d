package usecase

import (
	"strings"

	"github.com/ivangsquared/poc-address-finder/internal/domain/repository"
	"github.com/ivangsquared/poc-address-finder/internal/pkg/errors"
	"github.com/ivangsquared/poc-address-finder/internal/usecase/dto"
	"go.uber.org/zap"
)

// LookupUseCase serves the two read endpoints over the static directories.
// Both operations are idempotent and side-effect free; the directories never
// change at runtime, so results are safe to cache indefinitely.
type LookupUseCase struct {
	nmiDir  repository.NMIDirectory
	addrDir repository.AddressDirectory
	logger  *zap.Logger
}

func NewLookupUseCase(
	nmiDir repository.NMIDirectory,
	addrDir repository.AddressDirectory,
	logger *zap.Logger,
) *LookupUseCase {
	return &LookupUseCase{
		nmiDir:  nmiDir,
		addrDir: addrDir,
		logger:  logger,
	}
}

// GeocodeFor resolves a meter identifier to its directory coordinate.
func (uc *LookupUseCase) GeocodeFor(identifier string) (*dto.GeocodeResponse, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, errors.ErrMissingNMI
	}

	record, ok := uc.nmiDir.Get(identifier)
	if !ok {
		uc.logger.Debug("Unknown NMI in geocode lookup", zap.String("nmi", identifier))
		return nil, errors.ErrNMINotFound
	}

	return &dto.GeocodeResponse{
		NMI: record.Identifier,
		Lat: record.Lat,
		Lng: record.Lng,
	}, nil
}

// AddressFor resolves a meter identifier to its canned postal address.
func (uc *LookupUseCase) AddressFor(identifier string) (*dto.AddressResponse, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, errors.ErrMissingNMI
	}

	address, ok := uc.addrDir.Get(identifier)
	if !ok {
		uc.logger.Debug("Unknown NMI in address lookup", zap.String("nmi", identifier))
		return nil, errors.ErrNMINotFound
	}

	return &dto.AddressResponse{
		NMI:     identifier,
		Address: address,
	}, nil
}

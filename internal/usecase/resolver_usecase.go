package usecase

import (
	"math"

	"github.com/ivangsquared/poc-address-finder/internal/domain"
	"github.com/ivangsquared/poc-address-finder/internal/domain/repository"
)

// ResolverUseCase finds the directory entry nearest to a coordinate.
type ResolverUseCase struct {
	nmiDir repository.NMIDirectory
}

func NewResolverUseCase(nmiDir repository.NMIDirectory) *ResolverUseCase {
	return &ResolverUseCase{nmiDir: nmiDir}
}

// Resolve returns the record with strictly minimal straight-line distance in
// degrees. Ties keep the first record in directory order. Nil only when the
// directory is empty.
func (uc *ResolverUseCase) Resolve(lat, lng float64) *domain.NMIRecord {
	var nearest *domain.NMIRecord
	best := math.Inf(1)

	for _, r := range uc.nmiDir.All() {
		d := math.Hypot(r.Lat-lat, r.Lng-lng)
		if d < best {
			best = d
			record := r
			nearest = &record
		}
	}

	return nearest
}

package postgres

import (
	"context"
	"fmt"

	"github.com/ivangsquared/poc-address-finder/internal/domain"
)

// DirectoryRepository reads the NMI and address directories from Postgres.
// It is a startup-only data source: rows are loaded once and served from
// memory for the life of the process.
type DirectoryRepository struct {
	db *DB
}

func NewDirectoryRepository(db *DB) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

// LoadNMIRecords returns the directory in its defined order. Order matters:
// nearest-neighbor ties resolve to the earliest record.
func (r *DirectoryRepository) LoadNMIRecords(ctx context.Context) ([]domain.NMIRecord, error) {
	const query = `
		SELECT identifier, lat, lng
		FROM nmi_directory
		ORDER BY seq`

	var records []domain.NMIRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to load nmi directory: %w", err)
	}
	return records, nil
}

func (r *DirectoryRepository) LoadAddressRecords(ctx context.Context) ([]domain.AddressRecord, error) {
	const query = `
		SELECT a.identifier, a.address
		FROM address_directory a
		JOIN nmi_directory n ON n.identifier = a.identifier
		ORDER BY n.seq`

	var records []domain.AddressRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to load address directory: %w", err)
	}
	return records, nil
}

package memory

import (
	"github.com/ivangsquared/poc-address-finder/internal/domain"
	"github.com/ivangsquared/poc-address-finder/internal/domain/repository"
)

// nmiDirectory is the immutable in-memory meter identifier directory.
// Directory order is preserved because nearest-neighbor ties resolve to the
// first record encountered.
type nmiDirectory struct {
	records []domain.NMIRecord
	byID    map[string]domain.NMIRecord
}

func NewNMIDirectory(records []domain.NMIRecord) repository.NMIDirectory {
	d := &nmiDirectory{
		records: make([]domain.NMIRecord, len(records)),
		byID:    make(map[string]domain.NMIRecord, len(records)),
	}
	copy(d.records, records)
	for _, r := range d.records {
		d.byID[r.Identifier] = r
	}
	return d
}

func (d *nmiDirectory) All() []domain.NMIRecord {
	return d.records
}

func (d *nmiDirectory) Get(identifier string) (domain.NMIRecord, bool) {
	r, ok := d.byID[identifier]
	return r, ok
}

func (d *nmiDirectory) Len() int {
	return len(d.records)
}

type addressDirectory struct {
	byID map[string]string
}

func NewAddressDirectory(records []domain.AddressRecord) repository.AddressDirectory {
	d := &addressDirectory{
		byID: make(map[string]string, len(records)),
	}
	for _, r := range records {
		d.byID[r.Identifier] = r.Address
	}
	return d
}

func (d *addressDirectory) Get(identifier string) (string, bool) {
	addr, ok := d.byID[identifier]
	return addr, ok
}

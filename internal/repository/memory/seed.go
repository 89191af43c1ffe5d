package memory

import "github.com/ivangsquared/poc-address-finder/internal/domain"

// SeedNMIRecords is the built-in mock registry used when no directory source
// is configured.
func SeedNMIRecords() []domain.NMIRecord {
	return []domain.NMIRecord{
		{Identifier: "NMI001", Lat: -33.8708, Lng: 151.2073},
		{Identifier: "NMI002", Lat: -37.8136, Lng: 144.9631},
		{Identifier: "NMI003", Lat: -27.4698, Lng: 153.0251},
	}
}

// SeedAddressRecords are the canned addresses for the seed identifiers.
func SeedAddressRecords() []domain.AddressRecord {
	return []domain.AddressRecord{
		{Identifier: "NMI001", Address: "1 Market Street, Sydney NSW 2000"},
		{Identifier: "NMI002", Address: "200 Spencer Street, Melbourne VIC 3000"},
		{Identifier: "NMI003", Address: "71 Eagle Street, Brisbane QLD 4000"},
	}
}

package domain

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NMIRecord is one entry of the meter identifier directory. Records are
// defined at startup and never mutated.
type NMIRecord struct {
	Identifier string  `json:"nmi" db:"identifier"`
	Lat        float64 `json:"lat" db:"lat"`
	Lng        float64 `json:"lng" db:"lng"`
}

// AddressRecord maps a known meter identifier to its postal address. Every
// address keys off an identifier present in the NMI directory; an identifier
// may exist without an address.
type AddressRecord struct {
	Identifier string `json:"nmi" db:"identifier"`
	Address    string `json:"address" db:"address"`
}

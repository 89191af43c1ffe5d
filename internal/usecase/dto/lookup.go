package dto

// AddressResponse is the flat wire shape of GET /api/addressfinder.
type AddressResponse struct {
	NMI     string `json:"nmi"`
	Address string `json:"address"`
}

// GeocodeResponse is the flat wire shape of GET /api/geocode.
type GeocodeResponse struct {
	NMI string  `json:"nmi"`
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

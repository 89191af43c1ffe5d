package dto

import "github.com/ivangsquared/poc-address-finder/internal/domain"

type SelectPointRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

type EditAddressRequest struct {
	// Overwrites the draft verbatim; intentionally unvalidated.
	Address string `json:"address"`
}

type SelectionResponse struct {
	SessionID        string        `json:"session_id"`
	Phase            string        `json:"phase"`
	Position         *domain.Point `json:"position,omitempty"`
	ResolvedNMI      string        `json:"resolved_nmi,omitempty"`
	DraftAddress     string        `json:"draft_address"`
	ConfirmedAddress string        `json:"confirmed_address,omitempty"`
	IsLoading        bool          `json:"is_loading"`
	ErrorMessage     string        `json:"error_message,omitempty"`
}

func NewSelectionResponse(s *domain.Session) *SelectionResponse {
	return &SelectionResponse{
		SessionID:        s.ID,
		Phase:            string(s.Selection.Phase),
		Position:         s.Selection.Position,
		ResolvedNMI:      s.Selection.ResolvedNMI,
		DraftAddress:     s.Selection.DraftAddress,
		ConfirmedAddress: s.Selection.ConfirmedAddress,
		IsLoading:        s.Selection.IsLoading,
		ErrorMessage:     s.Selection.ErrorMessage,
	}
}

const (
	MarkerTypeNMI      = "nmi"
	MarkerTypePosition = "position"
)

// Marker is one renderable map marker: either a directory entry or the raw
// selected position when it does not coincide with any entry.
type Marker struct {
	Type       string  `json:"type"`
	NMI        string  `json:"nmi,omitempty"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Selected   bool    `json:"selected"`
	DistanceKm float64 `json:"distance_km,omitempty"`
}

type MarkersResponse struct {
	Markers []Marker `json:"markers"`
}

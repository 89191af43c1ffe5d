package domain

import "time"

// SelectionPhase is the current state of a selection session.
type SelectionPhase string

const (
	PhaseIdle      SelectionPhase = "idle"
	PhaseLoading   SelectionPhase = "loading"
	PhaseResolved  SelectionPhase = "resolved"
	PhaseEmpty     SelectionPhase = "empty"
	PhaseConfirmed SelectionPhase = "confirmed"
	PhaseFailed    SelectionPhase = "failed"
)

// Selection is the transient per-session interaction state. It is fully reset
// on every new point selection: a confirmed address never survives into the
// next resolution.
type Selection struct {
	Phase            SelectionPhase `json:"phase"`
	Position         *Point         `json:"position,omitempty"`
	ResolvedNMI      string         `json:"resolved_nmi,omitempty"`
	DraftAddress     string         `json:"draft_address"`
	ConfirmedAddress string         `json:"confirmed_address,omitempty"`
	IsLoading        bool           `json:"is_loading"`
	ErrorMessage     string         `json:"error_message,omitempty"`
}

// Reset clears everything except the new position and puts the selection
// into the loading phase.
func (s *Selection) Reset(pos Point) {
	s.Phase = PhaseLoading
	s.Position = &Point{Lat: pos.Lat, Lng: pos.Lng}
	s.ResolvedNMI = ""
	s.DraftAddress = ""
	s.ConfirmedAddress = ""
	s.IsLoading = true
	s.ErrorMessage = ""
}

// Session owns exactly one Selection for its lifetime.
type Session struct {
	ID        string    `json:"id"`
	Selection Selection `json:"selection"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

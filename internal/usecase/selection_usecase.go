package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ivangsquared/poc-address-finder/internal/domain"
	"github.com/ivangsquared/poc-address-finder/internal/domain/repository"
	"github.com/ivangsquared/poc-address-finder/internal/pkg/errors"
	"github.com/ivangsquared/poc-address-finder/internal/pkg/utils"
	"github.com/ivangsquared/poc-address-finder/internal/usecase/dto"
	"go.uber.org/zap"
)

// Fixed user-facing messages. Every failure in the selection flow is recovered
// here and surfaced as one of these; nothing propagates to the client as a
// transport error.
const (
	msgSelectionFailed        = "Unable to resolve an address for the selected location. Please try again."
	msgGeolocationUnsupported = "Geolocation is not supported in this environment."
	msgGeolocationFailed      = "Unable to determine your current location."
)

// asyncOpTimeout bounds the background resolution and confirm refresh calls.
const asyncOpTimeout = 30 * time.Second

// SelectionUseCase drives the click -> nearest-NMI -> address -> confirm flow.
// Resolution runs asynchronously after the selection enters loading. There is
// deliberately no cancellation of in-flight resolutions: overlapping
// selections race and the last completion wins by overwriting state.
type SelectionUseCase struct {
	sessions   repository.SessionRepository
	resolver   *ResolverUseCase
	geocoder   repository.Geocoder
	locator    repository.Locator // nil when the capability is unsupported
	cache      repository.CacheRepository
	cacheTTL   time.Duration
	fixTimeout time.Duration
	logger     *zap.Logger
}

func NewSelectionUseCase(
	sessions repository.SessionRepository,
	resolver *ResolverUseCase,
	geocoder repository.Geocoder,
	locator repository.Locator,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	fixTimeout time.Duration,
	logger *zap.Logger,
) *SelectionUseCase {
	return &SelectionUseCase{
		sessions:   sessions,
		resolver:   resolver,
		geocoder:   geocoder,
		locator:    locator,
		cache:      cache,
		cacheTTL:   cacheTTL,
		fixTimeout: fixTimeout,
		logger:     logger,
	}
}

func (uc *SelectionUseCase) CreateSession(ctx context.Context) (*domain.Session, error) {
	return uc.sessions.Create(ctx)
}

func (uc *SelectionUseCase) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	return uc.sessions.Get(ctx, id)
}

func (uc *SelectionUseCase) DeleteSession(ctx context.Context, id string) error {
	return uc.sessions.Delete(ctx, id)
}

// SelectPoint resets the selection to the new position, enters loading and
// kicks off resolution in the background. The returned snapshot is always the
// loading state; any previously confirmed address is already cleared in it.
func (uc *SelectionUseCase) SelectPoint(ctx context.Context, id string, lat, lng float64) (*domain.Session, error) {
	if !utils.ValidateCoordinates(lat, lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	pos := domain.Point{Lat: lat, Lng: lng}

	session, err := uc.sessions.Mutate(ctx, id, func(s *domain.Session) error {
		s.Selection.Reset(pos)
		return nil
	})
	if err != nil {
		return nil, err
	}

	go uc.completeSelection(id, pos)

	return session, nil
}

// UseCurrentLocation requests a single position fix and feeds it through the
// same path as a map click. Without a locator the selection never enters
// loading and only the error message is set.
func (uc *SelectionUseCase) UseCurrentLocation(ctx context.Context, id string) (*domain.Session, error) {
	if uc.locator == nil {
		return uc.sessions.Mutate(ctx, id, func(s *domain.Session) error {
			s.Selection.ErrorMessage = msgGeolocationUnsupported
			return nil
		})
	}

	fixCtx, cancel := context.WithTimeout(ctx, uc.fixTimeout)
	defer cancel()

	pos, err := uc.locator.CurrentPosition(fixCtx)
	if err != nil {
		uc.logger.Warn("Position fix failed", zap.String("session_id", id), zap.Error(err))
		return uc.sessions.Mutate(ctx, id, func(s *domain.Session) error {
			s.Selection.ErrorMessage = msgGeolocationFailed
			s.Selection.IsLoading = false
			return nil
		})
	}

	return uc.SelectPoint(ctx, id, pos.Lat, pos.Lng)
}

// EditAddress overwrites the draft verbatim. No validation, no re-resolution.
func (uc *SelectionUseCase) EditAddress(ctx context.Context, id, address string) (*domain.Session, error) {
	return uc.sessions.Mutate(ctx, id, func(s *domain.Session) error {
		s.Selection.DraftAddress = address
		return nil
	})
}

// Confirm copies the draft into the confirmed address, then refreshes the
// position from a forward geocode of the draft in the background. Confirming
// an empty draft, or a draft that is already confirmed, is a no-op.
func (uc *SelectionUseCase) Confirm(ctx context.Context, id string) (*domain.Session, error) {
	var confirmedDraft string

	session, err := uc.sessions.Mutate(ctx, id, func(s *domain.Session) error {
		draft := s.Selection.DraftAddress
		if draft == "" || draft == s.Selection.ConfirmedAddress {
			return nil
		}
		s.Selection.ConfirmedAddress = draft
		s.Selection.Phase = domain.PhaseConfirmed
		confirmedDraft = draft
		return nil
	})
	if err != nil {
		return nil, err
	}

	if confirmedDraft != "" {
		go uc.refreshPosition(id, confirmedDraft)
	}

	return session, nil
}

// Markers renders the map view model: one marker per directory entry plus a
// generic marker at the raw position when it coincides with no entry exactly.
func (uc *SelectionUseCase) Markers(ctx context.Context, id string) (*dto.MarkersResponse, error) {
	session, err := uc.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sel := session.Selection
	records := uc.resolver.nmiDir.All()
	markers := make([]dto.Marker, 0, len(records)+1)

	coincides := false
	for _, r := range records {
		m := dto.Marker{
			Type:     dto.MarkerTypeNMI,
			NMI:      r.Identifier,
			Lat:      r.Lat,
			Lng:      r.Lng,
			Selected: r.Identifier == sel.ResolvedNMI && sel.ResolvedNMI != "",
		}
		if sel.Position != nil {
			m.DistanceKm = utils.HaversineDistance(sel.Position.Lat, sel.Position.Lng, r.Lat, r.Lng)
			if r.Lat == sel.Position.Lat && r.Lng == sel.Position.Lng {
				coincides = true
			}
		}
		markers = append(markers, m)
	}

	if sel.Position != nil && !coincides {
		markers = append(markers, dto.Marker{
			Type: dto.MarkerTypePosition,
			Lat:  sel.Position.Lat,
			Lng:  sel.Position.Lng,
		})
	}

	return &dto.MarkersResponse{Markers: markers}, nil
}

// completeSelection finishes a selection after it entered loading: nearest
// record, then a reverse-geocoded draft address for the raw position. It
// applies its result whenever it lands; a newer selection that finished first
// simply gets overwritten (accepted last-write-wins race).
func (uc *SelectionUseCase) completeSelection(id string, pos domain.Point) {
	ctx, cancel := context.WithTimeout(context.Background(), asyncOpTimeout)
	defer cancel()

	record := uc.resolver.Resolve(pos.Lat, pos.Lng)
	if record == nil {
		uc.applySelection(ctx, id, func(s *domain.Selection) {
			s.Phase = domain.PhaseEmpty
			s.IsLoading = false
		})
		return
	}

	address, err := uc.reverseGeocode(ctx, pos)
	if err != nil {
		uc.logger.Warn("Reverse geocode failed",
			zap.String("session_id", id),
			zap.Error(err))
		uc.applySelection(ctx, id, func(s *domain.Selection) {
			s.Phase = domain.PhaseFailed
			s.ErrorMessage = msgSelectionFailed
			s.IsLoading = false
		})
		return
	}

	uc.applySelection(ctx, id, func(s *domain.Selection) {
		s.Phase = domain.PhaseResolved
		s.ResolvedNMI = record.Identifier
		s.DraftAddress = address
		s.IsLoading = false
	})
}

// refreshPosition is the best-effort display refresh after a confirm.
// Failures are swallowed: the position simply does not move.
func (uc *SelectionUseCase) refreshPosition(id, address string) {
	ctx, cancel := context.WithTimeout(context.Background(), asyncOpTimeout)
	defer cancel()

	pos, err := uc.geocoder.ForwardGeocode(ctx, address)
	if err != nil || pos == nil {
		uc.logger.Debug("Forward geocode after confirm skipped",
			zap.String("session_id", id),
			zap.Error(err))
		return
	}

	uc.applySelection(ctx, id, func(s *domain.Selection) {
		s.Position = &domain.Point{Lat: pos.Lat, Lng: pos.Lng}
	})
}

func (uc *SelectionUseCase) applySelection(ctx context.Context, id string, fn func(*domain.Selection)) {
	if _, err := uc.sessions.Mutate(ctx, id, func(s *domain.Session) error {
		fn(&s.Selection)
		return nil
	}); err != nil {
		// Session expired or was deleted while the operation was in flight.
		uc.logger.Debug("Dropping stale selection result", zap.String("session_id", id))
	}
}

func (uc *SelectionUseCase) reverseGeocode(ctx context.Context, pos domain.Point) (string, error) {
	key := fmt.Sprintf("revgeo:%.6f:%.6f", pos.Lat, pos.Lng)

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, key); err == nil && data != nil {
			return string(data), nil
		}
	}

	address, err := uc.geocoder.ReverseGeocode(ctx, pos.Lat, pos.Lng)
	if err != nil {
		return "", err
	}

	if uc.cache != nil && address != "" {
		// Best effort; the cache repository logs its own failures.
		_ = uc.cache.Set(ctx, key, []byte(address), uc.cacheTTL)
	}

	return address, nil
}

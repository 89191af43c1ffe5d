package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ivangsquared/poc-address-finder/internal/domain"
	"github.com/ivangsquared/poc-address-finder/internal/domain/repository"
	apperrors "github.com/ivangsquared/poc-address-finder/internal/pkg/errors"
	"github.com/ivangsquared/poc-address-finder/internal/repository/memory"
	"github.com/ivangsquared/poc-address-finder/internal/usecase"
)

const (
	waitFor = 2 * time.Second
	tick    = 10 * time.Millisecond
)

// MockGeocoder is a mock of repository.Geocoder
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	args := m.Called(ctx, lat, lng)
	return args.String(0), args.Error(1)
}

func (m *MockGeocoder) ForwardGeocode(ctx context.Context, address string) (*domain.Point, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Point), args.Error(1)
}

// MockLocator is a mock of repository.Locator
type MockLocator struct {
	mock.Mock
}

func (m *MockLocator) CurrentPosition(ctx context.Context) (*domain.Point, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Point), args.Error(1)
}

type selectionFixture struct {
	uc       *usecase.SelectionUseCase
	store    *memory.SessionStore
	geocoder *MockGeocoder
	locator  *MockLocator
}

func newSelectionFixture(t *testing.T, records []domain.NMIRecord, locator *MockLocator) *selectionFixture {
	t.Helper()

	store := memory.NewSessionStore(time.Hour, zap.NewNop())
	t.Cleanup(store.Close)

	geocoder := &MockGeocoder{}
	resolver := usecase.NewResolverUseCase(memory.NewNMIDirectory(records))

	// A nil *MockLocator must become a nil interface, not an interface
	// holding a nil pointer.
	var loc repository.Locator
	if locator != nil {
		loc = locator
	}

	uc := usecase.NewSelectionUseCase(
		store,
		resolver,
		geocoder,
		loc,
		nil, // no cache in unit tests
		time.Hour,
		10*time.Second,
		zap.NewNop(),
	)

	return &selectionFixture{uc: uc, store: store, geocoder: geocoder, locator: locator}
}

func (f *selectionFixture) newSession(t *testing.T) string {
	t.Helper()
	session, err := f.uc.CreateSession(context.Background())
	require.NoError(t, err)
	return session.ID
}

func (f *selectionFixture) waitForPhase(t *testing.T, id string, phase domain.SelectionPhase) *domain.Session {
	t.Helper()
	assert.Eventually(t, func() bool {
		s, err := f.uc.GetSession(context.Background(), id)
		return err == nil && s.Selection.Phase == phase
	}, waitFor, tick)

	s, err := f.uc.GetSession(context.Background(), id)
	require.NoError(t, err)
	return s
}

func TestSelectionUseCase_SelectPoint(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves nearest record and reverse geocoded draft", func(t *testing.T) {
		f := newSelectionFixture(t, memory.SeedNMIRecords(), nil)
		id := f.newSession(t)

		f.geocoder.On("ReverseGeocode", mock.Anything, -33.87, 151.21).
			Return("1 George Street, Sydney NSW 2000, Australia", nil)

		snapshot, err := f.uc.SelectPoint(ctx, id, -33.87, 151.21)
		require.NoError(t, err)

		assert.Equal(t, domain.PhaseLoading, snapshot.Selection.Phase)
		assert.True(t, snapshot.Selection.IsLoading)
		require.NotNil(t, snapshot.Selection.Position)
		assert.Equal(t, -33.87, snapshot.Selection.Position.Lat)

		resolved := f.waitForPhase(t, id, domain.PhaseResolved)
		assert.Equal(t, "NMI001", resolved.Selection.ResolvedNMI)
		assert.Equal(t, "1 George Street, Sydney NSW 2000, Australia", resolved.Selection.DraftAddress)
		assert.False(t, resolved.Selection.IsLoading)
		assert.Empty(t, resolved.Selection.ErrorMessage)
	})

	t.Run("empty directory ends in empty phase without error", func(t *testing.T) {
		f := newSelectionFixture(t, nil, nil)
		id := f.newSession(t)

		_, err := f.uc.SelectPoint(ctx, id, -33.87, 151.21)
		require.NoError(t, err)

		empty := f.waitForPhase(t, id, domain.PhaseEmpty)
		assert.Empty(t, empty.Selection.ResolvedNMI)
		assert.Empty(t, empty.Selection.ErrorMessage)
		assert.False(t, empty.Selection.IsLoading)
	})

	t.Run("geocoder failure surfaces the fixed error message", func(t *testing.T) {
		f := newSelectionFixture(t, memory.SeedNMIRecords(), nil)
		id := f.newSession(t)

		f.geocoder.On("ReverseGeocode", mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("connection refused"))

		_, err := f.uc.SelectPoint(ctx, id, -33.87, 151.21)
		require.NoError(t, err)

		failed := f.waitForPhase(t, id, domain.PhaseFailed)
		assert.Equal(t,
			"Unable to resolve an address for the selected location. Please try again.",
			failed.Selection.ErrorMessage)
		assert.Empty(t, failed.Selection.ResolvedNMI)
		assert.False(t, failed.Selection.IsLoading)
	})

	t.Run("unknown session", func(t *testing.T) {
		f := newSelectionFixture(t, memory.SeedNMIRecords(), nil)

		_, err := f.uc.SelectPoint(ctx, "nope", -33.87, 151.21)
		assert.Equal(t, apperrors.ErrSessionNotFound, err)
	})

	t.Run("out of range coordinates", func(t *testing.T) {
		f := newSelectionFixture(t, memory.SeedNMIRecords(), nil)
		id := f.newSession(t)

		_, err := f.uc.SelectPoint(ctx, id, 120, 200)
		assert.Equal(t, apperrors.ErrInvalidCoordinates, err)
	})
}

func TestSelectionUseCase_EditAndConfirm(t *testing.T) {
	ctx := context.Background()

	resolve := func(t *testing.T, f *selectionFixture, id string) {
		t.Helper()
		f.geocoder.On("ReverseGeocode", mock.Anything, mock.Anything, mock.Anything).
			Return("resolved address", nil).Once()
		_, err := f.uc.SelectPoint(ctx, id, -33.87, 151.21)
		require.NoError(t, err)
		f.waitForPhase(t, id, domain.PhaseResolved)
	}

	t.Run("edit overwrites the draft verbatim", func(t *testing.T) {
		f := newSelectionFixture(t, memory.SeedNMIRecords(), nil)
		id := f.newSession(t)
		resolve(t, f, id)

		session, err := f.uc.EditAddress(ctx, id, "  edited, with spaces  ")
		require.NoError(t, err)
		assert.Equal(t, "  edited, with spaces  ", session.Selection.DraftAddress)
		assert.Equal(t, domain.PhaseResolved, session.Selection.Phase)
		assert.Equal(t, "NMI001", session.Selection.ResolvedNMI)
	})

	t.Run("confirm copies draft and refreshes position best effort", func(t *testing.T) {
		f := newSelectionFixture(t, memory.SeedNMIRecords(), nil)
		id := f.newSession(t)
		resolve(t, f, id)

		f.geocoder.On("ForwardGeocode", mock.Anything, "resolved address").
			Return(&domain.Point{Lat: -33.8, Lng: 151.2}, nil)

		session, err := f.uc.Confirm(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.PhaseConfirmed, session.Selection.Phase)
		assert.Equal(t, "resolved address", session.Selection.ConfirmedAddress)

		assert.Eventually(t, func() bool {
			s, err := f.uc.GetSession(ctx, id)
			return err == nil && s.Selection.Position != nil && s.Selection.Position.Lat == -33.8
		}, waitFor, tick)
	})

	t.Run("forward geocode failure is swallowed", func(t *testing.T) {
		f := newSelectionFixture(t, memory.SeedNMIRecords(), nil)
		id := f.newSession(t)
		resolve(t, f, id)

		f.geocoder.On("ForwardGeocode", mock.Anything, "resolved address").
			Return(nil, errors.New("boom"))

		session, err := f.uc.Confirm(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "resolved address", session.Selection.ConfirmedAddress)

		// Position stays at the originally selected point, no error surfaces.
		time.Sleep(50 * time.Millisecond)
		s, err := f.uc.GetSession(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, -33.87, s.Selection.Position.Lat)
		assert.Empty(t, s.Selection.ErrorMessage)
	})

	t.Run("confirm is a no-op on empty draft", func(t *testing.T) {
		f := newSelectionFixture(t, memory.SeedNMIRecords(), nil)
		id := f.newSession(t)

		session, err := f.uc.Confirm(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, session.Selection.ConfirmedAddress)
		assert.Equal(t, domain.PhaseIdle, session.Selection.Phase)
		f.geocoder.AssertNotCalled(t, "ForwardGeocode", mock.Anything, mock.Anything)
	})

	t.Run("confirm is a no-op when draft equals confirmed", func(t *testing.T) {
		f := newSelectionFixture(t, memory.SeedNMIRecords(), nil)
		id := f.newSession(t)
		resolve(t, f, id)

		called := make(chan struct{}, 1)
		f.geocoder.On("ForwardGeocode", mock.Anything, "resolved address").
			Run(func(mock.Arguments) { called <- struct{}{} }).
			Return(nil, nil).Once()

		_, err := f.uc.Confirm(ctx, id)
		require.NoError(t, err)
		<-called

		_, err = f.uc.Confirm(ctx, id)
		require.NoError(t, err)

		time.Sleep(50 * time.Millisecond)
		f.geocoder.AssertNumberOfCalls(t, "ForwardGeocode", 1)
	})

	t.Run("new selection clears confirmed address before resolution completes", func(t *testing.T) {
		f := newSelectionFixture(t, memory.SeedNMIRecords(), nil)
		id := f.newSession(t)
		resolve(t, f, id)

		f.geocoder.On("ForwardGeocode", mock.Anything, "resolved address").
			Return(nil, nil).Once()
		_, err := f.uc.Confirm(ctx, id)
		require.NoError(t, err)

		// Second resolution blocks until released, so the snapshot below is
		// taken while the new selection is still loading.
		release := make(chan struct{})
		f.geocoder.On("ReverseGeocode", mock.Anything, mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { <-release }).
			Return("melbourne address", nil).Once()

		snapshot, err := f.uc.SelectPoint(ctx, id, -37.81, 144.96)
		require.NoError(t, err)
		assert.Empty(t, snapshot.Selection.ConfirmedAddress)
		assert.Empty(t, snapshot.Selection.ResolvedNMI)
		assert.Empty(t, snapshot.Selection.DraftAddress)
		assert.True(t, snapshot.Selection.IsLoading)

		close(release)
		resolved := f.waitForPhase(t, id, domain.PhaseResolved)
		assert.Equal(t, "NMI002", resolved.Selection.ResolvedNMI)
		assert.Empty(t, resolved.Selection.ConfirmedAddress)
	})
}

func TestSelectionUseCase_UseCurrentLocation(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported environment sets message without loading", func(t *testing.T) {
		f := newSelectionFixture(t, memory.SeedNMIRecords(), nil)
		id := f.newSession(t)

		session, err := f.uc.UseCurrentLocation(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Geolocation is not supported in this environment.", session.Selection.ErrorMessage)
		assert.False(t, session.Selection.IsLoading)
		assert.Equal(t, domain.PhaseIdle, session.Selection.Phase)
	})

	t.Run("successful fix feeds the selection path", func(t *testing.T) {
		locator := &MockLocator{}
		f := newSelectionFixture(t, memory.SeedNMIRecords(), locator)
		id := f.newSession(t)

		locator.On("CurrentPosition", mock.Anything).
			Return(&domain.Point{Lat: -27.47, Lng: 153.02}, nil)
		f.geocoder.On("ReverseGeocode", mock.Anything, -27.47, 153.02).
			Return("brisbane address", nil)

		session, err := f.uc.UseCurrentLocation(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.PhaseLoading, session.Selection.Phase)

		resolved := f.waitForPhase(t, id, domain.PhaseResolved)
		assert.Equal(t, "NMI003", resolved.Selection.ResolvedNMI)
		assert.Equal(t, "brisbane address", resolved.Selection.DraftAddress)
	})

	t.Run("denied or timed out fix sets message without resolving", func(t *testing.T) {
		locator := &MockLocator{}
		f := newSelectionFixture(t, memory.SeedNMIRecords(), locator)
		id := f.newSession(t)

		locator.On("CurrentPosition", mock.Anything).
			Return(nil, errors.New("denied"))

		session, err := f.uc.UseCurrentLocation(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Unable to determine your current location.", session.Selection.ErrorMessage)
		assert.False(t, session.Selection.IsLoading)
		assert.Empty(t, session.Selection.ResolvedNMI)
	})
}

func TestSelectionUseCase_Markers(t *testing.T) {
	ctx := context.Background()

	t.Run("one marker per record plus position marker", func(t *testing.T) {
		f := newSelectionFixture(t, memory.SeedNMIRecords(), nil)
		id := f.newSession(t)

		f.geocoder.On("ReverseGeocode", mock.Anything, mock.Anything, mock.Anything).
			Return("sydney address", nil)
		_, err := f.uc.SelectPoint(ctx, id, -33.87, 151.21)
		require.NoError(t, err)
		f.waitForPhase(t, id, domain.PhaseResolved)

		result, err := f.uc.Markers(ctx, id)
		require.NoError(t, err)
		require.Len(t, result.Markers, 4)

		var selected, position int
		for _, m := range result.Markers {
			if m.Selected {
				selected++
				assert.Equal(t, "NMI001", m.NMI)
			}
			if m.Type == "position" {
				position++
				assert.Equal(t, -33.87, m.Lat)
				assert.Equal(t, 151.21, m.Lng)
			}
		}
		assert.Equal(t, 1, selected)
		assert.Equal(t, 1, position)
	})

	t.Run("no position marker when selection coincides with a record", func(t *testing.T) {
		f := newSelectionFixture(t, memory.SeedNMIRecords(), nil)
		id := f.newSession(t)

		f.geocoder.On("ReverseGeocode", mock.Anything, mock.Anything, mock.Anything).
			Return("melbourne address", nil)
		_, err := f.uc.SelectPoint(ctx, id, -37.8136, 144.9631)
		require.NoError(t, err)
		f.waitForPhase(t, id, domain.PhaseResolved)

		result, err := f.uc.Markers(ctx, id)
		require.NoError(t, err)
		assert.Len(t, result.Markers, 3)
	})

	t.Run("no markers beyond the directory before any selection", func(t *testing.T) {
		f := newSelectionFixture(t, memory.SeedNMIRecords(), nil)
		id := f.newSession(t)

		result, err := f.uc.Markers(ctx, id)
		require.NoError(t, err)
		assert.Len(t, result.Markers, 3)
		for _, m := range result.Markers {
			assert.False(t, m.Selected)
		}
	})
}

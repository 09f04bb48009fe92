package mapview

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourist-map/internal/domain"
)

func TestGeolocation_PrimaryPositionRendersUserMarker(t *testing.T) {
	src := &fakePositions{}
	m := newTestMap(t, src, 0)
	m.mount(t)

	assert.Equal(t, GeoRequesting, m.Geolocation().State())

	src.emit(domain.LatLng{Lat: -12.05, Lng: -77.04})
	m.Loop().RunPending()

	users := m.surface.live(MarkerUser)
	require.Len(t, users, 1)
	assert.Equal(t, domain.LatLng{Lat: -12.05, Lng: -77.04}, users[0].anchor)
	assert.Equal(t, GeoResolved, m.Geolocation().State())

	// устройство сдвинулось - тот же маркер
	src.emit(domain.LatLng{Lat: -12.06, Lng: -77.05})
	m.Loop().RunPending()

	users = m.surface.live(MarkerUser)
	require.Len(t, users, 1)
	assert.Equal(t, domain.LatLng{Lat: -12.06, Lng: -77.05}, users[0].anchor)
	pos, ok := m.Geolocation().Position()
	require.True(t, ok)
	assert.Equal(t, domain.LatLng{Lat: -12.06, Lng: -77.05}, pos)
}

func TestGeolocation_PermissionDeniedThenLocateRetries(t *testing.T) {
	src := &fakePositions{
		current: func(ctx context.Context) (domain.LatLng, error) {
			return domain.LatLng{}, &PositionError{Code: PositionDenied, Message: "User denied Geolocation"}
		},
	}
	m := newTestMap(t, src, time.Second)
	m.mount(t)
	require.Equal(t, 1, src.watchCount())

	src.fail(&PositionError{Code: PositionDenied, Message: "User denied Geolocation"})
	m.runUntil(t, func() bool { return m.Geolocation().State() == GeoDenied })

	n, ok := m.notices.last()
	require.True(t, ok)
	assert.Equal(t, CodeGeoPermissionDenied, n.Code)
	assert.Equal(t, NoticeError, n.Kind)
	// карта продолжает работать
	assert.Equal(t, 2, m.Registry().Len())

	m.Locate()
	m.Loop().RunPending()

	assert.Equal(t, 2, src.watchCount())
	assert.Equal(t, GeoRequesting, m.Geolocation().State())
}

func TestGeolocation_FallbackMarkerReplacedByPrimary(t *testing.T) {
	fallbackAt := domain.LatLng{Lat: -13.5319, Lng: -71.9675}
	src := &fakePositions{
		current: func(ctx context.Context) (domain.LatLng, error) {
			return fallbackAt, nil
		},
	}
	m := newTestMap(t, src, time.Second)
	m.mount(t)

	src.fail(&PositionError{Code: PositionTimeout})
	m.runUntil(t, func() bool { return m.Geolocation().State() == GeoResolved })

	fallbacks := m.surface.live(MarkerFallback)
	require.Len(t, fallbacks, 1)
	assert.Equal(t, fallbackAt, fallbacks[0].anchor)
	require.NotEmpty(t, m.surface.flies)
	assert.Equal(t, fallbackAt, m.surface.flies[len(m.surface.flies)-1].center)

	src.emit(domain.LatLng{Lat: -13.52, Lng: -71.96})
	m.Loop().RunPending()

	assert.Empty(t, m.surface.live(MarkerFallback))
	assert.Len(t, m.surface.live(MarkerUser), 1)
}

func TestGeolocation_RepeatedWatchErrorsIssueSingleRequest(t *testing.T) {
	src := &fakePositions{
		current: func(ctx context.Context) (domain.LatLng, error) {
			return domain.LatLng{}, &PositionError{Code: PositionDenied}
		},
	}
	m := newTestMap(t, src, time.Second)
	m.mount(t)

	denied := &PositionError{Code: PositionDenied}
	src.fail(denied)
	m.runUntil(t, func() bool { return m.Geolocation().State() == GeoDenied })

	src.fail(denied)
	src.fail(denied)
	m.Loop().RunPending()

	assert.Equal(t, 1, src.currentCount())
	assert.Equal(t, []string{CodeGeoPermissionDenied}, m.notices.codes())

	// новое отслеживание - новый разовый запрос
	m.Locate()
	m.Loop().RunPending()
	src.fail(denied)
	m.runUntil(t, func() bool { return src.currentCount() == 2 && len(m.notices.codes()) == 2 })
}

func TestGeolocation_WatchErrorAfterPrimaryFixIgnored(t *testing.T) {
	src := &fakePositions{
		current: func(ctx context.Context) (domain.LatLng, error) {
			return domain.LatLng{Lat: -12.0, Lng: -77.0}, nil
		},
	}
	m := newTestMap(t, src, time.Second)
	m.mount(t)

	src.emit(domain.LatLng{Lat: -12.05, Lng: -77.04})
	m.Loop().RunPending()

	src.fail(&PositionError{Code: PositionTimeout})
	m.Loop().RunPending()

	assert.Equal(t, 0, src.currentCount())
	assert.Equal(t, GeoResolved, m.Geolocation().State())
	assert.Len(t, m.surface.live(MarkerUser), 1)
	assert.Empty(t, m.surface.live(MarkerFallback))
	assert.Empty(t, m.notices.codes())
}

func TestGeolocation_HangingRequestTimesOut(t *testing.T) {
	hang := make(chan struct{})
	t.Cleanup(func() { close(hang) })

	src := &fakePositions{
		current: func(ctx context.Context) (domain.LatLng, error) {
			<-hang
			return domain.LatLng{}, nil
		},
	}
	m := newTestMap(t, src, 30*time.Millisecond)
	m.mount(t)

	src.fail(errors.New("watch failed"))
	m.runUntil(t, func() bool { return m.Geolocation().State() == GeoTimedOut })

	n, ok := m.notices.last()
	require.True(t, ok)
	assert.Equal(t, CodeGeoTimeout, n.Code)
	assert.Empty(t, m.surface.live(MarkerFallback))
}

func TestGeolocation_UnavailableNotice(t *testing.T) {
	src := &fakePositions{}
	m := newTestMap(t, src, time.Second)
	m.mount(t)

	src.fail(&PositionError{Code: PositionUnavailable})
	m.runUntil(t, func() bool { return m.Geolocation().State() == GeoUnavailable })

	assert.Contains(t, m.notices.codes(), CodeGeoUnavailable)
}

func TestGeolocation_StaleWatchCallbacksIgnored(t *testing.T) {
	src := &fakePositions{}
	m := newTestMap(t, src, time.Second)
	m.mount(t)

	staleEmit := src.onPos

	m.Locate()
	m.Loop().RunPending()

	staleEmit(domain.LatLng{Lat: 1, Lng: 1})
	m.Loop().RunPending()

	assert.Empty(t, m.surface.live(MarkerUser))
	assert.Equal(t, GeoRequesting, m.Geolocation().State())
}

func TestPositionErrorCode(t *testing.T) {
	assert.Equal(t, PositionDenied, positionErrorCode(&PositionError{Code: PositionDenied}))
	assert.Equal(t, PositionTimeout, positionErrorCode(context.DeadlineExceeded))
	assert.Equal(t, PositionUnavailable, positionErrorCode(errors.New("boom")))
}

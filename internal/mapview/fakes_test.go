package mapview

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/tourist-map/internal/domain"
)

type fakeElement struct {
	style   MarkerStyle
	anchor  domain.LatLng
	open    bool
	opened  int
	content PopupContent
	removed bool
}

func (e *fakeElement) Anchor() domain.LatLng { return e.anchor }

func (e *fakeElement) SetAnchor(at domain.LatLng) { e.anchor = at }

func (e *fakeElement) OpenPopup(content PopupContent) {
	e.open = true
	e.content = content
	e.opened++
}

func (e *fakeElement) ClosePopup() { e.open = false }

func (e *fakeElement) Remove() {
	e.removed = true
	e.open = false
}

type cameraMove struct {
	center domain.LatLng
	zoom   float64
}

type fakeSurface struct {
	elements []*fakeElement
	fits     []domain.BoundingBox
	eases    []cameraMove
	flies    []cameraMove
	camera   ViewportState
}

func (s *fakeSurface) CreateMarker(style MarkerStyle, at domain.LatLng) Element {
	e := &fakeElement{style: style, anchor: at}
	s.elements = append(s.elements, e)
	return e
}

func (s *fakeSurface) FitBounds(box domain.BoundingBox, padding int) {
	s.fits = append(s.fits, box)
	s.camera = ViewportState{Center: box.Center(), Bounds: &box}
}

func (s *fakeSurface) EaseTo(center domain.LatLng, zoom float64) {
	s.eases = append(s.eases, cameraMove{center: center, zoom: zoom})
	s.camera = ViewportState{Center: center, Zoom: zoom}
}

func (s *fakeSurface) FlyTo(center domain.LatLng, zoom float64) {
	s.flies = append(s.flies, cameraMove{center: center, zoom: zoom})
	s.camera = ViewportState{Center: center, Zoom: zoom}
}

func (s *fakeSurface) Camera() ViewportState { return s.camera }

// live - неудалённые элементы заданного вида
func (s *fakeSurface) live(kind MarkerKind) []*fakeElement {
	var out []*fakeElement
	for _, e := range s.elements {
		if !e.removed && e.style.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

type fakeQuerier struct {
	mu      sync.Mutex
	regions []domain.Region
	places  map[string][]domain.Place
	nearby  []domain.Place
	err     error
	gates   map[string]chan struct{}
	calls   []string
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{
		places: make(map[string][]domain.Place),
		gates:  make(map[string]chan struct{}),
	}
}

func (q *fakeQuerier) ListRegions(ctx context.Context) ([]domain.Region, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.calls = append(q.calls, "regions")
	return q.regions, q.err
}

// ListPlacesInRegion ждёт открытия шлюза, контекст намеренно игнорируется,
// чтобы устаревший ответ всё равно дошёл до карты
func (q *fakeQuerier) ListPlacesInRegion(ctx context.Context, citySlug string) ([]domain.Place, error) {
	q.mu.Lock()
	q.calls = append(q.calls, "city:"+citySlug)
	gate := q.gates[citySlug]
	q.mu.Unlock()

	if gate != nil {
		<-gate
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	return q.places[citySlug], q.err
}

func (q *fakeQuerier) ListNearby(ctx context.Context, center domain.LatLng, radiusKm float64) ([]domain.Place, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.calls = append(q.calls, "nearby")
	return q.nearby, q.err
}

func (q *fakeQuerier) setErr(err error) {
	q.mu.Lock()
	q.err = err
	q.mu.Unlock()
}

func (q *fakeQuerier) callList() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.calls...)
}

type noticeRecorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *noticeRecorder) Notify(n Notice) {
	r.mu.Lock()
	r.notices = append(r.notices, n)
	r.mu.Unlock()
}

func (r *noticeRecorder) codes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.notices))
	for _, n := range r.notices {
		out = append(out, n.Code)
	}
	return out
}

func (r *noticeRecorder) last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

type fakePositions struct {
	mu      sync.Mutex
	watches int
	stops   int
	oneShot int
	onPos   func(domain.LatLng)
	onErr   func(error)
	current func(ctx context.Context) (domain.LatLng, error)
}

func (s *fakePositions) Watch(onPosition func(domain.LatLng), onError func(error)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watches++
	s.onPos, s.onErr = onPosition, onError
	return func() {
		s.mu.Lock()
		s.stops++
		s.mu.Unlock()
	}
}

func (s *fakePositions) Current(ctx context.Context) (domain.LatLng, error) {
	s.mu.Lock()
	s.oneShot++
	fn := s.current
	s.mu.Unlock()
	if fn == nil {
		return domain.LatLng{}, &PositionError{Code: PositionUnavailable}
	}
	return fn(ctx)
}

func (s *fakePositions) emit(p domain.LatLng) {
	s.mu.Lock()
	fn := s.onPos
	s.mu.Unlock()
	fn(p)
}

func (s *fakePositions) fail(err error) {
	s.mu.Lock()
	fn := s.onErr
	s.mu.Unlock()
	fn(err)
}

func (s *fakePositions) currentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.oneShot
}

func (s *fakePositions) watchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watches
}

func testRegion(slug string, count int, center domain.LatLng) domain.Region {
	return domain.Region{ID: uuid.New(), Name: slug, Slug: slug, Center: center, PlaceCount: count}
}

func testPlace(slug, city, category string, at *domain.LatLng) domain.Place {
	return domain.Place{
		ID:       uuid.New(),
		Name:     slug,
		Slug:     slug,
		Category: category,
		Location: at,
		Status:   domain.PlaceStatusPublished,
		City:     domain.CityRef{Slug: city, Name: city},
	}
}

func ll(lat, lng float64) *domain.LatLng {
	return &domain.LatLng{Lat: lat, Lng: lng}
}

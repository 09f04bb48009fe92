package mapapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"github.com/tourist-map/internal/config"
	"github.com/tourist-map/internal/domain"
	"github.com/tourist-map/internal/pkg/errors"
	"github.com/tourist-map/internal/usecase/dto"
	"go.uber.org/zap"
)

const mapPath = "/api/v1/places/map"

// StatusError - ответ сервера с кодом, отличным от 200
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("map API error: status %d, body: %s", e.StatusCode, e.Body)
}

// Client - клиент эндпоинта карты для движка карты
type Client struct {
	httpClient *http.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     *zap.Logger
}

// NewClient создает клиент; все вызовы идут через circuit breaker,
// чтобы при недоступном сервере карта сразу получала ошибку
func NewClient(cfg *config.MapAPIConfig, logger *zap.Logger) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
	}

	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "map-api",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			// ошибки запроса не говорят о недоступности сервера
			var statusErr *StatusError
			return stderrors.As(err, &statusErr) && statusErr.StatusCode < http.StatusInternalServerError
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Map API circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return c
}

// ListRegions - GET /places/map?mode=regions
func (c *Client) ListRegions(ctx context.Context) ([]domain.Region, error) {
	var items []dto.RegionItem
	if err := c.get(ctx, url.Values{"mode": {"regions"}}, &items); err != nil {
		return nil, err
	}

	regions := make([]domain.Region, 0, len(items))
	for _, item := range items {
		regions = append(regions, item.ToRegion())
	}
	return regions, nil
}

// ListPlacesInRegion - GET /places/map?city=<slug>
func (c *Client) ListPlacesInRegion(ctx context.Context, citySlug string) ([]domain.Place, error) {
	var items []dto.PlaceItem
	if err := c.get(ctx, url.Values{"city": {citySlug}}, &items); err != nil {
		return nil, err
	}
	return toPlaces(items), nil
}

// ListNearby - GET /places/map?lat=&lng=&radius=
func (c *Client) ListNearby(ctx context.Context, center domain.LatLng, radiusKm float64) ([]domain.Place, error) {
	params := url.Values{
		"lat":    {strconv.FormatFloat(center.Lat, 'f', -1, 64)},
		"lng":    {strconv.FormatFloat(center.Lng, 'f', -1, 64)},
		"radius": {strconv.FormatFloat(radiusKm, 'f', -1, 64)},
	}

	var items []dto.PlaceItem
	if err := c.get(ctx, params, &items); err != nil {
		return nil, err
	}
	return toPlaces(items), nil
}

// State - состояние circuit breaker для диагностики
func (c *Client) State() string {
	return c.breaker.State().String()
}

func (c *Client) get(ctx context.Context, params url.Values, out interface{}) error {
	endpoint := c.baseURL + mapPath + "?" + params.Encode()
	start := time.Now()

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, endpoint)
	})
	if err != nil {
		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			return errors.ErrUpstreamUnavailable.Wrap(err)
		}
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error("Failed to decode map API response", zap.Error(err))
		return fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("Map API call successful",
		zap.String("query", params.Encode()),
		zap.Duration("duration", time.Since(start)))

	return nil
}

func (c *Client) do(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute map API request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Map API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

func toPlaces(items []dto.PlaceItem) []domain.Place {
	places := make([]domain.Place, 0, len(items))
	for _, item := range items {
		places = append(places, item.ToPlace())
	}
	return places
}

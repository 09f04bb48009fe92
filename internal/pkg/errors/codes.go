package errors

import "net/http"

// Коды ошибок API карты и движка
var (
	ErrInvalidCoordinates = New("INVALID_COORDINATES", "Latitude must be in [-90, 90] and longitude in [-180, 180]", http.StatusBadRequest)
	ErrInvalidRadius      = New("INVALID_RADIUS", "Radius must be a positive number of kilometres", http.StatusBadRequest)
	ErrInvalidRequest     = New("INVALID_REQUEST", "Invalid map query", http.StatusBadRequest)
	ErrRateLimited        = New("RATE_LIMITED", "Too many map requests, please slow down", http.StatusTooManyRequests)

	// Ошибки хранилищ: клиент карты показывает их как сбой загрузки
	ErrDatabaseError = New("DATABASE_ERROR", "Places storage is unavailable", http.StatusInternalServerError)
	ErrCacheError    = New("CACHE_ERROR", "Map cache is unavailable", http.StatusInternalServerError)

	ErrUpstreamUnavailable = New("UPSTREAM_UNAVAILABLE", "Map service is temporarily unavailable", http.StatusServiceUnavailable)
	ErrInternalServer      = New("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
)

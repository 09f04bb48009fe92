package invalidation

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/tourist-map/internal/domain"
	"github.com/tourist-map/internal/domain/repository"
	"github.com/tourist-map/internal/worker"
	"go.uber.org/zap"
)

const (
	maxBatchSize = 50                     // максимум сообщений за раз
	retryBackoff = 200 * time.Millisecond // базовая пауза между попытками
	errorBackoff = time.Second            // пауза при ошибке чтения
)

// CityInvalidator сбрасывает кеш карты региона
type CityInvalidator interface {
	InvalidateCity(ctx context.Context, citySlug string) error
}

// CacheInvalidationWorker сбрасывает кеш карты по событиям изменения мест
type CacheInvalidationWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	invalidator  CityInvalidator
	consumerName string
	readTimeout  time.Duration
	maxRetries   int
}

// NewCacheInvalidationWorker создает новый CacheInvalidationWorker
func NewCacheInvalidationWorker(
	streamRepo repository.StreamRepository,
	invalidator CityInvalidator,
	consumerGroup string,
	readTimeout time.Duration,
	maxRetries int,
	logger *zap.Logger,
) *CacheInvalidationWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	if maxRetries < 1 {
		maxRetries = 1
	}

	return &CacheInvalidationWorker{
		BaseWorker:   worker.NewBaseWorker("map-cache-invalidation", consumerGroup, logger),
		streamRepo:   streamRepo,
		invalidator:  invalidator,
		consumerName: consumerName,
		readTimeout:  readTimeout,
		maxRetries:   maxRetries,
	}
}

// Start запускает воркер
func (w *CacheInvalidationWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting CacheInvalidationWorker",
		zap.String("stream", domain.StreamPlacesChanged),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamPlacesChanged, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	return worker.RunBatches(ctx, w.BaseWorker, w, errorBackoff)
}

// ProcessBatch читает пачку событий и сбрасывает кеш затронутых регионов.
// Возвращает количество прочитанных сообщений.
func (w *CacheInvalidationWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	// 1. Читаем пачку (блокируемся не дольше readTimeout)
	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamPlacesChanged,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
		w.readTimeout,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	// 2. Собираем уникальные регионы по всей пачке
	cities := make([]string, 0, len(messages))
	seen := make(map[string]struct{})

	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			continue
		}

		for _, city := range event.AffectedCities() {
			if _, ok := seen[city]; ok {
				continue
			}
			seen[city] = struct{}{}
			cities = append(cities, city)
		}
	}

	// 3. Сбрасываем кеш, каждый регион до maxRetries попыток
	for _, city := range cities {
		if err := w.invalidate(ctx, city); err != nil {
			// кеш всё равно истечёт по TTL
			logger.Error("Giving up cache invalidation",
				zap.String("city", city),
				zap.Int("attempts", w.maxRetries),
				zap.Error(err))
		}
	}

	// 4. ACK всех сообщений, включая битые, чтобы не застревали
	for _, msg := range messages {
		if err := w.streamRepo.AckMessage(ctx, domain.StreamPlacesChanged, w.ConsumerGroup(), msg.ID); err != nil {
			logger.Error("Failed to ack message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
		}
	}

	logger.Info("Batch processed",
		zap.Int("messages", len(messages)),
		zap.Strings("cities", cities))

	return len(messages), nil
}

func (w *CacheInvalidationWorker) invalidate(ctx context.Context, city string) error {
	var err error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if err = w.invalidator.InvalidateCity(ctx, city); err == nil {
			return nil
		}

		w.Logger().Warn("Cache invalidation failed",
			zap.String("city", city),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < w.maxRetries && !w.sleep(ctx, time.Duration(attempt)*retryBackoff) {
			return ctx.Err()
		}
	}
	return err
}

// sleep возвращает false, если контекст отменён раньше
func (w *CacheInvalidationWorker) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// parseMessage парсит сообщение из стрима в PlaceChangedEvent
func parseMessage(msg domain.StreamMessage) (*domain.PlaceChangedEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing 'data' field")
	}

	var event domain.PlaceChangedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.CitySlug == "" {
		return nil, fmt.Errorf("event %s has no city", event.EventID)
	}

	return &event, nil
}

package mapview

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Loop - последовательный цикл событий карты.
// Все изменения маркеров, попапов и камеры выполняются только внутри цикла,
// поэтому контроллеры не используют блокировки.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	logger *zap.Logger
}

func NewLoop(logger *zap.Logger) *Loop {
	return &Loop{
		wake:   make(chan struct{}, 1),
		logger: logger,
	}
}

// Post ставит задачу в очередь. Безопасно вызывать из любой горутины, не блокирует.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// RunPending выполняет все накопленные задачи (включая поставленные по ходу) и
// возвращает их количество. Не вызывать параллельно с Run.
func (l *Loop) RunPending() int {
	n := 0
	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		if len(batch) == 0 {
			return n
		}
		for _, fn := range batch {
			l.exec(fn)
			n++
		}
	}
}

// Run обрабатывает задачи до отмены контекста
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.RunPending()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// exec - паника в обработчике не должна останавливать карту
func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("Map loop task panicked", zap.Any("panic", r), zap.StackSkip("stack", 2))
		}
	}()
	fn()
}

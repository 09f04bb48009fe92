package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Worker - фоновый процесс под управлением WorkerManager
type Worker interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}

// BatchProcessor обрабатывает одну пачку сообщений и возвращает их количество
type BatchProcessor interface {
	ProcessBatch(ctx context.Context) (int, error)
}

// RunBatches крутит ProcessBatch до Stop или отмены ctx.
// После ошибки чтения ждёт backoff, ошибки из-за остановки не логируются.
func RunBatches(ctx context.Context, base *BaseWorker, p BatchProcessor, backoff time.Duration) error {
	logger := base.Logger()

	runCtx, cancel := base.StopContext(ctx)
	defer cancel()

	for {
		select {
		case <-base.StopChan():
			logger.Info("Worker stopped", zap.String("name", base.Name()))
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled", zap.String("name", base.Name()))
			return ctx.Err()
		default:
		}

		if _, err := p.ProcessBatch(runCtx); err != nil {
			if runCtx.Err() != nil {
				continue
			}
			logger.Error("Failed to process batch",
				zap.String("name", base.Name()),
				zap.Error(err))

			t := time.NewTimer(backoff)
			select {
			case <-t.C:
			case <-runCtx.Done():
				t.Stop()
			}
		}
	}
}

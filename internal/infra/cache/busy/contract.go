package busy

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trillium/massage-availability/internal/domain"
)

// Provider источник занятости и событий-контейнеров (Google Calendar)
type Provider interface {
	GetBusy(ctx context.Context, from, to time.Time) ([]domain.Interval, error)
	GetContainers(ctx context.Context, query string, from, to time.Time) ([]domain.ContainerEvent, error)
}

// Store подмножество команд Redis, используемых кэшем
// Реализуется *redis.Client
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

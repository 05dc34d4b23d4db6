package slugconfig

import (
	"context"

	"github.com/trillium/massage-availability/internal/domain"
)

// ConfigRepository интерфейс хранилища конфигураций слагов
type ConfigRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.SlugConfiguration, error)
	Upsert(ctx context.Context, config *domain.SlugConfiguration) (*domain.SlugConfiguration, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

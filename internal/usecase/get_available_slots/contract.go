package get_available_slots

import (
	"context"
	"time"

	"github.com/trillium/massage-availability/internal/domain"
	"github.com/trillium/massage-availability/internal/service/slugconfig/models"
)

// ConfigResolver получает действующую конфигурацию слага
type ConfigResolver interface {
	Resolve(ctx context.Context, req models.ResolveRequest) (*models.Resolved, error)
}

// CalendarProvider источник занятости владельца и событий-контейнеров
type CalendarProvider interface {
	GetBusy(ctx context.Context, from, to time.Time) ([]domain.Interval, error)
	GetContainers(ctx context.Context, query string, from, to time.Time) ([]domain.ContainerEvent, error)
}

// OffersObserver получает количество сгенерированных предложений (метрики)
type OffersObserver interface {
	ObserveOffers(slug string, count int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package get_available_slots

import (
	"github.com/trillium/massage-availability/internal/domain"
)

// Request модель запроса доступного времени
type Request struct {
	Slug      string               // пусто = конфигурация по умолчанию
	Overrides domain.SlugOverrides // переопределения из запроса
	StartDate string               // пусто = сегодня в часовом поясе владельца
	EndDate   string               // пусто = StartDate + range_days - 1
	Duration  *int                 // nil = DefaultDuration слага
	Multi     bool                 // предложения для всех разрешенных длительностей
	Strict    bool                 // длительность вне списка - ошибка, а не замена
}

// Response модель ответа с доступным временем
type Response struct {
	Slug      string
	StartDate string
	EndDate   string // с учетом promoEndDate
	IsExpired bool
	TimeZone  string
	Duration  int
	Durations []int
	Config    domain.SlugConfiguration

	Offers []domain.Offer
	// OffersByDuration заполняется только при Multi
	OffersByDuration map[int][]domain.Offer
}

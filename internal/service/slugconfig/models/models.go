package models

import (
	"time"

	"github.com/trillium/massage-availability/internal/domain"
)

// Request модели

// ResolveRequest запрос на получение действующей конфигурации слага
// StartDate и EndDate в формате YYYY-MM-DD в часовом поясе владельца
type ResolveRequest struct {
	Slug      string
	Overrides domain.SlugOverrides
	StartDate string
	EndDate   string
}

// UpdateSlugConfigRequest запрос на создание или обновление конфигурации слага
// Все поля опциональны - обновляются только переданные значения
type UpdateSlugConfigRequest struct {
	Title            *string     `json:"title,omitempty"`
	Location         *string     `json:"location,omitempty"`
	Pricing          map[int]int `json:"pricing,omitempty"`          // заменяется целиком
	AllowedDurations []int       `json:"allowedDurations,omitempty"` // заменяется целиком
	DefaultDuration  *int        `json:"defaultDuration,omitempty"`
	LeadTimeMinimum  *int        `json:"leadTimeMinimum,omitempty"`
	EventContainer   *string     `json:"eventContainer,omitempty"`
	PromoEndDate     *string     `json:"promoEndDate,omitempty"`
	AcceptingPayment *bool       `json:"acceptingPayment,omitempty"`
	InstantConfirm   *bool       `json:"instantConfirm,omitempty"`
	BlockingScope    *string     `json:"blockingScope,omitempty"`
}

// Response модели

// Resolved действующая конфигурация для одного запроса
type Resolved struct {
	Config domain.SlugConfiguration
	// Stored false, если слаг не найден и использована базовая конфигурация
	Stored    bool
	StartDate string
	// EndDate с учетом promoEndDate
	EndDate   string
	IsExpired bool
}

// ConfigResponse ответ с данными конфигурации слага
type ConfigResponse struct {
	Slug             string      `json:"slug"`
	Title            string      `json:"title"`
	Location         string      `json:"location,omitempty"`
	Pricing          map[int]int `json:"pricing"`
	AllowedDurations []int       `json:"allowedDurations"`
	DefaultDuration  int         `json:"defaultDuration"`
	LeadTimeMinimum  int         `json:"leadTimeMinimum"`
	EventContainer   string      `json:"eventContainer,omitempty"`
	PromoEndDate     string      `json:"promoEndDate,omitempty"`
	AcceptingPayment bool        `json:"acceptingPayment"`
	InstantConfirm   bool        `json:"instantConfirm"`
	BlockingScope    string      `json:"blockingScope"`
	Stored           bool        `json:"stored"`
	CreatedAt        *time.Time  `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time  `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.SlugConfiguration, stored bool) *ConfigResponse {
	if c == nil {
		return nil
	}

	resp := &ConfigResponse{
		Slug:             c.Slug,
		Title:            c.Title,
		Location:         c.Location,
		Pricing:          c.Pricing,
		AllowedDurations: c.AllowedDurations,
		DefaultDuration:  c.DefaultDuration,
		LeadTimeMinimum:  c.LeadTimeMinimum,
		EventContainer:   c.EventContainer,
		PromoEndDate:     c.PromoEndDate,
		AcceptingPayment: c.AcceptingPayment,
		InstantConfirm:   c.InstantConfirm,
		BlockingScope:    c.BlockingScope,
		Stored:           stored,
	}
	if resp.Pricing == nil {
		resp.Pricing = map[int]int{}
	}
	if resp.AllowedDurations == nil {
		resp.AllowedDurations = []int{}
	}
	if !c.CreatedAt.IsZero() {
		createdAt := c.CreatedAt
		resp.CreatedAt = &createdAt
	}
	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

// ToOverrides конвертирует запрос в набор переопределений domain
func (r *UpdateSlugConfigRequest) ToOverrides() domain.SlugOverrides {
	return domain.SlugOverrides{
		Title:            r.Title,
		Location:         r.Location,
		Pricing:          r.Pricing,
		AllowedDurations: r.AllowedDurations,
		DefaultDuration:  r.DefaultDuration,
		LeadTimeMinimum:  r.LeadTimeMinimum,
		EventContainer:   r.EventContainer,
		PromoEndDate:     r.PromoEndDate,
		AcceptingPayment: r.AcceptingPayment,
		InstantConfirm:   r.InstantConfirm,
		BlockingScope:    r.BlockingScope,
	}
}

// ApplyToConfig применяет обновления к существующей конфигурации
// Обновляются только непустые (not nil) поля из request
func (r *UpdateSlugConfigRequest) ApplyToConfig(config *domain.SlugConfiguration) {
	*config = config.WithOverrides(r.ToOverrides())
}

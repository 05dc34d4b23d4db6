package slugconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/trillium/massage-availability/internal/domain"
	slugconfigRepo "github.com/trillium/massage-availability/internal/infra/storage/slugconfig"
	"github.com/trillium/massage-availability/internal/service/slugconfig/models"
)

// Service сервис для работы с конфигурацией слагов
type Service struct {
	configRepo ConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(configRepo ConfigRepository, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		logger:     logger,
	}
}

// Resolve возвращает действующую конфигурацию для запроса
// Пустой или неизвестный слаг - базовая конфигурация по умолчанию, не ошибка.
// Переопределения заменяют поля целиком, конец диапазона ограничивается promoEndDate.
func (s *Service) Resolve(ctx context.Context, req models.ResolveRequest) (*models.Resolved, error) {
	start, _, err := validateRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("Resolve: invalid range %s..%s: %v", req.StartDate, req.EndDate, err)
		return nil, err
	}

	base, stored, err := s.load(ctx, "Resolve", req.Slug)
	if err != nil {
		return nil, err
	}

	merged := base.WithOverrides(req.Overrides)
	if err := validateConfig(merged); err != nil {
		s.logger.Warn("Resolve: invalid configuration for slug=%q: %v", merged.Slug, err)
		return nil, err
	}

	endDate, err := domain.EffectiveEndDate(req.EndDate, merged.PromoEndDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(domain.DateFormat, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: effective end date %q: %v", domain.ErrInvalidDate, endDate, err)
	}

	return &models.Resolved{
		Config:    merged,
		Stored:    stored,
		StartDate: req.StartDate,
		EndDate:   endDate,
		IsExpired: end.Before(start),
	}, nil
}

// Get получает конфигурацию слага
// Если слаг не сохранен, возвращается базовая конфигурация с Stored=false
func (s *Service) Get(ctx context.Context, slug string) (*models.ConfigResponse, error) {
	s.logger.Info("Get: fetching config for slug=%q", slug)

	config, stored, err := s.load(ctx, "Get", slug)
	if err != nil {
		return nil, err
	}

	return models.FromDomainConfig(&config, stored), nil
}

// Upsert создает или обновляет конфигурацию слага
// Поддерживает частичное обновление - обновляются только указанные поля,
// новый слаг заполняется значениями по умолчанию
func (s *Service) Upsert(ctx context.Context, slug string, req *models.UpdateSlugConfigRequest) (*models.ConfigResponse, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}
	s.logger.Info("Upsert: updating config for slug=%q", slug)

	// 1. Получаем существующую конфигурацию или базовую
	config, _, err := s.load(ctx, "Upsert", slug)
	if err != nil {
		return nil, err
	}

	// 2. Применяем обновления и валидируем результат
	req.ApplyToConfig(&config)
	if err := validateConfig(config); err != nil {
		s.logger.Warn("Upsert: validation failed for slug=%q: %v", slug, err)
		return nil, err
	}

	// 3. Сохраняем
	saved, err := s.configRepo.Upsert(ctx, &config)
	if err != nil {
		s.logger.Error("Upsert: repository error for slug=%q: %v", slug, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved config for slug=%q", slug)
	return models.FromDomainConfig(saved, true), nil
}

// load читает конфигурацию слага, подставляя базовую при отсутствии
func (s *Service) load(ctx context.Context, op, slug string) (domain.SlugConfiguration, bool, error) {
	slug = strings.TrimSpace(slug)
	base := domain.DefaultSlugConfiguration()
	base.Slug = slug
	if slug == "" {
		return base, false, nil
	}

	config, err := s.configRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, slugconfigRepo.ErrConfigNotFound) {
			s.logger.Warn("%s: slug=%q not found, using default configuration", op, slug)
			return base, false, nil
		}
		s.logger.Error("%s: repository error for slug=%q: %v", op, slug, err)
		return domain.SlugConfiguration{}, false, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return *config, true, nil
}

package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/trillium/massage-availability/internal/availability"
	"github.com/trillium/massage-availability/internal/domain"
	"github.com/trillium/massage-availability/internal/service/slugconfig"
	"github.com/trillium/massage-availability/internal/service/slugconfig/models"
	"github.com/trillium/massage-availability/internal/timeutil"
)

// UseCase use case для получения доступного для записи времени
type UseCase struct {
	resolver     ConfigResolver
	calendar     CalendarProvider
	schedule     domain.Schedule
	rangeDays    int
	snapper      slugconfig.DurationSnapper
	observer     OffersObserver
	timeProvider TimeProvider
	logger       Logger
}

// Option настраивает UseCase
type Option func(*UseCase)

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(uc *UseCase) { uc.timeProvider = tp }
}

// WithSnapper подменяет выбор длительности вне разрешенного списка
func WithSnapper(s slugconfig.DurationSnapper) Option {
	return func(uc *UseCase) { uc.snapper = s }
}

// WithOffersObserver включает учет количества предложений
func WithOffersObserver(o OffersObserver) Option {
	return func(uc *UseCase) { uc.observer = o }
}

// NewUseCase создает новый экземпляр use case
// schedule - недельный шаблон владельца, rangeDays - длина диапазона по умолчанию
func NewUseCase(
	resolver ConfigResolver,
	calendar CalendarProvider,
	schedule domain.Schedule,
	rangeDays int,
	logger Logger,
	opts ...Option,
) *UseCase {
	if rangeDays <= 0 {
		rangeDays = domain.DefaultRangeDays
	}

	uc := &UseCase{
		resolver:     resolver,
		calendar:     calendar,
		schedule:     schedule,
		rangeDays:    rangeDays,
		snapper:      slugconfig.SnapToMiddle,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute выполняет use case получения доступного времени
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: slug=%q, start=%s, end=%s, multi=%t", req.Slug, req.StartDate, req.EndDate, req.Multi)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Диапазон дат по умолчанию считается от текущего дня владельца
	now := uc.timeProvider.Now()
	loc := uc.schedule.Location
	startDate := req.StartDate
	if startDate == "" {
		startDate = timeutil.DateKey(now, loc)
	}
	endDate := req.EndDate
	if endDate == "" {
		start, err := timeutil.ParseDateKey(startDate, loc)
		if err != nil {
			return nil, err
		}
		endDate = timeutil.DateKey(start.AddDate(0, 0, uc.rangeDays-1), loc)
	}

	// 3. Действующая конфигурация слага
	resolved, err := uc.resolver.Resolve(ctx, models.ResolveRequest{
		Slug:      req.Slug,
		Overrides: req.Overrides,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		return nil, uc.mapResolveError(err)
	}
	cfg := resolved.Config

	// 4. Длительность сеанса
	duration, err := slugconfig.ResolveDuration(req.Duration, cfg, req.Strict, uc.snapper)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: duration rejected for slug=%q: %v", cfg.Slug, err)
		return nil, err
	}

	resp := &Response{
		Slug:      cfg.Slug,
		StartDate: resolved.StartDate,
		EndDate:   resolved.EndDate,
		IsExpired: resolved.IsExpired,
		TimeZone:  loc.String(),
		Duration:  duration,
		Durations: cfg.AllowedDurations,
		Config:    cfg,
		Offers:    []domain.Offer{},
	}
	if req.Multi {
		resp.OffersByDuration = emptyByDuration(cfg.AllowedDurations)
	}

	// 5. Окно акции закрыто - предлагать нечего
	if resolved.IsExpired {
		uc.logger.Info("GetAvailableSlots: slug=%q expired, promo ended %s", cfg.Slug, cfg.PromoEndDate)
		return resp, nil
	}

	startDay, err := timeutil.ParseDateKey(resolved.StartDate, loc)
	if err != nil {
		return nil, err
	}
	endDay, err := timeutil.ParseDateKey(resolved.EndDate, loc)
	if err != nil {
		return nil, err
	}
	from, to := startDay, endDay.AddDate(0, 0, 1)

	// 6. События-контейнеры: без них слаг с контейнерами недоступен
	var containers []domain.ContainerEvent
	if cfg.UsesContainers() {
		containers, err = uc.calendar.GetContainers(ctx, cfg.EventContainer, from, to)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get containers for slug=%q: %v", cfg.Slug, err)
			return nil, fmt.Errorf("%w: failed to get containers: %v", ErrCalendarUnavailable, err)
		}
		if len(containers) == 0 {
			uc.logger.Info("GetAvailableSlots: no container events %q between %s and %s",
				cfg.EventContainer, resolved.StartDate, resolved.EndDate)
			return resp, nil
		}
	}

	// 7. Занятость владельца
	busy, err := uc.calendar.GetBusy(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get busy intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to get busy intervals: %v", ErrCalendarUnavailable, err)
	}
	if cfg.BlockingScope == domain.BlockingScopeDay {
		busy = expandToDays(busy, loc)
	}

	// 8. Расчет предложений
	slotsReq := availability.SlotsRequest{
		Start:            availability.DayFor(startDay, uc.schedule),
		End:              availability.DayFor(endDay, uc.schedule),
		Schedule:         uc.schedule,
		Duration:         duration,
		AllowedDurations: cfg.AllowedDurations,
		Strict:           req.Strict,
		Busy:             busy,
		Containers:       containers,
		LeadTime:         cfg.LeadTimeMinimum,
		Now:              now,
		Location:         cfg.Location,
	}
	rules := styleRules(cfg, containers, loc)

	if req.Multi {
		byDuration, err := availability.GetAvailableSlotsByDuration(slotsReq, cfg.AllowedDurations)
		if err != nil {
			return nil, uc.mapEngineError(err)
		}
		for d, offers := range byDuration {
			byDuration[d] = availability.Annotate(offers, rules...)
		}
		resp.OffersByDuration = byDuration
		if offers, ok := byDuration[duration]; ok {
			resp.Offers = offers
		}
	} else {
		offers, err := availability.GetAvailableSlots(slotsReq)
		if err != nil {
			return nil, uc.mapEngineError(err)
		}
		resp.Offers = availability.Annotate(offers, rules...)
	}

	total := countOffers(resp.Offers, resp.OffersByDuration)
	if uc.observer != nil {
		uc.observer.ObserveOffers(metricSlug(resolved), total)
	}

	uc.logger.Info("GetAvailableSlots: %d offers for slug=%q, duration=%d, %s..%s",
		total, cfg.Slug, duration, resolved.StartDate, resolved.EndDate)
	return resp, nil
}

func (uc *UseCase) mapResolveError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidDate):
		uc.logger.Warn("GetAvailableSlots: invalid date: %v", err)
		return err
	case errors.Is(err, slugconfig.ErrInvalidInput):
		uc.logger.Warn("GetAvailableSlots: invalid configuration: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("GetAvailableSlots: failed to resolve configuration: %v", err)
		return fmt.Errorf("%w: failed to resolve configuration: %v", ErrInternal, err)
	}
}

func (uc *UseCase) mapEngineError(err error) error {
	if errors.Is(err, domain.ErrConfiguration) {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return err
	}
	uc.logger.Error("GetAvailableSlots: failed to compute offers: %v", err)
	return fmt.Errorf("%w: failed to compute offers: %v", ErrInternal, err)
}

func emptyByDuration(durations []int) map[int][]domain.Offer {
	out := make(map[int][]domain.Offer, len(durations))
	for _, d := range durations {
		out[d] = []domain.Offer{}
	}
	return out
}

// metricSlug ограничивает метку метрики сохраненными слагами
func metricSlug(r *models.Resolved) string {
	if !r.Stored || r.Config.Slug == "" {
		return "default"
	}
	return r.Config.Slug
}

package slugconfig

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/trillium/massage-availability/internal/domain"
	"github.com/trillium/massage-availability/pkg/dbmetrics"
	"github.com/trillium/massage-availability/pkg/psqlbuilder"
)

const table = "slug_configs"

var columns = []string{
	"slug",
	"title",
	"location",
	"pricing",
	"allowed_durations",
	"default_duration",
	"lead_time_minimum",
	"event_container",
	"promo_end_date",
	"accepting_payment",
	"instant_confirm",
	"blocking_scope",
	"created_at",
	"updated_at",
}

// DBExecutor переиспользует интерфейс из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий конфигураций слагов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySlug получает конфигурацию по слагу
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.SlugConfiguration, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlug - build select query: %v", ErrBuildQuery, err)
	}

	config, err := scanConfig(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlug - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// Upsert создает конфигурацию или полностью перезаписывает существующую
// created_at сохраняется, updated_at обновляется
func (r *Repository) Upsert(ctx context.Context, config *domain.SlugConfiguration) (*domain.SlugConfiguration, error) {
	pricing, err := encodePricing(config.Pricing)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - %v", ErrEncodePricing, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns[:len(columns)-2]...).
		Values(
			config.Slug,
			config.Title,
			config.Location,
			pricing,
			pq.Array(toInt64s(config.AllowedDurations)),
			config.DefaultDuration,
			config.LeadTimeMinimum,
			config.EventContainer,
			config.PromoEndDate,
			config.AcceptingPayment,
			config.InstantConfirm,
			config.BlockingScope,
		).
		Suffix(`ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			location = EXCLUDED.location,
			pricing = EXCLUDED.pricing,
			allowed_durations = EXCLUDED.allowed_durations,
			default_duration = EXCLUDED.default_duration,
			lead_time_minimum = EXCLUDED.lead_time_minimum,
			event_container = EXCLUDED.event_container,
			promo_end_date = EXCLUDED.promo_end_date,
			accepting_payment = EXCLUDED.accepting_payment,
			instant_confirm = EXCLUDED.instant_confirm,
			blocking_scope = EXCLUDED.blocking_scope,
			updated_at = NOW()
			RETURNING created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	saved := *config
	var createdAt, updatedAt sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}
	saved.CreatedAt = createdAt.Time
	saved.UpdatedAt = updatedAt.Time

	return &saved, nil
}

func scanConfig(row *sql.Row) (*domain.SlugConfiguration, error) {
	var (
		config               domain.SlugConfiguration
		pricing              []byte
		durations            pq.Int64Array
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&config.Slug,
		&config.Title,
		&config.Location,
		&pricing,
		&durations,
		&config.DefaultDuration,
		&config.LeadTimeMinimum,
		&config.EventContainer,
		&config.PromoEndDate,
		&config.AcceptingPayment,
		&config.InstantConfirm,
		&config.BlockingScope,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if config.Pricing, err = decodePricing(pricing); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodePricing, err)
	}
	config.AllowedDurations = fromInt64s(durations)
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// encodePricing сериализует цены в jsonb вида {"60": 140}
func encodePricing(pricing map[int]int) ([]byte, error) {
	if pricing == nil {
		pricing = map[int]int{}
	}
	return json.Marshal(pricing)
}

func decodePricing(raw []byte) (map[int]int, error) {
	pricing := map[int]int{}
	if len(raw) == 0 {
		return pricing, nil
	}
	if err := json.Unmarshal(raw, &pricing); err != nil {
		return nil, err
	}
	return pricing, nil
}

func toInt64s(in []int) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		out[i] = int64(v)
	}
	return out
}

func fromInt64s(in []int64) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}

package slugconfig

import (
	"fmt"
	"slices"

	"github.com/trillium/massage-availability/internal/domain"
)

// DurationSnapper выбирает длительность из allowed для запрошенной длительности,
// которой нет в списке. allowed не пустой.
type DurationSnapper func(requested int, allowed []int) int

// SnapToMiddle возвращает средний элемент отсортированного списка (нижний из двух
// при четной длине) независимо от запроса
func SnapToMiddle(_ int, allowed []int) int {
	sorted := slices.Clone(allowed)
	slices.Sort(sorted)
	return sorted[(len(sorted)-1)/2]
}

// SnapToNearest возвращает ближайшую разрешенную длительность, при равенстве меньшую
func SnapToNearest(requested int, allowed []int) int {
	sorted := slices.Clone(allowed)
	slices.Sort(sorted)

	best := sorted[0]
	for _, d := range sorted[1:] {
		if abs(d-requested) < abs(best-requested) {
			best = d
		}
	}
	return best
}

// ResolveDuration определяет длительность сеанса для запроса
// Без запроса используется DefaultDuration. Длительность вне AllowedDurations
// в strict режиме дает domain.ErrConfiguration, иначе заменяется через snap
// (nil = SnapToMiddle).
func ResolveDuration(requested *int, cfg domain.SlugConfiguration, strict bool, snap DurationSnapper) (int, error) {
	if len(cfg.AllowedDurations) == 0 {
		return 0, fmt.Errorf("%w: no allowed durations configured", domain.ErrConfiguration)
	}
	if snap == nil {
		snap = SnapToMiddle
	}

	duration := cfg.DefaultDuration
	if requested != nil {
		duration = *requested
		if duration <= 0 {
			return 0, fmt.Errorf("%w: duration must be positive, got %d", domain.ErrConfiguration, duration)
		}
	}

	if cfg.AllowsDuration(duration) {
		return duration, nil
	}
	if strict && requested != nil {
		return 0, fmt.Errorf("%w: duration %d is not in allowed set %v", domain.ErrConfiguration, duration, cfg.AllowedDurations)
	}
	return snap(duration, cfg.AllowedDurations), nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

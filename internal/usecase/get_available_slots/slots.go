package get_available_slots

import (
	"time"

	"github.com/trillium/massage-availability/internal/availability"
	"github.com/trillium/massage-availability/internal/domain"
)

// expandToDays расширяет каждый занятый интервал до целых локальных суток,
// которых он касается (blockingScope = "day")
func expandToDays(busy []domain.Interval, loc *time.Location) []domain.Interval {
	out := make([]domain.Interval, 0, len(busy))
	for _, iv := range domain.NormalizeIntervals(busy) {
		start := iv.Start.In(loc)
		// конец не включается: событие до 00:00 не занимает следующий день
		last := iv.End.Add(-time.Nanosecond).In(loc)

		out = append(out, domain.Interval{
			Start: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc),
			End:   time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1),
		})
	}
	return domain.MergeIntervals(out)
}

// styleRules возвращает правила оформления по умолчанию:
// "promo" до конца дня promoEndDate, "container" внутри событий-контейнеров
func styleRules(cfg domain.SlugConfiguration, containers []domain.ContainerEvent, loc *time.Location) []availability.StyleRule {
	var rules []availability.StyleRule

	if cfg.HasPromo() {
		if promoEnd, err := time.ParseInLocation(domain.DateFormat, cfg.PromoEndDate, loc); err == nil {
			rules = append(rules, availability.PromoRule(domain.ClassPromo, promoEnd.AddDate(0, 0, 1)))
		}
	}
	if len(containers) > 0 {
		rules = append(rules, availability.ContainerRule(domain.ClassContainer, containers))
	}

	return rules
}

func countOffers(single []domain.Offer, byDuration map[int][]domain.Offer) int {
	if byDuration == nil {
		return len(single)
	}
	total := 0
	for _, offers := range byDuration {
		total += len(offers)
	}
	return total
}

package availability

import (
	"slices"
	"strings"
	"time"

	"github.com/trillium/massage-availability/internal/domain"
)

// StyleRule tags offers matching a predicate with a class name.
type StyleRule struct {
	ClassName string
	Match     func(domain.Offer) bool
}

// Annotate returns a new list where every offer matched by a rule carries
// that rule's class name (space separated, no duplicates). Offers matching no
// rule are copied unchanged. Length and order are preserved and the input is
// not modified.
func Annotate(offers []domain.Offer, rules ...StyleRule) []domain.Offer {
	out := make([]domain.Offer, len(offers))
	for i, offer := range offers {
		out[i] = offer
		for _, rule := range rules {
			if rule.Match == nil || rule.ClassName == "" || !rule.Match(offer) {
				continue
			}
			out[i].ClassName = addClass(out[i].ClassName, rule.ClassName)
		}
	}
	return out
}

// PromoRule matches offers starting before the promo deadline.
func PromoRule(className string, deadline time.Time) StyleRule {
	return StyleRule{
		ClassName: className,
		Match: func(o domain.Offer) bool {
			return o.Start.Before(deadline)
		},
	}
}

// ContainerRule matches offers lying inside one of the containers.
func ContainerRule(className string, containers []domain.ContainerEvent) StyleRule {
	return StyleRule{
		ClassName: className,
		Match: func(o domain.Offer) bool {
			_, ok := containerFor(o.Interval(), containers)
			return ok
		},
	}
}

func addClass(existing, class string) string {
	fields := strings.Fields(existing)
	if slices.Contains(fields, class) {
		return existing
	}
	return strings.Join(append(fields, class), " ")
}

package get_available_slots

import (
	"fmt"

	"github.com/trillium/massage-availability/internal/domain"
	"github.com/trillium/massage-availability/internal/timeutil"
)

// validateRequest валидирует входные данные и приводит даты к YYYY-MM-DD
func validateRequest(req *Request) error {
	if req.Duration != nil && *req.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", domain.ErrConfiguration, *req.Duration)
	}

	if req.StartDate != "" {
		normalized, err := timeutil.NormalizeDateKey(req.StartDate)
		if err != nil {
			return err
		}
		req.StartDate = normalized
	}

	if req.EndDate != "" {
		normalized, err := timeutil.NormalizeDateKey(req.EndDate)
		if err != nil {
			return err
		}
		req.EndDate = normalized
	}

	return nil
}

package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/trillium/massage-availability/internal/api/handlers"
	"github.com/trillium/massage-availability/internal/api/middleware"
	"github.com/trillium/massage-availability/internal/domain"
	getAvailableSlots "github.com/trillium/massage-availability/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate         = "invalid date, expected YYYY-MM-DD"
	msgCalendarUnavailable = "calendar is temporarily unavailable"
	msgOverrideNotAllowed  = "leadTime, promoEndDate and eventContainer require an admin token"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	loc     *time.Location
	logger  Logger
}

// NewHandler loc - часовой пояс владельца для форматирования предложений
func NewHandler(useCase GetAvailableSlotsUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: slug, duration, start, end (YYYY-MM-DD), multi, strict, location;
// leadTime, promoEndDate, eventContainer - только с admin token (middleware.DetectAdmin)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query(), middleware.AdminFromContext(r.Context()))
	if errors.Is(err, ErrOverrideNotAllowed) {
		h.logger.Warn("GET /availability - Anonymous override rejected: %v", err)
		handlers.RespondUnauthorized(w, msgOverrideNotAllowed)
		return
	}
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidDate):
			h.logger.Warn("GET /availability - Invalid date: slug=%q, error=%v", useCaseReq.Slug, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, domain.ErrConfiguration), errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid request: slug=%q, error=%v", useCaseReq.Slug, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getAvailableSlots.ErrCalendarUnavailable):
			h.logger.Error("GET /availability - Calendar unavailable: slug=%q, error=%v", useCaseReq.Slug, err)
			handlers.RespondServiceUnavailable(w, msgCalendarUnavailable)

		default:
			h.logger.Error("GET /availability - Failed to get availability: slug=%q, error=%v", useCaseReq.Slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result, h.loc)

	h.logger.Info("GET /availability - Availability retrieved: slug=%q, duration=%d, offers=%d",
		result.Slug, result.Duration, len(result.Offers))
	handlers.RespondJSON(w, http.StatusOK, response)
}

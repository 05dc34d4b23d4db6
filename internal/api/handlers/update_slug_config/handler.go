package update_slug_config

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/trillium/massage-availability/internal/api/handlers"
	"github.com/trillium/massage-availability/internal/domain"
	"github.com/trillium/massage-availability/internal/service/slugconfig"
	"github.com/trillium/massage-availability/internal/service/slugconfig/models"
)

const (
	msgInvalidSlug        = "slug is required"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid promoEndDate, expected YYYY-MM-DD"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/slugs/{slug}/config
// Частичное обновление: поля, отсутствующие в теле, не изменяются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(mux.Vars(r)["slug"])
	if slug == "" {
		h.logger.Warn("PUT /slugs/{slug}/config - Empty slug")
		handlers.RespondBadRequest(w, msgInvalidSlug)
		return
	}

	var req models.UpdateSlugConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slugs/{slug}/config - Invalid request body: slug=%q, error=%v", slug, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Upsert(r.Context(), slug, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidDate):
			h.logger.Warn("PUT /slugs/{slug}/config - Invalid date: slug=%q, error=%v", slug, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, slugconfig.ErrInvalidInput):
			h.logger.Warn("PUT /slugs/{slug}/config - Invalid data: slug=%q, error=%v", slug, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /slugs/{slug}/config - Failed to update config: slug=%q, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /slugs/{slug}/config - Config saved: slug=%q", slug)
	handlers.RespondJSON(w, http.StatusOK, result)
}

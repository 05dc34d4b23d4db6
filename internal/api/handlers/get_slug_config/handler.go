package get_slug_config

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/trillium/massage-availability/internal/api/handlers"
)

const msgInvalidSlug = "slug is required"

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

// Handle GET /api/v1/slugs/{slug}/config
// Публичный endpoint - для неизвестного слага возвращается базовая конфигурация (stored=false)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(mux.Vars(r)["slug"])
	if slug == "" {
		h.logger.Warn("GET /slugs/{slug}/config - Empty slug")
		handlers.RespondBadRequest(w, msgInvalidSlug)
		return
	}

	result, err := h.service.Get(r.Context(), slug)
	if err != nil {
		h.logger.Error("GET /slugs/{slug}/config - Failed to get config: slug=%q, error=%v", slug, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /slugs/{slug}/config - Config retrieved: slug=%q, stored=%t", slug, result.Stored)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package update_slug_config

import (
	"context"

	"github.com/trillium/massage-availability/internal/service/slugconfig/models"
)

type ConfigService interface {
	Upsert(ctx context.Context, slug string, req *models.UpdateSlugConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

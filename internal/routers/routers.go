// Package routers
package routers

import (
	"context"
	"database/sql"

	"github.com/OliverHarrison7/TrueorScam/internal/cache"
	"github.com/OliverHarrison7/TrueorScam/internal/database"
	"github.com/OliverHarrison7/TrueorScam/internal/engine"
	"github.com/OliverHarrison7/TrueorScam/internal/handlers/detect"
	"github.com/OliverHarrison7/TrueorScam/internal/middleware"
	"github.com/OliverHarrison7/TrueorScam/internal/shared"
	"github.com/OliverHarrison7/TrueorScam/internal/signals"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DetectRouterConfig struct {
	Engine          *engine.Engine
	SafeBrowsingKey string
	Store           cache.Store
	DB              *sql.DB
	Log             *zap.SugaredLogger
}

func RegisterDetectRoutes(e *echo.Group, cfg DetectRouterConfig) (*detect.DetectManager, error) {
	sb, err := signals.NewSafeBrowsing(context.Background(), cfg.SafeBrowsingKey, cfg.Log)
	if err != nil {
		return nil, err
	}

	dm := detect.NewDetectManager(
		cfg.Engine,
		signals.NewInspector(shared.DefaultInspectTimeout, cfg.Log),
		sb,
		cfg.Store,
		database.NewScanStore(cfg.DB, cfg.Log),
		cfg.Log,
	)

	limited := e.Group("/v1", middleware.NewRateLimitMiddleware(cfg.Store, shared.RateLimitRequests, shared.RateLimitWindow))
	limited.POST("/detect", dm.Detect)
	limited.GET("/history", dm.History)

	return dm, nil
}

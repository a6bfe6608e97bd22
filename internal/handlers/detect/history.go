package detect

import (
	"net/http"
	"strconv"

	"github.com/OliverHarrison7/TrueorScam/internal/database"
	"github.com/OliverHarrison7/TrueorScam/internal/setup"

	"github.com/labstack/echo/v4"
)

type historyResponse struct {
	Data []database.ScanRecord `json:"data"`
}

// History lists recent scans. Empty list when no store is configured.
func (dm *DetectManager) History(cc echo.Context) error {
	c := cc.(*setup.Context)

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	records, err := dm.Scans.RecentScans(c.Request().Context(), limit)
	if err != nil {
		c.Log.Errorw("Failed to load scan history", "error", err.Error())
		return c.String(http.StatusInternalServerError, "failed to load history")
	}

	return c.JSON(http.StatusOK, historyResponse{Data: records})
}

package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/razan-ali/petrolube-guardpass/internal/gate/service"
)

// StatsHandler handles dashboard statistics and report exports.
type StatsHandler struct {
	stats  *service.StatsService
	report *service.ReportService
}

// NewStatsHandler creates a stats handler.
func NewStatsHandler(stats *service.StatsService, report *service.ReportService) *StatsHandler {
	return &StatsHandler{stats: stats, report: report}
}

// Overview returns dashboard counts for the caller's scope.
// GET /api/v1/stats/overview
func (h *StatsHandler) Overview(c *gin.Context) {
	overview, err := h.stats.GetOverview(c.Request.Context(), GetActor(c))
	if err != nil {
		FromError(c, err)
		return
	}
	Success(c, overview)
}

// ExportEntryExit streams an xlsx of entry/exit logs for a date range.
// GET /api/v1/reports/entry-exit?from=2006-01-02&to=2006-01-02
func (h *StatsHandler) ExportEntryExit(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		BadRequest(c, "from must be a date in YYYY-MM-DD form")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		BadRequest(c, "to must be a date in YYYY-MM-DD form")
		return
	}
	// The range is inclusive of the last day.
	to = to.Add(24 * time.Hour)

	f, filename, err := h.report.ExportEntryExit(c.Request.Context(), GetActor(c), from, to)
	if err != nil {
		FromError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

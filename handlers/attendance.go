package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/quesurifn/ics-attendance-server/attendance"
	"github.com/quesurifn/ics-attendance-server/calendar"
	t "github.com/quesurifn/ics-attendance-server/types"
)

// RefreshHandler runs a full update: refetch the feed, reconcile stored
// attendance and rewrite the table. A feed failure is the only error that
// carries upstream detail back to the client.
func (h Handlers) RefreshHandler(c *fiber.Ctx) error {
	h.Logger.Info("RefreshHandler", zap.String("ip", c.IP()))

	report, err := h.Tracker.Refresh(c.Context())
	if err != nil {
		var fetchErr *calendar.FetchError
		if errors.As(err, &fetchErr) {
			h.Logger.Error("feed fetch failed", zap.Error(fetchErr))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": fetchErr.Error(),
			})
		}
		h.Logger.Error("refresh failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(reportResponse(report))
}

// StatsHandler recomputes statistics from the stored table without
// refetching the feed.
func (h Handlers) StatsHandler(c *fiber.Ctx) error {
	report, err := h.Tracker.Recompute(c.Context())
	if err != nil {
		h.Logger.Error("recompute failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(t.BaseResponse[t.Statistics]{
		Data:    report.Statistics,
		Message: report.Statistics.TargetStatus(),
	})
}

// EventsHandler returns the stored table with current statistics.
func (h Handlers) EventsHandler(c *fiber.Ctx) error {
	report, err := h.Tracker.Recompute(c.Context())
	if err != nil {
		h.Logger.Error("recompute failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(reportResponse(report))
}

// AttendanceHandler flips the attended flag of one stored event.
func (h Handlers) AttendanceHandler(c *fiber.Ctx) error {
	var req t.AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}
	if req.UID == "" {
		return c.Status(fiber.StatusBadRequest).SendString("uid is required")
	}

	h.Logger.Info("AttendanceHandler",
		zap.String("uid", req.UID),
		zap.Bool("attended", req.Attended),
	)

	report, err := h.Tracker.SetAttendance(c.Context(), req.UID, req.Attended)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(reportResponse(report))
}

func reportResponse(report attendance.Report) t.ReportResponse {
	return t.ReportResponse{
		Events:       report.Events,
		Statistics:   report.Statistics,
		TargetStatus: report.Statistics.TargetStatus(),
	}
}

package handlers

import (
	"github.com/quesurifn/ics-attendance-server/attendance"
	"go.uber.org/zap"
)

type Handlers struct {
	Logger  *zap.Logger
	Tracker *attendance.Tracker
}

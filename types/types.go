package types

import "time"

// Event is one occurrence extracted from the timetable feed. CourseName and
// EventType are derived from Summary, Lecturers from Description. StartDate
// and EndDate are always UTC; a zero EndDate means the feed had no usable
// DTEND. Attended is filled in during reconciliation.
type Event struct {
	UID         string    `json:"uid"`
	Summary     string    `json:"summary"`
	CourseName  string    `json:"courseName"`
	EventType   string    `json:"eventType"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Lecturers   string    `json:"lecturers"`
	Category    string    `json:"category"`
	Attended    bool      `json:"attended"`
}

// Statistics is a snapshot computed from a reconciled event list and a fixed
// "now". It is derived on every report and never treated as source of truth.
type Statistics struct {
	TotalEvents       int     `json:"totalEvents"`
	TotalRequired     int     `json:"totalRequired"`
	Attended          int     `json:"attended"`
	AttendedRequired  int     `json:"attendedRequired"`
	PastEvents        int     `json:"pastEvents"`
	PastRequired      int     `json:"pastRequired"`
	FutureRequired    int     `json:"futureRequired"`
	AttendanceRate    float64 `json:"attendanceRate"`
	AttendanceRateAll float64 `json:"attendanceRateAll"`
	NeededForTarget   int     `json:"neededForTarget"`
	CanStillMiss      int     `json:"canStillMiss"`
	TargetReachable   bool    `json:"targetReachable"`
}

// TargetStatus reports whether the attendance target is already met, still
// reachable with the remaining required events, or out of reach.
func (s Statistics) TargetStatus() string {
	switch {
	case s.NeededForTarget == 0:
		return "met"
	case s.TargetReachable:
		return "reachable"
	default:
		return "unreachable"
	}
}

type BaseResponse[t any] struct {
	Data    t      `json:"data"`
	Message string `json:"message"`
}

type AttendanceRequest struct {
	UID      string `json:"uid"`
	Attended bool   `json:"attended"`
}

type ReportResponse struct {
	Events       []Event    `json:"events"`
	Statistics   Statistics `json:"statistics"`
	TargetStatus string     `json:"targetStatus"`
}

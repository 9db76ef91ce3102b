package domain

import "errors"

// Schedule 공정/일정 — one phase belonging to exactly one Site. Manager is a
// free-text name snapshot, deliberately not a Staff reference.
type Schedule struct {
	Meta
	SiteID    string `json:"siteId"`
	Name      string `json:"name"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Progress  int    `json:"progress"`
	Manager   string `json:"manager,omitempty"`
	Status    string `json:"status"`
}

// Schedule status values.
const (
	ScheduleStatusPlanned = "예정"
	ScheduleStatusActive  = "진행"
	ScheduleStatusDone    = "완료"
	ScheduleStatusDelayed = "지연"
)

var ErrScheduleInvalid = errors.New("schedule: siteId and name are required")

// Validate enforces the write-boundary requirements and normalizes defaults.
func (s *Schedule) Validate() error {
	if s.SiteID == "" || s.Name == "" {
		return ErrScheduleInvalid
	}
	if s.Status == "" {
		s.Status = ScheduleStatusPlanned
	}
	s.Progress = ClampProgress(s.Progress)
	return nil
}

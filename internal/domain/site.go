package domain

import "errors"

// Site 현장 — a construction project.
type Site struct {
	Meta
	Name      string  `json:"name"`
	Location  string  `json:"location"`
	Client    string  `json:"client,omitempty"`
	Architect string  `json:"architect,omitempty"`
	Amount    float64 `json:"amount"` // contract amount, 억 단위
	StartDate string  `json:"startDate,omitempty"`
	EndDate   string  `json:"endDate,omitempty"`
	Progress  int     `json:"progress"`
	Status    string  `json:"status"`
	Special   string  `json:"special,omitempty"` // 특이사항
	Note      string  `json:"note,omitempty"`
}

// Site status values.
const (
	SiteStatusPending = "대기"
	SiteStatusActive  = "진행"
	SiteStatusDone    = "완료"
)

var ErrSiteInvalid = errors.New("site: name and location are required")

// Validate enforces the write-boundary requirements and normalizes defaults.
func (s *Site) Validate() error {
	if s.Name == "" || s.Location == "" {
		return ErrSiteInvalid
	}
	if s.Status == "" {
		s.Status = SiteStatusPending
	}
	s.Progress = ClampProgress(s.Progress)
	return nil
}

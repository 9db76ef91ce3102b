package domain

import "errors"

// Staff 소장/직원 — a person who may be assigned to zero or more sites.
type Staff struct {
	Meta
	Name     string `json:"name"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Cert     string `json:"cert,omitempty"` // certifications, comma separated
	JoinDate string `json:"joinDate,omitempty"`
	Status   string `json:"status"`
}

// Staff roles.
const (
	RoleManager       = "소장"
	RoleDeputyManager = "부소장"
	RoleSiteAgent     = "현장대리인"
	RoleSafetyOfficer = "안전관리자"
	RoleEmployee      = "직원"
)

// Staff status values.
const (
	StaffStatusActive   = "재직"
	StaffStatusDeparted = "퇴직"
)

var ErrStaffInvalid = errors.New("staff: name is required")

// Validate enforces the write-boundary requirements and normalizes defaults.
func (s *Staff) Validate() error {
	if s.Name == "" {
		return ErrStaffInvalid
	}
	if s.Role == "" {
		s.Role = RoleEmployee
	}
	if s.Status == "" {
		s.Status = StaffStatusActive
	}
	return nil
}

// IsActive reports whether the staff member is employed; only active staff
// are draggable assignment sources.
func (s *Staff) IsActive() bool { return s.Status == StaffStatusActive }

package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"sitedesk/internal/domain"
	"sitedesk/internal/repository"

	"go.uber.org/zap"
)

// ErrCancelled signals a removal the confirm hook declined. No state changed.
var ErrCancelled = errors.New("operation cancelled")

// Site list filters for the assignment board.
const (
	SiteFilterAll        = ""
	SiteFilterUnassigned = "미배정" // unassigned and not done
	SiteFilterActive     = "진행"
)

// StaffPoolEntry is one draggable source in the staff pool.
type StaffPoolEntry struct {
	Staff     domain.Staff `json:"staff"`
	Assigned  bool         `json:"assigned"`
	SiteNames string       `json:"siteNames,omitempty"`
}

// AssignedChip is one removable staff chip on a site card.
type AssignedChip struct {
	AssignmentID string       `json:"assignmentId"`
	Staff        domain.Staff `json:"staff"`
}

// SiteCard is one drop target with its currently assigned staff.
type SiteCard struct {
	Site  domain.Site    `json:"site"`
	Staff []AssignedChip `json:"staff"`
}

// AssignmentRow is one joined row of the assignment table. Rows whose site or
// staff reference no longer resolves are filtered out, not failed.
type AssignmentRow struct {
	Assignment domain.Assignment `json:"assignment"`
	Site       domain.Site       `json:"site"`
	Staff      domain.Staff      `json:"staff"`
}

// Summary carries the dashboard counters, including the unassigned badge.
type Summary struct {
	TotalSites      int `json:"totalSites"`
	ActiveSites     int `json:"activeSites"`
	TotalStaff      int `json:"totalStaff"`
	AssignedStaff   int `json:"assignedStaff"`
	AssignedSites   int `json:"assignedSites"`
	UnassignedSites int `json:"unassignedSites"`
}

// AssignService is the staff-to-site assignment engine plus the derived
// read-only views. Views are recomputed from the store on every call; the
// only state held here is the transient drag interaction.
//
// Drag state machine: Idle --BeginDrag--> Dragging(staffID)
// --DropOnSite/CancelDrag--> Idle. An abandoned drag is harmless: nothing is
// persisted until a drop lands.
type AssignService struct {
	store  *repository.Store
	logger *zap.Logger

	// Confirm, when set, gates RemoveAssignment and ClearAll. Removal is a
	// deliberate action; the hook lets the caller interpose a prompt.
	Confirm func(prompt string) bool

	mu            sync.Mutex
	dragStaffID   string
	dragStaffName string
}

func NewAssignService(store *repository.Store, logger *zap.Logger) *AssignService {
	return &AssignService{store: store, logger: logger}
}

// --- drag state machine ---

// BeginDrag records the dragged staff id. Only active staff are draggable.
func (s *AssignService) BeginDrag(ctx context.Context, staffID string) error {
	st := s.store.Staff.GetByID(ctx, staffID)
	if st == nil || !st.IsActive() {
		return repository.ErrNotFound
	}
	s.mu.Lock()
	s.dragStaffID = st.ID
	s.dragStaffName = st.Name
	s.mu.Unlock()
	return nil
}

// CancelDrag returns to Idle without side effects.
func (s *AssignService) CancelDrag() {
	s.mu.Lock()
	s.dragStaffID = ""
	s.dragStaffName = ""
	s.mu.Unlock()
}

// Dragging reports the staff id currently held, empty when Idle.
func (s *AssignService) Dragging() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dragStaffID
}

// DropOnSite creates the assignment for the drop. When staffID is empty the
// transient drag state supplies it. Returns ErrDuplicateAssignment for an
// existing pair and ErrNotFound when either reference does not resolve; in
// both cases nothing is written.
func (s *AssignService) DropOnSite(ctx context.Context, siteID, staffID string) (*domain.Assignment, error) {
	if staffID == "" {
		s.mu.Lock()
		staffID = s.dragStaffID
		s.mu.Unlock()
	}
	if staffID == "" {
		return nil, repository.ErrNotFound
	}

	a, err := s.store.CreateAssignment(ctx, siteID, staffID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateAssignment) {
			s.logger.Warn("duplicate assignment rejected",
				zap.String("siteId", siteID), zap.String("staffId", staffID))
		}
		return nil, err
	}
	s.CancelDrag()
	return a, nil
}

// RemoveAssignment deletes one assignment after confirmation.
func (s *AssignService) RemoveAssignment(ctx context.Context, assignmentID string) error {
	a := s.store.Assignments.GetByID(ctx, assignmentID)
	if a == nil {
		return repository.ErrNotFound
	}
	if s.Confirm != nil && !s.Confirm("배정을 해제하시겠습니까?") {
		return ErrCancelled
	}
	s.store.Assignments.Remove(ctx, assignmentID)
	s.logger.Info("assignment removed", zap.String("assignmentId", assignmentID))
	return nil
}

// ClearAll deletes every assignment after confirmation.
func (s *AssignService) ClearAll(ctx context.Context) error {
	if s.Confirm != nil && !s.Confirm("모든 배정을 초기화하시겠습니까?") {
		return ErrCancelled
	}
	s.store.ClearAssignments(ctx)
	s.logger.Info("assignments cleared")
	return nil
}

// --- derived views (assignment index) ---

// AssignedSiteIDs is the set of site ids appearing in any assignment.
func (s *AssignService) AssignedSiteIDs(ctx context.Context) map[string]bool {
	ids := map[string]bool{}
	for _, a := range s.store.Assignments.GetAll(ctx) {
		ids[a.SiteID] = true
	}
	return ids
}

// AssignedStaffIDs is the set of staff ids appearing in any assignment.
func (s *AssignService) AssignedStaffIDs(ctx context.Context) map[string]bool {
	ids := map[string]bool{}
	for _, a := range s.store.Assignments.GetAll(ctx) {
		ids[a.StaffID] = true
	}
	return ids
}

// UnassignedActiveSites lists sites that are not done and have nobody
// assigned — the badge count and the 미배정 board filter.
func (s *AssignService) UnassignedActiveSites(ctx context.Context) []domain.Site {
	assigned := s.AssignedSiteIDs(ctx)
	var out []domain.Site
	for _, site := range s.store.Sites.GetAll(ctx) {
		if site.Status != domain.SiteStatusDone && !assigned[site.ID] {
			out = append(out, site)
		}
	}
	return out
}

// StaffForSite joins assignments to staff for one site, skipping orphaned
// references.
func (s *AssignService) StaffForSite(ctx context.Context, siteID string) []domain.Staff {
	var out []domain.Staff
	for _, a := range s.store.Assignments.GetAll(ctx) {
		if a.SiteID != siteID {
			continue
		}
		if st := s.store.Staff.GetByID(ctx, a.StaffID); st != nil {
			out = append(out, *st)
		}
	}
	return out
}

// SitesForStaff joins assignments to sites for one staff member, skipping
// orphaned references.
func (s *AssignService) SitesForStaff(ctx context.Context, staffID string) []domain.Site {
	var out []domain.Site
	for _, a := range s.store.Assignments.GetAll(ctx) {
		if a.StaffID != staffID {
			continue
		}
		if site := s.store.Sites.GetByID(ctx, a.SiteID); site != nil {
			out = append(out, *site)
		}
	}
	return out
}

// StaffPool lists active staff as draggable sources, with a case-insensitive
// substring filter over name and role.
func (s *AssignService) StaffPool(ctx context.Context, filter string) []StaffPoolEntry {
	filter = strings.ToLower(strings.TrimSpace(filter))
	assigned := s.AssignedStaffIDs(ctx)

	var out []StaffPoolEntry
	for _, st := range s.store.Staff.GetAll(ctx) {
		if !st.IsActive() {
			continue
		}
		if filter != "" &&
			!strings.Contains(strings.ToLower(st.Name), filter) &&
			!strings.Contains(strings.ToLower(st.Role), filter) {
			continue
		}
		names := make([]string, 0, 2)
		for _, site := range s.SitesForStaff(ctx, st.ID) {
			names = append(names, site.Name)
		}
		out = append(out, StaffPoolEntry{
			Staff:     st,
			Assigned:  assigned[st.ID],
			SiteNames: strings.Join(names, ", "),
		})
	}
	return out
}

// SiteCards lists the drop targets under the given filter, each with its
// currently assigned staff chips.
func (s *AssignService) SiteCards(ctx context.Context, filter string) []SiteCard {
	assigned := s.AssignedSiteIDs(ctx)
	assigns := s.store.Assignments.GetAll(ctx)

	var out []SiteCard
	for _, site := range s.store.Sites.GetAll(ctx) {
		switch filter {
		case SiteFilterUnassigned:
			if assigned[site.ID] || site.Status == domain.SiteStatusDone {
				continue
			}
		case SiteFilterActive:
			if site.Status != domain.SiteStatusActive {
				continue
			}
		}
		card := SiteCard{Site: site, Staff: []AssignedChip{}}
		for _, a := range assigns {
			if a.SiteID != site.ID {
				continue
			}
			if st := s.store.Staff.GetByID(ctx, a.StaffID); st != nil {
				card.Staff = append(card.Staff, AssignedChip{AssignmentID: a.ID, Staff: *st})
			}
		}
		out = append(out, card)
	}
	return out
}

// Rows returns the joined assignment table in insertion order.
func (s *AssignService) Rows(ctx context.Context) []AssignmentRow {
	var out []AssignmentRow
	for _, a := range s.store.Assignments.GetAll(ctx) {
		site := s.store.Sites.GetByID(ctx, a.SiteID)
		st := s.store.Staff.GetByID(ctx, a.StaffID)
		if site == nil || st == nil {
			continue
		}
		out = append(out, AssignmentRow{Assignment: a, Site: *site, Staff: *st})
	}
	return out
}

// Summarize computes the dashboard counters.
func (s *AssignService) Summarize(ctx context.Context) Summary {
	sites := s.store.Sites.GetAll(ctx)
	assignedSites := s.AssignedSiteIDs(ctx)

	sum := Summary{
		TotalSites:    len(sites),
		TotalStaff:    s.store.Staff.Count(ctx),
		AssignedStaff: len(s.AssignedStaffIDs(ctx)),
	}
	for _, site := range sites {
		if site.Status == domain.SiteStatusActive {
			sum.ActiveSites++
		}
		if assignedSites[site.ID] {
			sum.AssignedSites++
		} else if site.Status != domain.SiteStatusDone {
			sum.UnassignedSites++
		}
	}
	return sum
}

package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"sitedesk/internal/domain"
	"sitedesk/internal/store"

	"go.uber.org/zap"
)

// Collection keys in the KV backend.
const (
	KeySites         = "sites"
	KeyStaff         = "staff"
	KeyAssignments   = "assignments"
	KeySchedules     = "schedules"
	KeyExportHistory = "export_history"
)

var (
	// ErrNotFound signals a referenced site or staff id that does not
	// resolve to an existing record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateAssignment signals an existing (siteId, staffId) pair.
	ErrDuplicateAssignment = errors.New("staff already assigned to site")
)

// Store is the single source of truth: five collections over one KV backend.
// One mutex serializes every mutation, including the duplicate-pair
// check-then-insert of CreateAssignment and the cascade deletes, so the
// invariants hold under concurrent HTTP access.
type Store struct {
	mu     sync.Mutex
	logger *zap.Logger

	Sites         *Collection[domain.Site, *domain.Site]
	Staff         *Collection[domain.Staff, *domain.Staff]
	Assignments   *Collection[domain.Assignment, *domain.Assignment]
	Schedules     *Collection[domain.Schedule, *domain.Schedule]
	ExportHistory *Collection[domain.ExportHistoryEntry, *domain.ExportHistoryEntry]
}

func NewStore(kv store.KV, logger *zap.Logger) *Store {
	s := &Store{logger: logger}
	s.Sites = newCollection[domain.Site](kv, KeySites, &s.mu, logger)
	s.Staff = newCollection[domain.Staff](kv, KeyStaff, &s.mu, logger)
	s.Assignments = newCollection[domain.Assignment](kv, KeyAssignments, &s.mu, logger)
	s.Schedules = newCollection[domain.Schedule](kv, KeySchedules, &s.mu, logger)
	s.ExportHistory = newCollection[domain.ExportHistoryEntry](kv, KeyExportHistory, &s.mu, logger)
	return s
}

// DeleteSite removes the site and cascades to every assignment and schedule
// referencing it, as one logical operation.
func (s *Store) DeleteSite(ctx context.Context, siteID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Sites.removeLocked(ctx, siteID)

	assigns := s.Assignments.GetAll(ctx)
	keptAssigns := assigns[:0]
	for _, a := range assigns {
		if a.SiteID != siteID {
			keptAssigns = append(keptAssigns, a)
		}
	}
	s.Assignments.saveLocked(ctx, keptAssigns)

	scheds := s.Schedules.GetAll(ctx)
	keptScheds := scheds[:0]
	for _, sc := range scheds {
		if sc.SiteID != siteID {
			keptScheds = append(keptScheds, sc)
		}
	}
	s.Schedules.saveLocked(ctx, keptScheds)
}

// DeleteStaff removes the staff member and cascades to every assignment
// referencing them.
func (s *Store) DeleteStaff(ctx context.Context, staffID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Staff.removeLocked(ctx, staffID)

	assigns := s.Assignments.GetAll(ctx)
	kept := assigns[:0]
	for _, a := range assigns {
		if a.StaffID != staffID {
			kept = append(kept, a)
		}
	}
	s.Assignments.saveLocked(ctx, kept)
}

// CreateAssignment is the single insertion path for assignments. It checks
// that both references resolve and that the pair does not already exist,
// then inserts — all under the store lock, so a rapid double-drop cannot
// race past the check.
func (s *Store) CreateAssignment(ctx context.Context, siteID, staffID string) (*domain.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Sites.GetByID(ctx, siteID) == nil || s.Staff.GetByID(ctx, staffID) == nil {
		return nil, ErrNotFound
	}
	for _, a := range s.Assignments.GetAll(ctx) {
		if a.SiteID == siteID && a.StaffID == staffID {
			return nil, ErrDuplicateAssignment
		}
	}
	rec := s.Assignments.addLocked(ctx, domain.Assignment{
		SiteID:     siteID,
		StaffID:    staffID,
		AssignedAt: time.Now().UTC().Format(time.RFC3339),
	})
	s.logger.Info("assignment created",
		zap.String("siteId", siteID), zap.String("staffId", staffID))
	return &rec, nil
}

// ClearAssignments deletes every assignment record.
func (s *Store) ClearAssignments(ctx context.Context) {
	s.Assignments.ReplaceAll(ctx, nil)
}

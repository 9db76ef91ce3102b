package repository

import (
	"context"
	"testing"

	"sitedesk/internal/domain"

	"github.com/stretchr/testify/require"
)

func seedPair(ctx context.Context, t *testing.T, s *Store) (domain.Site, domain.Staff) {
	t.Helper()
	site := s.Sites.Add(ctx, domain.Site{Name: "강남 오피스텔 신축", Location: "서울 강남구", Status: domain.SiteStatusActive})
	member := s.Staff.Add(ctx, domain.Staff{Name: "김현수", Role: domain.RoleManager, Status: domain.StaffStatusActive})
	return site, member
}

func TestCreateAssignmentRejectsDuplicatePair(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	site, member := seedPair(ctx, t, s)

	first, err := s.CreateAssignment(ctx, site.ID, member.ID)
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	require.NotEmpty(t, first.AssignedAt)

	second, err := s.CreateAssignment(ctx, site.ID, member.ID)
	require.ErrorIs(t, err, ErrDuplicateAssignment)
	require.Nil(t, second)
	require.Equal(t, 1, s.Assignments.Count(ctx))
}

func TestCreateAssignmentRejectsUnknownReferences(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	site, member := seedPair(ctx, t, s)

	_, err := s.CreateAssignment(ctx, "ghost-site", member.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.CreateAssignment(ctx, site.ID, "ghost-staff")
	require.ErrorIs(t, err, ErrNotFound)
	require.Zero(t, s.Assignments.Count(ctx))
}

func TestDeleteSiteCascades(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	site, member := seedPair(ctx, t, s)
	other := s.Sites.Add(ctx, domain.Site{Name: "판교 물류센터", Location: "성남", Status: domain.SiteStatusActive})

	_, err := s.CreateAssignment(ctx, site.ID, member.ID)
	require.NoError(t, err)
	_, err = s.CreateAssignment(ctx, other.ID, member.ID)
	require.NoError(t, err)
	s.Schedules.Add(ctx, domain.Schedule{SiteID: site.ID, Name: "기초공사", Status: domain.ScheduleStatusPlanned})
	s.Schedules.Add(ctx, domain.Schedule{SiteID: other.ID, Name: "골조공사", Status: domain.ScheduleStatusPlanned})

	s.DeleteSite(ctx, site.ID)

	require.Nil(t, s.Sites.GetByID(ctx, site.ID))
	// only records of the deleted site are swept
	assigns := s.Assignments.GetAll(ctx)
	require.Len(t, assigns, 1)
	require.Equal(t, other.ID, assigns[0].SiteID)
	scheds := s.Schedules.GetAll(ctx)
	require.Len(t, scheds, 1)
	require.Equal(t, other.ID, scheds[0].SiteID)
}

func TestDeleteStaffCascadesAssignmentsOnly(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	site, member := seedPair(ctx, t, s)
	keep := s.Staff.Add(ctx, domain.Staff{Name: "이영호", Role: domain.RoleSafetyOfficer, Status: domain.StaffStatusActive})

	_, err := s.CreateAssignment(ctx, site.ID, member.ID)
	require.NoError(t, err)
	_, err = s.CreateAssignment(ctx, site.ID, keep.ID)
	require.NoError(t, err)
	sched := s.Schedules.Add(ctx, domain.Schedule{SiteID: site.ID, Name: "마감공사", Status: domain.ScheduleStatusPlanned})

	s.DeleteStaff(ctx, member.ID)

	require.Nil(t, s.Staff.GetByID(ctx, member.ID))
	assigns := s.Assignments.GetAll(ctx)
	require.Len(t, assigns, 1)
	require.Equal(t, keep.ID, assigns[0].StaffID)
	// schedules are site-scoped and untouched by staff deletion
	require.NotNil(t, s.Schedules.GetByID(ctx, sched.ID))
}

func TestClearAssignments(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	site, member := seedPair(ctx, t, s)
	_, err := s.CreateAssignment(ctx, site.ID, member.ID)
	require.NoError(t, err)

	s.ClearAssignments(ctx)

	require.Zero(t, s.Assignments.Count(ctx))
	// the referenced records stay
	require.NotNil(t, s.Sites.GetByID(ctx, site.ID))
	require.NotNil(t, s.Staff.GetByID(ctx, member.ID))
}

func TestInitIfEmptySeedsOnce(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	s.InitIfEmpty(ctx)
	sites := s.Sites.GetAll(ctx)
	require.NotEmpty(t, sites)
	require.NotEmpty(t, s.Staff.GetAll(ctx))
	require.NotEmpty(t, s.Assignments.GetAll(ctx))

	// every seeded assignment resolves
	for _, a := range s.Assignments.GetAll(ctx) {
		require.NotNil(t, s.Sites.GetByID(ctx, a.SiteID))
		require.NotNil(t, s.Staff.GetByID(ctx, a.StaffID))
	}

	marker := s.Sites.Add(ctx, domain.Site{Name: "추가 현장", Location: "대전"})
	s.InitIfEmpty(ctx)
	require.NotNil(t, s.Sites.GetByID(ctx, marker.ID), "a non-empty store must not be reseeded")
	require.Len(t, s.Sites.GetAll(ctx), len(sites)+1)
}

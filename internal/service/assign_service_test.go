package service

import (
	"context"
	"testing"

	"sitedesk/internal/domain"
	"sitedesk/internal/repository"
	"sitedesk/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAssignFixture(t *testing.T) (*repository.Store, *AssignService) {
	t.Helper()
	st := repository.NewStore(store.NewMemoryKV(), zap.NewNop())
	return st, NewAssignService(st, zap.NewNop())
}

func TestDragDropFlow(t *testing.T) {
	ctx := context.Background()
	st, svc := newAssignFixture(t)
	site := st.Sites.Add(ctx, domain.Site{Name: "강남 오피스텔 신축", Location: "서울", Status: domain.SiteStatusActive})
	member := st.Staff.Add(ctx, domain.Staff{Name: "김현수", Role: domain.RoleManager, Status: domain.StaffStatusActive})

	require.Empty(t, svc.Dragging())
	require.NoError(t, svc.BeginDrag(ctx, member.ID))
	require.Equal(t, member.ID, svc.Dragging())

	// the drop draws the staff id from the drag state
	a, err := svc.DropOnSite(ctx, site.ID, "")
	require.NoError(t, err)
	require.Equal(t, member.ID, a.StaffID)
	require.Equal(t, site.ID, a.SiteID)
	require.Empty(t, svc.Dragging(), "a successful drop returns to idle")
}

func TestBeginDragRejectsInactiveStaff(t *testing.T) {
	ctx := context.Background()
	st, svc := newAssignFixture(t)
	departed := st.Staff.Add(ctx, domain.Staff{Name: "박철수", Role: domain.RoleEmployee, Status: domain.StaffStatusDeparted})

	require.ErrorIs(t, svc.BeginDrag(ctx, departed.ID), repository.ErrNotFound)
	require.ErrorIs(t, svc.BeginDrag(ctx, "ghost"), repository.ErrNotFound)
	require.Empty(t, svc.Dragging())
}

func TestCancelDragLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	st, svc := newAssignFixture(t)
	st.Sites.Add(ctx, domain.Site{Name: "현장", Location: "서울", Status: domain.SiteStatusActive})
	member := st.Staff.Add(ctx, domain.Staff{Name: "김현수", Status: domain.StaffStatusActive})

	require.NoError(t, svc.BeginDrag(ctx, member.ID))
	svc.CancelDrag()
	require.Empty(t, svc.Dragging())
	require.Zero(t, st.Assignments.Count(ctx))

	// dropping while idle without an explicit staff id fails cleanly
	_, err := svc.DropOnSite(ctx, "anything", "")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDoubleDropCreatesOneAssignment(t *testing.T) {
	ctx := context.Background()
	st, svc := newAssignFixture(t)
	site := st.Sites.Add(ctx, domain.Site{Name: "현장", Location: "서울", Status: domain.SiteStatusActive})
	member := st.Staff.Add(ctx, domain.Staff{Name: "김현수", Status: domain.StaffStatusActive})

	_, err := svc.DropOnSite(ctx, site.ID, member.ID)
	require.NoError(t, err)
	_, err = svc.DropOnSite(ctx, site.ID, member.ID)
	require.ErrorIs(t, err, repository.ErrDuplicateAssignment)
	require.Equal(t, 1, st.Assignments.Count(ctx))
}

func TestDuplicateDropKeepsDragState(t *testing.T) {
	ctx := context.Background()
	st, svc := newAssignFixture(t)
	site := st.Sites.Add(ctx, domain.Site{Name: "현장", Location: "서울", Status: domain.SiteStatusActive})
	member := st.Staff.Add(ctx, domain.Staff{Name: "김현수", Status: domain.StaffStatusActive})
	_, err := svc.DropOnSite(ctx, site.ID, member.ID)
	require.NoError(t, err)

	require.NoError(t, svc.BeginDrag(ctx, member.ID))
	_, err = svc.DropOnSite(ctx, site.ID, "")
	require.ErrorIs(t, err, repository.ErrDuplicateAssignment)
	// only a successful drop clears the drag; the chip can land elsewhere
	require.Equal(t, member.ID, svc.Dragging())
}

func TestRemoveAssignmentConfirmGate(t *testing.T) {
	ctx := context.Background()
	st, svc := newAssignFixture(t)
	site := st.Sites.Add(ctx, domain.Site{Name: "현장", Location: "서울", Status: domain.SiteStatusActive})
	member := st.Staff.Add(ctx, domain.Staff{Name: "김현수", Status: domain.StaffStatusActive})
	a, err := svc.DropOnSite(ctx, site.ID, member.ID)
	require.NoError(t, err)

	svc.Confirm = func(string) bool { return false }
	require.ErrorIs(t, svc.RemoveAssignment(ctx, a.ID), ErrCancelled)
	require.Equal(t, 1, st.Assignments.Count(ctx))
	require.ErrorIs(t, svc.ClearAll(ctx), ErrCancelled)
	require.Equal(t, 1, st.Assignments.Count(ctx))

	svc.Confirm = func(string) bool { return true }
	require.NoError(t, svc.RemoveAssignment(ctx, a.ID))
	require.Zero(t, st.Assignments.Count(ctx))
	require.ErrorIs(t, svc.RemoveAssignment(ctx, a.ID), repository.ErrNotFound)
}

func TestStaffPoolFiltersAndFlags(t *testing.T) {
	ctx := context.Background()
	st, svc := newAssignFixture(t)
	site := st.Sites.Add(ctx, domain.Site{Name: "강남 오피스텔 신축", Location: "서울", Status: domain.SiteStatusActive})
	manager := st.Staff.Add(ctx, domain.Staff{Name: "김현수", Role: domain.RoleManager, Status: domain.StaffStatusActive})
	employee := st.Staff.Add(ctx, domain.Staff{Name: "이영호", Role: domain.RoleEmployee, Status: domain.StaffStatusActive})
	st.Staff.Add(ctx, domain.Staff{Name: "박철수", Role: domain.RoleEmployee, Status: domain.StaffStatusDeparted})
	_, err := st.CreateAssignment(ctx, site.ID, manager.ID)
	require.NoError(t, err)

	pool := svc.StaffPool(ctx, "")
	require.Len(t, pool, 2, "departed staff never enter the pool")
	require.True(t, pool[0].Assigned)
	require.Equal(t, "강남 오피스텔 신축", pool[0].SiteNames)
	require.False(t, pool[1].Assigned)

	// filter matches name or role, case-insensitive
	byRole := svc.StaffPool(ctx, domain.RoleManager)
	require.Len(t, byRole, 1)
	require.Equal(t, manager.ID, byRole[0].Staff.ID)
	byName := svc.StaffPool(ctx, "영호")
	require.Len(t, byName, 1)
	require.Equal(t, employee.ID, byName[0].Staff.ID)
}

func TestSiteCardFilters(t *testing.T) {
	ctx := context.Background()
	st, svc := newAssignFixture(t)
	active := st.Sites.Add(ctx, domain.Site{Name: "진행 현장", Location: "서울", Status: domain.SiteStatusActive})
	pending := st.Sites.Add(ctx, domain.Site{Name: "대기 현장", Location: "부산", Status: domain.SiteStatusPending})
	st.Sites.Add(ctx, domain.Site{Name: "완료 현장", Location: "대구", Status: domain.SiteStatusDone})
	member := st.Staff.Add(ctx, domain.Staff{Name: "김현수", Status: domain.StaffStatusActive})
	_, err := st.CreateAssignment(ctx, active.ID, member.ID)
	require.NoError(t, err)

	all := svc.SiteCards(ctx, SiteFilterAll)
	require.Len(t, all, 3)
	require.Len(t, all[0].Staff, 1)
	require.Equal(t, member.ID, all[0].Staff[0].Staff.ID)

	// 미배정: no assignment and not done
	unassigned := svc.SiteCards(ctx, SiteFilterUnassigned)
	require.Len(t, unassigned, 1)
	require.Equal(t, pending.ID, unassigned[0].Site.ID)

	activeOnly := svc.SiteCards(ctx, SiteFilterActive)
	require.Len(t, activeOnly, 1)
	require.Equal(t, active.ID, activeOnly[0].Site.ID)
}

func TestRowsSkipOrphanedReferences(t *testing.T) {
	ctx := context.Background()
	st, svc := newAssignFixture(t)
	site := st.Sites.Add(ctx, domain.Site{Name: "현장", Location: "서울", Status: domain.SiteStatusActive})
	member := st.Staff.Add(ctx, domain.Staff{Name: "김현수", Status: domain.StaffStatusActive})
	_, err := st.CreateAssignment(ctx, site.ID, member.ID)
	require.NoError(t, err)
	// simulate a stale record pointing at deleted entities
	st.Assignments.Add(ctx, domain.Assignment{SiteID: "ghost-site", StaffID: member.ID})

	rows := svc.Rows(ctx)
	require.Len(t, rows, 1)
	require.Equal(t, site.ID, rows[0].Site.ID)
	require.Equal(t, member.ID, rows[0].Staff.ID)
}

func TestSummarize(t *testing.T) {
	ctx := context.Background()
	st, svc := newAssignFixture(t)
	active := st.Sites.Add(ctx, domain.Site{Name: "진행", Location: "서울", Status: domain.SiteStatusActive})
	st.Sites.Add(ctx, domain.Site{Name: "대기", Location: "부산", Status: domain.SiteStatusPending})
	st.Sites.Add(ctx, domain.Site{Name: "완료", Location: "대구", Status: domain.SiteStatusDone})
	member := st.Staff.Add(ctx, domain.Staff{Name: "김현수", Status: domain.StaffStatusActive})
	st.Staff.Add(ctx, domain.Staff{Name: "이영호", Status: domain.StaffStatusActive})
	_, err := st.CreateAssignment(ctx, active.ID, member.ID)
	require.NoError(t, err)

	sum := svc.Summarize(ctx)
	require.Equal(t, 3, sum.TotalSites)
	require.Equal(t, 1, sum.ActiveSites)
	require.Equal(t, 2, sum.TotalStaff)
	require.Equal(t, 1, sum.AssignedStaff)
	require.Equal(t, 1, sum.AssignedSites)
	// the done site is neither assigned nor counted as unassigned
	require.Equal(t, 1, sum.UnassignedSites)

	unassigned := svc.UnassignedActiveSites(ctx)
	require.Len(t, unassigned, 1)
	require.Equal(t, "대기", unassigned[0].Name)
}

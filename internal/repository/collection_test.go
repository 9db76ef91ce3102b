package repository

import (
	"context"
	"testing"

	"sitedesk/internal/domain"
	"sitedesk/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*Store, *store.MemoryKV) {
	t.Helper()
	kv := store.NewMemoryKV()
	return NewStore(kv, zap.NewNop()), kv
}

func TestCollectionCRUDNetEffect(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.Empty(t, s.Sites.GetAll(ctx))

	a := s.Sites.Add(ctx, domain.Site{Name: "현장 A", Location: "서울", Status: domain.SiteStatusActive})
	b := s.Sites.Add(ctx, domain.Site{Name: "현장 B", Location: "부산", Status: domain.SiteStatusPending})
	require.NotEmpty(t, a.ID)
	require.NotEmpty(t, a.CreatedAt)
	require.NotEqual(t, a.ID, b.ID)

	all := s.Sites.GetAll(ctx)
	require.Len(t, all, 2)
	// insertion order preserved
	require.Equal(t, "현장 A", all[0].Name)
	require.Equal(t, "현장 B", all[1].Name)

	updated := s.Sites.Update(ctx, b.ID, func(site *domain.Site) {
		site.Progress = 40
	})
	require.NotNil(t, updated)
	require.Equal(t, 40, updated.Progress)
	require.Equal(t, "부산", updated.Location) // untouched fields survive the merge
	require.NotEmpty(t, updated.UpdatedAt)

	s.Sites.Remove(ctx, a.ID)
	all = s.Sites.GetAll(ctx)
	require.Len(t, all, 1)
	require.Equal(t, b.ID, all[0].ID)
}

func TestCollectionGetByIDMiss(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.Nil(t, s.Sites.GetByID(ctx, "no-such-id"))
	require.Nil(t, s.Sites.Update(ctx, "no-such-id", func(*domain.Site) {}))
}

func TestCollectionRemoveIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	rec := s.Staff.Add(ctx, domain.Staff{Name: "김현수", Role: domain.RoleManager, Status: domain.StaffStatusActive})
	s.Staff.Remove(ctx, rec.ID)
	s.Staff.Remove(ctx, rec.ID) // second delete is a no-op
	s.Staff.Remove(ctx, "never-existed")
	require.Empty(t, s.Staff.GetAll(ctx))
}

func TestCollectionCorruptDataDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t)

	require.NoError(t, kv.Set(ctx, KeySites, "{not valid json"))
	require.Empty(t, s.Sites.GetAll(ctx))

	// the collection is usable again after the next write
	s.Sites.Add(ctx, domain.Site{Name: "현장", Location: "서울"})
	require.Len(t, s.Sites.GetAll(ctx), 1)
}

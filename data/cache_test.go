package data

import (
	"sync"
	"testing"
	"time"

	"github.com/giygas/medreview-api/models"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func newTestCache(ttl time.Duration, now *time.Time) *ReportCache {
	c := NewReportCache(ttl)
	c.now = func() time.Time { return *now }
	return c
}

func assessmentAt(created time.Time, report string) models.Assessment {
	a := models.NewAssessment(models.KindPublic, report)
	a.CreatedAt = created
	return a
}

func TestNewReportCacheIsEmpty(t *testing.T) {
	c := NewReportCache(time.Hour)

	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if _, ok := c.Latest(); ok {
		t.Error("Latest() on empty cache should report false")
	}
	if !c.LastStored().IsZero() {
		t.Error("LastStored() should be zero before any Put")
	}
}

func TestPutGetLatest(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	c := newTestCache(time.Hour, &now)

	first := assessmentAt(now, "1. FTP's ...")
	second := assessmentAt(now, "2. Behandelplan ...")
	c.Put(first)
	c.Put(second)

	got, ok := c.Get(first.ID)
	if !ok {
		t.Fatal("Get(first) not found")
	}
	if diff := cmp.Diff(first, got); diff != "" {
		t.Errorf("Get(first) mismatch (-want +got):\n%s", diff)
	}

	latest, ok := c.Latest()
	if !ok || latest.ID != second.ID {
		t.Errorf("Latest() = %v, %v; want %v", latest.ID, ok, second.ID)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if !c.LastStored().Equal(now) {
		t.Errorf("LastStored() = %v, want %v", c.LastStored(), now)
	}
}

func TestGetUnknownID(t *testing.T) {
	c := NewReportCache(time.Hour)
	if _, ok := c.Get(uuid.New()); ok {
		t.Error("Get(unknown) should report false")
	}
}

func TestExpiredEntriesAreHidden(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	c := newTestCache(time.Hour, &now)

	a := assessmentAt(now, "report")
	c.Put(a)

	now = now.Add(2 * time.Hour)

	if _, ok := c.Get(a.ID); ok {
		t.Error("expired entry should not be returned by Get")
	}
	if _, ok := c.Latest(); ok {
		t.Error("expired entry should not be returned by Latest")
	}
	if c.Len() != 1 {
		t.Errorf("entry should remain until eviction, Len() = %d", c.Len())
	}
}

func TestEvictExpired(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	c := newTestCache(time.Hour, &now)

	old := assessmentAt(now.Add(-3*time.Hour), "old")
	fresh := assessmentAt(now, "fresh")
	c.Put(fresh)
	c.Put(old)

	if removed := c.EvictExpired(); removed != 1 {
		t.Errorf("EvictExpired() = %d, want 1", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if _, ok := c.Get(fresh.ID); !ok {
		t.Error("fresh entry should survive eviction")
	}
	if _, ok := c.Latest(); ok {
		t.Error("latest pointed at the evicted entry and should be cleared")
	}
	if removed := c.EvictExpired(); removed != 0 {
		t.Errorf("second EvictExpired() = %d, want 0", removed)
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	c := newTestCache(0, &now)

	a := assessmentAt(now.Add(-1000*time.Hour), "ancient")
	c.Put(a)

	if _, ok := c.Get(a.ID); !ok {
		t.Error("entry should not expire with zero ttl")
	}
	if removed := c.EvictExpired(); removed != 0 {
		t.Errorf("EvictExpired() = %d, want 0", removed)
	}
}

func TestSnapshotsAreNotMutated(t *testing.T) {
	c := NewReportCache(time.Hour)
	a := models.NewAssessment(models.KindHospital, "a")
	c.Put(a)

	before := c.load()
	c.Put(models.NewAssessment(models.KindHospital, "b"))

	if len(before.byID) != 1 {
		t.Errorf("earlier snapshot changed size to %d", len(before.byID))
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := NewReportCache(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				c.Put(models.NewAssessment(models.KindPublic, "report"))
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				c.Latest()
				c.Len()
				c.EvictExpired()
			}
		}()
	}
	wg.Wait()

	if c.Len() != 500 {
		t.Errorf("Len() = %d, want 500", c.Len())
	}
}

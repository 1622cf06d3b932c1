// Package data holds the in-process report cache. Readers load an immutable
// snapshot through an atomic pointer; writers copy the snapshot and swap it.
package data

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/giygas/medreview-api/interfaces"
	"github.com/giygas/medreview-api/logging"
	"github.com/giygas/medreview-api/models"
	"github.com/google/uuid"
)

var _ interfaces.ReportCache = (*ReportCache)(nil)

// snapshot is never mutated after it is stored
type snapshot struct {
	byID   map[uuid.UUID]models.Assessment
	latest uuid.UUID
}

// ReportCache keeps recently generated reports so they can still be shown
// when the store is unavailable.
type ReportCache struct {
	current    atomic.Value // snapshot
	lastStored atomic.Value // time.Time
	writeMu    sync.Mutex
	ttl        time.Duration
	now        func() time.Time
}

// NewReportCache creates an empty cache; a ttl of 0 keeps entries forever
func NewReportCache(ttl time.Duration) *ReportCache {
	c := &ReportCache{ttl: ttl, now: time.Now}
	c.current.Store(snapshot{byID: make(map[uuid.UUID]models.Assessment)})
	c.lastStored.Store(time.Time{})
	return c
}

func (c *ReportCache) load() snapshot {
	if v := c.current.Load(); v != nil {
		if s, ok := v.(snapshot); ok {
			return s
		}
	}

	logging.Warn("Report cache snapshot is empty or invalid")
	return snapshot{byID: make(map[uuid.UUID]models.Assessment)}
}

func (c *ReportCache) expired(a models.Assessment) bool {
	return c.ttl > 0 && c.now().Sub(a.CreatedAt) > c.ttl
}

// Put stores an assessment and makes it the latest one
func (c *ReportCache) Put(assessment models.Assessment) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	old := c.load()
	next := snapshot{
		byID:   make(map[uuid.UUID]models.Assessment, len(old.byID)+1),
		latest: assessment.ID,
	}
	for id, a := range old.byID {
		next.byID[id] = a
	}
	next.byID[assessment.ID] = assessment

	c.current.Store(next)
	c.lastStored.Store(c.now())
}

// Get returns a cached assessment that has not expired
func (c *ReportCache) Get(id uuid.UUID) (models.Assessment, bool) {
	a, ok := c.load().byID[id]
	if !ok || c.expired(a) {
		return models.Assessment{}, false
	}
	return a, true
}

// Latest returns the most recently stored assessment, if still fresh
func (c *ReportCache) Latest() (models.Assessment, bool) {
	s := c.load()
	if s.latest == uuid.Nil {
		return models.Assessment{}, false
	}
	return c.Get(s.latest)
}

// EvictExpired drops expired entries and returns how many were removed
func (c *ReportCache) EvictExpired() int {
	if c.ttl <= 0 {
		return 0
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	old := c.load()
	next := snapshot{
		byID:   make(map[uuid.UUID]models.Assessment, len(old.byID)),
		latest: old.latest,
	}
	for id, a := range old.byID {
		if !c.expired(a) {
			next.byID[id] = a
		}
	}

	removed := len(old.byID) - len(next.byID)
	if removed == 0 {
		return 0
	}
	if _, ok := next.byID[next.latest]; !ok {
		next.latest = uuid.Nil
	}

	c.current.Store(next)
	return removed
}

// Len returns the number of cached entries, expired ones included
func (c *ReportCache) Len() int {
	return len(c.load().byID)
}

// LastStored returns when Put was last called
func (c *ReportCache) LastStored() time.Time {
	if v := c.lastStored.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

package vessel

import (
	"container/list"
	"sort"
	"sync"
	"time"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/bft-labs/aisparser/pkg/ais"
	"github.com/bft-labs/aisparser/pkg/position"
)

// EarthRadius is the mean earth radius in meters used by Near.
const EarthRadius = 6371008.8

// Option configures a Cache.
type Option func(*Cache)

// WithMaxEntries bounds the number of tracked stations. When full, the
// least recently updated station is evicted. Zero means unbounded.
func WithMaxEntries(n int) Option {
	return func(c *Cache) { c.maxEntries = n }
}

// WithMaxAge evicts stations not heard from for longer than d. Zero
// disables age eviction.
func WithMaxAge(d time.Duration) Option {
	return func(c *Cache) { c.maxAge = d }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// Cache correlates messages by MMSI into Vessel records. It is safe for
// concurrent use.
type Cache struct {
	mu         sync.Mutex
	maxEntries int
	maxAge     time.Duration
	now        func() time.Time

	entries map[uint32]*list.Element
	order   *list.List // front is most recently updated
	evicted uint64
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		now:     time.Now,
		entries: make(map[uint32]*list.Element),
		order:   list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Observe merges m into the record of its MMSI and returns the updated
// record. ok is false when the message carries no station state; the
// cache is unchanged in that case.
func (c *Cache) Observe(m ais.Message) (v Vessel, ok bool) {
	h := m.GetHeader()

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var rec *Vessel
	if e, found := c.entries[h.MMSI]; found {
		rec = e.Value.(*Vessel)
		if c.expired(rec, now) {
			*rec = Vessel{MMSI: h.MMSI}
		}
	} else {
		rec = &Vessel{MMSI: h.MMSI}
	}

	next := *rec
	if !next.merge(m, now) {
		return Vessel{}, false
	}
	if next.FirstSeen.IsZero() {
		next.FirstSeen = now
	}
	next.LastSeen = now
	next.LastType = h.Type
	next.Messages++
	*rec = next

	if e, found := c.entries[h.MMSI]; found {
		c.order.MoveToFront(e)
	} else {
		c.entries[h.MMSI] = c.order.PushFront(rec)
		c.evictOverflow()
	}
	return next, true
}

// Get returns the record for mmsi. Expired records are evicted and
// reported as missing.
func (c *Cache) Get(mmsi uint32) (Vessel, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[mmsi]
	if !ok {
		return Vessel{}, false
	}
	v := e.Value.(*Vessel)
	if c.expired(v, c.now()) {
		c.remove(e)
		return Vessel{}, false
	}
	return *v, true
}

// Sweep evicts every expired record and returns how many were removed.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxAge <= 0 {
		return 0
	}
	now := c.now()
	n := 0
	for e := c.order.Back(); e != nil; {
		v := e.Value.(*Vessel)
		if !c.expired(v, now) {
			// Older records are behind this one; the rest are newer.
			break
		}
		prev := e.Prev()
		c.remove(e)
		n++
		e = prev
	}
	return n
}

// SetMaxAge changes the age limit. It takes effect on the next Get or
// Sweep.
func (c *Cache) SetMaxAge(d time.Duration) {
	c.mu.Lock()
	c.maxAge = d
	c.mu.Unlock()
}

// MaxAge returns the current age limit.
func (c *Cache) MaxAge() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxAge
}

// Len returns the number of tracked stations, including expired records
// not yet swept.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Evicted returns the number of records removed by size or age limits.
func (c *Cache) Evicted() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evicted
}

// Snapshot returns copies of all live records ordered by MMSI.
func (c *Cache) Snapshot() []Vessel {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	out := make([]Vessel, 0, len(c.entries))
	for e := c.order.Front(); e != nil; e = e.Next() {
		v := e.Value.(*Vessel)
		if !c.expired(v, now) {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MMSI < out[j].MMSI })
	return out
}

// Near returns live records with a known position within radius meters
// of the given decimal-degree point, nearest first.
func (c *Cache) Near(lat, lon, radius float64) []Vessel {
	center := s2.LatLngFromDegrees(lat, lon)
	limit := s1.Angle(radius / EarthRadius)

	type hit struct {
		v    Vessel
		dist s1.Angle
	}
	var hits []hit
	for _, v := range c.Snapshot() {
		if !v.HasPosition() {
			continue
		}
		d := center.Distance(latLng(v.Position))
		if d <= limit {
			hits = append(hits, hit{v, d})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	out := make([]Vessel, len(hits))
	for i, h := range hits {
		out[i] = h.v
	}
	return out
}

// Distance returns the great-circle distance in meters between two points.
func Distance(a, b position.Point) float64 {
	return latLng(a).Distance(latLng(b)).Radians() * EarthRadius
}

func latLng(p position.Point) s2.LatLng {
	lat, lon := p.Decimal()
	return s2.LatLngFromDegrees(lat, lon)
}

func (c *Cache) expired(v *Vessel, now time.Time) bool {
	return c.maxAge > 0 && now.Sub(v.LastSeen) > c.maxAge
}

func (c *Cache) evictOverflow() {
	for c.maxEntries > 0 && c.order.Len() > c.maxEntries {
		c.remove(c.order.Back())
	}
}

func (c *Cache) remove(e *list.Element) {
	v := c.order.Remove(e).(*Vessel)
	delete(c.entries, v.MMSI)
	c.evicted++
}

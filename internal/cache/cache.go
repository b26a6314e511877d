package cache

import (
	"sync"

	"github.com/s2rewind/analyser/pkg/core"
)

// UnitCache tracks the live unit table of one replay while its event stream
// is consumed. Latency matters here: the map view rebuilds its vertex
// buffer from this table every time a unit enters or leaves play.
type UnitCache struct {
	m     sync.Mutex
	units map[uint32]core.Unit
}

// NewUnitCache returns an empty unit table.
func NewUnitCache() *UnitCache {
	return &UnitCache{
		units: make(map[uint32]core.Unit),
	}
}

// Reset drops all tracked units, ready for the next replay.
func (c *UnitCache) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.units = make(map[uint32]core.Unit)
}

// Apply folds one tracker event into the table. Born and init events add
// or replace a unit, died events remove it. Every other kind is a no-op;
// stats and upgrade events are handled elsewhere.
func (c *UnitCache) Apply(evt core.TrackerEvent) {
	switch evt.Kind {
	case core.EventUnitBorn:
		if evt.UnitBorn != nil {
			b := evt.UnitBorn
			c.add(b.UnitTag, b.UnitTypeName, b.ControlPlayerID, b.X, b.Y)
		}
	case core.EventUnitInit:
		if evt.UnitInit != nil {
			i := evt.UnitInit
			c.add(i.UnitTag, i.UnitTypeName, i.ControlPlayerID, i.X, i.Y)
		}
	case core.EventUnitDied:
		if evt.UnitDied != nil {
			c.remove(evt.UnitDied.UnitTag)
		}
	}
}

func (c *UnitCache) add(tag uint32, name string, controlPlayer uint8, x, y float32) {
	c.m.Lock()
	defer c.m.Unlock()
	c.units[tag] = core.Unit{
		Tag:     tag,
		Name:    name,
		OwnerID: ownerID(controlPlayer),
		X:       x,
		Y:       y,
	}
}

func (c *UnitCache) remove(tag uint32) {
	c.m.Lock()
	defer c.m.Unlock()
	delete(c.units, tag)
}

// Get returns the tracked unit with the given tag.
func (c *UnitCache) Get(tag uint32) (core.Unit, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	u, ok := c.units[tag]
	return u, ok
}

// Len returns the number of live units.
func (c *UnitCache) Len() int {
	c.m.Lock()
	defer c.m.Unlock()
	return len(c.units)
}

// Units returns a copy of the live unit table. The copy is safe to hand to
// the renderer while the cache keeps mutating.
func (c *UnitCache) Units() []core.Unit {
	c.m.Lock()
	defer c.m.Unlock()
	out := make([]core.Unit, 0, len(c.units))
	for _, u := range c.units {
		out = append(out, u)
	}
	return out
}

// ownerID maps the 1-based tracker control player to the 0-based
// participant slot the palette expects. Neutral units (control player 0)
// get the unknown-owner sentinel.
func ownerID(controlPlayer uint8) int64 {
	if controlPlayer == 0 {
		return core.UnknownOwner
	}
	return int64(controlPlayer) - 1
}

package systems

import (
	"github.com/pthm-cable/softies/components"
	"github.com/pthm-cable/softies/physics"
)

// CreatureGroup is the interaction group shared by every creature collider.
// World geometry carries no group bits, so spatial queries never return
// walls.
const CreatureGroup uint32 = 1 << 0

// Snapshots is the per-tick read-only view of every creature, built before
// any creature mutates the physics world and discarded after the tick.
type Snapshots struct {
	List []components.CreatureInfo
	byID map[uint32]int
}

// NewSnapshots creates an empty snapshot set.
func NewSnapshots() *Snapshots {
	return &Snapshots{byID: make(map[uint32]int)}
}

// Reset clears the set for the next tick, keeping allocations.
func (s *Snapshots) Reset() {
	s.List = s.List[:0]
	clear(s.byID)
}

// Add appends one creature's snapshot.
func (s *Snapshots) Add(info components.CreatureInfo) {
	s.byID[info.ID] = len(s.List)
	s.List = append(s.List, info)
}

// ByID resolves a creature id to its snapshot.
func (s *Snapshots) ByID(id uint32) (components.CreatureInfo, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return components.CreatureInfo{}, false
	}
	return s.List[idx], true
}

// SenseNearby returns snapshots of other creatures whose primary position
// lies within radius of pos. It wraps the physics circle query: collider
// hits are resolved to creature ids through their owner tags and
// cross-referenced against the tick's snapshot set. The querying creature
// and world geometry are excluded. A creature with several segments inside
// the circle is reported once. Results are appended to dst; order is
// unspecified, and callers must combine them order-independently.
func SenseNearby(dst []components.CreatureInfo, w *physics.World, snaps *Snapshots, scratch []physics.ColliderHit, selfID uint32, selfBody physics.BodyHandle, pos physics.Vec2, radius float32) ([]components.CreatureInfo, []physics.ColliderHit) {
	scratch = w.QueryCircleInto(scratch[:0], pos, radius, CreatureGroup, selfBody)

	for _, hit := range scratch {
		if hit.Owner == 0 || hit.Owner == selfID {
			continue
		}
		info, ok := snaps.ByID(hit.Owner)
		if !ok {
			// Collider belongs to a creature spawned or removed mid-tick;
			// skip rather than fail.
			continue
		}
		if info.Position.Sub(pos).LengthSq() > radius*radius {
			continue
		}
		if containsID(dst, hit.Owner) {
			continue
		}
		dst = append(dst, info)
	}
	return dst, scratch
}

func containsID(list []components.CreatureInfo, id uint32) bool {
	for i := range list {
		if list[i].ID == id {
			return true
		}
	}
	return false
}

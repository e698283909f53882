package systems

import "github.com/pthm-cable/softies/components"

// Thresholds holds the species-specific state machine thresholds, all
// expressed as fractions of max energy. Enter and exit thresholds differ on
// purpose: the gap is the hysteresis band that keeps a creature from
// chattering between states at a single threshold crossing.
type Thresholds struct {
	RestExitFrac  float32 // leave Resting at or above this (comfort)
	SeekEnterFrac float32 // enter SeekingFood below this (critical)
	SeekExitFrac  float32 // leave SeekingFood at or above this (comfort)
}

// NextState computes the behavioral state for this tick. The policy is a
// priority list evaluated top to bottom; the first match wins.
// inFavorableZone gates leaving SeekingFood for species that feed
// positionally (plankton in the light zone); species without a favorable
// zone pass true.
//
// Idle and Fleeing are reachable only through species-specific triggers
// applied outside this function; NextState treats them like Wandering.
func NextState(cur components.State, att *components.Attributes, th Thresholds, inFavorableZone bool) components.State {
	energy := att.Energy
	maxE := att.MaxEnergy

	// 1. Exhaustion overrides everything.
	if att.IsTired() {
		return components.Resting
	}

	// 2. Resting is sticky until the comfort threshold is crossed.
	if cur == components.Resting {
		if energy < maxE*th.RestExitFrac {
			return components.Resting
		}
		if att.IsHungry() || energy < maxE*th.SeekExitFrac {
			return components.SeekingFood
		}
		return components.Wandering
	}

	// 3. Critically low energy forces foraging.
	if energy < maxE*th.SeekEnterFrac {
		return components.SeekingFood
	}

	// 4. SeekingFood is sticky until recovered and in a favorable zone.
	if cur == components.SeekingFood {
		if energy >= maxE*th.SeekExitFrac && inFavorableZone {
			return components.Wandering
		}
		return components.SeekingFood
	}

	// 5. Default active state.
	return components.Wandering
}

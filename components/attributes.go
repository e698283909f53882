package components

import "slices"

// DietType defines the dietary preference of a creature.
type DietType uint8

const (
	Herbivore DietType = iota // eats plants, never other creatures
	Carnivore                 // eats other creatures
	Omnivore                  // eats both
)

// String returns the diet name.
func (d DietType) String() string {
	switch d {
	case Herbivore:
		return "herbivore"
	case Carnivore:
		return "carnivore"
	case Omnivore:
		return "omnivore"
	}
	return "unknown"
}

// DietFromString parses a diet name. Unknown names map to Herbivore.
func DietFromString(s string) DietType {
	switch s {
	case "carnivore":
		return Carnivore
	case "omnivore":
		return Omnivore
	}
	return Herbivore
}

// Attributes holds a creature's metabolic state and ecological role.
// Each creature owns exactly one Attributes value; it is mutated every tick
// by the passive metabolism update and by actuation energy costs.
//
// Invariants: 0 <= Energy <= MaxEnergy and 0 <= Satiety <= MaxSatiety hold
// under every mutator.
type Attributes struct {
	Energy             float32 `inspect:"bar"`
	MaxEnergy          float32 `inspect:"label,fmt:%.1f"`
	EnergyRecoveryRate float32 // energy gained per second when resting

	Satiety       float32 `inspect:"bar"`
	MaxSatiety    float32 `inspect:"label,fmt:%.1f"`
	MetabolicRate float32 // satiety lost per second passively

	Diet DietType
	Size float32

	// PreyTags lists what this creature can eat; SelfTags lists what this
	// creature is, matched against predators' prey tags.
	PreyTags []string
	SelfTags []string
}

// NewAttributes creates a full attribute set (energy and satiety at max).
func NewAttributes(maxEnergy, recoveryRate, maxSatiety, metabolicRate float32, diet DietType, size float32, preyTags, selfTags []string) Attributes {
	return Attributes{
		Energy:             maxEnergy,
		MaxEnergy:          maxEnergy,
		EnergyRecoveryRate: recoveryRate,
		Satiety:            maxSatiety,
		MaxSatiety:         maxSatiety,
		MetabolicRate:      metabolicRate,
		Diet:               diet,
		Size:               size,
		PreyTags:           preyTags,
		SelfTags:           selfTags,
	}
}

// UpdatePassiveStats applies per-tick metabolic decay and, while resting,
// energy recovery. Energy drains at half the satiety rate.
func (a *Attributes) UpdatePassiveStats(dt float32, isResting bool) {
	a.Satiety -= a.MetabolicRate * dt
	if a.Satiety < 0 {
		a.Satiety = 0
	}

	a.Energy -= a.MetabolicRate * dt * 0.5
	if a.Energy < 0 {
		a.Energy = 0
	}

	if isResting {
		a.Energy += a.EnergyRecoveryRate * dt
		if a.Energy > a.MaxEnergy {
			a.Energy = a.MaxEnergy
		}
	}
}

// ConsumeEnergy subtracts actuation cost, clamped at zero.
func (a *Attributes) ConsumeEnergy(amount float32) {
	a.Energy -= amount
	if a.Energy < 0 {
		a.Energy = 0
	}
}

// GainEnergy adds energy, capped at max. Used for photosynthetic feeding.
func (a *Attributes) GainEnergy(amount, cap float32) {
	if cap > a.MaxEnergy || cap <= 0 {
		cap = a.MaxEnergy
	}
	if a.Energy >= cap {
		return
	}
	a.Energy += amount
	if a.Energy > cap {
		a.Energy = cap
	}
}

// GainSatiety adds satiety, capped at max.
func (a *Attributes) GainSatiety(amount float32) {
	a.Satiety += amount
	if a.Satiety > a.MaxSatiety {
		a.Satiety = a.MaxSatiety
	}
}

// IsHungry reports whether satiety is below half of max.
func (a *Attributes) IsHungry() bool {
	return a.Satiety < a.MaxSatiety*0.5
}

// IsTired reports whether energy is below 20% of max.
func (a *Attributes) IsTired() bool {
	return a.Energy < a.MaxEnergy*0.2
}

// CanEat reports whether this creature can eat the other, based on diet,
// relative size, and prey/self tag matching.
func (a *Attributes) CanEat(other *Attributes) bool {
	switch a.Diet {
	case Herbivore:
		return false
	default:
		if other.Size > a.Size*1.5 {
			return false
		}
		for _, tag := range a.PreyTags {
			if slices.Contains(other.SelfTags, tag) {
				return true
			}
		}
		return false
	}
}

// CanBeEatenBy is the symmetric call: predator.CanEat(a).
func (a *Attributes) CanBeEatenBy(predator *Attributes) bool {
	return predator.CanEat(a)
}

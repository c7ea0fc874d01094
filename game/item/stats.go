package item

import "math"

// Stats is the flat combat stat tuple an equipped item contributes.
type Stats struct {
	Attack   int `json:"attack"`
	Defense  int `json:"defense"`
	HP       int `json:"hp"`
	Exp      int `json:"exp"`
	Spirit   int `json:"spirit"`
	Physique int `json:"physique"`
	Speed    int `json:"speed"`
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Attack += other.Attack
	s.Defense += other.Defense
	s.HP += other.HP
	s.Exp += other.Exp
	s.Spirit += other.Spirit
	s.Physique += other.Physique
	s.Speed += other.Speed
}

// natalMultiplier is the permanent bonus on the player's bound artifact.
const natalMultiplier = 1.5

// EquipStats resolves the effective stats of an item instance. The natal
// (bound) artifact gets a +50% multiplier on everything except exp, floored;
// exp-granting effects are never boosted. Always re-derived from the item
// value, never cached.
func EquipStats(it Item, natal bool) Stats {
	m := 1.0
	if natal {
		m = natalMultiplier
	}
	scale := func(p *int) int {
		if p == nil {
			return 0
		}
		return int(math.Floor(float64(*p) * m))
	}
	e := it.Effect
	if e == nil {
		return Stats{}
	}
	return Stats{
		Attack:   scale(e.Attack),
		Defense:  scale(e.Defense),
		HP:       scale(e.HP),
		Exp:      deref(e.Exp),
		Spirit:   scale(e.Spirit),
		Physique: scale(e.Physique),
		Speed:    scale(e.Speed),
	}
}

package item

import "math"

// NormalizeEffect reconciles externally supplied (possibly AI-generated)
// effect bags against the curated table and the rarity scaling rules.
//
// Priority order:
//  1. A curated entry for the exact item name pins the effect values; curated
//     data is pre-balanced and never rescaled. A curated entry missing one of
//     the two bags falls back to the caller's bag for that side.
//  2. Pills above the lowest rarity tier scale every set field by the rarity
//     multiplier, flooring after multiplication.
//  3. Everything else passes through unchanged.
//
// Unset fields stay unset so callers can distinguish "no effect" from "zero
// effect".
func NormalizeEffect(name string, eff *Effect, perm *PermanentEffect, category Category, rarity Rarity, known map[string]KnownEffect, rarities RarityTable) (*Effect, *PermanentEffect) {
	if k, ok := known[name]; ok {
		outEff := k.Effect.Clone()
		if outEff == nil {
			outEff = eff.Clone()
		}
		outPerm := k.PermanentEffect.Clone()
		if outPerm == nil {
			outPerm = perm.Clone()
		}
		return outEff, outPerm
	}

	if category == CategoryPill && rarity != RarityCommon {
		m := rarities.Multiplier(rarity)
		if m != 1 {
			return scaleEffect(eff, m), scalePermanent(perm, m)
		}
	}

	return eff.Clone(), perm.Clone()
}

func scaleInt(p *int, m float64) *int {
	if p == nil {
		return nil
	}
	v := int(math.Floor(float64(*p) * m))
	return &v
}

func scaleEffect(e *Effect, m float64) *Effect {
	if e == nil {
		return nil
	}
	return &Effect{
		Attack:   scaleInt(e.Attack, m),
		Defense:  scaleInt(e.Defense, m),
		HP:       scaleInt(e.HP, m),
		Spirit:   scaleInt(e.Spirit, m),
		Physique: scaleInt(e.Physique, m),
		Speed:    scaleInt(e.Speed, m),
		Exp:      scaleInt(e.Exp, m),
		Lifespan: scaleInt(e.Lifespan, m),
	}
}

func scalePermanent(e *PermanentEffect, m float64) *PermanentEffect {
	if e == nil {
		return nil
	}
	out := &PermanentEffect{
		Attack:      scaleInt(e.Attack, m),
		Defense:     scaleInt(e.Defense, m),
		Spirit:      scaleInt(e.Spirit, m),
		Physique:    scaleInt(e.Physique, m),
		Speed:       scaleInt(e.Speed, m),
		MaxHP:       scaleInt(e.MaxHP, m),
		MaxLifespan: scaleInt(e.MaxLifespan, m),
	}
	if e.SpiritualRoots != nil {
		out.SpiritualRoots = &SpiritualRoots{
			Metal: int(math.Floor(float64(e.SpiritualRoots.Metal) * m)),
			Wood:  int(math.Floor(float64(e.SpiritualRoots.Wood) * m)),
			Water: int(math.Floor(float64(e.SpiritualRoots.Water) * m)),
			Fire:  int(math.Floor(float64(e.SpiritualRoots.Fire) * m)),
			Earth: int(math.Floor(float64(e.SpiritualRoots.Earth) * m)),
		}
	}
	return out
}

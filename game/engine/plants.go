package engine

// CanHold reports whether the plant may take one more token of type t.
// Renewable plants store nothing; hybrid plants take coal or oil; single-fuel
// plants take exactly their own fuel. Storage is capped at twice the plant's
// resource number, counting stored, pending and on-hold tokens alike.
func (p *OwnedPlant) CanHold(t ResourceType) bool {
	if !p.holdsType(t) {
		return false
	}
	return p.Committed() < p.Capacity()
}

func (p *OwnedPlant) holdsType(t ResourceType) bool {
	switch p.Card.Type {
	case PlantRenewable:
		return false
	case PlantHybrid:
		return t == Coal || t == Oil
	default:
		return ResourceType(p.Card.Type) == t
	}
}

// Migrate moves the resource set stranded on a discarded plant onto this
// plant. The whole set transfers atomically or not at all: every type must be
// burnable by this plant (an exact match for single-fuel plants, coal/oil for
// hybrids) and the total must fit within capacity.
func (p *OwnedPlant) Migrate(res ResourceSet) error {
	if p.Card.IsRenewable() {
		return ruleErrorf(CodeCannotHold, "plant %s is renewable and stores no fuel", p.Card.ID)
	}
	for t, n := range res {
		if n > 0 && !p.holdsType(t) {
			return ruleErrorf(CodeCannotHold, "plant %s cannot store %s", p.Card.ID, t)
		}
	}
	if p.Committed()+res.Total() > p.Capacity() {
		return ruleErrorf(CodeCannotHold, "plant %s can store %d units, %d do not fit", p.Card.ID, p.Capacity(), res.Total())
	}
	p.OnCard.AddAll(res)
	return nil
}

// DrainAll empties every token counter on the plant and returns the combined
// set, used when a plant is discarded.
func (p *OwnedPlant) DrainAll() ResourceSet {
	out := NewResourceSet()
	out.AddAll(p.OnCard)
	out.AddAll(p.ToPurchase)
	out.AddAll(p.ToPower)
	out.AddAll(p.OnHold)
	p.OnCard = NewResourceSet()
	p.ToPurchase = NewResourceSet()
	p.ToPower = NewResourceSet()
	p.OnHold = NewResourceSet()
	return out
}

// powerContribution returns how many cities this plant powers this cycle.
// Renewable plants always contribute their full capacity. Fuel plants
// contribute only when exactly resource_number units are committed; zero
// committed means the plant sits idle, and any other count is a validation
// error that rejects the whole generation call.
func (p *OwnedPlant) powerContribution() (int, error) {
	if p.Card.IsRenewable() {
		return p.Card.CitiesToPower, nil
	}
	committed := p.ToPower.Total()
	if committed == 0 {
		return 0, nil
	}
	if committed != p.Card.ResourceNumber {
		return 0, ruleErrorf(CodeBadResourceCount,
			"plant %s needs exactly %d units committed to generate, has %d", p.Card.ID, p.Card.ResourceNumber, committed)
	}
	return p.Card.CitiesToPower, nil
}

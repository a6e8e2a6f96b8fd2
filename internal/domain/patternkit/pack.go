package patternkit

// Pack is the unit of extraction configuration owned by one data source:
// an ordered collection of kits grouped by target type. Multiple kits per
// type support alternate text layouts of the same entity; order decides
// which layout wins when several match.
type Pack struct {
	Kits []*Kit `json:"kits"`
}

func NewPack(kits ...*Kit) *Pack {
	return &Pack{Kits: kits}
}

func (p *Pack) Add(kit *Kit) {
	if p == nil || kit == nil {
		return
	}
	p.Kits = append(p.Kits, kit)
}

// KitsFor returns the kits for one target type in registration order.
func (p *Pack) KitsFor(typeName string) []*Kit {
	if p == nil {
		return nil
	}

	var out []*Kit
	for _, kit := range p.Kits {
		if kit != nil && kit.Type == typeName {
			out = append(out, kit)
		}
	}

	return out
}

// Types lists the distinct target types present, in first-seen order.
func (p *Pack) Types() []string {
	if p == nil {
		return nil
	}

	seen := make(map[string]struct{}, len(p.Kits))
	var out []string
	for _, kit := range p.Kits {
		if kit == nil {
			continue
		}
		if _, ok := seen[kit.Type]; ok {
			continue
		}
		seen[kit.Type] = struct{}{}
		out = append(out, kit.Type)
	}

	return out
}

// Validate fails fast on the first malformed kit, identifying it.
func (p *Pack) Validate() error {
	if p == nil {
		return nil
	}
	for _, kit := range p.Kits {
		if err := kit.Validate(); err != nil {
			return err
		}
	}

	return nil
}

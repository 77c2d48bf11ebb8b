package core

import "time"

// MarkupResolver answers "what markup does this agency charge on date D".
// Lookups fail soft: an unregistered agency or a schedule with nothing in
// effect yet resolves to 0.0. Callers that care log the gap.
type MarkupResolver struct {
	agencies AgencyStore
}

func NewMarkupResolver(agencies AgencyStore) *MarkupResolver {
	return &MarkupResolver{agencies: agencies}
}

// ResolveMarkup returns the markup fraction for agencyName in effect on
// asOf. A zero asOf means today.
func (r *MarkupResolver) ResolveMarkup(agencyName string, asOf time.Time) (float64, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}

	agency, err := r.agencies.FindByName(agencyName)
	if err != nil {
		return 0, err
	}
	if agency == nil {
		return 0.0, nil
	}

	markup, err := r.agencies.MarkupAsOf(agency.ID, asOf)
	if err != nil {
		return 0, err
	}
	if markup == nil {
		return 0.0, nil
	}
	return markup.Markup, nil
}

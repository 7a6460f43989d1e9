package facility

import (
	"sort"

	"github.com/carecompass/carecompass-api/geo"
	"github.com/carecompass/carecompass-api/schema"
)

// eligibleTypes maps every urgency level to the facility types worth
// showing for it. The table is exhaustive over the closed urgency set;
// TestEligibleTypesCoverAllLevels pins that.
var eligibleTypes = map[schema.UrgencyLevel][]schema.FacilityType{
	schema.UrgencySelfCare:   {schema.FacilityClinic},
	schema.UrgencyClinic:     {schema.FacilityClinic, schema.FacilityUrgentCare},
	schema.UrgencyUrgentCare: {schema.FacilityUrgentCare, schema.FacilityHospital},
	schema.UrgencyER:         {schema.FacilityHospital},
}

// Rank filters the registry to the facility types eligible for the result's
// urgency level and orders them by ascending distance from the origin.
// Without a result, or with an unrecognized level, every type is eligible.
// When the type filter leaves nothing, the full registry is ranked instead:
// a non-empty answer beats a type-correct empty one. Ties keep the
// registry's original relative order.
func Rank(registry []schema.Facility, result *schema.TriageResult, origin schema.Location) []schema.RankedFacility {
	candidates := filter(registry, result)
	if len(candidates) == 0 {
		candidates = registry
	}

	ranked := make([]schema.RankedFacility, 0, len(candidates))
	for _, f := range candidates {
		ranked = append(ranked, schema.RankedFacility{
			Facility: f,
			Distance: geo.Distance(origin, schema.Location{Latitude: f.Lat, Longitude: f.Lng}),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})

	return ranked
}

func filter(registry []schema.Facility, result *schema.TriageResult) []schema.Facility {
	if result == nil {
		return registry
	}

	types, ok := eligibleTypes[result.UrgencyLevel]
	if !ok {
		return registry
	}

	filtered := make([]schema.Facility, 0, len(registry))
	for _, f := range registry {
		for _, t := range types {
			if f.Type == t {
				filtered = append(filtered, f)
				break
			}
		}
	}

	return filtered
}

package schema

// FacilityCollection is the mongo collection backing the facility registry
const FacilityCollection = "facility"

// FacilityType - the kind of care a facility provides
type FacilityType string

const (
	FacilityClinic     FacilityType = "clinic"
	FacilityUrgentCare FacilityType = "urgent_care"
	FacilityHospital   FacilityType = "hospital"
)

// Valid reports whether the type is one of the three known values
func (t FacilityType) Valid() bool {
	switch t {
	case FacilityClinic, FacilityUrgentCare, FacilityHospital:
		return true
	}
	return false
}

// Facility - one registry record
type Facility struct {
	ID      string       `json:"id" bson:"id"`
	Name    string       `json:"name" bson:"name"`
	Type    FacilityType `json:"type" bson:"type"`
	Lat     float64      `json:"lat" bson:"lat"`
	Lng     float64      `json:"lng" bson:"lng"`
	Address string       `json:"address,omitempty" bson:"address,omitempty"`
	Phone   string       `json:"phone,omitempty" bson:"phone,omitempty"`
}

// RankedFacility - a registry record annotated with its distance in miles
// from the request origin
type RankedFacility struct {
	Facility
	Distance float64 `json:"distance"`
}

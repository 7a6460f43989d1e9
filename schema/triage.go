package schema

// UrgencyLevel - where the patient should seek care
type UrgencyLevel string

const (
	UrgencySelfCare   UrgencyLevel = "self_care"
	UrgencyClinic     UrgencyLevel = "clinic"
	UrgencyUrgentCare UrgencyLevel = "urgent_care"
	UrgencyER         UrgencyLevel = "er"
)

// Valid reports whether the level is one of the four known values
func (l UrgencyLevel) Valid() bool {
	_, ok := UrgencyColorOf[l]
	return ok
}

// UrgencyColor - traffic light color paired with an urgency level
type UrgencyColor string

const (
	ColorGreen  UrgencyColor = "green"
	ColorYellow UrgencyColor = "yellow"
	ColorRed    UrgencyColor = "red"
)

// Valid reports whether the color is one of the three known values
func (c UrgencyColor) Valid() bool {
	switch c {
	case ColorGreen, ColorYellow, ColorRed:
		return true
	}
	return false
}

// UrgencyColorOf is the canonical level-to-color pairing. It is the single
// authority: any reply pairing them differently is still accepted field by
// field, but producers in this codebase always consult this map.
var UrgencyColorOf = map[UrgencyLevel]UrgencyColor{
	UrgencySelfCare:   ColorGreen,
	UrgencyClinic:     ColorGreen,
	UrgencyUrgentCare: ColorYellow,
	UrgencyER:         ColorRed,
}

// FinancialCategory - expected cost band of the recommended care
type FinancialCategory string

const (
	FinancialLow    FinancialCategory = "low"
	FinancialMedium FinancialCategory = "medium"
	FinancialHigh   FinancialCategory = "high"
)

// Valid reports whether the category is one of the three known values
func (f FinancialCategory) Valid() bool {
	switch f {
	case FinancialLow, FinancialMedium, FinancialHigh:
		return true
	}
	return false
}

// InsuranceStatus - the patient's self-reported coverage
type InsuranceStatus string

const (
	GoodInsurance  InsuranceStatus = "good_insurance"
	HighDeductible InsuranceStatus = "high_deductible"
	NoInsurance    InsuranceStatus = "no_insurance"
)

// Supported image media types for symptom photos
const (
	MediaTypeJPEG = "image/jpeg"
	MediaTypePNG  = "image/png"
)

// TriageImage - base64 symptom photo attached to a request
type TriageImage struct {
	Data      string `json:"data"`
	MediaType string `json:"media_type"`
}

// TriageRequest - one symptom submission
type TriageRequest struct {
	Symptoms        string          `json:"symptoms"`
	Location        string          `json:"location"`
	InsuranceStatus InsuranceStatus `json:"insuranceStatus"`
	Image           *TriageImage    `json:"image,omitempty"`
}

// TriageResult is the nine-field care recommendation. The JSON names are the
// wire contract with the upstream model and with API clients.
type TriageResult struct {
	UrgencyLevel           UrgencyLevel      `json:"urgency_level"`
	UrgencyColor           UrgencyColor      `json:"urgency_color"`
	RecommendedCareType    string            `json:"recommended_care_type"`
	ReasoningSummary       string            `json:"reasoning_summary"`
	DoctorSummary          string            `json:"doctor_summary"`
	RedFlags               []string          `json:"red_flags"`
	FinancialCategory      FinancialCategory `json:"financial_category"`
	FinancialExplanation   string            `json:"financial_explanation"`
	SuggestedSearchQueries []string          `json:"suggested_search_queries"`
}

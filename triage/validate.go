package triage

import (
	"encoding/json"
	"strings"

	"github.com/carecompass/carecompass-api/schema"
)

// requiredFields are the nine members every model reply must carry, in the
// order they are reported when missing.
var requiredFields = []string{
	"urgency_level",
	"urgency_color",
	"recommended_care_type",
	"reasoning_summary",
	"doctor_summary",
	"red_flags",
	"financial_category",
	"financial_explanation",
	"suggested_search_queries",
}

var stringFields = []string{
	"recommended_care_type",
	"reasoning_summary",
	"doctor_summary",
	"financial_explanation",
}

var arrayFields = []string{
	"red_flags",
	"suggested_search_queries",
}

// ParseResult checks a raw model reply against the triage result schema and
// returns it unchanged on success. The contract is exact-shape-or-reject: no
// field is coerced or defaulted. The check is deterministic, so the same
// text always produces the same result or the same error.
func ParseResult(raw string) (*schema.TriageResult, error) {
	cleaned := stripCodeFences(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, &SchemaError{Reason: SchemaReasonParse}
	}

	var missing []string
	for _, name := range requiredFields {
		if _, ok := fields[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{
			Reason: SchemaReasonMissingFields,
			Fields: missing,
		}
	}

	if err := checkEnum(fields, "urgency_level", func(v string) bool { return schema.UrgencyLevel(v).Valid() }); err != nil {
		return nil, err
	}
	if err := checkEnum(fields, "urgency_color", func(v string) bool { return schema.UrgencyColor(v).Valid() }); err != nil {
		return nil, err
	}
	if err := checkEnum(fields, "financial_category", func(v string) bool { return schema.FinancialCategory(v).Valid() }); err != nil {
		return nil, err
	}

	// json.Unmarshal treats a JSON null as a no-op into the target, so a
	// null member would slip through the type checks below; it is not a
	// sequence and not a string, so reject it outright.
	for _, name := range arrayFields {
		var items []string
		if isNull(fields[name]) || json.Unmarshal(fields[name], &items) != nil {
			return nil, &SchemaError{
				Reason: SchemaReasonInvalidType,
				Field:  name,
			}
		}
	}

	for _, name := range stringFields {
		var value string
		if isNull(fields[name]) || json.Unmarshal(fields[name], &value) != nil {
			return nil, &SchemaError{
				Reason: SchemaReasonInvalidType,
				Field:  name,
			}
		}
	}

	var result schema.TriageResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &SchemaError{Reason: SchemaReasonParse}
	}

	return &result, nil
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

func checkEnum(fields map[string]json.RawMessage, name string, valid func(string) bool) error {
	var value string
	if err := json.Unmarshal(fields[name], &value); err != nil || !valid(value) {
		return &SchemaError{
			Reason: SchemaReasonInvalidEnum,
			Field:  name,
			Value:  strings.Trim(string(fields[name]), `"`),
		}
	}
	return nil
}

// stripCodeFences removes markdown fence markup the model is not guaranteed
// to omit
func stripCodeFences(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}
